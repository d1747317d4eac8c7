package stiffness

import "math"

// Element is a Bernoulli beam segment between two consecutive nodes.
// The local stiffness matrix is computed once and never changes.
type Element struct {
	E float64 // modulus of elasticity
	I float64 // second moment of area
	L float64 // span length

	k [4][4]float64
}

// NewElement creates a beam element and computes its local stiffness matrix.
// Rows and columns are ordered [shear-1, moment-1, shear-2, moment-2].
// Units must be consistent; no conversion is done here.
func NewElement(e, i, l float64) (*Element, error) {
	if !(l > 0) || math.IsInf(l, 0) {
		return nil, newError(ErrInvalidGeometry, "span length must be positive, got %g", l)
	}
	if !(e > 0) || math.IsInf(e, 0) {
		return nil, newError(ErrNumericDomain, "modulus of elasticity must be positive, got %g", e)
	}
	if !(i > 0) || math.IsInf(i, 0) {
		return nil, newError(ErrNumericDomain, "moment of inertia must be positive, got %g", i)
	}

	c := e * i / (l * l * l)
	l2 := l * l
	el := &Element{E: e, I: i, L: l}
	el.k = [4][4]float64{
		{12 * c, 6 * l * c, -12 * c, 6 * l * c},
		{6 * l * c, 4 * l2 * c, -6 * l * c, 2 * l2 * c},
		{-12 * c, -6 * l * c, 12 * c, -6 * l * c},
		{6 * l * c, 2 * l2 * c, -6 * l * c, 4 * l2 * c},
	}
	return el, nil
}

// Stiffness returns a copy of the local stiffness matrix
func (el *Element) Stiffness() [4][4]float64 {
	return el.k
}

// EndForces computes the local end forces F = k·u + qf for the element
// displacement vector u = [d1, θ1, d2, θ2] and fixed-end force vector qf.
func (el *Element) EndForces(u, qf [4]float64) [4]float64 {
	var f [4]float64
	for r := 0; r < 4; r++ {
		sum := qf[r]
		for c := 0; c < 4; c++ {
			sum += el.k[r][c] * u[c]
		}
		f[r] = sum
	}
	return f
}

// Deflection interpolates the transverse displacement at x with the cubic
// Hermite shape functions of the element, using only the nodal values u.
func (el *Element) Deflection(u [4]float64, x float64) float64 {
	s := x / el.L
	s2 := s * s
	s3 := s2 * s

	n1 := 1 - 3*s2 + 2*s3
	n2 := el.L * (s - 2*s2 + s3)
	n3 := 3*s2 - 2*s3
	n4 := el.L * (s3 - s2)

	return n1*u[0] + n2*u[1] + n3*u[2] + n4*u[3]
}
