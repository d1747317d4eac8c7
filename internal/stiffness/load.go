package stiffness

import (
	"fmt"
	"math"
)

// Load is a load applied inside a span. The set of load kinds is closed:
// PointLoad, DistributedLoad and MomentConcentrated. Positions are measured
// from the left end of the span.
type Load interface {
	isLoad()
	String() string
}

// PointLoad is a concentrated force P at distance A from the left end.
// Positive P acts downward.
type PointLoad struct {
	P float64 // load value
	A float64 // position from left end
}

// DistributedLoad is a uniform load Q that starts at A and extends over Length.
// Positive Q acts downward.
type DistributedLoad struct {
	Q      float64 // load per unit length
	A      float64 // start from left end
	Length float64 // loaded length
}

// MomentConcentrated is a concentrated moment M at distance A from the left end
type MomentConcentrated struct {
	M float64 // moment value
	A float64 // position from left end
}

func (PointLoad) isLoad()          {}
func (DistributedLoad) isLoad()    {}
func (MomentConcentrated) isLoad() {}

func (p PointLoad) String() string {
	return fmt.Sprintf("point load P=%g at x=%g", p.P, p.A)
}

func (q DistributedLoad) String() string {
	return fmt.Sprintf("distributed load q=%g from x=%g over %g", q.Q, q.A, q.Length)
}

func (m MomentConcentrated) String() string {
	return fmt.Sprintf("concentrated moment M=%g at x=%g", m.M, m.A)
}

// positionTolerance absorbs round-off when a load ends exactly at the span end
const positionTolerance = 1e-9

// ValidateLoad checks that the load fits inside a span of length L
func ValidateLoad(ld Load, L float64) error {
	tol := positionTolerance * L
	inSpan := func(x float64) bool {
		return x >= -tol && x <= L+tol
	}

	switch v := ld.(type) {
	case PointLoad:
		if !finite(v.P, v.A) {
			return newError(ErrNumericDomain, "%s: non-finite value", v)
		}
		if !inSpan(v.A) {
			return newError(ErrNumericDomain, "%s: position outside span of length %g", v, L)
		}
	case DistributedLoad:
		if !finite(v.Q, v.A, v.Length) {
			return newError(ErrNumericDomain, "%s: non-finite value", v)
		}
		if v.Length < 0 {
			return newError(ErrNumericDomain, "%s: negative loaded length", v)
		}
		if !inSpan(v.A) || v.A+v.Length > L+tol {
			return newError(ErrNumericDomain, "%s: start+length exceeds span of length %g", v, L)
		}
	case MomentConcentrated:
		if !finite(v.M, v.A) {
			return newError(ErrNumericDomain, "%s: non-finite value", v)
		}
		if !inSpan(v.A) {
			return newError(ErrNumericDomain, "%s: position outside span of length %g", v, L)
		}
	default:
		return newError(ErrNumericDomain, "unsupported load %T", ld)
	}
	return nil
}

// EquivalentNodalLoad returns the fixed-end force vector [V1, M1, V2, M2]
// of a single load on a span of length L.
func EquivalentNodalLoad(ld Load, L float64) [4]float64 {
	switch v := ld.(type) {
	case PointLoad:
		a := v.A
		b := L - a
		c := v.P / (L * L)
		return [4]float64{
			c * b * b * (3*a + b) / L,
			c * a * b * b,
			c * a * a * (a + 3*b) / L,
			-c * a * a * b,
		}

	case DistributedLoad:
		a := v.A
		b := L - v.A - v.Length
		L4 := math.Pow(L, 4)
		c := v.Q * L / 2
		return [4]float64{
			c * (1 - a/L4*(2*L*L*L-2*a*a*L+a*a*a) - b*b*b/L4*(2*L-b)),
			c * L / 6 * (1 - a*a/L4*(6*L*L-8*a*L+3*a*a) - b*b*b/L4*(4*L-3*b)),
			c * (1 - a*a*a/L4*(2*L-a) - b/L4*(2*L*L*L-2*b*b*L+b*b*b)),
			-c * L / 6 * (1 - a*a*a/L4*(4*L-3*a) - b*b/L4*(6*L*L-8*b*L+3*b*b)),
		}

	case MomentConcentrated:
		a := v.A
		b := L - a
		c := v.M / (L * L)
		return [4]float64{
			-c * 6 * a * b / L,
			c * b * (b - 2*a),
			c * 6 * a * b / L,
			c * a * (a - 2*b),
		}
	}
	panic(fmt.Sprintf("stiffness: unsupported load %T", ld))
}

// ShearAt returns the shear contribution of a load at x on a beam
// without supports (the left-end shear is added during recovery).
func ShearAt(ld Load, x, L float64) float64 {
	switch v := ld.(type) {
	case PointLoad:
		if x > v.A {
			return -v.P
		}
		return 0

	case DistributedLoad:
		switch {
		case x < v.A:
			return 0
		case x < v.A+v.Length:
			return -v.Q * (x - v.A)
		default:
			return -v.Q * v.Length
		}

	case MomentConcentrated:
		return 0
	}
	panic(fmt.Sprintf("stiffness: unsupported load %T", ld))
}

// MomentAt returns the bending moment contribution of a load at x on a
// simply supported span of length L.
func MomentAt(ld Load, x, L float64) float64 {
	switch v := ld.(type) {
	case PointLoad:
		if x < v.A {
			return (1 - v.A/L) * v.P * x
		}
		return v.A * v.P * (1 - x/L)

	case DistributedLoad:
		v1 := v.Q * v.Length / L * (L - v.A - v.Length/2)
		v2 := v.Q*v.Length - v1
		switch {
		case x < v.A:
			return v1 * x
		case x <= v.A+v.Length:
			return v1*x - v.Q*(x-v.A)*(x-v.A)/2
		default:
			return v2 * (L - x)
		}

	case MomentConcentrated:
		switch {
		case x < v.A:
			return v.M / L * x
		case x > v.A:
			return v.M * (x/L - 1)
		default:
			return 0
		}
	}
	panic(fmt.Sprintf("stiffness: unsupported load %T", ld))
}

// SpanFixedEndForces sums the fixed-end force vectors of all loads on a span
func SpanFixedEndForces(loads []Load, L float64) [4]float64 {
	var qf [4]float64
	for _, ld := range loads {
		f := EquivalentNodalLoad(ld, L)
		for i := range qf {
			qf[i] += f[i]
		}
	}
	return qf
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
