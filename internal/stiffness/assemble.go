package stiffness

import "gonum.org/v1/gonum/mat"

// System is the assembled global stiffness equation R = K·d + Qf of a
// continuous beam with len(Elements)+1 nodes.
type System struct {
	Elements []*Element
	Loads    [][]Load

	K  *mat.SymDense // global stiffness, 2(n+1) square
	Qf *mat.VecDense // global fixed-end forces
	QF [][4]float64  // fixed-end forces of each element
}

// Assemble superposes the element stiffness matrices and the summed
// fixed-end force vectors of each span. Element i contributes to DOFs
// 2i..2i+3, so the interior node shared by two elements receives both
// contributions.
func Assemble(elements []*Element, loads [][]Load) (*System, error) {
	if len(elements) == 0 {
		return nil, newError(ErrInvalidGeometry, "at least one span is required")
	}
	if len(loads) != 0 && len(loads) != len(elements) {
		return nil, newError(ErrDimensionMismatch, "%d load sets for %d spans", len(loads), len(elements))
	}

	ndof := 2 * (len(elements) + 1)
	sys := &System{
		Elements: elements,
		Loads:    make([][]Load, len(elements)),
		K:        mat.NewSymDense(ndof, nil),
		Qf:       mat.NewVecDense(ndof, nil),
		QF:       make([][4]float64, len(elements)),
	}
	copy(sys.Loads, loads)

	for i, el := range elements {
		g := 2 * i
		k := el.Stiffness()
		for r := 0; r < 4; r++ {
			for c := r; c < 4; c++ {
				sys.K.SetSym(g+r, g+c, sys.K.At(g+r, g+c)+k[r][c])
			}
		}

		sys.QF[i] = SpanFixedEndForces(sys.Loads[i], el.L)
		for r := 0; r < 4; r++ {
			sys.Qf.SetVec(g+r, sys.Qf.AtVec(g+r)+sys.QF[i][r])
		}
	}

	return sys, nil
}

// DOFs returns the number of global degrees of freedom
func (s *System) DOFs() int {
	return s.K.SymmetricDim()
}

// ElementDisplacements slices the displacements of element i out of the
// full displacement vector.
func (s *System) ElementDisplacements(i int, d []float64) [4]float64 {
	var u [4]float64
	copy(u[:], d[2*i:2*i+4])
	return u
}
