package stiffness

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// SingularLimit is the largest condition number of the equilibrated reduced
// stiffness matrix that is still accepted as a stable structure.
const SingularLimit = 1e12

// Solution is the outcome of the partitioned solve
type Solution struct {
	Displacements []float64 // full displacement vector
	Unknowns      []int     // DOFs that were solved for
	Condition     float64   // condition estimate of the reduced matrix, 0 if nothing was solved
}

// Solve reduces the system to the DOFs with unknown displacement and solves
//
//	K[J,J]·d[J] = R[J] − Qf[J]
//
// where R[J] are the known reactions (prescribed loads) at those DOFs.
// The reduced matrix is scaled to unit diagonal before factorization so the
// condition check does not depend on the unit system.
func (s *System) Solve(b *Boundary) (*Solution, error) {
	ndof := s.DOFs()
	if len(b.Displacement) != ndof || len(b.Reaction) != ndof {
		return nil, newError(ErrDimensionMismatch, "boundary has %d DOFs, system has %d", len(b.Displacement), ndof)
	}

	sol := &Solution{
		Displacements: make([]float64, ndof),
		Unknowns:      b.UnknownDisplacements(),
	}
	for i, slot := range b.Displacement {
		if slot.Known {
			sol.Displacements[i] = slot.Value
		}
	}

	J := sol.Unknowns
	if len(J) == 0 {
		return sol, nil
	}

	var k1 mat.SymDense
	k1.SubsetSym(s.K, J)

	scale := make([]float64, len(J))
	for i := range J {
		kii := k1.At(i, i)
		if !(kii > 0) {
			return nil, &Error{
				Kind:      ErrSingularSystem,
				Msg:       fmt.Sprintf("zero stiffness at %s", dofName(J[i])),
				Condition: math.Inf(1),
			}
		}
		scale[i] = 1 / math.Sqrt(kii)
	}
	for i := range J {
		for j := i; j < len(J); j++ {
			k1.SetSym(i, j, k1.At(i, j)*scale[i]*scale[j])
		}
	}

	rhs := mat.NewVecDense(len(J), nil)
	for i, dof := range J {
		rhs.SetVec(i, (b.Reaction[dof].Value-s.Qf.AtVec(dof))*scale[i])
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(&k1); !ok {
		return nil, &Error{
			Kind:      ErrSingularSystem,
			Msg:       "reduced stiffness matrix is not positive definite; the structure is unstable or under-constrained",
			Condition: math.Inf(1),
		}
	}
	sol.Condition = chol.Cond()
	if sol.Condition > SingularLimit {
		return nil, &Error{
			Kind:      ErrSingularSystem,
			Msg:       fmt.Sprintf("reduced stiffness matrix is near-singular (condition %.3g); the structure is unstable or under-constrained", sol.Condition),
			Condition: sol.Condition,
		}
	}

	var y mat.VecDense
	if err := chol.SolveVecTo(&y, rhs); err != nil {
		return nil, &Error{Kind: ErrSingularSystem, Msg: err.Error(), Condition: sol.Condition}
	}
	for i, dof := range J {
		sol.Displacements[dof] = y.AtVec(i) * scale[i]
	}

	return sol, nil
}

// Reactions computes R = K·d + Qf for a full displacement vector
func (s *System) Reactions(d []float64) []float64 {
	var r mat.VecDense
	r.MulVec(s.K, mat.NewVecDense(len(d), append([]float64(nil), d...)))
	r.AddVec(&r, s.Qf)

	out := make([]float64, len(d))
	for i := range out {
		out[i] = r.AtVec(i)
	}
	return out
}

// dofName labels a global DOF the way reports print it, e.g. "d2" or "θ2"
func dofName(dof int) string {
	node := dof/2 + 1
	if dof%2 == 0 {
		return fmt.Sprintf("d%d", node)
	}
	return fmt.Sprintf("θ%d", node)
}
