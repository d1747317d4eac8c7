package stiffness

// Result is the outcome of one analysis run. It is not modified after
// Analyze returns.
type Result struct {
	System *System // assembled K, Qf and element data

	Displacements []float64 // [d1, θ1, d2, θ2, ...]
	Reactions     []float64 // [F1, M1, F2, M2, ...] = K·d + Qf
	Condition     float64   // condition estimate of the reduced stiffness matrix

	// IgnoredOverrides lists DOFs where a prescribed nodal load fell on a
	// restrained slot and was not applied.
	IgnoredOverrides []int

	Spans []SpanResult
}

// SpanResult holds the recovered forces and sampled diagrams of one span
type SpanResult struct {
	Length float64 // span length
	Offset float64 // distance of the left node from the first node

	Displacements [4]float64 // element end displacements [d1, θ1, d2, θ2]
	EndForces     [4]float64 // element end forces [V1, M1, V2, M2] = k·u + Qf

	// Diagrams sampled at X (local coordinate from the left node)
	X          []float64
	Shear      []float64
	Moment     []float64
	Deflection []float64

	ShearExtrema  Extrema
	MomentExtrema Extrema
}

// Extrema is the largest and smallest sampled value with their locations
type Extrema struct {
	Max  float64
	XMax float64
	Min  float64
	XMin float64
}

// extremaOf scans values in ascending x; ties keep the first station
func extremaOf(x, values []float64) Extrema {
	if len(values) == 0 {
		return Extrema{}
	}
	e := Extrema{Max: values[0], XMax: x[0], Min: values[0], XMin: x[0]}
	for i := 1; i < len(values); i++ {
		if values[i] > e.Max {
			e.Max, e.XMax = values[i], x[i]
		}
		if values[i] < e.Min {
			e.Min, e.XMin = values[i], x[i]
		}
	}
	return e
}

// Nodes returns the number of nodes
func (r *Result) Nodes() int {
	return len(r.Spans) + 1
}

// NodePositions returns the global x coordinate of each node
func (r *Result) NodePositions() []float64 {
	pos := make([]float64, 0, r.Nodes())
	x := 0.0
	pos = append(pos, x)
	for _, s := range r.Spans {
		x += s.Length
		pos = append(pos, x)
	}
	return pos
}

// TotalLength returns the sum of all span lengths
func (r *Result) TotalLength() float64 {
	total := 0.0
	for _, s := range r.Spans {
		total += s.Length
	}
	return total
}

// Stations concatenates the sampled stations of all spans in global
// coordinates, together with the matching shear, moment and deflection.
func (r *Result) Stations() (x, shear, moment, deflection []float64) {
	for _, s := range r.Spans {
		for i := range s.X {
			x = append(x, s.Offset+s.X[i])
		}
		shear = append(shear, s.Shear...)
		moment = append(moment, s.Moment...)
		deflection = append(deflection, s.Deflection...)
	}
	return x, shear, moment, deflection
}

// StiffnessMatrix returns the global stiffness matrix as a dense row slice
func (r *Result) StiffnessMatrix() [][]float64 {
	n := r.System.DOFs()
	k := make([][]float64, n)
	for i := range k {
		k[i] = make([]float64, n)
		for j := range k[i] {
			k[i][j] = r.System.K.At(i, j)
		}
	}
	return k
}

// FixedEndForces returns the global fixed-end force vector Qf
func (r *Result) FixedEndForces() []float64 {
	n := r.System.DOFs()
	qf := make([]float64, n)
	for i := range qf {
		qf[i] = r.System.Qf.AtVec(i)
	}
	return qf
}
