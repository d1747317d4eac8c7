package stiffness

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// DefaultSamples is the number of stations per span used for diagrams.
// An odd count puts a station exactly at midspan.
const DefaultSamples = 1001

// Input holds everything the engine needs for one analysis run.
// All quantities must be in one consistent unit system.
type Input struct {
	E float64 // modulus of elasticity
	I float64 // second moment of area

	Spans    []float64 // span lengths, left to right
	Supports []Support // one per node, len(Spans)+1
	Loads    [][]Load  // loads of each span; empty means no span loads

	// R0 holds prescribed nodal forces/moments [F1, M1, F2, M2, ...].
	// Optional; zero entries mean no override.
	R0 []float64
}

// Validate checks shapes, geometry, support codes and load placement.
// It runs before any assembly.
func (in Input) Validate() error {
	n := len(in.Spans)
	if n == 0 {
		return newError(ErrInvalidGeometry, "at least one span is required")
	}
	for i, l := range in.Spans {
		if !(l > 0) || !finite(l) {
			return newError(ErrInvalidGeometry, "span %d: length must be positive, got %g", i+1, l)
		}
	}
	if !(in.E > 0) || !finite(in.E) {
		return newError(ErrNumericDomain, "modulus of elasticity must be positive, got %g", in.E)
	}
	if !(in.I > 0) || !finite(in.I) {
		return newError(ErrNumericDomain, "moment of inertia must be positive, got %g", in.I)
	}
	if len(in.Supports) != n+1 {
		return newError(ErrDimensionMismatch, "%d supports for %d spans, want %d", len(in.Supports), n, n+1)
	}
	for i, s := range in.Supports {
		if !s.Valid() {
			return newError(ErrInvalidSupportCode, "node %d: %v", i+1, s)
		}
	}
	if len(in.Loads) != 0 && len(in.Loads) != n {
		return newError(ErrDimensionMismatch, "%d load sets for %d spans", len(in.Loads), n)
	}
	if len(in.R0) != 0 && len(in.R0) != 2*(n+1) {
		return newError(ErrDimensionMismatch, "R0 has %d entries, want %d", len(in.R0), 2*(n+1))
	}
	for i, loads := range in.Loads {
		for _, ld := range loads {
			if err := ValidateLoad(ld, in.Spans[i]); err != nil {
				var e *Error
				if errors.As(err, &e) {
					return &Error{Kind: e.Kind, Msg: fmt.Sprintf("span %d: %s", i+1, e.Msg)}
				}
				return err
			}
		}
	}
	return nil
}

// Analyzer runs analyses with a fixed configuration. The zero value is not
// usable; create one with New.
type Analyzer struct {
	samples int
	logger  *zap.Logger
}

// Option configures an Analyzer
type Option func(*Analyzer)

// WithSamples sets the number of stations per span (minimum 2)
func WithSamples(n int) Option {
	return func(a *Analyzer) {
		if n >= 2 {
			a.samples = n
		}
	}
}

// WithLogger attaches a logger for debug output
func WithLogger(l *zap.Logger) Option {
	return func(a *Analyzer) {
		if l != nil {
			a.logger = l
		}
	}
}

// New creates an Analyzer
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		samples: DefaultSamples,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Samples returns the number of stations per span
func (a *Analyzer) Samples() int {
	return a.samples
}

// Analyze runs the analysis with default settings
func Analyze(in Input) (*Result, error) {
	return New().Analyze(in)
}

// Analyze validates the input, assembles and solves the global system and
// recovers reactions and sampled internal forces.
func (a *Analyzer) Analyze(in Input) (*Result, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	elements := make([]*Element, len(in.Spans))
	for i, l := range in.Spans {
		el, err := NewElement(in.E, in.I, l)
		if err != nil {
			return nil, err
		}
		elements[i] = el
	}

	sys, err := Assemble(elements, in.Loads)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("assembled global system",
		zap.Int("spans", len(elements)),
		zap.Int("dofs", sys.DOFs()))

	bc, err := Resolve(in.Supports, in.R0)
	if err != nil {
		return nil, err
	}
	for _, dof := range bc.IgnoredOverrides {
		a.logger.Warn("nodal load on restrained DOF ignored",
			zap.String("dof", dofName(dof)),
			zap.Float64("value", in.R0[dof]))
	}

	sol, err := sys.Solve(bc)
	if err != nil {
		a.logger.Debug("solve failed", zap.Error(err))
		return nil, err
	}
	a.logger.Debug("solved reduced system",
		zap.Int("unknowns", len(sol.Unknowns)),
		zap.Float64("condition", sol.Condition))

	res := &Result{
		System:           sys,
		Displacements:    sol.Displacements,
		Reactions:        sys.Reactions(sol.Displacements),
		Condition:        sol.Condition,
		IgnoredOverrides: bc.IgnoredOverrides,
		Spans:            make([]SpanResult, len(elements)),
	}

	offset := 0.0
	for i, el := range elements {
		u := sys.ElementDisplacements(i, res.Displacements)
		f := el.EndForces(u, sys.QF[i])
		res.Spans[i] = a.sampleSpan(el, sys.Loads[i], u, f, offset)
		offset += el.L
	}

	return res, nil
}

// sampleSpan evaluates shear, moment and deflection at equally spaced
// stations. Shear is the free-beam shear plus the recovered left-end shear;
// moment is the simple-beam moment plus the line joining the recovered end
// moments.
func (a *Analyzer) sampleSpan(el *Element, loads []Load, u, f [4]float64, offset float64) SpanResult {
	n := a.samples
	sr := SpanResult{
		Length:        el.L,
		Offset:        offset,
		Displacements: u,
		EndForces:     f,
		X:             make([]float64, n),
		Shear:         make([]float64, n),
		Moment:        make([]float64, n),
		Deflection:    make([]float64, n),
	}

	for m := 0; m < n; m++ {
		x := el.L * float64(m) / float64(n-1)
		if m == n-1 {
			x = el.L
		}
		v, mo := 0.0, 0.0
		for _, ld := range loads {
			v += ShearAt(ld, x, el.L)
			mo += MomentAt(ld, x, el.L)
		}
		sr.X[m] = x
		sr.Shear[m] = v + f[0]
		sr.Moment[m] = mo - f[1] + (f[3]+f[1])/el.L*x
		sr.Deflection[m] = el.Deflection(u, x)
	}

	sr.ShearExtrema = extremaOf(sr.X, sr.Shear)
	sr.MomentExtrema = extremaOf(sr.X, sr.Moment)
	return sr
}
