package model

import (
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/alexiusacademia/gocbeam/internal/nscp"
	"github.com/alexiusacademia/gocbeam/internal/stiffness"
)

// ComboResult pairs a load combination with its analysis
type ComboResult struct {
	Combo  nscp.LoadCombination
	Result *stiffness.Result
}

// Governing is an extreme value, where it occurs and which combination
// produced it
type Governing struct {
	Value float64 // kN or kN·m
	X     float64 // local station (m)
	Combo string  // combination ID
}

// SpanEnvelope holds the governing actions of one span over all combinations
type SpanEnvelope struct {
	MaxMoment Governing // largest sagging moment
	MinMoment Governing // largest hogging moment
	MaxShear  Governing // shear of largest magnitude, signed
}

// Envelope is the outcome of analyzing a model under several combinations
type Envelope struct {
	Combos []ComboResult
	Spans  []SpanEnvelope
}

// Analyze runs the model under a single combination
func Analyze(m *Model, combo nscp.LoadCombination, a *stiffness.Analyzer) (*stiffness.Result, error) {
	in, err := m.Input(combo)
	if err != nil {
		return nil, err
	}
	res, err := a.Analyze(in)
	if err != nil {
		return nil, fmt.Errorf("combination %s: %w", combo.ID, err)
	}
	return res, nil
}

// AnalyzeEnvelope runs every combination and collects, per span, the
// governing moments and shear. Combinations are analyzed concurrently but
// folded in order, so on equal values the earlier combination governs and
// the reported error is the one of the earliest failing combination.
func AnalyzeEnvelope(m *Model, combos []nscp.LoadCombination, a *stiffness.Analyzer) (*Envelope, error) {
	if len(combos) == 0 {
		return nil, fmt.Errorf("no load combinations to analyze")
	}

	results := make([]*stiffness.Result, len(combos))
	errs := make([]error, len(combos))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, combo := range combos {
		i, combo := i, combo
		g.Go(func() error {
			results[i], errs[i] = Analyze(m, combo, a)
			return nil
		})
	}
	g.Wait()

	env := &Envelope{Spans: make([]SpanEnvelope, len(m.Spans))}
	for ci, combo := range combos {
		if errs[ci] != nil {
			return nil, errs[ci]
		}
		res := results[ci]
		env.Combos = append(env.Combos, ComboResult{Combo: combo, Result: res})

		for i, s := range res.Spans {
			se := &env.Spans[i]
			me, ve := s.MomentExtrema, s.ShearExtrema

			if ci == 0 || me.Max > se.MaxMoment.Value {
				se.MaxMoment = Governing{Value: me.Max, X: me.XMax, Combo: combo.ID}
			}
			if ci == 0 || me.Min < se.MinMoment.Value {
				se.MinMoment = Governing{Value: me.Min, X: me.XMin, Combo: combo.ID}
			}

			v := Governing{Value: ve.Max, X: ve.XMax, Combo: combo.ID}
			if math.Abs(ve.Min) > math.Abs(ve.Max) {
				v = Governing{Value: ve.Min, X: ve.XMin, Combo: combo.ID}
			}
			if ci == 0 || math.Abs(v.Value) > math.Abs(se.MaxShear.Value) {
				se.MaxShear = v
			}
		}
	}

	return env, nil
}
