package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/alexiusacademia/gocbeam/internal/nscp"
	"github.com/alexiusacademia/gocbeam/internal/section"
	"github.com/alexiusacademia/gocbeam/internal/stiffness"
)

const yamlModel = `name: Three-span floor beam
description: typical interior beam
fc_mpa: 25
section:
  width: 300
  height: 500
spans: [4, 6, 3]
supports: [pinned, 2, "pin", free]
nodal_loads:
  - node: 4
    force: 5
    case: L
loads:
  - span: 1
    type: distributed
    value: 12
  - span: 2
    type: point
    value: 20
    position: 3
    case: live
  - span: 3
    type: moment
    value: 4
    position: 1.5
    case: W
`

const jsonModel = `{
  "name": "Propped cantilever",
  "e_gpa": 200,
  "i_m4": 0.0002,
  "spans": [5],
  "supports": [0, "pinned"],
  "loads": [
    {"span": 1, "type": "distributed", "value": 10, "start": 1, "length": 2}
  ]
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromFileYAML(t *testing.T) {
	m, err := LoadFromFile(writeFile(t, "beam.yaml", yamlModel))
	require.NoError(t, err)

	assert.Equal(t, "Three-span floor beam", m.Name)
	assert.Equal(t, []float64{4, 6, 3}, m.Spans)
	assert.Equal(t, []SupportSpec{"pinned", "2", "pin", "free"}, m.Supports)
	require.Len(t, m.Loads, 3)
	assert.Equal(t, "live", m.Loads[1].Case)

	kinds, err := m.SupportKinds()
	require.NoError(t, err)
	assert.Equal(t, []stiffness.Support{stiffness.Pinned, stiffness.Pinned, stiffness.Pinned, stiffness.Free}, kinds)

	assert.InDelta(t, 2.35e7, m.Modulus(), 1e-6)
	assert.InDelta(t, 3.125e-3, m.Inertia(), 1e-15)
	assert.Equal(t, []string{nscp.CaseDead, nscp.CaseLive, nscp.CaseWind}, m.Cases())
}

func TestLoadFromFileJSON(t *testing.T) {
	m, err := LoadFromFile(writeFile(t, "beam.json", jsonModel))
	require.NoError(t, err)

	assert.Equal(t, []SupportSpec{"0", "pinned"}, m.Supports)
	assert.InDelta(t, 2e8, m.Modulus(), 1e-6)
	assert.Equal(t, 0.0002, m.Inertia())
}

func TestLoadFromFileErrors(t *testing.T) {
	_, err := LoadFromFile(writeFile(t, "beam.txt", yamlModel))
	assert.ErrorContains(t, err, "unsupported model format")

	_, err = LoadFromFile(writeFile(t, "beam.json", "{not json"))
	assert.Error(t, err)

	_, err = LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSaveToFileRoundTrip(t *testing.T) {
	m, err := LoadFromFile(writeFile(t, "beam.yaml", yamlModel))
	require.NoError(t, err)

	for _, name := range []string{"copy.json", "copy.yml"} {
		path := filepath.Join(t.TempDir(), name)
		require.NoError(t, m.SaveToFile(path))
		again, err := LoadFromFile(path)
		require.NoError(t, err, name)
		assert.Equal(t, m, again, name)
	}
}

func validModel() *Model {
	return &Model{
		Name:     "test",
		EGPa:     200,
		IM4:      0.001,
		Spans:    []float64{4, 5},
		Supports: []SupportSpec{"fixed", "pinned", "free"},
		Loads: []SpanLoad{
			{Span: 1, Type: LoadPoint, Value: 10, Position: 2},
		},
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, validModel().Validate())

	tests := []struct {
		name   string
		modify func(*Model)
		want   string
	}{
		{"no spans", func(m *Model) { m.Spans = nil }, "at least one span"},
		{"negative span", func(m *Model) { m.Spans[1] = -5 }, "spans[2]"},
		{"no material", func(m *Model) { m.EGPa = 0 }, "e_gpa or fc_mpa"},
		{"no inertia", func(m *Model) { m.IM4 = 0 }, "i_m4 or section"},
		{"bad section", func(m *Model) { m.IM4 = 0; m.Section = &section.Section{Width: 300} }, "section:"},
		{"support count", func(m *Model) { m.Supports = m.Supports[:2] }, "2 supports for 2 spans"},
		{"support name", func(m *Model) { m.Supports[2] = "roller" }, "supports[3]"},
		{"nodal load node", func(m *Model) { m.NodalLoads = []NodalLoad{{Node: 4, Force: 1}} }, "nodal_loads[1]"},
		{"load span", func(m *Model) { m.Loads[0].Span = 3 }, "loads[1]: span 3"},
		{"load type", func(m *Model) { m.Loads[0].Type = "triangle" }, "unknown load type"},
		{"load position", func(m *Model) { m.Loads[0].Position = 4.5 }, "loads[1]"},
		{"load case", func(m *Model) { m.Loads[0].Case = "snow" }, "unknown load case"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := validModel()
			tt.modify(m)
			err := m.Validate()
			require.Error(t, err)
			var ve *ValidationError
			assert.ErrorAs(t, err, &ve)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestInputAppliesFactors(t *testing.T) {
	m := validModel()
	m.Loads = append(m.Loads,
		SpanLoad{Span: 2, Type: LoadDistributed, Value: 6, Start: 1, Case: "L"},
		SpanLoad{Span: 2, Type: LoadMoment, Value: 3, Position: 2, Case: "W"},
	)
	m.NodalLoads = []NodalLoad{{Node: 3, Force: 4, Moment: 2, Case: "L"}}

	combo, err := nscp.Find("2", nscp.LoadCombinations)
	require.NoError(t, err)
	in, err := m.Input(combo)
	require.NoError(t, err)

	assert.Equal(t, 2e8, in.E)
	assert.Equal(t, []stiffness.Support{stiffness.Fixed, stiffness.Pinned, stiffness.Free}, in.Supports)
	assert.Equal(t, []stiffness.Load{stiffness.PointLoad{P: 12, A: 2}}, in.Loads[0])
	// wind has no factor in combination 2; the distributed load runs to the span end
	require.Len(t, in.Loads[1], 1)
	q := in.Loads[1][0].(stiffness.DistributedLoad)
	assert.InDelta(t, 9.6, q.Q, 1e-12)
	assert.Equal(t, 1.0, q.A)
	assert.Equal(t, 4.0, q.Length)

	// downward force and clockwise moment enter as negative nodal loads
	assert.InDeltaSlice(t, []float64{0, 0, 0, 0, -6.4, -3.2}, in.R0, 1e-12)
}

func TestAnalyzeModel(t *testing.T) {
	m := &Model{
		EGPa:     200,
		IM4:      0.001,
		Spans:    []float64{5},
		Supports: []SupportSpec{"fixed", "fixed"},
		Loads:    []SpanLoad{{Span: 1, Type: LoadDistributed, Value: 12}},
	}
	res, err := Analyze(m, nscp.Unfactored, stiffness.New())
	require.NoError(t, err)
	assert.InDelta(t, -25, res.Spans[0].MomentExtrema.Min, 1e-9)
}

func TestAnalyzeEnvelope(t *testing.T) {
	defer goleak.VerifyNone(t)

	m := &Model{
		EGPa:     200,
		IM4:      0.001,
		Spans:    []float64{4},
		Supports: []SupportSpec{"pinned", "pinned"},
		Loads: []SpanLoad{
			{Span: 1, Type: LoadPoint, Value: 10, Position: 2},
			{Span: 1, Type: LoadPoint, Value: 5, Position: 2, Case: "L"},
		},
	}
	env, err := AnalyzeEnvelope(m, nscp.LoadCombinations, stiffness.New(stiffness.WithSamples(101)))
	require.NoError(t, err)
	require.Len(t, env.Combos, 7)
	require.Len(t, env.Spans, 1)

	s := env.Spans[0]
	// 1.2D + 1.6L = 20 kN at midspan, PL/4 = 20 kN·m
	assert.InDelta(t, 20, s.MaxMoment.Value, 1e-9)
	assert.InDelta(t, 2, s.MaxMoment.X, 1e-12)
	assert.Equal(t, "2", s.MaxMoment.Combo)
	assert.InDelta(t, 0, s.MinMoment.Value, 1e-9)
	assert.InDelta(t, 10, abs(s.MaxShear.Value), 1e-9)
	assert.Equal(t, "2", s.MaxShear.Combo)

	_, err = AnalyzeEnvelope(m, nil, stiffness.New())
	assert.Error(t, err)
}

func TestAnalyzeEnvelopeTieGoesToEarlierCombo(t *testing.T) {
	defer goleak.VerifyNone(t)

	m := &Model{
		EGPa:     200,
		IM4:      0.001,
		Spans:    []float64{4},
		Supports: []SupportSpec{"fixed", "fixed"},
		Loads:    []SpanLoad{{Span: 1, Type: LoadDistributed, Value: 10}},
	}
	combos := []nscp.LoadCombination{
		{ID: "A", Description: "1.2D", Dead: 1.2},
		{ID: "B", Description: "1.2D again", Dead: 1.2},
		{ID: "C", Description: "0.9D", Dead: 0.9},
	}
	env, err := AnalyzeEnvelope(m, combos, stiffness.New(stiffness.WithSamples(41)))
	require.NoError(t, err)

	s := env.Spans[0]
	assert.Equal(t, "A", s.MaxMoment.Combo)
	assert.Equal(t, "A", s.MinMoment.Combo)
	assert.Equal(t, "A", s.MaxShear.Combo)
	// wL²/24 and -wL²/12 with w = 12
	assert.InDelta(t, 8, s.MaxMoment.Value, 1e-9)
	assert.InDelta(t, -16, s.MinMoment.Value, 1e-9)
	for i, cr := range env.Combos {
		assert.Equal(t, combos[i].ID, cr.Combo.ID)
	}
}

func TestAnalyzeEnvelopeReportsUnstableModel(t *testing.T) {
	defer goleak.VerifyNone(t)

	m := &Model{
		EGPa:     200,
		IM4:      0.001,
		Spans:    []float64{4},
		Supports: []SupportSpec{"free", "free"},
	}
	_, err := AnalyzeEnvelope(m, nscp.SimplifiedCombinations, stiffness.New())
	require.Error(t, err)
	assert.ErrorIs(t, err, stiffness.ErrSingularSystem)
	assert.Contains(t, err.Error(), "combination 1")
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
