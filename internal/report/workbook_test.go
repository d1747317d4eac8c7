package report

import (
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/alexiusacademia/gocbeam/internal/model"
	"github.com/alexiusacademia/gocbeam/internal/nscp"
	"github.com/alexiusacademia/gocbeam/internal/stiffness"
)

func cantilever(t *testing.T) (*stiffness.Result, []stiffness.Support) {
	t.Helper()
	supports := []stiffness.Support{stiffness.Fixed, stiffness.Free}
	res, err := stiffness.New(stiffness.WithSamples(5)).Analyze(stiffness.Input{
		E:        200e6,
		I:        0.001,
		Spans:    []float64{2},
		Supports: supports,
		Loads:    [][]stiffness.Load{{stiffness.PointLoad{P: 8, A: 2}}},
	})
	require.NoError(t, err)
	return res, supports
}

func cellFloat(t *testing.T, f *excelize.File, sheet, cell string) float64 {
	t.Helper()
	text, err := f.GetCellValue(sheet, cell)
	require.NoError(t, err)
	v, err := strconv.ParseFloat(text, 64)
	require.NoError(t, err, "%s!%s = %q", sheet, cell, text)
	return v
}

func TestWriteWorkbook(t *testing.T) {
	res, supports := cantilever(t)
	path := filepath.Join(t.TempDir(), "beam.xlsx")

	require.NoError(t, WriteWorkbook(path, Report{
		Title:    "Cantilever",
		Combo:    "1.4D",
		Result:   res,
		Supports: supports,
	}))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetNodes, SheetSpans, SheetDiagram}, f.GetSheetList())

	title, err := f.GetCellValue(SheetNodes, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Cantilever - Nodal displacements and reactions (1.4D)", title)

	nodes, err := f.GetRows(SheetNodes)
	require.NoError(t, err)
	require.Len(t, nodes, 4)
	assert.Equal(t, "Node", nodes[1][0])
	assert.Equal(t, "fixed", nodes[2][2])
	assert.Equal(t, "free", nodes[3][2])
	assert.InDelta(t, 8, cellFloat(t, f, SheetNodes, "F3"), 1e-9)
	assert.InDelta(t, 16, cellFloat(t, f, SheetNodes, "G3"), 1e-9)

	spans, err := f.GetRows(SheetSpans)
	require.NoError(t, err)
	require.Len(t, spans, 3)
	assert.InDelta(t, 2, cellFloat(t, f, SheetSpans, "B3"), 1e-12)
	assert.InDelta(t, -16, cellFloat(t, f, SheetSpans, "M3"), 1e-9)

	diagram, err := f.GetRows(SheetDiagram)
	require.NoError(t, err)
	assert.Len(t, diagram, 2+5)
	assert.InDelta(t, 1.5, cellFloat(t, f, SheetDiagram, "C6"), 1e-12)
}

func TestWriteWorkbookWithEnvelope(t *testing.T) {
	m := &model.Model{
		EGPa:     200,
		IM4:      0.001,
		Spans:    []float64{4, 4},
		Supports: []model.SupportSpec{"pinned", "pinned", "pinned"},
		Loads: []model.SpanLoad{
			{Span: 1, Type: model.LoadDistributed, Value: 10},
			{Span: 2, Type: model.LoadDistributed, Value: 5, Case: "L"},
		},
	}
	a := stiffness.New(stiffness.WithSamples(21))
	env, err := model.AnalyzeEnvelope(m, nscp.SimplifiedCombinations, a)
	require.NoError(t, err)

	kinds, err := m.SupportKinds()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "envelope.xlsx")
	require.NoError(t, WriteWorkbook(path, Report{
		Result:   env.Combos[0].Result,
		Supports: kinds,
		Envelope: env,
	}))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Contains(t, f.GetSheetList(), SheetEnvelope)
	rows, err := f.GetRows(SheetEnvelope)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "1", rows[2][0])
	assert.Equal(t, "2", rows[3][0])
}

func TestWriteWorkbookWithoutResult(t *testing.T) {
	err := WriteWorkbook(filepath.Join(t.TempDir(), "x.xlsx"), Report{})
	assert.Error(t, err)
}
