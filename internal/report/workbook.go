package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/alexiusacademia/gocbeam/internal/model"
	"github.com/alexiusacademia/gocbeam/internal/stiffness"
)

// Sheet names of the exported workbook
const (
	SheetNodes    = "Nodes"
	SheetSpans    = "Spans"
	SheetDiagram  = "Diagram"
	SheetEnvelope = "Envelope"
)

// Report is what gets written to a workbook. Envelope is optional.
type Report struct {
	Title    string
	Combo    string // combination ID or description of the analyzed case
	Result   *stiffness.Result
	Supports []stiffness.Support
	Envelope *model.Envelope
}

// WriteWorkbook exports nodal results, span end forces and extrema, and
// the sampled diagrams to an .xlsx file
func WriteWorkbook(path string, r Report) error {
	if r.Result == nil {
		return fmt.Errorf("no analysis result to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"D9E1F2"}},
	})
	if err != nil {
		return err
	}

	if err := f.SetSheetName(f.GetSheetName(0), SheetNodes); err != nil {
		return err
	}
	if err := writeNodes(f, r, header); err != nil {
		return err
	}
	if err := writeSpans(f, r, header); err != nil {
		return err
	}
	if err := writeDiagram(f, r, header); err != nil {
		return err
	}
	if r.Envelope != nil {
		if err := writeEnvelope(f, r.Envelope, header); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}

// writeTable writes a title row, a styled header row and the data rows
func writeTable(f *excelize.File, sheet, title string, columns []interface{}, rows [][]interface{}, header int) error {
	if err := f.SetCellValue(sheet, "A1", title); err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, "A2", &columns); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(columns), 2)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A2", last, header); err != nil {
		return err
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+3)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return err
		}
	}
	lastCol, err := excelize.ColumnNumberToName(len(columns))
	if err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", lastCol, 14); err != nil {
		return err
	}
	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      2,
		TopLeftCell: "A3",
		ActivePane:  "bottomLeft",
	})
}

func writeNodes(f *excelize.File, r Report, header int) error {
	res := r.Result
	pos := res.NodePositions()

	columns := []interface{}{"Node", "x (m)", "Support", "d (m)", "θ (rad)", "R (kN)", "M (kN·m)"}
	rows := make([][]interface{}, len(pos))
	for i, x := range pos {
		support := ""
		if i < len(r.Supports) {
			support = r.Supports[i].String()
		}
		rows[i] = []interface{}{
			i + 1, x, support,
			res.Displacements[2*i], res.Displacements[2*i+1],
			res.Reactions[2*i], res.Reactions[2*i+1],
		}
	}

	return writeTable(f, SheetNodes, title(r, "Nodal displacements and reactions"), columns, rows, header)
}

func writeSpans(f *excelize.File, r Report, header int) error {
	if _, err := f.NewSheet(SheetSpans); err != nil {
		return err
	}

	columns := []interface{}{
		"Span", "L (m)", "V1 (kN)", "M1 (kN·m)", "V2 (kN)", "M2 (kN·m)",
		"Vmax (kN)", "x Vmax (m)", "Vmin (kN)", "x Vmin (m)",
		"M+ (kN·m)", "x M+ (m)", "M- (kN·m)", "x M- (m)",
	}
	rows := make([][]interface{}, len(r.Result.Spans))
	for i, s := range r.Result.Spans {
		v, m := s.ShearExtrema, s.MomentExtrema
		rows[i] = []interface{}{
			i + 1, s.Length,
			s.EndForces[0], s.EndForces[1], s.EndForces[2], s.EndForces[3],
			v.Max, v.XMax, v.Min, v.XMin,
			m.Max, m.XMax, m.Min, m.XMin,
		}
	}

	return writeTable(f, SheetSpans, title(r, "Element end forces and extrema"), columns, rows, header)
}

func writeDiagram(f *excelize.File, r Report, header int) error {
	if _, err := f.NewSheet(SheetDiagram); err != nil {
		return err
	}

	columns := []interface{}{"Span", "x (m)", "x global (m)", "V (kN)", "M (kN·m)", "δ (m)"}
	var rows [][]interface{}
	for i, s := range r.Result.Spans {
		for j := range s.X {
			rows = append(rows, []interface{}{
				i + 1, s.X[j], s.Offset + s.X[j], s.Shear[j], s.Moment[j], s.Deflection[j],
			})
		}
	}

	return writeTable(f, SheetDiagram, title(r, "Sampled diagrams"), columns, rows, header)
}

func writeEnvelope(f *excelize.File, env *model.Envelope, header int) error {
	if _, err := f.NewSheet(SheetEnvelope); err != nil {
		return err
	}

	columns := []interface{}{
		"Span", "M+ (kN·m)", "x (m)", "Combo",
		"M- (kN·m)", "x (m)", "Combo",
		"|V|max (kN)", "x (m)", "Combo",
	}
	rows := make([][]interface{}, len(env.Spans))
	for i, s := range env.Spans {
		rows[i] = []interface{}{
			i + 1,
			s.MaxMoment.Value, s.MaxMoment.X, s.MaxMoment.Combo,
			s.MinMoment.Value, s.MinMoment.X, s.MinMoment.Combo,
			s.MaxShear.Value, s.MaxShear.X, s.MaxShear.Combo,
		}
	}

	return writeTable(f, SheetEnvelope, "Governing actions over all load combinations", columns, rows, header)
}

func title(r Report, what string) string {
	t := what
	if r.Title != "" {
		t = fmt.Sprintf("%s - %s", r.Title, what)
	}
	if r.Combo != "" {
		t = fmt.Sprintf("%s (%s)", t, r.Combo)
	}
	return t
}
