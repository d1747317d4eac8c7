package diagram

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/guptarohit/asciigraph"

	"github.com/alexiusacademia/gocbeam/internal/stiffness"
)

// Extreme is a peak value of a diagram and its global station
type Extreme struct {
	Value float64
	X     float64 // m from the first node
}

// BeamDiagramData holds data for drawing the diagrams of a continuous beam
type BeamDiagramData struct {
	Title string

	// Geometry
	NodePositions []float64           // m
	Supports      []stiffness.Support // one per node

	// Stations in global coordinates and the sampled diagrams
	X          []float64
	Shear      []float64 // kN
	Moment     []float64 // kN·m
	Deflection []float64 // m

	// Peaks over the whole beam
	MaxShear, MinShear   Extreme
	MaxMoment, MinMoment Extreme
	MaxDeflection        Extreme // largest magnitude, signed
}

// NewBeamDiagramData collects the stations and peaks of an analysis result
func NewBeamDiagramData(title string, res *stiffness.Result, supports []stiffness.Support) BeamDiagramData {
	data := BeamDiagramData{
		Title:         title,
		NodePositions: res.NodePositions(),
		Supports:      supports,
	}
	data.X, data.Shear, data.Moment, data.Deflection = res.Stations()

	for i, s := range res.Spans {
		se, me := s.ShearExtrema, s.MomentExtrema
		if i == 0 || se.Max > data.MaxShear.Value {
			data.MaxShear = Extreme{se.Max, s.Offset + se.XMax}
		}
		if i == 0 || se.Min < data.MinShear.Value {
			data.MinShear = Extreme{se.Min, s.Offset + se.XMin}
		}
		if i == 0 || me.Max > data.MaxMoment.Value {
			data.MaxMoment = Extreme{me.Max, s.Offset + me.XMax}
		}
		if i == 0 || me.Min < data.MinMoment.Value {
			data.MinMoment = Extreme{me.Min, s.Offset + me.XMin}
		}
	}
	for i, d := range data.Deflection {
		if i == 0 || math.Abs(d) > math.Abs(data.MaxDeflection.Value) {
			data.MaxDeflection = Extreme{d, data.X[i]}
		}
	}

	return data
}

// ChartWidth and ChartHeight size the terminal charts in characters
const (
	ChartWidth  = 70
	ChartHeight = 12
)

// DrawShearDiagram creates an ASCII shear force chart
func DrawShearDiagram(data BeamDiagramData) string {
	return drawChart("SHEAR FORCE DIAGRAM (kN)", data.Shear,
		fmt.Sprintf("Vmax = %.3f kN at x = %.3f m, Vmin = %.3f kN at x = %.3f m",
			data.MaxShear.Value, data.MaxShear.X, data.MinShear.Value, data.MinShear.X))
}

// DrawMomentDiagram creates an ASCII bending moment chart
func DrawMomentDiagram(data BeamDiagramData) string {
	return drawChart("BENDING MOMENT DIAGRAM (kN·m)", data.Moment,
		fmt.Sprintf("M+ = %.3f kN·m at x = %.3f m, M- = %.3f kN·m at x = %.3f m",
			data.MaxMoment.Value, data.MaxMoment.X, data.MinMoment.Value, data.MinMoment.X))
}

// DrawDeflectionDiagram creates an ASCII deflected shape chart in mm
func DrawDeflectionDiagram(data BeamDiagramData) string {
	mm := make([]float64, len(data.Deflection))
	for i, d := range data.Deflection {
		mm[i] = d * 1000
	}
	return drawChart("DEFLECTED SHAPE (mm)", mm,
		fmt.Sprintf("δmax = %.3f mm at x = %.3f m", data.MaxDeflection.Value*1000, data.MaxDeflection.X))
}

func drawChart(title string, values []float64, caption string) string {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  %s\n", title))
	sb.WriteString(fmt.Sprintf("  %s\n\n", strings.Repeat("─", utf8.RuneCountInString(title))))

	if len(values) == 0 {
		sb.WriteString("  (no stations)\n")
		return sb.String()
	}

	sb.WriteString(asciigraph.Plot(values,
		asciigraph.Width(ChartWidth),
		asciigraph.Height(ChartHeight),
		asciigraph.Offset(4),
		asciigraph.Precision(2),
		asciigraph.Caption(caption),
	))
	sb.WriteString("\n")

	return sb.String()
}

// supportSymbol returns the glyph drawn under a node
func supportSymbol(s stiffness.Support) rune {
	switch s {
	case stiffness.Fixed:
		return '▓'
	case stiffness.Type1:
		return '◘'
	case stiffness.Pinned:
		return '▲'
	default:
		return ' '
	}
}

// DrawBeamSketch creates an ASCII elevation of the beam with its supports
// and span lengths
func DrawBeamSketch(data BeamDiagramData) string {
	var sb strings.Builder

	const widthChars = 60
	n := len(data.NodePositions)
	if n < 2 {
		return ""
	}
	total := data.NodePositions[n-1]

	// Column of each node, at least two characters apart
	cols := make([]int, n)
	for i, x := range data.NodePositions {
		cols[i] = int(math.Round(x / total * widthChars))
		if i > 0 && cols[i] < cols[i-1]+2 {
			cols[i] = cols[i-1] + 2
		}
	}
	width := cols[n-1] + 1

	beam := []rune(strings.Repeat("═", width))
	supports := []rune(strings.Repeat(" ", width))
	labels := []rune(strings.Repeat(" ", width+4))
	for i, c := range cols {
		beam[c] = '╪'
		if i < len(data.Supports) {
			supports[c] = supportSymbol(data.Supports[i])
		}
		for j, r := range fmt.Sprintf("%d", i+1) {
			labels[c+j] = r
		}
	}

	sb.WriteString("\n")
	sb.WriteString("  BEAM ELEVATION\n")
	sb.WriteString("  ──────────────\n\n")
	sb.WriteString(fmt.Sprintf("  %s\n", string(beam)))
	sb.WriteString(fmt.Sprintf("  %s\n", string(supports)))
	sb.WriteString(fmt.Sprintf("  %s\n", strings.TrimRight(string(labels), " ")))

	sb.WriteString("\n  Spans (m): ")
	for i := 1; i < n; i++ {
		if i > 1 {
			sb.WriteString(" | ")
		}
		sb.WriteString(fmt.Sprintf("%.3f", data.NodePositions[i]-data.NodePositions[i-1]))
	}
	sb.WriteString("\n")
	sb.WriteString("  Legend: ▓ fixed  ◘ vertical slide  ▲ pinned  (blank) free\n")

	return sb.String()
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := utf8.RuneCountInString(title)
	for _, line := range lines {
		if l := utf8.RuneCountInString(line); l > maxLen {
			maxLen = l
		}
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen-4, title))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen-4, line))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}
