package diagram

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"
)

var (
	shearColor      = color.RGBA{R: 0, G: 100, B: 0, A: 255}
	momentColor     = color.RGBA{R: 0, G: 0, B: 139, A: 255}
	deflectionColor = color.RGBA{R: 139, G: 69, B: 19, A: 255}
	markerColor     = color.RGBA{R: 255, G: 0, B: 0, A: 255}
)

// ShearPlot builds the shear force diagram with its peaks marked
func ShearPlot(data BeamDiagramData) (*plot.Plot, error) {
	return diagramPlot(data, "Shear Force Diagram", "Shear (kN)", data.Shear, shearColor,
		[]Extreme{data.MaxShear, data.MinShear}, "%.2f kN")
}

// MomentPlot builds the bending moment diagram with its peaks marked
func MomentPlot(data BeamDiagramData) (*plot.Plot, error) {
	return diagramPlot(data, "Bending Moment Diagram", "Moment (kN·m)", data.Moment, momentColor,
		[]Extreme{data.MaxMoment, data.MinMoment}, "%.2f kN·m")
}

// DeflectionPlot builds the deflected shape in mm with the peak marked
func DeflectionPlot(data BeamDiagramData) (*plot.Plot, error) {
	mm := make([]float64, len(data.Deflection))
	for i, d := range data.Deflection {
		mm[i] = d * 1000
	}
	peak := Extreme{Value: data.MaxDeflection.Value * 1000, X: data.MaxDeflection.X}
	return diagramPlot(data, "Deflected Shape", "Deflection (mm)", mm, deflectionColor,
		[]Extreme{peak}, "%.3f mm")
}

func diagramPlot(data BeamDiagramData, title, yLabel string, values []float64, c color.Color, peaks []Extreme, format string) (*plot.Plot, error) {
	if len(values) != len(data.X) {
		return nil, fmt.Errorf("%s: %d values for %d stations", title, len(values), len(data.X))
	}

	p := plot.New()
	p.Title.Text = title
	if data.Title != "" {
		p.Title.Text = fmt.Sprintf("%s - %s", data.Title, title)
	}
	p.X.Label.Text = "Distance (m)"
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(values))
	for i := range values {
		pts[i] = plotter.XY{X: data.X[i], Y: values[i]}
	}
	curve, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	curve.LineStyle.Width = vg.Points(1.5)
	curve.LineStyle.Color = c
	p.Add(curve)

	// Beam axis with node ticks
	if n := len(data.NodePositions); n > 0 {
		axis, err := plotter.NewLine(plotter.XYs{
			{X: data.NodePositions[0], Y: 0},
			{X: data.NodePositions[n-1], Y: 0},
		})
		if err != nil {
			return nil, err
		}
		axis.LineStyle.Width = vg.Points(1)
		axis.LineStyle.Color = color.Black
		p.Add(axis)

		nodes := make(plotter.XYs, n)
		for i, x := range data.NodePositions {
			nodes[i] = plotter.XY{X: x, Y: 0}
		}
		ticks, err := plotter.NewScatter(nodes)
		if err != nil {
			return nil, err
		}
		ticks.GlyphStyle.Color = color.Black
		ticks.GlyphStyle.Radius = vg.Points(3)
		ticks.GlyphStyle.Shape = draw.TriangleGlyph{}
		p.Add(ticks)
	}

	// Extrema markers and labels
	markers := make(plotter.XYs, len(peaks))
	labels := make([]string, len(peaks))
	for i, pk := range peaks {
		markers[i] = plotter.XY{X: pk.X, Y: pk.Value}
		labels[i] = fmt.Sprintf(format, pk.Value)
	}
	scatter, err := plotter.NewScatter(markers)
	if err != nil {
		return nil, err
	}
	scatter.GlyphStyle.Color = markerColor
	scatter.GlyphStyle.Radius = vg.Points(4)
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(scatter)

	l, err := plotter.NewLabels(plotter.XYLabels{XYs: markers, Labels: labels})
	if err != nil {
		return nil, err
	}
	l.Offset = vg.Point{X: vg.Points(5), Y: vg.Points(5)}
	p.Add(l)

	return p, nil
}

// ExportBeamDiagrams stacks the shear, moment and deflection diagrams in
// one image. The format follows the extension (.png, .svg or .pdf);
// any other name gets .png appended.
func ExportBeamDiagrams(data BeamDiagramData, filename string) (string, error) {
	builders := []func(BeamDiagramData) (*plot.Plot, error){ShearPlot, MomentPlot, DeflectionPlot}
	plots := make([][]*plot.Plot, len(builders))
	for i, build := range builders {
		p, err := build(data)
		if err != nil {
			return "", err
		}
		plots[i] = []*plot.Plot{p}
	}

	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".png", ".svg", ".pdf":
	default:
		filename += ".png"
		ext = ".png"
	}

	width := 10 * vg.Inch
	height := 12 * vg.Inch

	var (
		canvas vg.CanvasSizer
		writer io.WriterTo
	)
	switch ext {
	case ".svg":
		c := vgsvg.New(width, height)
		canvas, writer = c, c
	case ".pdf":
		c := vgpdf.New(width, height)
		canvas, writer = c, c
	default:
		c := vgimg.New(width, height)
		canvas, writer = c, vgimg.PngCanvas{Canvas: c}
	}

	tiles := draw.Tiles{
		Rows:      len(plots),
		Cols:      1,
		PadX:      vg.Millimeter,
		PadY:      vg.Millimeter * 4,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
	}
	dc := draw.New(canvas)
	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		plots[i][0].Draw(canvases[i][0])
	}

	// Create directory if needed
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", err
		}
	}

	f, err := os.Create(filename)
	if err != nil {
		return "", err
	}
	if _, err := writer.WriteTo(f); err != nil {
		f.Close()
		return "", err
	}
	return filename, f.Close()
}

// ExportDiagram saves a single diagram ("shear", "moment" or "deflection")
func ExportDiagram(kind string, data BeamDiagramData, filename string) error {
	var (
		p   *plot.Plot
		err error
	)
	switch kind {
	case "shear":
		p, err = ShearPlot(data)
	case "moment":
		p, err = MomentPlot(data)
	case "deflection":
		p, err = DeflectionPlot(data)
	default:
		return fmt.Errorf("unknown diagram %q (want shear, moment or deflection)", kind)
	}
	if err != nil {
		return err
	}

	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	return p.Save(10*vg.Inch, 4*vg.Inch, filename)
}
