package cmd

import (
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alexiusacademia/gocbeam/internal/diagram"
	"github.com/alexiusacademia/gocbeam/internal/model"
	"github.com/alexiusacademia/gocbeam/internal/nscp"
	"github.com/alexiusacademia/gocbeam/internal/report"
	"github.com/alexiusacademia/gocbeam/internal/stiffness"
)

var (
	analyzeFile       string
	analyzeCombo      string
	analyzeAll        bool
	analyzeSimplified bool
	analyzeSamples    int
	analyzeMatrix     bool

	// Output options
	analyzeShowDiagram bool
	analyzeExportFile  string
	analyzeXLSXFile    string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a continuous beam model",
	Long: `Analyze a continuous beam by the direct stiffness method.

The model file (JSON or YAML) gives the spans, the support at every node,
the material and section, and the loads. Without --combo every load is
applied once (service loads). With --combo the loads are factored by the
chosen NSCP 2015 combination; with --all every combination is analyzed
and the governing moments and shears of each span are reported.

Supports:
  fixed  (0) - displacement and rotation restrained
  type1  (1) - rotation restrained, vertical slide
  pinned (2) - displacement restrained
  free   (3) - unrestrained

Sign convention:
  Loads: positive forces act downward, positive moments clockwise.
  Results: upward reactions, sagging moments and upward deflections
  are positive.

Example model (YAML):
  name: Floor beam B-1
  e_gpa: 200
  i_m4: 0.13824
  spans: [3, 3, 3]
  supports: [pinned, fixed, fixed, pinned]
  loads:
    - {span: 1, type: distributed, value: 173}
    - {span: 2, type: point, value: 50, position: 1.5, case: L}

Examples:
  gocbeam analyze -f beam.yaml
  gocbeam analyze -f beam.yaml --combo 2 --diagram
  gocbeam analyze -f beam.yaml --all --simplified --xlsx beam.xlsx
  gocbeam analyze -f beam.json -o diagrams.png`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&analyzeFile, "file", "f", "", "Path to model file (.json, .yaml) [required]")
	analyzeCmd.MarkFlagRequired("file")

	analyzeCmd.Flags().StringVarP(&analyzeCombo, "combo", "c", "", "Load combination ID to apply (see 'gocbeam combos')")
	analyzeCmd.Flags().BoolVarP(&analyzeAll, "all", "a", false, "Analyze every load combination and report the envelope")
	analyzeCmd.Flags().BoolVarP(&analyzeSimplified, "simplified", "s", false, "Use simplified combinations (gravity only: 1.4D and 1.2D+1.6L)")
	analyzeCmd.Flags().IntVarP(&analyzeSamples, "samples", "n", stiffness.DefaultSamples, "Stations per span for the diagrams")
	analyzeCmd.Flags().BoolVar(&analyzeMatrix, "matrix", false, "Print the global stiffness matrix and fixed-end forces")

	// Output options
	analyzeCmd.Flags().BoolVar(&analyzeShowDiagram, "diagram", false, "Show ASCII beam sketch and diagrams")
	analyzeCmd.Flags().StringVarP(&analyzeExportFile, "output", "o", "", "Export diagrams to file (png, svg, pdf)")
	analyzeCmd.Flags().StringVar(&analyzeXLSXFile, "xlsx", "", "Export results to an Excel workbook")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if analyzeSamples < 2 {
		return fmt.Errorf("--samples must be at least 2, got %d", analyzeSamples)
	}

	m, err := model.LoadFromFile(analyzeFile)
	if err != nil {
		return fmt.Errorf("loading model: %w", err)
	}
	supports, err := m.SupportKinds()
	if err != nil {
		return err
	}

	log := logger.With(zap.String("model", analyzeFile))
	analyzer := stiffness.New(
		stiffness.WithSamples(analyzeSamples),
		stiffness.WithLogger(log),
	)

	combinations := nscp.Combinations(analyzeSimplified)
	combo := nscp.Unfactored
	if analyzeCombo != "" {
		combo, err = nscp.Find(analyzeCombo, combinations)
		if err != nil {
			return err
		}
	}

	var env *model.Envelope
	var res *stiffness.Result
	if analyzeAll {
		env, err = model.AnalyzeEnvelope(m, combinations, analyzer)
		if err != nil {
			return err
		}
		picked := governingCombo(env)
		if analyzeCombo != "" {
			for _, cr := range env.Combos {
				if cr.Combo.ID == combo.ID {
					picked = cr
				}
			}
		}
		combo, res = picked.Combo, picked.Result
	} else {
		res, err = model.Analyze(m, combo, analyzer)
		if err != nil {
			return err
		}
	}
	log.Debug("analysis complete", zap.String("combo", combo.ID), zap.Int("spans", len(res.Spans)))

	printHeader(m, combo)
	printNodes(res, supports)
	printSpans(res)
	if analyzeMatrix {
		printMatrix(res)
	}
	if env != nil {
		printEnvelope(env)
	}
	printSummary(res, combo)

	data := diagram.NewBeamDiagramData(m.Name, res, supports)
	if analyzeShowDiagram {
		fmt.Print(diagram.DrawBeamSketch(data))
		fmt.Print(diagram.DrawShearDiagram(data))
		fmt.Print(diagram.DrawMomentDiagram(data))
		fmt.Print(diagram.DrawDeflectionDiagram(data))
		fmt.Println()
	}

	if analyzeExportFile != "" {
		path, err := diagram.ExportBeamDiagrams(data, analyzeExportFile)
		if err != nil {
			return fmt.Errorf("exporting diagrams: %w", err)
		}
		fmt.Printf("  Diagrams exported to: %s\n", path)
	}

	if analyzeXLSXFile != "" {
		err := report.WriteWorkbook(analyzeXLSXFile, report.Report{
			Title:    m.Name,
			Combo:    comboLabel(combo),
			Result:   res,
			Supports: supports,
			Envelope: env,
		})
		if err != nil {
			return fmt.Errorf("exporting workbook: %w", err)
		}
		fmt.Printf("  Workbook exported to: %s\n", analyzeXLSXFile)
	}
	if analyzeExportFile != "" || analyzeXLSXFile != "" {
		fmt.Println()
	}

	return nil
}

// governingCombo picks the combination with the largest moment magnitude
// anywhere on the beam
func governingCombo(env *model.Envelope) model.ComboResult {
	best, bestM := env.Combos[0], -1.0
	for _, cr := range env.Combos {
		for _, s := range cr.Result.Spans {
			m := math.Max(math.Abs(s.MomentExtrema.Max), math.Abs(s.MomentExtrema.Min))
			if m > bestM {
				best, bestM = cr, m
			}
		}
	}
	return best
}

func comboLabel(combo nscp.LoadCombination) string {
	if combo.ID == nscp.Unfactored.ID {
		return "service loads"
	}
	return fmt.Sprintf("combination %s: %s", combo.ID, combo.Description)
}

func printHeader(m *model.Model, combo nscp.LoadCombination) {
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("        CONTINUOUS BEAM ANALYSIS - DIRECT STIFFNESS METHOD")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	if m.Name != "" {
		fmt.Printf("  Model: %s\n", m.Name)
	}
	if m.Description != "" {
		fmt.Printf("  Description: %s\n", m.Description)
	}
	fmt.Printf("  Loading: %s\n", comboLabel(combo))
	fmt.Println()

	fmt.Println("INPUT PARAMETERS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Spans:\t%d\n", len(m.Spans))
	total := 0.0
	for _, l := range m.Spans {
		total += l
	}
	fmt.Fprintf(w, "  Total length:\t%.3f m\n", total)
	fmt.Fprintf(w, "  Modulus of elasticity E:\t%.3e kN/m²\n", m.Modulus())
	fmt.Fprintf(w, "  Moment of inertia I:\t%.6e m⁴\n", m.Inertia())
	fmt.Fprintf(w, "  Span loads:\t%d\n", len(m.Loads))
	fmt.Fprintf(w, "  Nodal loads:\t%d\n", len(m.NodalLoads))
	w.Flush()
	fmt.Println()
}

func printNodes(res *stiffness.Result, supports []stiffness.Support) {
	fmt.Println("NODAL DISPLACEMENTS AND REACTIONS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(w, "  Node\tx (m)\tSupport\td (mm)\tθ (rad)\tR (kN)\tM (kN·m)\t\n")
	for i, x := range res.NodePositions() {
		fmt.Fprintf(w, "  %d\t%.3f\t%s\t%.4f\t%.6f\t%.3f\t%.3f\t\n",
			i+1, x, supports[i],
			res.Displacements[2*i]*1000, res.Displacements[2*i+1],
			res.Reactions[2*i], res.Reactions[2*i+1])
	}
	w.Flush()
	fmt.Println()

	for _, dof := range res.IgnoredOverrides {
		fmt.Printf("  ⚠ Nodal load at node %d ignored: the support restrains that direction.\n", dof/2+1)
	}
	if len(res.IgnoredOverrides) > 0 {
		fmt.Println()
	}
}

func printSpans(res *stiffness.Result) {
	fmt.Println("ELEMENT END FORCES:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(w, "  Span\tL (m)\tV1 (kN)\tM1 (kN·m)\tV2 (kN)\tM2 (kN·m)\t\n")
	for i, s := range res.Spans {
		f := s.EndForces
		fmt.Fprintf(w, "  %d\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t\n", i+1, s.Length, f[0], f[1], f[2], f[3])
	}
	w.Flush()
	fmt.Println()

	fmt.Println("SHEAR AND MOMENT EXTREMA (x from left node of span):")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(w, "  Span\tVmax (kN)\tat x\tVmin (kN)\tat x\tM+ (kN·m)\tat x\tM- (kN·m)\tat x\t\n")
	for i, s := range res.Spans {
		v, m := s.ShearExtrema, s.MomentExtrema
		fmt.Fprintf(w, "  %d\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t\n",
			i+1, v.Max, v.XMax, v.Min, v.XMin, m.Max, m.XMax, m.Min, m.XMin)
	}
	w.Flush()
	fmt.Println()
}

func printMatrix(res *stiffness.Result) {
	fmt.Println("GLOBAL STIFFNESS MATRIX K (kN, m):")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 1, ' ', tabwriter.AlignRight)
	for _, row := range res.StiffnessMatrix() {
		fmt.Fprint(w, "  ")
		for _, v := range row {
			fmt.Fprintf(w, "%.4g\t", v)
		}
		fmt.Fprintln(w)
	}
	w.Flush()
	fmt.Println()

	fmt.Println("FIXED-END FORCES Qf:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	for i, q := range res.FixedEndForces() {
		label := "F"
		if i%2 == 1 {
			label = "M"
		}
		fmt.Printf("  %s%d = %.4f\n", label, i/2+1, q)
	}
	fmt.Printf("  Condition estimate of reduced K: %.3e\n", res.Condition)
	fmt.Println()
}

func printEnvelope(env *model.Envelope) {
	fmt.Println("ENVELOPE OVER LOAD COMBINATIONS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  #\tCombination\n")
	for _, cr := range env.Combos {
		fmt.Fprintf(w, "  %s\t%s\n", cr.Combo.ID, cr.Combo.Description)
	}
	w.Flush()
	fmt.Println()

	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(w, "  Span\tM+ (kN·m)\tat x\tcombo\tM- (kN·m)\tat x\tcombo\t|V|max (kN)\tat x\tcombo\t\n")
	for i, s := range env.Spans {
		fmt.Fprintf(w, "  %d\t%.3f\t%.3f\t%s\t%.3f\t%.3f\t%s\t%.3f\t%.3f\t%s\t\n", i+1,
			s.MaxMoment.Value, s.MaxMoment.X, s.MaxMoment.Combo,
			s.MinMoment.Value, s.MinMoment.X, s.MinMoment.Combo,
			s.MaxShear.Value, s.MaxShear.X, s.MaxShear.Combo)
	}
	w.Flush()
	fmt.Println()
}

func printSummary(res *stiffness.Result, combo nscp.LoadCombination) {
	data := diagram.NewBeamDiagramData("", res, nil)
	lines := []string{
		fmt.Sprintf("Loading: %s", comboLabel(combo)),
		fmt.Sprintf("Max positive moment = %.3f kN·m at x = %.3f m", data.MaxMoment.Value, data.MaxMoment.X),
		fmt.Sprintf("Max negative moment = %.3f kN·m at x = %.3f m", data.MinMoment.Value, data.MinMoment.X),
		fmt.Sprintf("Max shear = %.3f kN / %.3f kN", data.MaxShear.Value, data.MinShear.Value),
		fmt.Sprintf("Max deflection = %.3f mm at x = %.3f m", data.MaxDeflection.Value*1000, data.MaxDeflection.X),
	}
	fmt.Print(diagram.DrawSummaryBox("ANALYSIS SUMMARY", lines))
	fmt.Println()
}
