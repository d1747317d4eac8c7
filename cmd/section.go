package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gocbeam/internal/model"
	"github.com/alexiusacademia/gocbeam/internal/nscp"
)

var sectionFile string

var sectionCmd = &cobra.Command{
	Use:   "section",
	Short: "Show the member properties of a model",
	Long: `Print the material and cross-section properties used for the
analysis of a model: E, the section geometry and I.

I is taken from "i_m4" when given, otherwise it is computed from the
"section" block, either a rectangle or a polygon of vertices (mm).

Example model section blocks:
  section:
    width: 300
    height: 500

  section:
    vertices:
      - {x: 0, y: 0}
      - {x: 300, y: 0}
      - {x: 300, y: 400}
      - {x: 600, y: 400}
      - {x: 600, y: 500}
      - {x: 0, y: 500}

Examples:
  gocbeam section --file beam.yaml
  gocbeam section -f beam.json`,
	RunE: runSection,
}

func init() {
	rootCmd.AddCommand(sectionCmd)

	sectionCmd.Flags().StringVarP(&sectionFile, "file", "f", "", "Path to model file (.json, .yaml) [required]")
	sectionCmd.MarkFlagRequired("file")
}

func runSection(cmd *cobra.Command, args []string) error {
	m, err := model.LoadFromFile(sectionFile)
	if err != nil {
		return fmt.Errorf("loading model: %w", err)
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("                  MEMBER PROPERTIES")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()
	if m.Name != "" {
		fmt.Printf("  Model: %s\n", m.Name)
		fmt.Println()
	}

	fmt.Println("MATERIAL:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if m.EGPa > 0 {
		fmt.Fprintf(w, "  Modulus of elasticity E:\t%.2f GPa\t(given)\n", m.EGPa)
	} else {
		fmt.Fprintf(w, "  Concrete strength f'c:\t%.2f MPa\n", m.FcMPa)
		fmt.Fprintf(w, "  Modulus of elasticity E:\t%.2f MPa\t(Ec = %.0f√f'c)\n", nscp.Ec(m.FcMPa), nscp.EcCoefficient)
	}
	w.Flush()
	fmt.Println()

	fmt.Println("SECTION:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if m.IM4 > 0 {
		fmt.Fprintf(w, "  Moment of inertia I:\t%.6e m⁴\t(given)\n", m.IM4)
		w.Flush()
		fmt.Println()
		return nil
	}

	sec := m.Section
	props := sec.CalculateProperties()
	if sec.IsRectangle() {
		fmt.Fprintf(w, "  Shape:\tRectangle %.0f x %.0f mm\n", sec.Width, sec.Height)
	} else {
		fmt.Fprintf(w, "  Shape:\tPolygon, %d vertices\n", len(sec.Vertices))
	}
	fmt.Fprintf(w, "  Width (max):\t%.2f mm\n", props.Width)
	fmt.Fprintf(w, "  Height:\t%.2f mm\n", props.Height)
	fmt.Fprintf(w, "  Gross area:\t%.2f mm²\n", props.Area)
	fmt.Fprintf(w, "  Centroid:\t(%.2f, %.2f) mm\n", props.CentroidX, props.CentroidY)
	fmt.Fprintf(w, "  Ix (centroidal):\t%.6e mm⁴\n", props.Ix)
	fmt.Fprintf(w, "  Moment of inertia I:\t%.6e m⁴\n", m.Inertia())
	w.Flush()
	fmt.Println()

	return nil
}
