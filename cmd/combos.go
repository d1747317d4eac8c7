package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gocbeam/internal/nscp"
)

var (
	// Unfactored moments (kN-m), optional
	momentDead       float64
	momentLive       float64
	momentRoof       float64
	momentWind       float64
	momentEarthquake float64
	momentRain       float64

	// Options
	combosSimplified bool
)

var combosCmd = &cobra.Command{
	Use:   "combos",
	Short: "List NSCP load combinations and their load factors",
	Long: `List the NSCP 2015 load combinations used by 'gocbeam analyze'.

Each load in a model file carries a load case label. A combination
multiplies every load by the factor of its case:

Load Cases:
  D  - Dead load (default when a load has no case)
  L  - Live load
  Lr - Roof live load
  W  - Wind load
  E  - Earthquake load
  R  - Rain load

When unfactored moments are given, the factored moment of each
combination and the governing one are printed as well.

Examples:
  # Factor table
  gocbeam combos

  # Gravity-only table
  gocbeam combos --simplified

  # Factored moments from known case moments
  gocbeam combos --dead 50 --live 30 --wind 20`,
	Run: runCombos,
}

func init() {
	rootCmd.AddCommand(combosCmd)

	// Load moment flags
	combosCmd.Flags().Float64VarP(&momentDead, "dead", "d", 0, "Moment due to dead load (kN-m)")
	combosCmd.Flags().Float64VarP(&momentLive, "live", "l", 0, "Moment due to live load (kN-m)")
	combosCmd.Flags().Float64VarP(&momentRoof, "roof", "r", 0, "Moment due to roof live load (kN-m)")
	combosCmd.Flags().Float64VarP(&momentWind, "wind", "w", 0, "Moment due to wind load (kN-m)")
	combosCmd.Flags().Float64VarP(&momentEarthquake, "earthquake", "e", 0, "Moment due to earthquake load (kN-m)")
	combosCmd.Flags().Float64VarP(&momentRain, "rain", "R", 0, "Moment due to rain load (kN-m)")

	// Options
	combosCmd.Flags().BoolVarP(&combosSimplified, "simplified", "s", false, "Use simplified combinations (gravity only: 1.4D and 1.2D+1.6L)")
}

func runCombos(cmd *cobra.Command, args []string) {
	combinations := nscp.Combinations(combosSimplified)

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("          NSCP 2015 LOAD COMBINATIONS (Section 203.3)")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("LOAD FACTORS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  #\tCombination\tD\tL\tLr\tW\tE\tR\n")
	fmt.Fprintf(w, "  ─\t───────────\t─\t─\t──\t─\t─\t─\n")
	for _, combo := range combinations {
		fmt.Fprintf(w, "  %s\t%s", combo.ID, combo.Description)
		for _, c := range nscp.Cases {
			fmt.Fprintf(w, "\t%s", factorText(combo.Factor(c)))
		}
		fmt.Fprintln(w)
	}
	w.Flush()
	fmt.Println()

	moments := nscp.LoadMoments{
		Dead:       momentDead,
		Live:       momentLive,
		Roof:       momentRoof,
		Wind:       momentWind,
		Earthquake: momentEarthquake,
		Rain:       momentRain,
	}
	if moments == (nscp.LoadMoments{}) {
		return
	}

	fmt.Println("FACTORED MOMENTS (kN-m):")
	fmt.Println("───────────────────────────────────────────────────────────────")
	maxMu, governingCombo := nscp.CalculateGoverningMoment(moments, combinations)
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  #\tCombination\tMu (kN-m)\n")
	fmt.Fprintf(w, "  ─\t───────────\t─────────\n")
	for _, combo := range combinations {
		mu := combo.CalculateFactoredMoment(moments)
		marker := ""
		if combo.ID == governingCombo.ID {
			marker = " ← GOVERNS"
		}
		fmt.Fprintf(w, "  %s\t%s\t%.2f%s\n", combo.ID, combo.Description, mu, marker)
	}
	w.Flush()
	fmt.Println()

	fmt.Printf("  Governing Combination: %s (%s)\n", governingCombo.ID, governingCombo.Description)
	fmt.Printf("  Factored Moment (Mu) = %.2f kN-m\n", maxMu)
	fmt.Println()
}

func factorText(f float64) string {
	if f == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f", f)
}
