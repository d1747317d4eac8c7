package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/alexiusacademia/gocbeam/internal/version"
)

var (
	verbose bool

	// logger is built before any subcommand runs
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "gocbeam",
	Short: "Continuous Beam Analysis Tool",
	Long: `gocbeam - Go Continuous Beam Analyzer

A CLI tool for the linear-elastic analysis of continuous beams
using the direct stiffness method.

This tool helps structural engineers compute:
  - Nodal displacements and rotations
  - Support reactions
  - Shear force and bending moment diagrams
  - Deflected shape
  - Governing actions over NSCP 2015 load combinations

Beams are described in JSON or YAML model files.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		}
		l, err := cfg.Build()
		if err != nil {
			return fmt.Errorf("building logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   gocbeam v%-47s║\n", version.Version)
		fmt.Println("  ║   Go Continuous Beam Analyzer                             ║")
		fmt.Printf("  ║   %s ©  %-36s║\n", version.Author, version.Year)
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  A CLI tool for the analysis of continuous beams")
		fmt.Println("  by the direct stiffness method.")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • Any number of spans with fixed, sliding, pinned or free nodes")
		fmt.Println("    • Point loads, partial uniform loads and concentrated moments")
		fmt.Println("    • Shear, moment and deflection diagrams (terminal, PNG, SVG, PDF)")
		fmt.Println("    • NSCP 2015 load combinations and envelopes")
		fmt.Println("    • Excel workbook export")
		fmt.Println()
		fmt.Println("  Use 'gocbeam --help' to see available commands.")
		fmt.Println()
		fmt.Println("  ─────────────────────────────────────────────────────────────")
		fmt.Printf("  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log analysis details to stderr")
}
