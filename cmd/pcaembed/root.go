// Copyright 2026 The Pcaembed Authors
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/spf13/cobra"

	pcalog "github.com/xpedite/pcaembed/internal/log"
	"github.com/xpedite/pcaembed/internal/table"
)

// Global flag values.
var (
	verbose    bool
	quiet      bool
	noColor    bool
	configPath string
)

// rootCmd is the base command for pcaembed.
var rootCmd = &cobra.Command{
	Use:   "pcaembed",
	Short: "Embed PCA results into a self-contained HTML report",
	Long: `pcaembed reads the PCA output of a batch-effects pipeline run, encodes
each covariate's BatchData, PCAAnnotations and PCAValues tables, and writes an
HTML report with the data and the plotting script inlined.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		pcalog.Setup(verbose, quiet)
		if noColor {
			table.DisableColor()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: <root>/.pcaembed.yaml)")

	rootCmd.AddCommand(embedCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
