// Copyright 2026 The Pcaembed Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xpedite/pcaembed/internal/config"
)

var configTOML bool

// configCmd prints the config that embed would use for a root folder.
var configCmd = &cobra.Command{
	Use:   "config [root]",
	Short: "Show the effective configuration",
	Long: `Print the configuration file embed would load for <root> (default: the
current directory), after validation. Use --toml to print it as TOML.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&configTOML, "toml", false, "print as TOML instead of YAML")
}

func runConfig(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	cfg, path, err := loadConfig(root)
	if err != nil {
		return exitError(ExitInvalidArgs, "pcaembed: %v", err)
	}
	if err := config.Validate(cfg); err != nil {
		return exitError(ExitInvalidArgs, "pcaembed: %v", err)
	}

	out := cmd.OutOrStdout()
	if path == "" {
		path = "none"
	}
	fmt.Fprintf(out, "# source: %s\n", path)
	if configTOML {
		return config.WriteTOML(out, cfg)
	}
	return config.Write(out, cfg)
}
