// Copyright 2026 The Pcaembed Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/xpedite/pcaembed/internal/inspect"
	"github.com/xpedite/pcaembed/internal/payload"
	"github.com/xpedite/pcaembed/internal/table"
)

// Inspect-specific flag values.
var inspectDump string

// inspectCmd lists the covariates embedded in a generated report.
var inspectCmd = &cobra.Command{
	Use:   "inspect <report.html>",
	Short: "List the covariate data embedded in a report",
	Long: `Decode every base64_plot_<n> declaration in a generated report and print
one row per covariate with its record counts. With --dump, print the decoded
JSON payload of a single covariate instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().StringVar(&inspectDump, "dump", "", "print the JSON payload of this covariate (name or index)")
}

func runInspect(cmd *cobra.Command, args []string) error {
	f, err := cmdFS.Open(args[0])
	if err != nil {
		return exitError(ExitInputError, "pcaembed: cannot open report %q: %v", args[0], err)
	}
	defer f.Close() //nolint:errcheck // read-only

	blocks, err := inspect.Scan(f)
	if err != nil {
		return exitError(ExitInputError, "pcaembed: %s: %v", args[0], err)
	}

	out := cmd.OutOrStdout()
	if inspectDump != "" {
		return dumpBlock(out, blocks, inspectDump)
	}
	if len(blocks) == 0 {
		fmt.Fprintf(out, "No embedded covariates found in %s\n", args[0])
		return nil
	}
	return renderBlocks(out, blocks)
}

func renderBlocks(w io.Writer, blocks []inspect.Block) error {
	tbl := table.New(
		table.Column{Header: "#", Align: table.AlignRight},
		table.Column{Header: "COVARIATE"},
		table.Column{Header: "TARGET"},
		table.Column{Header: payloadKeys[0], Align: table.AlignRight, Color: table.ColorCount},
		table.Column{Header: payloadKeys[1], Align: table.AlignRight, Color: table.ColorCount},
		table.Column{Header: payloadKeys[2], Align: table.AlignRight, Color: table.ColorCount},
		table.Column{Header: "ENCODED", Align: table.AlignRight},
	)
	for _, b := range blocks {
		counts := make(map[string]string, len(payloadKeys))
		for _, kc := range b.Rows() {
			counts[kc.Key] = strconv.Itoa(kc.Count)
		}
		row := []string{strconv.Itoa(b.Index), b.Covariate, b.Target}
		for _, k := range payloadKeys {
			v, ok := counts[k]
			if !ok {
				v = "-"
			}
			row = append(row, v)
		}
		row = append(row, strconv.Itoa(b.Encoded))
		tbl.AddRow(row...)
	}
	return tbl.Render(w)
}

func dumpBlock(w io.Writer, blocks []inspect.Block, want string) error {
	for _, b := range blocks {
		if b.Covariate != want && strconv.Itoa(b.Index) != want {
			continue
		}
		data, err := payload.MarshalASCII(b.Payload)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	}
	return exitError(ExitInvalidArgs, "pcaembed: covariate %q not found in report", want)
}
