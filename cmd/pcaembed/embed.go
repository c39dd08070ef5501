// Copyright 2026 The Pcaembed Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/xpedite/pcaembed/internal/config"
	"github.com/xpedite/pcaembed/internal/expand"
	"github.com/xpedite/pcaembed/internal/layout"
	"github.com/xpedite/pcaembed/internal/pipeline"
	"github.com/xpedite/pcaembed/internal/progress"
	"github.com/xpedite/pcaembed/internal/table"
)

// Embed-specific flag values.
var (
	embedTemplate   string
	embedPlotJS     string
	embedDumpJSON   bool
	embedCopyPlotJS bool
	embedJobs       int
	embedProgress   bool
)

// executable locates the running binary. Overridden in tests.
var executable = os.Executable

// embedCmd builds a report from a pipeline run folder.
var embedCmd = &cobra.Command{
	Use:   "embed <root> <covariates> <output-name> [log-file]",
	Short: "Build a PCA report with the data inlined",
	Long: `Encode every covariate in the comma-separated <covariates> list, inline
pca-plot-all.js and expand pca-template.html into <root>/<output-name>.

Covariates starting with "batch_" are read from metabatch_batches and
PCA_batches. If <output-name> contains "batch" the plot targets use the
batch suffix. An optional [log-file] receives one tagged line per step.`,
	Args: cobra.RangeArgs(3, 4),
	RunE: runEmbed,
}

func init() {
	embedCmd.Flags().StringVar(&embedTemplate, "template", "", "report template (default: pca-template.html next to the executable)")
	embedCmd.Flags().StringVar(&embedPlotJS, "plot-js", "", "plotting script to inline (default: ./pca-plot-all.js)")
	embedCmd.Flags().BoolVar(&embedDumpJSON, "dump-json", false, "also write allPCA.json next to each covariate's inputs")
	embedCmd.Flags().BoolVar(&embedCopyPlotJS, "copy-plot-js", false, "copy the plotting script into <root>")
	embedCmd.Flags().IntVarP(&embedJobs, "jobs", "j", 0, "covariates to read concurrently (default 1)")
	embedCmd.Flags().BoolVar(&embedProgress, "progress", false, "show progress while encoding")
}

func runEmbed(cmd *cobra.Command, args []string) error {
	root := args[0]
	info, err := cmdFS.Stat(root)
	if err != nil {
		return exitError(ExitInputError, "pcaembed: root folder %q does not exist", root)
	}
	if !info.IsDir() {
		return exitError(ExitInvalidArgs, "pcaembed: %q is not a directory", root)
	}

	fileCfg, cfgPath, err := loadConfig(root)
	if err != nil {
		return exitError(ExitInvalidArgs, "pcaembed: %v", err)
	}
	if err := config.Validate(fileCfg); err != nil {
		return exitError(ExitInvalidArgs, "pcaembed: %v", err)
	}

	cli := pipeline.Options{
		Root:         root,
		Covariates:   layout.ParseCovariates(args[1]),
		OutputName:   args[2],
		TemplatePath: embedTemplate,
		PlotJSPath:   embedPlotJS,
		DumpJSON:     embedDumpJSON,
		CopyPlotJS:   embedCopyPlotJS,
		Jobs:         embedJobs,
	}
	if len(args) == 4 {
		cli.LogFile = args[3]
	}
	opts := config.Merge(fileCfg, cli)
	if opts.TemplatePath == "" {
		opts.TemplatePath = defaultTemplatePath()
	}

	logger := slog.Default().With("run_id", uuid.NewString())
	if cfgPath != "" {
		logger.Debug("loaded config", "path", cfgPath)
	}

	var reporter progress.Reporter = progress.Nop{}
	if embedProgress && !quiet {
		reporter = progress.New(cmd.ErrOrStderr())
	}

	p, err := pipeline.New(opts,
		pipeline.WithFS(cmdFS),
		pipeline.WithLogger(logger),
		pipeline.WithProgress(reporter),
	)
	if err != nil {
		return exitError(ExitInvalidArgs, "pcaembed: %v", err)
	}

	logger.Info("building report",
		"root", opts.Root,
		"covariates", len(opts.Covariates),
		"output", p.OutputPath(),
	)
	res, err := p.Run(cmd.Context())
	if err != nil {
		return stageExit(err)
	}
	logger.Info("report written", "path", res.OutputPath, "bytes", res.Bytes, "duration", res.Duration.Round(time.Millisecond))

	if quiet {
		return nil
	}
	return printSummary(cmd.OutOrStdout(), res)
}

// loadConfig honors --config, otherwise looks in root and then the global
// config directory.
func loadConfig(root string) (*config.Config, string, error) {
	if configPath == "" {
		return config.Load(root)
	}
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return nil, "", fmt.Errorf("config %s: %w", configPath, err)
	}
	return cfg, configPath, nil
}

// defaultTemplatePath returns pca-template.html beside the resolved
// executable. It falls back to the pipeline default when the executable
// cannot be located.
func defaultTemplatePath() string {
	exe, err := executable()
	if err != nil {
		return ""
	}
	resolved, err := cmdFS.EvalSymlinks(exe)
	if err != nil {
		return ""
	}
	return filepath.Join(filepath.Dir(resolved), expand.DefaultTemplate)
}

var payloadKeys = []string{
	layout.Key(layout.BatchDataFile),
	layout.Key(layout.AnnotationsFile),
	layout.Key(layout.ValuesFile),
}

func printSummary(w io.Writer, res *pipeline.Result) error {
	tbl := table.New(
		table.Column{Header: "#", Align: table.AlignRight},
		table.Column{Header: "COVARIATE"},
		table.Column{Header: "LAYOUT", Color: table.ColorLayout},
		table.Column{Header: payloadKeys[0], Align: table.AlignRight, Color: table.ColorCount},
		table.Column{Header: payloadKeys[1], Align: table.AlignRight, Color: table.ColorCount},
		table.Column{Header: payloadKeys[2], Align: table.AlignRight, Color: table.ColorCount},
		table.Column{Header: "ENCODED", Align: table.AlignRight},
	)
	for i, c := range res.Covariates {
		kind := "default"
		if layout.IsBatch(c.Name) {
			kind = "batch"
		}
		tbl.AddRow(
			strconv.Itoa(i),
			c.Name,
			kind,
			strconv.Itoa(c.Rows[payloadKeys[0]]),
			strconv.Itoa(c.Rows[payloadKeys[1]]),
			strconv.Itoa(c.Rows[payloadKeys[2]]),
			strconv.Itoa(c.EncodedLen()),
		)
	}
	if err := tbl.Render(w); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\nWrote %s (%d bytes, %s mode, %d covariate(s))\n",
		res.OutputPath, res.Bytes, res.Mode, len(res.Covariates))
	if err == nil && res.PlotJSCopy != "" {
		_, err = fmt.Fprintf(w, "Copied plot script to %s\n", res.PlotJSCopy)
	}
	for _, c := range res.Covariates {
		if err != nil {
			break
		}
		if c.JSONDump != "" {
			_, err = fmt.Fprintf(w, "Dumped %s\n", c.JSONDump)
		}
	}
	if err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}
