// Copyright 2026 The Pcaembed Authors
// SPDX-License-Identifier: MIT

// Package pipeline builds one PCA report: it encodes every covariate, inlines
// the plotting script and expands the report template.
package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/xpedite/pcaembed/internal/asset"
	"github.com/xpedite/pcaembed/internal/expand"
	"github.com/xpedite/pcaembed/internal/layout"
	pcalog "github.com/xpedite/pcaembed/internal/log"
	"github.com/xpedite/pcaembed/internal/markup"
	"github.com/xpedite/pcaembed/internal/payload"
	"github.com/xpedite/pcaembed/internal/progress"
	"github.com/xpedite/pcaembed/internal/testable"
)

// Options describes one report build.
type Options struct {
	// Root is the report folder holding the pipeline's PCA output.
	Root string
	// Covariates are encoded in this order.
	Covariates []string
	// OutputName is the report file name, relative to Root.
	OutputName string

	// TemplatePath defaults to expand.DefaultTemplate in the working directory.
	TemplatePath string
	// PlotJSPath defaults to asset.DefaultPlotJS in the working directory.
	PlotJSPath string
	// LogFile enables the append-only run log.
	LogFile string

	DumpJSON   bool
	CopyPlotJS bool
	// Jobs bounds how many covariates are read at once. 0 means 1.
	Jobs int
}

// ErrNoCovariates is returned by New when Options.Covariates is empty.
var ErrNoCovariates = errors.New("pipeline: no covariates given")

// Pipeline runs a single report build.
type Pipeline struct {
	opts     Options
	fs       testable.FileSystem
	logger   *slog.Logger
	runLog   *pcalog.RunLog
	progress progress.Reporter
	now      func() time.Time
}

// Option customizes a Pipeline.
type Option func(*Pipeline)

// WithFS sets the file system used for every read and write.
func WithFS(fsys testable.FileSystem) Option {
	return func(p *Pipeline) { p.fs = fsys }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// WithProgress sets the progress reporter.
func WithProgress(r progress.Reporter) Option {
	return func(p *Pipeline) { p.progress = r }
}

// New validates opts and returns a Pipeline.
func New(opts Options, options ...Option) (*Pipeline, error) {
	if opts.Root == "" {
		return nil, errors.New("pipeline: root folder is required")
	}
	if len(opts.Covariates) == 0 {
		return nil, ErrNoCovariates
	}
	if opts.OutputName == "" {
		return nil, errors.New("pipeline: output file name is required")
	}
	if opts.Jobs < 0 {
		return nil, fmt.Errorf("pipeline: jobs must be non-negative, got %d", opts.Jobs)
	}
	if opts.Jobs == 0 {
		opts.Jobs = 1
	}
	if opts.TemplatePath == "" {
		opts.TemplatePath = expand.DefaultTemplate
	}
	if opts.PlotJSPath == "" {
		opts.PlotJSPath = asset.DefaultPlotJS
	}

	p := &Pipeline{
		opts:     opts,
		fs:       testable.DefaultFS,
		logger:   slog.Default(),
		progress: progress.Nop{},
		now:      time.Now,
	}
	for _, o := range options {
		o(p)
	}
	p.runLog = &pcalog.RunLog{Path: opts.LogFile, FS: p.fs}
	return p, nil
}

// Options returns the effective options after defaults were applied.
func (p *Pipeline) Options() Options { return p.opts }

// OutputPath is where the report is written.
func (p *Pipeline) OutputPath() string {
	if filepath.IsAbs(p.opts.OutputName) {
		return p.opts.OutputName
	}
	return filepath.Join(p.opts.Root, p.opts.OutputName)
}

// Run builds the report. Inputs are all read before the output file is
// created, so a failed run leaves no partial report behind.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	start := p.now()
	p.note("Writing output to: %s", p.opts.OutputName)

	mode := markup.ModeFor(p.opts.OutputName)
	acc, err := markup.NewAccumulator(mode, len(p.opts.Covariates))
	if err != nil {
		return nil, err
	}

	covs, err := p.encodeAll(ctx)
	if err != nil {
		return nil, err
	}
	for i, c := range covs {
		acc.Add(i, c.Name, c.block)
	}
	p.note("Generated ascii for all covariates")

	plotLine, err := asset.ScriptLine(p.fs, p.opts.PlotJSPath)
	if err != nil {
		return nil, &StageError{Stage: StageInput, Err: err}
	}
	p.note("Encoded %s", filepath.Base(p.opts.PlotJSPath))

	tmpl, err := p.fs.ReadFile(p.opts.TemplatePath)
	if err != nil {
		return nil, &StageError{Stage: StageInput, Err: fmt.Errorf("read template: %w", err)}
	}

	var copied string
	if p.opts.CopyPlotJS {
		copied, err = asset.Copy(p.fs, p.opts.PlotJSPath, p.opts.Root)
		if err != nil {
			return nil, &StageError{Stage: StageOutput, Err: err}
		}
		p.logger.Debug("copied plot script", "path", copied)
	}

	blocks := acc.Blocks()
	values := expand.Values{
		Message:     blocks.Message,
		Embed:       blocks.Embed,
		Div:         blocks.Div,
		PlotJS:      plotLine,
		TotalHeight: blocks.TotalHeight,
	}
	outPath := p.OutputPath()
	stats, n, err := p.writeReport(outPath, tmpl, values)
	if err != nil {
		return nil, &StageError{Stage: StageOutput, Err: err}
	}
	p.note("Finished writing %s", p.opts.OutputName)

	for _, tok := range expand.Tokens {
		switch count := stats.Replaced[tok]; {
		case count == 0:
			p.logger.Debug("template token not found", "token", tok)
		case count > 1:
			p.logger.Warn("template token appears on more than one line", "token", tok, "lines", count)
		}
	}

	return &Result{
		OutputPath: outPath,
		Mode:       mode,
		Covariates: covs,
		Bytes:      n,
		Template:   stats,
		PlotJSCopy: copied,
		Duration:   p.now().Sub(start),
	}, nil
}

// encodeAll reads and encodes every covariate, at most Jobs at a time. The
// returned slice follows input order regardless of completion order.
func (p *Pipeline) encodeAll(ctx context.Context) ([]CovariateResult, error) {
	covs := make([]CovariateResult, len(p.opts.Covariates))
	p.progress.Start(len(covs))
	defer p.progress.Finish()

	var (
		mu   sync.Mutex
		done int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.Jobs)
	for i, name := range p.opts.Covariates {
		i, name := i, name
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := p.encode(name)
			if err != nil {
				return err
			}
			covs[i] = res

			mu.Lock()
			done++
			p.progress.Update(done, name)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		var se *StageError
		if errors.As(err, &se) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, &StageError{Stage: StageInput, Err: err}
	}
	return covs, nil
}

func (p *Pipeline) encode(name string) (CovariateResult, error) {
	p.note("Generating ascii for %s", name)
	src := layout.Resolve(p.opts.Root, name)

	pl, err := payload.Build(p.fs, src)
	if err != nil {
		return CovariateResult{}, err
	}
	block, err := payload.Encode(pl)
	if err != nil {
		return CovariateResult{}, err
	}

	res := CovariateResult{
		Name:    name,
		Sources: src,
		Rows:    make(map[string]int, len(pl.Data)),
		block:   block,
	}
	for key, rows := range pl.Data {
		res.Rows[key] = len(rows)
	}
	if p.opts.DumpJSON {
		res.JSONDump, err = payload.WriteJSON(p.fs, src, pl)
		if err != nil {
			return CovariateResult{}, &StageError{Stage: StageOutput, Err: err}
		}
	}

	p.logger.Debug("encoded covariate", "covariate", name, "batch_layout", layout.IsBatch(name), "encoded_bytes", len(block))
	p.note("Ascii generated for %s", name)
	return res, nil
}

func (p *Pipeline) writeReport(path string, tmpl []byte, v expand.Values) (expand.Stats, int64, error) {
	f, err := p.fs.Create(path)
	if err != nil {
		return expand.Stats{}, 0, fmt.Errorf("create report: %w", err)
	}
	cw := &countingWriter{w: f}
	stats, err := expand.Expand(bytes.NewReader(tmpl), cw, v)
	if err != nil {
		_ = f.Close()
		return stats, cw.n, err
	}
	if err := f.Close(); err != nil {
		return stats, cw.n, fmt.Errorf("close report: %w", err)
	}
	return stats, cw.n, nil
}

// note writes to the run log and mirrors the message to the debug log. Run
// log failures never stop a build.
func (p *Pipeline) note(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	p.logger.Debug(msg)
	if err := p.runLog.Printf("%s", msg); err != nil {
		p.logger.Warn("run log write failed", "path", p.runLog.Path, "error", err)
	}
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(b []byte) (int, error) {
	n, err := c.w.Write(b)
	c.n += int64(n)
	return n, err
}
