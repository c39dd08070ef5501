// Copyright 2026 The Pcaembed Authors
// SPDX-License-Identifier: MIT

package pipeline

import (
	"time"

	"github.com/xpedite/pcaembed/internal/expand"
	"github.com/xpedite/pcaembed/internal/layout"
	"github.com/xpedite/pcaembed/internal/markup"
)

// Result summarizes a finished build.
type Result struct {
	OutputPath string
	Mode       markup.Mode
	Covariates []CovariateResult
	Bytes      int64
	Template   expand.Stats
	PlotJSCopy string
	Duration   time.Duration
}

// CovariateResult describes one encoded covariate.
type CovariateResult struct {
	Name    string
	Sources layout.Sources
	// Rows counts records per payload key.
	Rows     map[string]int
	JSONDump string

	block string
}

// EncodedLen is the length of the covariate's base64 block.
func (c CovariateResult) EncodedLen() int { return len(c.block) }

// Stage identifies where a build failed.
type Stage int

const (
	// StageInput covers reading TSV files, the template and the plot script.
	StageInput Stage = iota + 1
	// StageOutput covers writing the report and its side files.
	StageOutput
)

func (s Stage) String() string {
	switch s {
	case StageInput:
		return "input"
	case StageOutput:
		return "output"
	default:
		return "unknown"
	}
}

// StageError tags an error with the build stage it came from.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string { return e.Err.Error() }

func (e *StageError) Unwrap() error { return e.Err }
