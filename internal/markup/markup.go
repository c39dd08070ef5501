// Copyright 2026 The Pcaembed Authors
// SPDX-License-Identifier: MIT

// Package markup builds the per-covariate HTML and JavaScript fragments that
// are spliced into the report template.
package markup

import (
	"errors"
	"strconv"
	"strings"
)

// Mode selects the DOM id suffix and layout variant of a report.
type Mode string

// Report variants.
const (
	ModeBatch Mode = "batch"
	ModeGroup Mode = "group"
)

// PanelHeightPx is the pixel height reserved per covariate panel.
const PanelHeightPx = 600

// ErrNoCovariates is returned when an accumulator is created for zero
// covariates.
var ErrNoCovariates = errors.New("markup: at least one covariate is required")

// ModeFor picks the report variant from the output file name: any name
// containing "batch" is a batch report.
func ModeFor(outputName string) Mode {
	if strings.Contains(outputName, string(ModeBatch)) {
		return ModeBatch
	}
	return ModeGroup
}

// Blocks are the finished fragments for the four markup tokens.
type Blocks struct {
	Message     string
	Embed       string
	Div         string
	TotalHeight string
}

// Accumulator collects fragments for a fixed number of covariates. Entries
// appear in the order Add is called.
type Accumulator struct {
	mode  Mode
	count int

	message strings.Builder
	embed   strings.Builder
	div     strings.Builder
}

// NewAccumulator returns an accumulator for count covariates.
func NewAccumulator(mode Mode, count int) (*Accumulator, error) {
	if count <= 0 {
		return nil, ErrNoCovariates
	}
	return &Accumulator{mode: mode, count: count}, nil
}

// Mode returns the report variant.
func (a *Accumulator) Mode() Mode { return a.mode }

// Add appends the fragments for the covariate at position idx whose encoded
// block is encoded. Values are inserted without escaping.
func (a *Accumulator) Add(idx int, covariate, encoded string) {
	target := TargetID(idx, a.mode)

	a.message.WriteString("var " + VarName(idx) + "='" + encoded + "'\n")
	a.embed.WriteString("embedPCAplus ('#" + target + "', 'base64', " + VarName(idx) + ",'" + covariate + "');\n")
	a.div.WriteString("<DIV id='" + target + "' style='width:100%;height:" + HeightShare(a.count) + "%'></DIV>\n")
}

// Blocks returns the accumulated fragments.
func (a *Accumulator) Blocks() Blocks {
	return Blocks{
		Message:     a.message.String(),
		Embed:       a.embed.String(),
		Div:         a.div.String(),
		TotalHeight: TotalHeight(a.count),
	}
}

// VarName is the JavaScript variable holding the block of covariate idx.
func VarName(idx int) string {
	return "base64_plot_" + strconv.Itoa(idx)
}

// TargetID is the DOM id of the container for covariate idx.
func TargetID(idx int, mode Mode) string {
	return "iFrameDiv" + strconv.Itoa(idx) + "_" + string(mode)
}

// HeightShare renders 100/count as a decimal that always carries a
// fractional part: 25.0, 50.0, 33.333333333333336.
func HeightShare(count int) string {
	s := strconv.FormatFloat(100/float64(count), 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// TotalHeight is the outer container opening tag sized for count panels.
func TotalHeight(count int) string {
	return "<DIV style='width:100%;height:" + strconv.Itoa(PanelHeightPx*count) + "px'>"
}
