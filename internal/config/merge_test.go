// Copyright 2026 The Pcaembed Authors
// SPDX-License-Identifier: MIT

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xpedite/pcaembed/internal/pipeline"
)

func boolPtr(b bool) *bool { return &b }

func TestMerge_CLIOverridesFile(t *testing.T) {
	fileCfg := &Config{
		Template: "file.html",
		PlotJS:   "file.js",
		LogFile:  "file.log",
		Jobs:     8,
	}
	cli := pipeline.Options{
		TemplatePath: "cli.html",
		PlotJSPath:   "cli.js",
		LogFile:      "cli.log",
		Jobs:         2,
	}

	got := Merge(fileCfg, cli)
	assert.Equal(t, "cli.html", got.TemplatePath)
	assert.Equal(t, "cli.js", got.PlotJSPath)
	assert.Equal(t, "cli.log", got.LogFile)
	assert.Equal(t, 2, got.Jobs)
}

func TestMerge_FileFillsInDefaults(t *testing.T) {
	fileCfg := &Config{
		Template:   "file.html",
		PlotJS:     "file.js",
		LogFile:    "file.log",
		DumpJSON:   boolPtr(true),
		CopyPlotJS: boolPtr(true),
		Jobs:       3,
	}
	cli := pipeline.Options{Root: "run1", Covariates: []string{"age"}, OutputName: "out.html"}

	got := Merge(fileCfg, cli)
	assert.Equal(t, "run1", got.Root)
	assert.Equal(t, []string{"age"}, got.Covariates)
	assert.Equal(t, "out.html", got.OutputName)
	assert.Equal(t, "file.html", got.TemplatePath)
	assert.Equal(t, "file.js", got.PlotJSPath)
	assert.Equal(t, "file.log", got.LogFile)
	assert.True(t, got.DumpJSON)
	assert.True(t, got.CopyPlotJS)
	assert.Equal(t, 3, got.Jobs)
}

func TestMerge_BoolCLITrueWins(t *testing.T) {
	fileCfg := &Config{DumpJSON: boolPtr(false), CopyPlotJS: boolPtr(false)}
	got := Merge(fileCfg, pipeline.Options{DumpJSON: true, CopyPlotJS: true})
	assert.True(t, got.DumpJSON)
	assert.True(t, got.CopyPlotJS)
}

func TestMerge_NilAndEmpty(t *testing.T) {
	cli := pipeline.Options{TemplatePath: "t.html", Jobs: 1}
	assert.Equal(t, cli, Merge(nil, cli))
	assert.Equal(t, cli, Merge(&Config{}, cli))
}
