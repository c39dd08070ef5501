// Copyright 2026 The Pcaembed Authors
// SPDX-License-Identifier: MIT

package config

import (
	"github.com/xpedite/pcaembed/internal/pipeline"
)

// Merge combines file-based config with CLI-provided pipeline options.
// CLI values take precedence; zero-value CLI fields fall through to file config.
func Merge(fileCfg *Config, cliOpts pipeline.Options) pipeline.Options {
	result := cliOpts
	if fileCfg == nil {
		return result
	}

	if result.TemplatePath == "" {
		result.TemplatePath = fileCfg.Template
	}
	if result.PlotJSPath == "" {
		result.PlotJSPath = fileCfg.PlotJS
	}
	// The positional log file argument wins over log_file.
	if result.LogFile == "" {
		result.LogFile = fileCfg.LogFile
	}

	// Boolean flags: CLI wins if true, otherwise file config.
	if !result.DumpJSON && fileCfg.DumpJSON != nil {
		result.DumpJSON = *fileCfg.DumpJSON
	}
	if !result.CopyPlotJS && fileCfg.CopyPlotJS != nil {
		result.CopyPlotJS = *fileCfg.CopyPlotJS
	}

	if result.Jobs == 0 && fileCfg.Jobs > 0 {
		result.Jobs = fileCfg.Jobs
	}
	return result
}
