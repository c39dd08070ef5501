// Copyright 2026 The Pcaembed Authors
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// MaxJobs caps the jobs setting.
const MaxJobs = 64

// Validate checks all fields in the config and returns all errors at once.
func Validate(cfg *Config) error {
	var errs []string

	if cfg.Jobs < 0 || cfg.Jobs > MaxJobs {
		errs = append(errs, fmt.Sprintf("jobs: must be between 0 and %d, got %d", MaxJobs, cfg.Jobs))
	}

	checkPath := func(key, val string) {
		if val != "" && strings.TrimSpace(val) == "" {
			errs = append(errs, fmt.Sprintf("%s: must not be blank", key))
		}
	}
	checkPath("template", cfg.Template)
	checkPath("plot_js", cfg.PlotJS)
	checkPath("log_file", cfg.LogFile)

	if ext := strings.ToLower(filepath.Ext(cfg.PlotJS)); cfg.PlotJS != "" && ext != ".js" {
		errs = append(errs, fmt.Sprintf("plot_js: expected a .js file, got %q", cfg.PlotJS))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
