// Copyright 2026 The Pcaembed Authors
// SPDX-License-Identifier: MIT

// Package config handles .pcaembed.yaml and .pcaembed.toml configuration
// files.
package config

// Config represents the contents of a pcaembed config file. Every field is
// optional; command-line flags take precedence over anything set here.
type Config struct {
	Template   string `yaml:"template,omitempty" toml:"template,omitempty"`
	PlotJS     string `yaml:"plot_js,omitempty" toml:"plot_js,omitempty"`
	LogFile    string `yaml:"log_file,omitempty" toml:"log_file,omitempty"`
	DumpJSON   *bool  `yaml:"dump_json,omitempty" toml:"dump_json,omitempty"`
	CopyPlotJS *bool  `yaml:"copy_plot_js,omitempty" toml:"copy_plot_js,omitempty"`
	Jobs       int    `yaml:"jobs,omitempty" toml:"jobs,omitempty"`
}

const (
	// FileName is the YAML config file looked up in a report root.
	FileName = ".pcaembed.yaml"
	// TOMLFileName is the TOML alternative, used when no YAML file exists.
	TOMLFileName = ".pcaembed.toml"
)

// IsZero reports whether no field is set.
func (c *Config) IsZero() bool {
	return c == nil || *c == Config{}
}
