// Copyright 2026 The Pcaembed Authors
// SPDX-License-Identifier: MIT

package table

import (
	"github.com/fatih/color"
)

var (
	colorRed    = color.New(color.FgRed)
	colorYellow = color.New(color.FgYellow)
	colorGreen  = color.New(color.FgGreen)
	colorCyan   = color.New(color.FgCyan)
)

// ColorCount highlights empty record sets.
func ColorCount(val string) string {
	if val == "0" {
		return colorYellow.Sprint(val)
	}
	return val
}

// ColorLayout marks covariates read from the batch-branch directories.
func ColorLayout(val string) string {
	switch val {
	case "batch":
		return colorCyan.Sprint(val)
	default:
		return val
	}
}

// ColorStatus colors ok/missing markers.
func ColorStatus(val string) string {
	switch val {
	case "ok":
		return colorGreen.Sprint(val)
	case "missing":
		return colorRed.Sprint(val)
	default:
		return val
	}
}

// DisableColor turns off ANSI output for every table.
func DisableColor() {
	color.NoColor = true
}
