// Copyright 2026 The Pcaembed Authors
// SPDX-License-Identifier: MIT

// Package asset inlines the plotting script into the report as a data URI.
package asset

import (
	"encoding/base64"
	"fmt"
	"path/filepath"

	"github.com/xpedite/pcaembed/internal/testable"
)

// DefaultPlotJS is the plotting script name, looked up in the working
// directory unless a path is configured.
const DefaultPlotJS = "pca-plot-all.js"

// indent matches the nesting of the placeholder in the report template.
const indent = "\t\t\t\t"

// ScriptLine reads the script at path and returns the single template line
// that loads it from a base64 data URI.
func ScriptLine(fsys testable.FileSystem, path string) (string, error) {
	src, err := testable.OrDefault(fsys).ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read plot script: %w", err)
	}
	return Line(src), nil
}

// Line wraps script in the loader statement used by the report template.
func Line(script []byte) string {
	return indent + "S(`src=\"" + DataURI(script) + "\"`);"
}

// DataURI returns script as a text/javascript base64 data URI.
func DataURI(script []byte) string {
	return "data:text/javascript;base64," + base64.StdEncoding.EncodeToString(script)
}

// Copy places a copy of the script at path into dir, keeping its file name,
// and returns the destination.
func Copy(fsys testable.FileSystem, path, dir string) (string, error) {
	fsys = testable.OrDefault(fsys)
	src, err := fsys.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read plot script: %w", err)
	}
	dst := filepath.Join(dir, filepath.Base(path))
	if err := fsys.WriteFile(dst, src, 0o644); err != nil { //nolint:gosec // report assets are world-readable
		return "", fmt.Errorf("copy plot script: %w", err)
	}
	return dst, nil
}
