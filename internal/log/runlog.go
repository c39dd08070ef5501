// Copyright 2026 The Pcaembed Authors
// SPDX-License-Identifier: MIT

package log

import (
	"fmt"
	"os"

	"github.com/xpedite/pcaembed/internal/testable"
)

// RunLogTag prefixes every run log line.
const RunLogTag = "[pcaembed log] "

// RunLog appends one tagged line per call to a file. The file is opened,
// created if absent, and closed again on every call, so lines from earlier
// steps survive a later crash. A RunLog with an empty Path discards
// everything.
type RunLog struct {
	Path string
	FS   testable.FileSystem
}

// NewRunLog returns a RunLog writing to path.
func NewRunLog(path string) *RunLog {
	return &RunLog{Path: path}
}

// Enabled reports whether lines are written anywhere.
func (l *RunLog) Enabled() bool {
	return l != nil && l.Path != ""
}

// Printf formats a message and appends it as a single line.
func (l *RunLog) Printf(format string, args ...any) error {
	if !l.Enabled() {
		return nil
	}
	f, err := testable.OrDefault(l.FS).OpenFile(l.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) //nolint:gosec // log is shared with the pipeline
	if err != nil {
		return fmt.Errorf("open run log: %w", err)
	}
	if _, err := fmt.Fprintf(f, "%s%s\n", RunLogTag, fmt.Sprintf(format, args...)); err != nil {
		_ = f.Close()
		return fmt.Errorf("write run log: %w", err)
	}
	return f.Close()
}
