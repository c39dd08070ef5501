// Copyright 2026 The Pcaembed Authors
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"

	"github.com/xpedite/pcaembed/internal/pipeline"
)

// Exit codes for the pcaembed CLI.
const (
	ExitOK          = 0 // Report written.
	ExitInvalidArgs = 1 // Invalid arguments or configuration.
	ExitInputError  = 2 // A TSV file, the template or the plot script could not be read.
	ExitOutputError = 3 // The report or a side file could not be written.
)

type exitCodeError struct {
	code int
	msg  string
	err  error
}

func (e *exitCodeError) Error() string { return e.msg }

func (e *exitCodeError) Unwrap() error { return e.err }

// ExitCode returns the exit code for this error.
func (e *exitCodeError) ExitCode() int { return e.code }

// exitError creates an exitCodeError. If msg is empty, the error message is
// set to a generic description of the exit code.
func exitError(code int, format string, args ...any) *exitCodeError {
	msg := fmt.Sprintf(format, args...)
	if msg == "" {
		switch code {
		case ExitInputError:
			msg = "pcaembed: could not read inputs"
		case ExitOutputError:
			msg = "pcaembed: could not write report"
		default:
			msg = "pcaembed: error"
		}
	}
	return &exitCodeError{code: code, msg: msg}
}

// stageExit maps a pipeline failure onto an exit code.
func stageExit(err error) error {
	var se *pipeline.StageError
	if !errors.As(err, &se) {
		return err
	}
	code := ExitInputError
	if se.Stage == pipeline.StageOutput {
		code = ExitOutputError
	}
	ece := exitError(code, "pcaembed: %s error: %v", se.Stage, se.Err)
	ece.err = err
	return ece
}
