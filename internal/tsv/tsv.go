// Copyright 2026 The Pcaembed Authors
// SPDX-License-Identifier: MIT

// Package tsv reads tab-separated files with a header row into record sets.
package tsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/xpedite/pcaembed/internal/testable"
)

// ExtraKey is the record key under which fields beyond the header width are
// collected. It marshals to the JSON object key "null".
const ExtraKey = "null"

// Record is one data row keyed by header field name. Values are strings,
// nil for fields the row is missing, or []string under ExtraKey.
type Record map[string]any

// RecordSet is an ordered list of rows.
type RecordSet []Record

// Read parses r as tab-delimited records with a header row. Blank lines are
// skipped. An input without a header yields an empty, non-nil RecordSet.
func Read(r io.Reader) (RecordSet, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return RecordSet{}, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	header = append([]string(nil), header...)

	rows := RecordSet{}
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(rows)+1, err)
		}
		rows = append(rows, newRecord(header, fields))
	}
	return rows, nil
}

func newRecord(header, fields []string) Record {
	rec := make(Record, len(header))
	for i, name := range header {
		if i < len(fields) {
			rec[name] = fields[i]
		} else {
			rec[name] = nil
		}
	}
	if len(fields) > len(header) {
		rec[ExtraKey] = append([]string(nil), fields[len(header):]...)
	}
	return rec
}

// ReadFile opens path through fsys and parses it with Read.
func ReadFile(fsys testable.FileSystem, path string) (RecordSet, error) {
	f, err := testable.OrDefault(fsys).Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck // read-only file

	rows, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}
