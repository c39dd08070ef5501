// Copyright 2026 The Pcaembed Authors
// SPDX-License-Identifier: MIT

// Package payload turns one covariate's PCA result files into the base64
// block that the report's plotting code decodes.
package payload

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/xpedite/pcaembed/internal/layout"
	"github.com/xpedite/pcaembed/internal/testable"
	"github.com/xpedite/pcaembed/internal/tsv"
)

// Payload is the JSON document embedded for one covariate. Data is keyed by
// source file name without the .tsv extension.
type Payload struct {
	Data map[string]tsv.RecordSet `json:"data"`
}

// Build reads the three source files of one covariate.
func Build(fsys testable.FileSystem, src layout.Sources) (*Payload, error) {
	p := &Payload{Data: make(map[string]tsv.RecordSet, 3)}
	for _, file := range src.Files() {
		rows, err := tsv.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("covariate %q: %w", src.Covariate, err)
		}
		p.Data[layout.Key(file)] = rows
	}
	return p, nil
}

// MarshalASCII serializes p as JSON with every non-ASCII character written
// as a \u escape, so the result is plain ASCII.
func MarshalASCII(p *Payload) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(p); err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	return escapeNonASCII(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

// escapeNonASCII rewrites multi-byte UTF-8 sequences as \uXXXX escapes,
// using surrogate pairs above the BMP. Valid JSON only carries such bytes
// inside strings, so the rewrite keeps the document equivalent.
func escapeNonASCII(b []byte) []byte {
	if isASCII(b) {
		return b
	}
	out := make([]byte, 0, len(b)+len(b)/4)
	for len(b) > 0 {
		if b[0] < utf8.RuneSelf {
			out = append(out, b[0])
			b = b[1:]
			continue
		}
		r, size := utf8.DecodeRune(b)
		b = b[size:]
		if r > 0xFFFF {
			r -= 0x10000
			out = appendU(out, 0xD800+(r>>10))
			out = appendU(out, 0xDC00+(r&0x3FF))
			continue
		}
		out = appendU(out, r)
	}
	return out
}

func appendU(out []byte, r rune) []byte {
	hex := strconv.FormatInt(int64(r), 16)
	out = append(out, '\\', 'u')
	for i := len(hex); i < 4; i++ {
		out = append(out, '0')
	}
	return append(out, hex...)
}

func isASCII(b []byte) bool {
	for _, c := range b {
		if c >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// Encode returns the base64 encoding of p's ASCII JSON form.
func Encode(p *Payload) (string, error) {
	data, err := MarshalASCII(p)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// Decode reverses Encode.
func Decode(block string) (*Payload, error) {
	data, err := base64.StdEncoding.DecodeString(block)
	if err != nil {
		return nil, fmt.Errorf("decode base64: %w", err)
	}
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode payload json: %w", err)
	}
	return &p, nil
}

// Generate resolves, reads and encodes covariate under root.
func Generate(fsys testable.FileSystem, root, covariate string) (string, error) {
	p, err := Build(fsys, layout.Resolve(root, covariate))
	if err != nil {
		return "", err
	}
	return Encode(p)
}

// WriteJSON writes p's ASCII JSON form to the covariate's dump location.
func WriteJSON(fsys testable.FileSystem, src layout.Sources, p *Payload) (string, error) {
	data, err := MarshalASCII(p)
	if err != nil {
		return "", err
	}
	dst := src.JSONDumpPath()
	if err := testable.OrDefault(fsys).WriteFile(dst, data, 0o644); err != nil { //nolint:gosec // report artifacts are world-readable
		return "", fmt.Errorf("write %s: %w", dst, err)
	}
	return dst, nil
}
