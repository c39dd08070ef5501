// Copyright 2026 The Pcaembed Authors
// SPDX-License-Identifier: MIT

// Package expand splices generated content into the report template by
// plain token substitution.
//
// There is no escaping and no nesting: a line containing a token is trimmed
// and the token is replaced by its value as is. Only the first token found,
// in Tokens order, is substituted on a line.
package expand

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Template tokens.
const (
	TokenMessage     = "base64_plot_ascii"
	TokenEmbed       = "embedBlock"
	TokenDiv         = "divBlock"
	TokenPlotJS      = "base64-pca-plot-all"
	TokenTotalHeight = "totalHeight"
)

// Tokens lists the placeholders in match priority order.
var Tokens = []string{TokenMessage, TokenEmbed, TokenDiv, TokenPlotJS, TokenTotalHeight}

// DefaultTemplate is the template file name looked up next to the binary.
const DefaultTemplate = "pca-template.html"

// Values holds the replacement for each token.
type Values struct {
	Message     string
	Embed       string
	Div         string
	PlotJS      string
	TotalHeight string
}

func (v Values) lookup(token string) string {
	switch token {
	case TokenMessage:
		return v.Message
	case TokenEmbed:
		return v.Embed
	case TokenDiv:
		return v.Div
	case TokenPlotJS:
		return v.PlotJS
	case TokenTotalHeight:
		return v.TotalHeight
	}
	return ""
}

// Stats counts what Expand did.
type Stats struct {
	Lines    int
	Replaced map[string]int
}

// Match returns the first token in priority order that occurs in line.
func Match(line string) (string, bool) {
	for _, tok := range Tokens {
		if strings.Contains(line, tok) {
			return tok, true
		}
	}
	return "", false
}

// Expand copies the template from r to w, substituting tokens. Lines without
// a token are written unchanged except that CRLF endings become LF.
func Expand(r io.Reader, w io.Writer, v Values) (Stats, error) {
	stats := Stats{Replaced: make(map[string]int, len(Tokens))}
	br := bufio.NewReader(r)
	bw := bufio.NewWriter(w)

	for {
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return stats, fmt.Errorf("read template: %w", err)
		}
		if line != "" {
			stats.Lines++
			if werr := writeLine(bw, line, v, stats.Replaced); werr != nil {
				return stats, fmt.Errorf("write report: %w", werr)
			}
		}
		if err != nil {
			break
		}
	}

	if err := bw.Flush(); err != nil {
		return stats, fmt.Errorf("write report: %w", err)
	}
	return stats, nil
}

func writeLine(w *bufio.Writer, line string, v Values, replaced map[string]int) error {
	if tok, ok := Match(line); ok {
		replaced[tok]++
		out := strings.ReplaceAll(strings.TrimSpace(line), tok, v.lookup(tok))
		if _, err := w.WriteString(out); err != nil {
			return err
		}
		return w.WriteByte('\n')
	}
	if strings.HasSuffix(line, "\r\n") {
		line = line[:len(line)-2] + "\n"
	}
	_, err := w.WriteString(line)
	return err
}
