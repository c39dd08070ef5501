// Copyright 2026 The Pcaembed Authors
// SPDX-License-Identifier: MIT

// Package inspect reads the embedded covariate blocks back out of a
// generated report.
package inspect

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/xpedite/pcaembed/internal/payload"
)

var (
	declRe  = regexp.MustCompile(`^var base64_plot_(\d+)='([A-Za-z0-9+/=]*)'$`)
	embedRe = regexp.MustCompile(`^embedPCAplus \('#([^']*)', 'base64', base64_plot_(\d+),'(.*)'\);$`)
)

// Block is one covariate found in a report.
type Block struct {
	Index     int
	Covariate string
	Target    string
	Encoded   int
	Payload   *payload.Payload
}

// Rows returns the record count for each payload key, sorted by key.
func (b Block) Rows() []KeyCount {
	if b.Payload == nil {
		return nil
	}
	out := make([]KeyCount, 0, len(b.Payload.Data))
	for k, rows := range b.Payload.Data {
		out = append(out, KeyCount{Key: k, Count: len(rows)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// KeyCount pairs a payload key with its number of records.
type KeyCount struct {
	Key   string
	Count int
}

// Scan finds every covariate declaration in a report and decodes it. Embed
// calls supply the covariate name and DOM target where present. Blocks are
// returned in index order.
func Scan(r io.Reader) ([]Block, error) {
	byIndex := make(map[int]*Block)
	get := func(idx int) *Block {
		b, ok := byIndex[idx]
		if !ok {
			b = &Block{Index: idx}
			byIndex[idx] = b
		}
		return b
	}

	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read report: %w", err)
		}
		line = strings.TrimSpace(line)

		if m := declRe.FindStringSubmatch(line); m != nil {
			idx, _ := strconv.Atoi(m[1])
			p, derr := payload.Decode(m[2])
			if derr != nil {
				return nil, fmt.Errorf("block %d: %w", idx, derr)
			}
			b := get(idx)
			b.Payload = p
			b.Encoded = len(m[2])
		} else if m := embedRe.FindStringSubmatch(line); m != nil {
			idx, _ := strconv.Atoi(m[2])
			b := get(idx)
			b.Target = m[1]
			b.Covariate = m[3]
		}

		if err != nil {
			break
		}
	}

	blocks := make([]Block, 0, len(byIndex))
	for _, b := range byIndex {
		if b.Payload != nil {
			blocks = append(blocks, *b)
		}
	}
	sort.Slice(blocks, func(i, j int) bool { return blocks[i].Index < blocks[j].Index })
	return blocks, nil
}
