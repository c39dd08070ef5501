// Copyright 2026 The Pcaembed Authors
// SPDX-License-Identifier: MIT

package progress

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_NonTerminalIsLineReporter(t *testing.T) {
	var buf bytes.Buffer
	_, ok := New(&buf).(*LineReporter)
	assert.True(t, ok)
}

func TestLineReporter_Output(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf)

	r.Start(2)
	r.Update(1, "age")
	r.Update(2, "batch_lane")
	r.Finish()

	assert.Equal(t, "Encoding 2 covariate(s)\n[1/2] age\n[2/2] batch_lane\nEncoding complete\n", buf.String())
}

func TestLineReporter_ConcurrentUpdates(t *testing.T) {
	var buf bytes.Buffer
	r := &LineReporter{w: &buf}
	r.Start(50)

	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			r.Update(n, "cov")
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 51, bytes.Count(buf.Bytes(), []byte("\n")))
}

func TestTerminalReporter_WritesBar(t *testing.T) {
	var buf bytes.Buffer
	r := &TerminalReporter{w: &buf}

	r.Start(2)
	r.Update(1, "age")
	r.Update(2, "sex")
	r.Finish()

	assert.NotEmpty(t, buf.String())
}

func TestTerminalReporter_UpdateBeforeStart(t *testing.T) {
	r := &TerminalReporter{w: &bytes.Buffer{}}
	assert.NotPanics(t, func() {
		r.Update(1, "age")
		r.Finish()
	})
}

func TestNop(t *testing.T) {
	var r Reporter = Nop{}
	assert.NotPanics(t, func() {
		r.Start(3)
		r.Update(1, "x")
		r.Finish()
	})
}
