// Copyright 2026 The asynchttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package logger

import (
	"bytes"
	"log"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStandard(t *testing.T) {
	var buf bytes.Buffer
	l := NewStandard(log.New(&buf, "", 0))
	l.Info("started %d", 1)
	l.Warning("skipped %q", "x")
	l.Error("failed: %v", "boom")
	assert.Equal(t, "[INFO] started 1\n[WARNING] skipped \"x\"\n[ERROR] failed: boom\n", buf.String())
}

func TestNewStandard_NilLogger(t *testing.T) {
	l := NewStandard(nil)
	assert.Same(t, log.Default(), l.logger)
}

func TestOrNop(t *testing.T) {
	assert.Equal(t, Nop{}, OrNop(nil))
	r := &Recorder{}
	assert.Same(t, r, OrNop(r))
	assert.NotPanics(t, func() {
		OrNop(nil).Warning("ignored %d", 1)
	})
}

func TestRecorder(t *testing.T) {
	r := &Recorder{}
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r.Warning("w%d", i)
		}(i)
	}
	wg.Wait()
	r.Info("i")
	r.Error("e%s", "!")
	assert.Len(t, r.Warnings(), 10)
	assert.Equal(t, []string{"i"}, r.Infos())
	assert.Equal(t, []string{"e!"}, r.Errors())
}
