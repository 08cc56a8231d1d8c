// Copyright 2026 The asynchttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package asynchttp

import (
	"fmt"
	"sync"
	"testing"

	"github.com/gogama/asynchttp/request"
	"github.com/stretchr/testify/assert"
)

func TestHandlerGroup(t *testing.T) {
	var evts []string
	var results []*request.Result
	h1 := &testHandler{seq: 1, evts: &evts, results: &results}
	h2 := &testHandler{seq: 2, evts: &evts, results: &results}
	g := &HandlerGroup{}
	t.Run("PushBack", func(t *testing.T) {
		assert.PanicsWithValue(t, "asynchttp: nil handler", func() { g.PushBack(BeforeExecutionStart, nil) })
		assert.Panics(t, func() { g.PushBack(Event(123), h1) })
		g.PushBack(BeforeExecutionStart, h1)
		g.PushBack(BeforeExecutionStart, h2)
		g.PushBack(BeforeSend, h1)
	})
	t.Run("run", func(t *testing.T) {
		r1 := &request.Result{ID: "1"}
		r2 := &request.Result{ID: "2"}
		g.run(AfterExecutionEnd, r1)
		assert.Empty(t, evts)
		assert.Empty(t, results)
		g.run(BeforeExecutionStart, r1)
		assert.Equal(t, []string{"1.BeforeExecutionStart", "2.BeforeExecutionStart"}, evts)
		assert.Equal(t, []*request.Result{r1, r1}, results)
		evts = evts[:0]
		results = results[:0]
		g.run(BeforeSend, r2)
		assert.Equal(t, []string{"1.BeforeSend"}, evts)
		assert.Equal(t, []*request.Result{r2}, results)
	})
	t.Run("zero value", func(t *testing.T) {
		var empty HandlerGroup
		empty.run(BeforeReadBody, &request.Result{})
	})
	t.Run("concurrent push and run", func(t *testing.T) {
		var g HandlerGroup
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				g.PushBack(AfterResolve, HandlerFunc(func(Event, *request.Result) {}))
			}()
			go func() {
				defer wg.Done()
				g.run(AfterResolve, &request.Result{})
			}()
		}
		wg.Wait()
	})
}

type testHandler struct {
	seq     int
	evts    *[]string
	results *[]*request.Result
}

func (h *testHandler) Handle(evt Event, r *request.Result) {
	*h.evts = append(*h.evts, fmt.Sprintf("%d.%s", h.seq, evt))
	*h.results = append(*h.results, r)
}

func TestHandlerFunc(t *testing.T) {
	var _evt Event
	var _r *request.Result
	var f = func(evt Event, r *request.Result) {
		_evt = evt
		_r = r
	}
	h := HandlerFunc(f)
	r := &request.Result{}
	h.Handle(BeforeReadBody, r)

	assert.Equal(t, BeforeReadBody, _evt)
	assert.Same(t, r, _r)
}
