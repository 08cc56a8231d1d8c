// Copyright 2026 The asynchttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package asynchttp

import (
	"sync"

	"github.com/gogama/asynchttp/request"
)

// A HandlerGroup is a group of event handler chains which can be
// installed in a Client.
//
// Handlers may be pushed while requests are in flight; a run sees the
// chain as it was when each event fired.
type HandlerGroup struct {
	mu       sync.RWMutex
	handlers [][]Handler
}

// PushBack adds an event handler to the back of the event handler chain
// for a specific event type.
func (g *HandlerGroup) PushBack(evt Event, h Handler) {
	if h == nil {
		panic("asynchttp: nil handler")
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.handlers == nil {
		g.handlers = make([][]Handler, numEvents)
	}

	g.handlers[evt] = append(g.handlers[evt], h)
}

func (g *HandlerGroup) run(evt Event, r *request.Result) {
	g.mu.RLock()
	var chain []Handler
	if i := int(evt); i < len(g.handlers) {
		chain = g.handlers[i]
	}
	g.mu.RUnlock()
	for _, h := range chain {
		h.Handle(evt, r)
	}
}

// A Handler handles the occurrence of an event during a request run.
//
// Handlers run on the worker goroutine executing the request, never on
// the caller's execution context.
type Handler interface {
	Handle(Event, *request.Result)
}

// The HandlerFunc type is an adapter to allow the use of ordinary
// functions as event handlers. If f is a function with appropriate
// signature, then HandlerFunc(f) is a Handler that calls f.
type HandlerFunc func(Event, *request.Result)

// Handle calls f(evt, r).
func (f HandlerFunc) Handle(evt Event, r *request.Result) {
	f(evt, r)
}
