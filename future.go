// Copyright 2026 The asynchttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package asynchttp

import (
	"context"
	"sync"

	"github.com/gogama/asynchttp/request"
)

// A Callback receives the result of a submitted request run.
type Callback func(*request.Result)

// A Resumer represents the execution context on which a submitter wants
// its callbacks to run, such as a UI goroutine or an event loop.
//
// Resume must arrange for fn to be called exactly once on that
// context. It is called from a worker goroutine and may block until
// the context accepts fn.
type Resumer interface {
	Resume(fn func())
}

// The ResumerFunc type is an adapter to allow the use of ordinary
// functions as Resumers.
type ResumerFunc func(fn func())

// Resume calls f(fn).
func (f ResumerFunc) Resume(fn func()) {
	f(fn)
}

// Inline is a Resumer which calls back directly on the worker goroutine
// that ran the request.
var Inline Resumer = ResumerFunc(func(fn func()) { fn() })

// A Loop is a Resumer for a goroutine owned by the caller. Callbacks
// are queued by Resume and run when the owning goroutine calls Run or
// RunPending.
type Loop struct {
	tasks chan func()
}

// NewLoop returns a Loop which queues up to n callbacks before Resume
// blocks.
func NewLoop(n int) *Loop {
	if n < 0 {
		panic("asynchttp: negative loop capacity")
	}
	return &Loop{tasks: make(chan func(), n)}
}

// Resume queues fn to run on the loop.
func (l *Loop) Resume(fn func()) {
	l.tasks <- fn
}

// Run runs queued callbacks on the calling goroutine until ctx is done,
// then returns ctx.Err().
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case fn := <-l.tasks:
			fn()
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// RunPending runs every callback already queued, without waiting for
// more, and returns how many it ran.
func (l *Loop) RunPending() int {
	var n int
	for {
		select {
		case fn := <-l.tasks:
			fn()
			n++
		default:
			return n
		}
	}
}

// A Future represents a submitted request run.
type Future struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
	result *request.Result
}

// Done returns a channel which is closed when the run has ended. The
// callback, if any, is resumed after Done is closed.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Result waits for the run to end and returns its result.
func (f *Future) Result() *request.Result {
	<-f.done
	return f.result
}

// Cancel cancels the run. A run cancelled before its connection is
// opened ends with a failure.Cancelled result and never calls back. A
// run cancelled later fails through its context and calls back as
// usual. Cancel may be called more than once.
func (f *Future) Cancel() {
	f.once.Do(f.cancel)
}

// Go runs s with d on a new goroutine and delivers the result to cb by
// way of rr, following the contract documented on Client.Submit.
//
// If rr is nil, Inline is used. If cb is nil, no callback is made.
func Go(d Doer, s *request.Spec, rr Resumer, cb Callback) *Future {
	if d == nil {
		panic("asynchttp: nil doer")
	}
	if s == nil {
		panic("asynchttp: nil spec")
	}
	if rr == nil {
		rr = Inline
	}

	ctx, cancel := context.WithCancel(s.Context())
	f := &Future{
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go func() {
		defer f.Cancel()
		r := d.Do(s.WithContext(ctx))
		f.result = r
		close(f.done)
		if cb == nil || r.Cancelled() {
			return
		}
		rr.Resume(func() { cb(r) })
	}()
	return f
}
