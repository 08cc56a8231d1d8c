// Copyright 2026 The asynchttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"net/http"
	"net/url"
	"time"

	"github.com/gogama/asynchttp/failure"
)

// A Result represents the outcome of a single Spec run.
//
// The client creates a Result when a run starts, updates it as the run
// progresses through its states, and finally hands it to the caller.
// Hook handlers may read the Result during the run but should treat
// its fields as read-only, with the exception of making reasonable
// changes to Request before it is sent.
//
// Callers must check Err before trusting StatusCode or Body: both may
// be set when the failure happened after the status was obtained, for
// example while reading the response body.
type Result struct {
	// ID uniquely identifies the run, for correlating log lines.
	ID string

	// Spec is the request description being run. It is never nil.
	Spec *Spec

	// URL is the resolved absolute URL. It is nil until the run reaches
	// URLResolved.
	URL *url.URL

	// State is the most recent state the run reached.
	State State

	// StatusCode is the HTTP status code, or 0 if the run failed before
	// the exchange or has not reached ResponseReceived yet.
	StatusCode int

	// Header holds the response headers. It is nil until a response is
	// received.
	Header http.Header

	// Body holds the response body bytes. It is nil unless the body was
	// read, which only happens for status 200 and for statuses 400-599.
	Body []byte

	// ContentLength is the length reported by the response, or -1 if
	// unknown.
	ContentLength int64

	// Err is the captured failure, if any. Whenever Err is non-nil, it
	// has the type *failure.Error.
	Err error

	// Request is the HTTP request built for the run. It is nil until
	// the run reaches HeadersSent.
	Request *http.Request

	// Response is the raw HTTP response. Its body is closed by the time
	// the run ends.
	Response *http.Response

	// Start is the time the run started.
	Start time.Time

	// End is the time the run ended. It contains the zero value while
	// the run is in flight.
	End time.Time
}

// Failed reports whether the run captured a failure.
func (r *Result) Failed() bool {
	return r.Err != nil
}

// Kind returns the kind of the captured failure, or failure.Unknown if
// there is none.
func (r *Result) Kind() failure.Kind {
	return failure.KindOf(r.Err)
}

// Cancelled reports whether the run was cancelled before a transport
// connection was opened.
func (r *Result) Cancelled() bool {
	return r.Kind() == failure.Cancelled
}

// Timeout reports whether the captured failure was caused by a connect
// or read timeout.
func (r *Result) Timeout() bool {
	return failure.Categorize(r.Err) == failure.Timeout
}

// Duration returns the duration of the run.
//
// If the run has not yet started, the duration is zero. If the run has
// ended, the duration returned is End minus Start. Otherwise, it is the
// current time minus Start.
func (r *Result) Duration() time.Duration {
	if !r.Started() {
		return time.Duration(0)
	} else if !r.Ended() {
		return time.Since(r.Start)
	}

	return r.End.Sub(r.Start)
}

// Started indicates whether the run has started.
func (r *Result) Started() bool {
	return r.Start != (time.Time{})
}

// Ended indicates whether the run has ended. Once it has, there will be
// no further changes to the Result.
func (r *Result) Ended() bool {
	return r.End != (time.Time{})
}
