// Copyright 2026 The asynchttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

// A State is a step of a request run. A run moves forward through the
// states in declaration order, skipping BodyWritten when there is no
// request body, and ends in either Completed or Failed.
type State int

const (
	// Created is the state of a result whose run has not yet resolved
	// an address.
	Created State = iota
	// URLResolved means the final absolute URL is known.
	URLResolved
	// Connected means the transport connection was opened.
	Connected
	// HeadersSent means the request line and headers, including any
	// cookies from the jar, are set.
	HeadersSent
	// BodyWritten means the request body was written.
	BodyWritten
	// ResponseReceived means the status code was obtained.
	ResponseReceived
	// CookiesUpdated means the Set-Cookie headers were absorbed into the
	// jar.
	CookiesUpdated
	// BodyRead means the response body, if any, was read.
	BodyRead
	// Completed is the successful terminal state.
	Completed
	// Failed is the terminal state reachable from any other state.
	Failed
	stateSentinel
)

var stateNames = []string{
	"Created",
	"URLResolved",
	"Connected",
	"HeadersSent",
	"BodyWritten",
	"ResponseReceived",
	"CookiesUpdated",
	"BodyRead",
	"Completed",
	"Failed",
}

// States returns all states in the order a run visits them.
func States() []State {
	return []State{
		Created,
		URLResolved,
		Connected,
		HeadersSent,
		BodyWritten,
		ResponseReceived,
		CookiesUpdated,
		BodyRead,
		Completed,
		Failed,
	}
}

// Name returns the name of the state.
func (s State) Name() string {
	if s < 0 || s >= stateSentinel {
		return "Unknown"
	}
	return stateNames[s]
}

// String returns the name of the state.
func (s State) String() string {
	return s.Name()
}

// Terminal reports whether s is Completed or Failed.
func (s State) Terminal() bool {
	return s == Completed || s == Failed
}
