// Copyright 2026 The asynchttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package asynchttp

import "strconv"

// An Event identifies the event type when installing or running a
// Handler. Install event handlers in a Client to extend it with custom
// functionality.
type Event int

const (
	// BeforeExecutionStart identifies the event that occurs before the
	// request run starts.
	//
	// When Client fires BeforeExecutionStart, the result is non-nil
	// but the only fields that have been set are the ID, the spec and
	// the state, which is request.Created.
	BeforeExecutionStart Event = iota
	// AfterResolve identifies the event that occurs after the request
	// address has been resolved to an absolute URL, before the
	// connection is opened.
	//
	// When Client fires AfterResolve, the result's URL field is set.
	AfterResolve
	// BeforeSend identifies the event that occurs after the HTTP
	// request has been built, with its headers and body, but before it
	// is sent over the open connection.
	//
	// When Client fires BeforeSend, the result's request field is set
	// to the HTTP request that WILL BE sent after all BeforeSend
	// handlers have finished. Handlers may add or change headers, but
	// should clone reference-typed fields before changing them.
	BeforeSend
	// BeforeReadBody identifies the event that occurs after the
	// response status and headers have been received and the cookie
	// jar updated, but before the response body is read.
	//
	// Note that BeforeReadBody fires for every received response,
	// whether or not its status causes the body to be read.
	BeforeReadBody
	// AfterExecutionEnd identifies the event that occurs after the run
	// ends, successfully or not, and after the connection has been
	// released.
	//
	// When Client fires AfterExecutionEnd, the result is in its final
	// state. AfterExecutionEnd fires even for cancelled runs whose
	// callback is suppressed.
	AfterExecutionEnd
	// eventSentinel provides the total number of events typed as an
	// Event.
	eventSentinel

	// numEvents provides the total number of events types as an int.
	numEvents = int(eventSentinel)
)

var eventNames = []string{
	"BeforeExecutionStart",
	"AfterResolve",
	"BeforeSend",
	"BeforeReadBody",
	"AfterExecutionEnd",
}

// Events returns a slice containing all events which can occur in a
// request run by Client, in the order in which they would occur.
func Events() []Event {
	return []Event{
		BeforeExecutionStart,
		AfterResolve,
		BeforeSend,
		BeforeReadBody,
		AfterExecutionEnd,
	}
}

// Name returns the name of the event, or "Event(n)" for a value outside
// the defined set.
func (evt Event) Name() string {
	if evt < 0 || evt >= eventSentinel {
		return "Event(" + strconv.Itoa(int(evt)) + ")"
	}
	return eventNames[evt]
}

// String returns the name of the event.
func (evt Event) String() string {
	return evt.Name()
}
