// Copyright 2026 The asynchttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package failure

import (
	"errors"
	"syscall"
)

// A Cause is the low-level reason behind a transport error, as reported
// by Categorize.
type Cause int

const (
	// Other is any cause not covered by the remaining categories,
	// including a nil error.
	Other Cause = iota
	// Timeout indicates a connect or read timeout expired.
	//
	// Categorize returns Timeout if the error or any of its wrapped
	// causes has a Timeout method that reports true.
	Timeout
	// ConnRefused indicates the remote host refused the connection
	// (syscall.ECONNREFUSED).
	ConnRefused
	// ConnReset indicates the remote host reset a previously active TCP
	// connection (syscall.ECONNRESET).
	ConnReset
)

var causeNames = []string{
	"Other",
	"Timeout",
	"ConnRefused",
	"ConnReset",
}

// String returns the name of the cause.
func (c Cause) String() string {
	if c < 0 || int(c) >= len(causeNames) {
		return "Other"
	}
	return causeNames[c]
}

// Categorize returns the cause of err. It looks at wrapped cause errors
// contained within err, not just err itself: err is a timeout if any
// error in its chain reports one. A timeout takes precedence over the
// connection errno checks.
func Categorize(err error) Cause {
	if err == nil {
		return Other
	}

	for e := err; e != nil; e = errors.Unwrap(e) {
		if t, ok := e.(hasTimeout); ok && t.Timeout() {
			return Timeout
		}
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		if errno == syscall.ECONNRESET {
			return ConnReset
		} else if errno == syscall.ECONNREFUSED {
			return ConnRefused
		}
	}

	return Other
}

type hasTimeout interface {
	Timeout() bool
}
