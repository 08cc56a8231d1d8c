// Copyright 2026 The asynchttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package failure

import (
	"errors"
	"strings"
)

// A Kind identifies which step of a request run failed.
type Kind int

const (
	// Unknown is the kind reported for nil errors and for errors which
	// were not produced by a request run.
	Unknown Kind = iota
	// Config indicates a relative address was given but no base address
	// is configured.
	Config
	// URLSyntax indicates the absolute or resolved address is malformed.
	URLSyntax
	// Connection indicates the transport could not be opened, or the
	// exchange with the server failed before a status was obtained.
	Connection
	// Protocol indicates the request could not be framed, for example
	// because the method is not supported.
	Protocol
	// IO indicates a failure writing the request body or reading the
	// response body.
	IO
	// Parse indicates a malformed cookie. Parse failures are logged and
	// skipped, so they never terminate a request run.
	Parse
	// Cancelled indicates the run was cancelled before the transport
	// connection was opened.
	Cancelled
	kindSentinel
)

var kindNames = []string{
	"Unknown",
	"Config",
	"URLSyntax",
	"Connection",
	"Protocol",
	"IO",
	"Parse",
	"Cancelled",
}

// Kinds returns every Kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, kindSentinel)
	for i := range kinds {
		kinds[i] = Kind(i)
	}
	return kinds
}

// Name returns the name of the kind.
func (k Kind) Name() string {
	if k < 0 || k >= kindSentinel {
		return "Unknown"
	}
	return kindNames[k]
}

// String returns the name of the kind.
func (k Kind) String() string {
	return k.Name()
}

// Error is the error type captured on a request result. It records the
// Kind of failure, the operation that failed, the address being
// requested (if known) and the underlying cause.
type Error struct {
	Kind Kind
	Op   string
	URL  string
	Err  error
}

// New wraps err as an *Error of the given kind. If err already is (or
// wraps) an *Error, it is returned unchanged so the first classification
// of a failure wins. New returns nil if err is nil.
func New(kind Kind, op, url string, err error) error {
	if err == nil {
		return nil
	}

	var fe *Error
	if errors.As(err, &fe) {
		return err
	}

	return &Error{Kind: kind, Op: op, URL: url, Err: err}
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("asynchttp: ")
	b.WriteString(strings.ToLower(e.Kind.Name()))
	if e.Op != "" {
		b.WriteString(" error during ")
		b.WriteString(e.Op)
	} else {
		b.WriteString(" error")
	}
	if e.URL != "" {
		b.WriteString(" ")
		b.WriteString(e.URL)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Timeout reports whether the underlying cause is a timeout.
func (e *Error) Timeout() bool {
	return Categorize(e.Err) == Timeout
}

// KindOf returns the Kind of the first *Error found in err's chain, or
// Unknown if there is none.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return Unknown
}
