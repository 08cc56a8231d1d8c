// Copyright 2026 The asynchttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"fmt"
	"strings"

	"golang.org/x/net/http/httpguts"
)

// A Method is one of the HTTP methods supported by the client. The set
// of methods is closed: requests with any other method fail with a
// protocol error before anything is sent.
type Method string

const (
	GET     Method = "GET"
	POST    Method = "POST"
	PUT     Method = "PUT"
	PATCH   Method = "PATCH"
	DELETE  Method = "DELETE"
	HEAD    Method = "HEAD"
	OPTIONS Method = "OPTIONS"
	TRACE   Method = "TRACE"
	CONNECT Method = "CONNECT"
)

// Methods returns every supported method.
func Methods() []Method {
	return []Method{GET, POST, PUT, PATCH, DELETE, HEAD, OPTIONS, TRACE, CONNECT}
}

// Valid reports whether m is one of the supported methods.
func (m Method) Valid() bool {
	switch m {
	case GET, POST, PUT, PATCH, DELETE, HEAD, OPTIONS, TRACE, CONNECT:
		return true
	default:
		return false
	}
}

// String returns the method as sent on the wire.
func (m Method) String() string {
	return string(m)
}

// ParseMethod converts s to a Method, ignoring case. The empty string
// means GET. ParseMethod returns an error if s is not a valid HTTP token;
// a well-formed token outside the supported set is returned as is, so
// the failure surfaces when the request is run.
func ParseMethod(s string) (Method, error) {
	if s == "" {
		return GET, nil
	}
	if !httpguts.ValidHeaderFieldName(s) {
		return "", fmt.Errorf("asynchttp/request: invalid method %q", s)
	}
	return Method(strings.ToUpper(s)), nil
}
