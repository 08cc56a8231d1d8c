// Copyright 2026 The asynchttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"crypto/tls"
	"errors"
	"io"
	urlpkg "net/url"
	"strings"
	"time"
)

const (
	nilCtxMsg = "asynchttp/request: nil context"

	// DefaultContentType is the Content-Type sent when a Spec does not
	// name one.
	DefaultContentType = "application/json; charset=utf-8"
)

// A Spec describes exactly one request attempt for execution by a
// client.
//
// The target is given by Address, which is either an absolute URL
// ("https://example.com/a") or a path ("/a") to be resolved against the
// base address configured on the client. Everything else the client
// needs to frame the request (method, content type, timeouts, TLS
// context and body) is carried on the Spec as well.
//
// A Spec should be treated as immutable once constructed. The client
// never modifies a Spec, so the same Spec may safely be submitted more
// than once, each submission being a separate request run.
type Spec struct {
	// Address is the absolute URL or the relative path of the request.
	Address string

	// Method specifies the HTTP method. An empty string means GET.
	Method Method

	// ContentType is sent as the Content-Type request header. An empty
	// string means DefaultContentType.
	ContentType string

	// ConnectTimeout overrides the configured default connect timeout
	// when positive.
	ConnectTimeout time.Duration

	// ReadTimeout overrides the configured default read timeout when
	// positive.
	ReadTimeout time.Duration

	// TLSConfig optionally supplies the TLS context used to secure the
	// connection. When nil, the transport's defaults apply.
	TLSConfig *tls.Config

	// Body is the pre-buffered request body.
	Body []byte

	// WriteBody, if set, is called to produce the request body instead
	// of Body. Its output is buffered completely before anything is
	// sent, so an error from WriteBody fails the run without a partial
	// request reaching the server.
	WriteBody func(w io.Writer) error

	// ctx allows the run to be cancelled. It should only be modified by
	// copying the whole Spec using WithContext.
	ctx context.Context
}

// NewSpec wraps NewSpecWithContext using the background context.
func NewSpec(method Method, address string, body interface{}) (*Spec, error) {
	return NewSpecWithContext(context.Background(), method, address, body)
}

// NewSpecWithContext returns a new Spec given a method, address, and
// optional body.
//
// Parameter body may be any type accepted by BodyBytes. It is buffered
// once, here, so the resulting Spec can be run any number of times.
//
// The method is not checked against the supported set here; an
// unsupported method is reported as a protocol failure when the Spec is
// run.
func NewSpecWithContext(ctx context.Context, method Method, address string, body interface{}) (*Spec, error) {
	if ctx == nil {
		return nil, errors.New(nilCtxMsg)
	}
	method, err := ParseMethod(string(method))
	if err != nil {
		return nil, err
	}
	if address == "" {
		return nil, errors.New("asynchttp/request: empty address")
	}
	b, err := BodyBytes(body)
	if err != nil {
		return nil, err
	}
	return &Spec{
		ctx:         ctx,
		Address:     address,
		Method:      method,
		ContentType: DefaultContentType,
		Body:        b,
	}, nil
}

// Context returns the Spec's context. The returned context is always
// non-nil; it defaults to the background context.
func (s *Spec) Context() context.Context {
	if s.ctx != nil {
		return s.ctx
	}
	return context.Background()
}

// WithContext returns a shallow copy of s with its context changed to
// ctx, which must be non-nil.
func (s *Spec) WithContext(ctx context.Context) *Spec {
	if ctx == nil {
		panic(nilCtxMsg)
	}
	s2 := new(Spec)
	*s2 = *s
	s2.ctx = ctx
	return s2
}

// IsAbsolute reports whether Address is an absolute URL, i.e. has both
// a scheme and a host. A Spec that is not absolute requires a configured
// base address.
func (s *Spec) IsAbsolute() bool {
	u, err := urlpkg.Parse(s.Address)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

// EffectiveMethod returns Method, or GET if Method is empty.
func (s *Spec) EffectiveMethod() Method {
	if s.Method == "" {
		return GET
	}
	return s.Method
}

// EffectiveContentType returns ContentType, or DefaultContentType if
// ContentType is empty.
func (s *Spec) EffectiveContentType() string {
	if s.ContentType == "" {
		return DefaultContentType
	}
	return s.ContentType
}

// HasBody reports whether a run of s writes a request body. A body is
// written for every POST, and for any other method that supplies
// non-empty Body bytes or a WriteBody function.
func (s *Spec) HasBody() bool {
	return strings.EqualFold(string(s.EffectiveMethod()), string(POST)) || len(s.Body) > 0 || s.WriteBody != nil
}
