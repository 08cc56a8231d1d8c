// Copyright 2026 The asynchttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package asynchttp

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gogama/asynchttp/config"
	"github.com/gogama/asynchttp/failure"
	"github.com/gogama/asynchttp/jar"
	"github.com/gogama/asynchttp/logger"
	"github.com/gogama/asynchttp/request"
	"github.com/gogama/asynchttp/timeout"
	"github.com/gogama/asynchttp/transport"
	"github.com/google/uuid"
)

// UserAgent is the User-Agent header value sent by clients which do not
// specify their own.
const UserAgent = "asynchttp/1.0"

var emptyHandlers = HandlerGroup{}

// A Client runs request specs, one connection per request, and keeps
// the cookies received from servers in a durable jar. Its zero value is
// a valid configuration.
//
// The zero value client uses transport.DefaultOpener to open
// connections, keeps no cookies, has no base address (so only absolute
// addresses can be requested), uses timeout.Default, and logs nothing.
//
// Client is safe for concurrent use by multiple goroutines. Clients
// sharing one Jar share its cookies.
//
// Each run of a request spec moves through the states defined in
// package request:
//
// • the address is resolved against Config's base address unless it is
// already absolute (request.URLResolved);
//
// • a dedicated connection is opened, securing it with the spec's TLS
// configuration for https (request.Connected);
//
// • the request is framed with the User-Agent, the Content-Type and a
// Cookie header carrying every cookie in the jar, then sent together
// with the body if the spec has one (request.HeadersSent and
// request.BodyWritten);
//
// • the status line and headers are received (request.ResponseReceived),
// and every Set-Cookie value is absorbed into the jar under the
// resolved URL's origin (request.CookiesUpdated);
//
// • the body is read fully if the status is 200 or in the range
// 400-599, and discarded otherwise (request.BodyRead).
//
// The first failing step ends the run in request.Failed with a
// *failure.Error captured on the result; the connection is released on
// every path. There are no retries.
type Client struct {
	// Opener opens the connection for each run.
	//
	// If Opener is nil, transport.DefaultOpener is used.
	Opener transport.Opener
	// Jar supplies the outgoing Cookie header and absorbs incoming
	// Set-Cookie headers.
	//
	// If Jar is nil, no Cookie header is sent and received cookies are
	// ignored.
	Jar *jar.Jar
	// Config resolves relative addresses and supplies the default
	// timeouts. The default timeouts are read once at the start of each
	// run.
	//
	// If Config is nil, relative addresses fail with a configuration
	// failure and timeout.Default applies.
	Config *config.Resolver
	// Handlers allows custom handler chains to be invoked when
	// designated events occur during a run.
	//
	// If Handlers is nil, no custom handlers will be run.
	Handlers *HandlerGroup
	// Logger receives a line per completed run and a warning per
	// failed run.
	//
	// If Logger is nil, nothing is logged.
	Logger logger.Logger
	// UserAgent overrides the User-Agent header value.
	//
	// If UserAgent is empty, the UserAgent constant is used.
	UserAgent string
}

// Do runs a request spec synchronously on the calling goroutine and
// returns the result.
//
// The returned Result is never nil. Do never returns an error: every
// failure, including failure to connect and a cancelled context, is
// captured on the Result's Err field as a *failure.Error. A non-2XX
// status code is not a failure. Callers must check Err before trusting
// StatusCode or Body.
//
// To run a spec off the calling goroutine and receive the result as a
// callback, use Submit.
func (c *Client) Do(s *request.Spec) *request.Result {
	if s == nil {
		panic("asynchttp: nil spec")
	}

	r := &request.Result{
		ID:            uuid.NewString(),
		Spec:          s,
		State:         request.Created,
		ContentLength: -1,
	}

	handlers := c.Handlers
	if handlers == nil {
		handlers = &emptyHandlers
	}
	handlers.run(BeforeExecutionStart, r)
	r.Start = time.Now()

	c.execute(s, r, handlers)

	r.End = time.Now()
	c.logEnd(r)
	handlers.run(AfterExecutionEnd, r)
	return r
}

// Submit runs a request spec on a new goroutine and delivers the result
// to cb by way of the Resumer rr, which represents the caller's
// execution context.
//
// The callback is invoked exactly once unless the run is cancelled,
// through Future.Cancel or the spec's context, before its connection was
// opened; a run cancelled that early never invokes the callback. An
// expired context deadline is not a cancellation and is called back as
// a connection failure. The
// returned Future can be used to cancel the run or to wait for its
// result.
//
// If rr is nil, Inline is used. If cb is nil, no callback is made.
func (c *Client) Submit(s *request.Spec, rr Resumer, cb Callback) *Future {
	return Go(c, s, rr, cb)
}

func (c *Client) execute(s *request.Spec, r *request.Result, handlers *HandlerGroup) {
	ctx := s.Context()
	t := c.timeouts(s)

	// URL_RESOLVED
	if cancelled(ctx) {
		fail(r, failure.Cancelled, "resolve", ctx.Err())
		return
	}
	u, err := c.resolve(s)
	if err != nil {
		kind := failure.URLSyntax
		if errors.Is(err, config.ErrNoBase) {
			kind = failure.Config
		}
		fail(r, kind, "resolve", err)
		return
	}
	if scheme := strings.ToLower(u.Scheme); scheme != "http" && scheme != "https" {
		fail(r, failure.URLSyntax, "resolve", errors.New("unsupported scheme "+u.Scheme))
		return
	}
	r.URL = u
	r.State = request.URLResolved
	handlers.run(AfterResolve, r)

	// CONNECTED
	if cancelled(ctx) {
		fail(r, failure.Cancelled, "connect", ctx.Err())
		return
	}
	conn, err := c.opener().Open(ctx, u, s.TLSConfig, t)
	if err != nil {
		kind := failure.Connection
		if cancelled(ctx) {
			kind = failure.Cancelled
		}
		fail(r, kind, "connect", err)
		return
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			c.log().Warning("[asynchttp] %s: error releasing connection to %s: %v", r.ID, u.Host, cerr)
		}
	}()
	r.State = request.Connected

	// HEADERS_SENT
	method, err := request.ParseMethod(string(s.Method))
	if err == nil && !method.Valid() {
		err = errors.New("unsupported method " + string(method))
	}
	if err != nil {
		fail(r, failure.Protocol, "frame", err)
		return
	}
	var body []byte
	if s.HasBody() {
		if body, err = requestBody(s); err != nil {
			fail(r, failure.IO, "write body", err)
			return
		}
	}
	req, err := http.NewRequestWithContext(ctx, string(method), u.String(), bodyReader(s, body))
	if err != nil {
		fail(r, failure.Protocol, "frame", err)
		return
	}
	req.Header.Set("User-Agent", c.userAgent())
	req.Header.Set("Content-Type", s.EffectiveContentType())
	if c.Jar != nil {
		if h := c.Jar.CookieHeader(); h != "" {
			req.Header.Set("Cookie", h)
		}
	}
	r.Request = req
	handlers.run(BeforeSend, r)
	r.State = request.HeadersSent
	if s.HasBody() {
		r.State = request.BodyWritten
	}

	// RESPONSE_RECEIVED
	resp, err := conn.Do(r.Request)
	if err != nil {
		fail(r, failure.Connection, "exchange", err)
		return
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	r.Response = resp
	r.StatusCode = resp.StatusCode
	r.Header = resp.Header
	r.ContentLength = resp.ContentLength
	r.State = request.ResponseReceived

	// COOKIES_UPDATED
	if c.Jar != nil {
		if _, err = c.Jar.Absorb(u, resp.Header.Values("Set-Cookie")); err != nil {
			c.log().Error("[asynchttp] %s: cookies from %s not persisted: %v", r.ID, u.Host, err)
		}
	}
	r.State = request.CookiesUpdated
	handlers.run(BeforeReadBody, r)

	// BODY_READ
	if readsBody(r.StatusCode) {
		b, err := io.ReadAll(r.Response.Body)
		r.Body = b
		if err != nil {
			fail(r, failure.IO, "read body", err)
			return
		}
	}
	r.State = request.BodyRead

	r.State = request.Completed
}

// cancelled reports whether ctx was explicitly cancelled. An expired
// deadline is not a cancellation: it fails the run like any other
// connection failure and the callback still runs.
func cancelled(ctx context.Context) bool {
	return errors.Is(ctx.Err(), context.Canceled)
}

func fail(r *request.Result, kind failure.Kind, op string, err error) {
	var addr string
	if r.URL != nil {
		addr = r.URL.String()
	} else {
		addr = r.Spec.Address
	}
	r.Err = failure.New(kind, op, addr, err)
	r.State = request.Failed
}

// readsBody reports whether the body of a response with the given status
// is read: the success body for 200, the error body for 400-599.
func readsBody(status int) bool {
	return status == http.StatusOK || (status >= 400 && status <= 599)
}

func requestBody(s *request.Spec) ([]byte, error) {
	if s.WriteBody == nil {
		return s.Body, nil
	}
	var buf bytes.Buffer
	if err := s.WriteBody(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func bodyReader(s *request.Spec, body []byte) io.Reader {
	if !s.HasBody() {
		return nil
	}
	return bytes.NewReader(body)
}

func (c *Client) resolve(s *request.Spec) (*url.URL, error) {
	if c.Config != nil {
		return c.Config.Resolve(s.Address)
	}
	if !s.IsAbsolute() {
		if _, err := url.Parse(s.Address); err != nil {
			return nil, err
		}
		return nil, config.ErrNoBase
	}
	return url.Parse(s.Address)
}

func (c *Client) timeouts(s *request.Spec) timeout.Config {
	t := timeout.Default
	if c.Config != nil {
		t = t.Merge(c.Config.Defaults())
	}
	return t.Merge(timeout.Config{
		Connect: s.ConnectTimeout,
		Read:    s.ReadTimeout,
	})
}

func (c *Client) opener() transport.Opener {
	if c.Opener == nil {
		return transport.DefaultOpener
	}

	return c.Opener
}

func (c *Client) userAgent() string {
	if c.UserAgent == "" {
		return UserAgent
	}

	return c.UserAgent
}

func (c *Client) log() logger.Logger {
	return logger.OrNop(c.Logger)
}

func (c *Client) logEnd(r *request.Result) {
	method := strings.ToUpper(string(r.Spec.EffectiveMethod()))
	if r.Err != nil {
		c.log().Warning("[asynchttp] %s %s %s failed in %s: %v", r.ID, method, r.Spec.Address, r.Duration(), r.Err)
		return
	}
	c.log().Info("[asynchttp] %s %s %s -> %d in %s", r.ID, method, r.URL, r.StatusCode, r.Duration())
}
