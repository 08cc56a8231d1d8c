// Copyright 2026 The asynchttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gogama/asynchttp/timeout"
)

// A Conn is an open connection good for one request/response exchange.
type Conn interface {
	// Do sends r over the connection and returns the response. Do is
	// called at most once. Redirects are never followed.
	Do(r *http.Request) (*http.Response, error)

	// Close releases the connection. It is safe to call Close whether
	// or not Do was called, and after the response body was closed.
	Close() error
}

// An Opener opens connections.
type Opener interface {
	// Open connects to the host of u, securing the connection with
	// tlsConfig if u's scheme is https. The Connect timeout in t bounds
	// connecting and the TLS handshake; the Read timeout bounds each
	// subsequent read from the connection.
	Open(ctx context.Context, u *url.URL, tlsConfig *tls.Config, t timeout.Config) (Conn, error)
}

// The OpenerFunc type is an adapter to allow the use of ordinary
// functions as Openers.
type OpenerFunc func(ctx context.Context, u *url.URL, tlsConfig *tls.Config, t timeout.Config) (Conn, error)

// Open calls f(ctx, u, tlsConfig, t).
func (f OpenerFunc) Open(ctx context.Context, u *url.URL, tlsConfig *tls.Config, t timeout.Config) (Conn, error) {
	return f(ctx, u, tlsConfig, t)
}

// DefaultOpener is the Opener used by clients which do not specify one.
var DefaultOpener Opener = &Dialer{}

var errConnUsed = errors.New("asynchttp/transport: connection already used")

// A Dialer is an Opener which dials TCP connections.
//
// Every connection opened by a Dialer is dedicated to one exchange:
// connections are never pooled or reused, HTTP/2 is never negotiated,
// and no proxy is used.
type Dialer struct {
	// Resolver optionally specifies an alternate resolver to use when
	// dialing. See net.Dialer.
	Resolver *net.Resolver
}

// Open implements the Opener interface.
func (d *Dialer) Open(ctx context.Context, u *url.URL, tlsConfig *tls.Config, t timeout.Config) (Conn, error) {
	scheme := strings.ToLower(u.Scheme)
	var defaultPort string
	switch scheme {
	case "http":
		defaultPort = "80"
	case "https":
		defaultPort = "443"
	default:
		return nil, fmt.Errorf("asynchttp/transport: unsupported scheme %q", u.Scheme)
	}
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = defaultPort
	}

	nd := net.Dialer{
		Timeout:  t.Connect,
		Resolver: d.Resolver,
	}
	raw, err := nd.DialContext(ctx, "tcp", net.JoinHostPort(host, port))
	if err != nil {
		return nil, err
	}
	var nc net.Conn = &deadlineConn{Conn: raw, read: t.Read}

	if scheme == "https" {
		cfg := &tls.Config{}
		if tlsConfig != nil {
			cfg = tlsConfig.Clone()
		}
		if cfg.ServerName == "" {
			cfg.ServerName = host
		}
		cfg.NextProtos = []string{"http/1.1"}
		hsCtx := ctx
		if t.Connect > 0 {
			var cancel context.CancelFunc
			hsCtx, cancel = context.WithTimeout(ctx, t.Connect)
			defer cancel()
		}
		tc := tls.Client(nc, cfg)
		if err = tc.HandshakeContext(hsCtx); err != nil {
			_ = raw.Close()
			return nil, err
		}
		nc = tc
	}

	return newConn(nc), nil
}

type conn struct {
	mu     sync.Mutex
	nc     net.Conn
	client *http.Client
	tr     *http.Transport
}

func newConn(nc net.Conn) *conn {
	c := &conn{nc: nc}
	c.tr = &http.Transport{
		Proxy:             nil,
		DialContext:       c.take,
		DialTLSContext:    c.take,
		DisableKeepAlives: true,
		// A non-nil empty map disables HTTP/2.
		TLSNextProto: map[string]func(string, *tls.Conn) http.RoundTripper{},
	}
	c.client = &http.Client{
		Transport: c.tr,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return c
}

func (c *conn) take(context.Context, string, string) (net.Conn, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.nc == nil {
		return nil, errConnUsed
	}
	nc := c.nc
	c.nc = nil
	return nc, nil
}

func (c *conn) Do(r *http.Request) (*http.Response, error) {
	return c.client.Do(r)
}

func (c *conn) Close() error {
	c.mu.Lock()
	nc := c.nc
	c.nc = nil
	c.mu.Unlock()
	c.tr.CloseIdleConnections()
	if nc != nil {
		return nc.Close()
	}
	return nil
}

// deadlineConn bounds every Read by the read timeout.
type deadlineConn struct {
	net.Conn
	read time.Duration
}

func (c *deadlineConn) Read(p []byte) (int, error) {
	if c.read > 0 {
		if err := c.Conn.SetReadDeadline(time.Now().Add(c.read)); err != nil {
			return 0, err
		}
	}
	return c.Conn.Read(p)
}
