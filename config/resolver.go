// Copyright 2026 The asynchttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gogama/asynchttp/store"
	"github.com/gogama/asynchttp/timeout"
)

const (
	keyScheme         = "base_scheme"
	keyHost           = "base_host"
	keyPort           = "base_port"
	keyConnectTimeout = "default_connect_timeout"
	keyReadTimeout    = "default_read_timeout"
)

// ErrNoBase is returned when a base address is required but none is
// configured.
var ErrNoBase = errors.New("asynchttp/config: no base address configured")

// A Base is a base address: the scheme, host and optional port against
// which relative request paths are resolved.
type Base struct {
	Scheme string
	Host   string
	// Port is the TCP port, or 0 to use the scheme's default port.
	Port int
}

// ParseBase parses an absolute URL such as "https://api.example.com:8443"
// into a Base. Any path, query or fragment is ignored.
func ParseBase(s string) (Base, error) {
	u, err := url.Parse(s)
	if err != nil {
		return Base{}, fmt.Errorf("asynchttp/config: invalid base address: %w", err)
	}
	b := Base{Scheme: u.Scheme, Host: u.Hostname()}
	if p := u.Port(); p != "" {
		if b.Port, err = strconv.Atoi(p); err != nil {
			return Base{}, fmt.Errorf("asynchttp/config: invalid base port %q", p)
		}
	}
	if err = b.validate(); err != nil {
		return Base{}, err
	}
	return b, nil
}

// String returns the base address in the form "scheme://host[:port]".
func (b Base) String() string {
	host := b.Host
	if b.Port != 0 {
		host = net.JoinHostPort(b.Host, strconv.Itoa(b.Port))
	} else if strings.Contains(host, ":") {
		host = "[" + host + "]"
	}
	return b.Scheme + "://" + host
}

func (b Base) validate() error {
	switch strings.ToLower(b.Scheme) {
	case "http", "https":
	default:
		return fmt.Errorf("asynchttp/config: unsupported base scheme %q", b.Scheme)
	}
	if b.Host == "" {
		return errors.New("asynchttp/config: empty base host")
	}
	if b.Port < 0 || b.Port > 65535 {
		return fmt.Errorf("asynchttp/config: base port %d out of range", b.Port)
	}
	return nil
}

// A Resolver holds the base address and default timeouts, persisting
// every change to its store before returning.
//
// A Resolver is safe for concurrent use. Clients read the default
// timeouts once at the start of each request run, so changing them does
// not affect runs already in flight.
type Resolver struct {
	mu    sync.RWMutex
	store store.SetStore
}

// NewResolver returns a Resolver over the configuration namespace s.
// The namespace must not be shared with the cookie jar.
func NewResolver(s store.SetStore) *Resolver {
	if s == nil {
		panic("asynchttp/config: nil store")
	}
	return &Resolver{store: s}
}

// HasBase reports whether a base address is configured.
func (r *Resolver) HasBase() bool {
	_, err := r.Base()
	return err == nil
}

// Base returns the configured base address, or ErrNoBase if none is
// configured.
func (r *Resolver) Base() (Base, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	scheme, ok, err := store.GetString(r.store, keyScheme)
	if err != nil {
		return Base{}, err
	}
	if !ok {
		return Base{}, ErrNoBase
	}
	host, ok, err := store.GetString(r.store, keyHost)
	if err != nil {
		return Base{}, err
	}
	if !ok {
		return Base{}, ErrNoBase
	}
	port, _, err := store.GetInt(r.store, keyPort)
	if err != nil {
		return Base{}, err
	}
	return Base{Scheme: scheme, Host: host, Port: port}, nil
}

// SetBase validates and persists b as the base address.
func (r *Resolver) SetBase(b Base) error {
	if err := b.validate(); err != nil {
		return err
	}
	b.Scheme = strings.ToLower(b.Scheme)
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := store.PutString(r.store, keyScheme, b.Scheme); err != nil {
		return err
	}
	if err := store.PutString(r.store, keyHost, b.Host); err != nil {
		return err
	}
	if b.Port == 0 {
		return r.store.Delete(keyPort)
	}
	return store.PutInt(r.store, keyPort, b.Port)
}

// ClearBase removes the base address.
func (r *Resolver) ClearBase() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, k := range []string{keyScheme, keyHost, keyPort} {
		if err := r.store.Delete(k); err != nil {
			return err
		}
	}
	return nil
}

// ConnectTimeout returns the default connect timeout, or
// timeout.Default.Connect if none was set.
func (r *Resolver) ConnectTimeout() (time.Duration, error) {
	return r.duration(keyConnectTimeout, timeout.Default.Connect)
}

// SetConnectTimeout persists d as the default connect timeout.
func (r *Resolver) SetConnectTimeout(d time.Duration) error {
	return r.setDuration(keyConnectTimeout, d)
}

// ReadTimeout returns the default read timeout, or
// timeout.Default.Read if none was set.
func (r *Resolver) ReadTimeout() (time.Duration, error) {
	return r.duration(keyReadTimeout, timeout.Default.Read)
}

// SetReadTimeout persists d as the default read timeout.
func (r *Resolver) SetReadTimeout(d time.Duration) error {
	return r.setDuration(keyReadTimeout, d)
}

// Defaults returns a snapshot of the default timeouts. Values which
// cannot be read fall back to timeout.Default.
func (r *Resolver) Defaults() timeout.Config {
	c := timeout.Default
	if d, err := r.ConnectTimeout(); err == nil {
		c.Connect = d
	}
	if d, err := r.ReadTimeout(); err == nil {
		c.Read = d
	}
	return c
}

// Resolve turns a request address into an absolute URL.
//
// An absolute address, one with both a scheme and a host, is used
// verbatim. Anything else is treated as a path and appended to the
// base address exactly as given; if no base is configured Resolve
// returns ErrNoBase. A malformed address or result is reported as a
// *url.Error.
func (r *Resolver) Resolve(address string) (*url.URL, error) {
	u, err := url.Parse(address)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "" && u.Host != "" {
		return u, nil
	}
	b, err := r.Base()
	if err != nil {
		return nil, err
	}
	return url.Parse(b.String() + address)
}

func (r *Resolver) duration(key string, def time.Duration) (time.Duration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok, err := store.GetDuration(r.store, key)
	if err != nil {
		return def, err
	}
	if !ok {
		return def, nil
	}
	return d, nil
}

func (r *Resolver) setDuration(key string, d time.Duration) error {
	if d < 0 {
		return fmt.Errorf("asynchttp/config: negative timeout %s", d)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if d == 0 {
		return r.store.Delete(key)
	}
	return store.PutDuration(r.store, key, d)
}
