// Copyright 2026 The asynchttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package jar

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Format returns the wire-text form of c, "name=value[; attr=...]", as
// used in Set-Cookie headers and in durable storage.
func Format(c *http.Cookie) string {
	return c.String()
}

// Parse parses the wire-text form of a single cookie, as found in a
// Set-Cookie header value or in durable storage.
func Parse(text string) (*http.Cookie, error) {
	c, err := http.ParseSetCookie(text)
	if err != nil {
		return nil, fmt.Errorf("asynchttp/jar: malformed cookie %q: %w", text, err)
	}
	return c, nil
}

// Pair returns the "name=value" form of c sent in a Cookie request
// header.
func Pair(c *http.Cookie) string {
	return (&http.Cookie{Name: c.Name, Value: c.Value}).String()
}

// Equal reports whether a and b identify the same cookie: equal names
// and domains, ignoring case, and equal paths.
func Equal(a, b *http.Cookie) bool {
	return strings.EqualFold(a.Name, b.Name) &&
		strings.EqualFold(a.Domain, b.Domain) &&
		a.Path == b.Path
}

// Key returns the origin key under which cookies received from u are
// filed: the scheme, host, port and path of u. The scheme and host are
// lower-cased, an empty port is dropped, an empty path becomes "/", and
// user information, query and fragment are discarded.
//
// Keys are matched exactly. There is no domain or path scoping between
// keys.
func Key(u *url.URL) string {
	k := url.URL{
		Scheme: strings.ToLower(u.Scheme),
		Host:   strings.ToLower(strings.TrimSuffix(u.Host, ":")),
		Path:   u.Path,
	}
	if k.Path == "" {
		k.Path = "/"
	}
	return k.String()
}

// ParseKey parses a durable origin key back into a URL. It fails unless
// key is an absolute URL with a scheme and host.
func ParseKey(key string) (*url.URL, error) {
	u, err := url.Parse(key)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.New("asynchttp/jar: origin key is not an absolute URL")
	}
	return u, nil
}
