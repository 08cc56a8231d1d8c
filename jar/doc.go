// Copyright 2026 The asynchttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package jar provides a durable cookie jar keyed by origin.

Cookies received in Set-Cookie headers are filed under the origin key of
the request URL and written through to a store.SetStore, so they are
restored when a new Jar is opened over the same storage:

	s, err := store.NewFile(afero.NewOsFs(), "/var/lib/app/cookies.json")
	if err != nil {
		return err
	}
	j, err := jar.New(s)
	if err != nil {
		return err
	}
	n, err := j.Absorb(u, resp.Header.Values("Set-Cookie"))

The Cookie request header built by CookieHeader carries every cookie in
the jar, regardless of origin. There is no domain, path, expiry or
secure-flag filtering.
*/
package jar
