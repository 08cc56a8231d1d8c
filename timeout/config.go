// Copyright 2026 The asynchttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package timeout

import "time"

// A Config holds the connect and read timeouts for a request run.
//
// Connect bounds establishing the transport connection, including the
// TLS handshake. Read bounds each individual read from the connection,
// so a slow but steady response never times out. A zero value means
// "not set" when merging and "no timeout" when applied.
type Config struct {
	Connect time.Duration
	Read    time.Duration
}

// Default is the built-in timeout configuration: 15 seconds to connect
// and 30 seconds per read.
var Default = Config{
	Connect: 15 * time.Second,
	Read:    30 * time.Second,
}

// Merge returns a copy of c in which every non-zero field of override
// replaces the corresponding field of c.
func (c Config) Merge(override Config) Config {
	if override.Connect > 0 {
		c.Connect = override.Connect
	}
	if override.Read > 0 {
		c.Read = override.Read
	}
	return c
}

// Valid reports whether neither timeout is negative.
func (c Config) Valid() bool {
	return c.Connect >= 0 && c.Read >= 0
}
