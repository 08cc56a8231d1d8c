// Copyright 2026 The asynchttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package transport opens the single-use connections over which the
// client performs request exchanges.
//
// An Opener connects to the host of a resolved URL, performing the TLS
// handshake for https, and returns a Conn good for exactly one
// request/response exchange. Separating the connect step from the
// exchange lets the client tell a failure to connect apart from a
// failure during the exchange, and lets tests substitute the network
// entirely.
package transport
