// Copyright 2026 The asynchttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package config holds the client configuration: the optional base address
used to resolve relative request paths and the default connect and read
timeouts.

A Resolver keeps these values in a durable store.SetStore namespace, so
they survive restarts. It is an explicit object: construct one at
process start, optionally seed it from a YAML File, and hand it to the
client that needs it.
*/
package config
