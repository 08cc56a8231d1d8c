// Copyright 2026 The asynchttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package timeout defines the connect and read timeout pair applied to
// the transport connection of a single request run. Timeouts are
// enforced purely by the transport; there is no independent watchdog.
package timeout
