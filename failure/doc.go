// Copyright 2026 The asynchttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package failure classifies the errors captured on a request result.
//
// Every fallible step of a request run stores its error on the result as
// an *Error carrying a Kind, so callers can branch on what went wrong
// without string matching:
//
//	res := client.Do(spec)
//	if res.Err != nil {
//		switch failure.KindOf(res.Err) {
//		case failure.Config:
//			...
//		}
//	}
//
// Categorize additionally reports the low-level cause of a transport
// error (timeout, connection refused, connection reset).
package failure
