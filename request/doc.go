// Copyright 2026 The asynchttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package request contains the core types Spec (describes a request to
perform) and Result (describes the outcome of running a Spec).

A Spec names the target address, method, content type, timeouts,
optional TLS context and optional body of exactly one request attempt.
The address is either absolute or a path to be resolved against the
base address configured on the client:

	s, err := request.NewSpec(request.GET, "https://example.com/a", nil)
	...
	s, err := request.NewSpec(request.POST, "/upload", body)
	...

A Result is produced by the client for every run of a Spec. It records
the state the run reached, the status code, response headers and body,
or the captured failure. Callers check Err first:

	res := client.Do(s)
	if res.Err != nil {
		...
	}
	use(res.StatusCode, res.Body)

Method enumerates the closed set of supported HTTP methods and State
enumerates the steps a run moves through.
*/
package request
