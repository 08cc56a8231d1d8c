// Copyright 2026 The asynchttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"bytes"
	"fmt"
	"io"
	"net/url"
)

// BodyBytes buffers a body argument, as accepted by NewSpec, into the
// byte slice sent as the request body. A nil body yields a nil slice.
//
// Supported types are string, []byte (returned as is), url.Values
// (form-encoded), io.Reader (read to the end, then closed if it is also
// an io.Closer) and func(io.Writer) error (called once against a
// buffer). Any other type is an error.
func BodyBytes(body interface{}) ([]byte, error) {
	switch x := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return x, nil
	case string:
		return []byte(x), nil
	case url.Values:
		return []byte(x.Encode()), nil
	case func(io.Writer) error:
		var buf bytes.Buffer
		if err := x(&buf); err != nil {
			return nil, fmt.Errorf("asynchttp/request: write body: %w", err)
		}
		return buf.Bytes(), nil
	case io.Reader:
		return readBody(x)
	default:
		return nil, fmt.Errorf("asynchttp/request: unsupported body type %T", body)
	}
}

func readBody(r io.Reader) (b []byte, err error) {
	if c, ok := r.(io.Closer); ok {
		defer func() {
			if cerr := c.Close(); err == nil && cerr != nil {
				b, err = nil, fmt.Errorf("asynchttp/request: close body: %w", cerr)
			}
		}()
	}
	if b, err = io.ReadAll(r); err != nil {
		return nil, fmt.Errorf("asynchttp/request: read body: %w", err)
	}
	return b, nil
}
