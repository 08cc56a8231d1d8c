// Copyright 2026 The asynchttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package asynchttp

import (
	"github.com/gogama/asynchttp/request"
)

// Doer is the interface that wraps the basic Do method.
//
// Do runs a request spec synchronously and returns its result, which
// is never nil and carries any failure in its Err field. Client
// implements the Doer interface, and any other Doer implementation
// must behave substantially the same as Client.Do.
//
// Any Doer can be converted into an Executor via the Inflate function.
type Doer interface {
	Do(s *request.Spec) *request.Result
}

// Submitter is the interface that wraps the basic Submit method.
//
// Submit runs a request spec asynchronously and delivers its result to
// a callback on the execution context represented by a Resumer. Client
// implements the Submitter interface, and any other Submitter
// implementation must behave substantially the same as Client.Submit.
//
// Any Doer can be used to emulate a Submitter via the Go function.
type Submitter interface {
	Submit(s *request.Spec, rr Resumer, cb Callback) *Future
}

// Getter is the interface that wraps the basic Get method.
//
// Get runs a GET of the specified address, which may be absolute or
// relative to the configured base address.
//
// Any Doer can be used to emulate a Getter via the Get function.
type Getter interface {
	Get(address string) (*request.Result, error)
}

// Header is the interface that wraps the basic Head method.
//
// Any Doer can be used to emulate a Header via the Head function.
type Header interface {
	Head(address string) (*request.Result, error)
}

// Deleter is the interface that wraps the basic Delete method.
//
// Any Doer can be used to emulate a Deleter via the Delete function.
type Deleter interface {
	Delete(address string) (*request.Result, error)
}

// Poster is the interface that wraps the basic Post method.
//
// The body parameter may be nil for an empty body, or any type accepted
// by request.BodyBytes.
//
// Any Doer can be used to emulate a Poster via the Post function.
type Poster interface {
	Post(address, contentType string, body interface{}) (*request.Result, error)
}

// Putter is the interface that wraps the basic Put method.
//
// Any Doer can be used to emulate a Putter via the Put function.
type Putter interface {
	Put(address, contentType string, body interface{}) (*request.Result, error)
}

// Patcher is the interface that wraps the basic Patch method.
//
// Any Doer can be used to emulate a Patcher via the Patch function.
type Patcher interface {
	Patch(address, contentType string, body interface{}) (*request.Result, error)
}

// Executor is the interface that groups the basic Do and Submit
// methods with the per-method helpers.
//
// Any Doer can be converted into an Executor via the Inflate function.
type Executor interface {
	Doer
	Submitter
	Getter
	Header
	Deleter
	Poster
	Putter
	Patcher
}

// Get uses the specified Doer to run a GET of the specified address.
//
// The returned error is non-nil only if the spec could not be
// constructed, in which case d.Do is not called. Failures of the run
// itself are reported on the returned Result.
func Get(d Doer, address string) (*request.Result, error) {
	return do(d, request.GET, address, "", nil)
}

// Head uses the specified Doer to run a HEAD of the specified address.
func Head(d Doer, address string) (*request.Result, error) {
	return do(d, request.HEAD, address, "", nil)
}

// Delete uses the specified Doer to run a DELETE of the specified
// address.
func Delete(d Doer, address string) (*request.Result, error) {
	return do(d, request.DELETE, address, "", nil)
}

// Post uses the specified Doer to run a POST of body to the specified
// address. An empty contentType means request.DefaultContentType.
func Post(d Doer, address, contentType string, body interface{}) (*request.Result, error) {
	return do(d, request.POST, address, contentType, body)
}

// Put uses the specified Doer to run a PUT of body to the specified
// address. An empty contentType means request.DefaultContentType.
func Put(d Doer, address, contentType string, body interface{}) (*request.Result, error) {
	return do(d, request.PUT, address, contentType, body)
}

// Patch uses the specified Doer to run a PATCH of body to the specified
// address. An empty contentType means request.DefaultContentType.
func Patch(d Doer, address, contentType string, body interface{}) (*request.Result, error) {
	return do(d, request.PATCH, address, contentType, body)
}

func do(d Doer, method request.Method, address, contentType string, body interface{}) (*request.Result, error) {
	s, err := request.NewSpec(method, address, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		s.ContentType = contentType
	}
	return d.Do(s), nil
}

// Get runs a GET of the specified address, using the same behavior as
// Do.
func (c *Client) Get(address string) (*request.Result, error) {
	return Get(c, address)
}

// Head runs a HEAD of the specified address, using the same behavior as
// Do.
func (c *Client) Head(address string) (*request.Result, error) {
	return Head(c, address)
}

// Delete runs a DELETE of the specified address, using the same
// behavior as Do.
func (c *Client) Delete(address string) (*request.Result, error) {
	return Delete(c, address)
}

// Post runs a POST to the specified address, using the same behavior as
// Do.
func (c *Client) Post(address, contentType string, body interface{}) (*request.Result, error) {
	return Post(c, address, contentType, body)
}

// Put runs a PUT to the specified address, using the same behavior as
// Do.
func (c *Client) Put(address, contentType string, body interface{}) (*request.Result, error) {
	return Put(c, address, contentType, body)
}

// Patch runs a PATCH to the specified address, using the same behavior
// as Do.
func (c *Client) Patch(address, contentType string, body interface{}) (*request.Result, error) {
	return Patch(c, address, contentType, body)
}

// Inflate converts any non-nil Doer into an Executor. This may be
// helpful for interop across library boundaries, i.e. if code that only
// has access to a Doer needs to call a function that requires an
// Executor.
func Inflate(d Doer) Executor {
	if d == nil {
		panic("asynchttp: nil doer")
	}

	if e, ok := d.(Executor); ok {
		return e
	}

	return inflated{d}
}

type inflated struct {
	doer Doer
}

func (i inflated) Do(s *request.Spec) *request.Result {
	return i.doer.Do(s)
}

func (i inflated) Submit(s *request.Spec, rr Resumer, cb Callback) *Future {
	return Go(i.doer, s, rr, cb)
}

func (i inflated) Get(address string) (*request.Result, error) {
	return Get(i.doer, address)
}

func (i inflated) Head(address string) (*request.Result, error) {
	return Head(i.doer, address)
}

func (i inflated) Delete(address string) (*request.Result, error) {
	return Delete(i.doer, address)
}

func (i inflated) Post(address, contentType string, body interface{}) (*request.Result, error) {
	return Post(i.doer, address, contentType, body)
}

func (i inflated) Put(address, contentType string, body interface{}) (*request.Result, error) {
	return Put(i.doer, address, contentType, body)
}

func (i inflated) Patch(address, contentType string, body interface{}) (*request.Result, error) {
	return Patch(i.doer, address, contentType, body)
}

var (
	_ Executor = (*Client)(nil)
	_ Executor = inflated{}
)
