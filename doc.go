// Copyright 2026 The asynchttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package asynchttp provides an HTTP client which runs each request off
the caller's goroutine and delivers the result back on the caller's own
execution context, keeping the cookies it receives in a durable jar.

Create a Client and run a request spec synchronously:

	client := &asynchttp.Client{}
	r, err := client.Get("https://www.example.com")
	...
	if r.Err != nil {
		...
	}

Or submit it, naming the execution context on which the callback must
run. A Loop is a Resumer for a goroutine the caller owns:

	loop := asynchttp.NewLoop(16)
	s, err := request.NewSpec(request.POST, "/api/login", body)
	...
	f := client.Submit(s, loop, func(r *request.Result) {
		// Runs on the goroutine calling loop.Run.
	})
	...
	go loop.Run(ctx)

To send and keep cookies, give the client a jar over a durable store,
and to request relative paths, give it a config.Resolver holding the
base address:

	cookies, err := store.NewFile(afero.NewOsFs(), "/var/lib/app/cookies.json")
	...
	j, err := jar.New(cookies)
	...
	resolver := config.NewResolver(store.NewMemory())
	err = resolver.SetBase(config.Base{Scheme: "https", Host: "api.example.com"})
	...
	client := &asynchttp.Client{
		Jar:    j,
		Config: resolver,
	}

To hook into the fine-grained details of the client's request run,
install a handler into the appropriate handler chain:

	handlers := &asynchttp.HandlerGroup{}
	handlers.PushBack(asynchttp.BeforeSend, asynchttp.HandlerFunc(
		func(_ asynchttp.Event, r *request.Result) {
			r.Request.Header.Set("Authorization", token)
		}),
	)
	client := &asynchttp.Client{
		Handlers: handlers,
	}

Package asynchttp provides basic interfaces for each method of the client
(Doer, Submitter, Getter, Header, Deleter, Poster, Putter and Patcher); a
combined interface that composes all the basic methods (Executor); and
utility functions for working with a Doer (Inflate, Go, Get, Head,
Delete, Post, Put and Patch).
*/
package asynchttp
