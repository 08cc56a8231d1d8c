// Copyright 2026 The asynchttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package cli

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gogama/asynchttp"
	"github.com/gogama/asynchttp/request"
	"github.com/spf13/cobra"
)

type requestOptions struct {
	data        string
	contentType string
	connect     time.Duration
	read        time.Duration
	include     bool
}

func (o *requestOptions) bind(cmd *cobra.Command, body bool) {
	if body {
		cmd.Flags().StringVarP(&o.data, "data", "d", "", "Request body")
		cmd.Flags().StringVarP(&o.contentType, "content-type", "t", "", "Content-Type header (default "+request.DefaultContentType+")")
	}
	cmd.Flags().DurationVar(&o.connect, "connect-timeout", 0, "Connect timeout (default from settings)")
	cmd.Flags().DurationVar(&o.read, "read-timeout", 0, "Read timeout (default from settings)")
	cmd.Flags().BoolVarP(&o.include, "include", "i", false, "Print the status line and response headers")
}

func newRequestCmd(a *app) *cobra.Command {
	var o requestOptions
	cmd := &cobra.Command{
		Use:   "request METHOD ADDRESS",
		Short: "Run a request with any method",
		Long: `Run a request and print the response body.

ADDRESS is an absolute URL, or a path resolved against the stored base
address. The body is printed for status 200 and for 400-599.

Examples:
  asynchttp request DELETE /items/7
  asynchttp request PUT /items/7 -d '{"name":"x"}' -i`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			method, err := request.ParseMethod(args[0])
			if err != nil {
				return err
			}
			return a.run(cmd, method, args[1], &o)
		},
	}
	o.bind(cmd, true)
	return cmd
}

func newGetCmd(a *app) *cobra.Command {
	var o requestOptions
	cmd := &cobra.Command{
		Use:   "get ADDRESS",
		Short: "Run a GET request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, request.GET, args[0], &o)
		},
	}
	o.bind(cmd, false)
	return cmd
}

func newPostCmd(a *app) *cobra.Command {
	var o requestOptions
	cmd := &cobra.Command{
		Use:   "post ADDRESS",
		Short: "Run a POST request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, request.POST, args[0], &o)
		},
	}
	o.bind(cmd, true)
	return cmd
}

// run submits the request and waits for its callback on the command's
// goroutine.
func (a *app) run(cmd *cobra.Command, method request.Method, address string, o *requestOptions) error {
	var body interface{}
	if cmd.Flags().Changed("data") {
		body = o.data
	}
	s, err := request.NewSpecWithContext(cmd.Context(), method, address, body)
	if err != nil {
		return err
	}
	if o.contentType != "" {
		s.ContentType = o.contentType
	}
	s.ConnectTimeout = o.connect
	s.ReadTimeout = o.read

	ctx, stop := context.WithCancel(cmd.Context())
	defer stop()
	loop := asynchttp.NewLoop(1)
	var r *request.Result
	f := a.client.Submit(s, loop, func(res *request.Result) {
		r = res
		stop()
	})
	_ = loop.Run(ctx)
	if r == nil {
		// Cancelled before the callback arrived.
		r = f.Result()
	}

	return printResult(cmd.OutOrStdout(), r, o.include)
}

func printResult(w io.Writer, r *request.Result, include bool) error {
	if r.Err != nil {
		return r.Err
	}
	if include {
		fmt.Fprintf(w, "%d %s\n", r.StatusCode, http.StatusText(r.StatusCode))
		if err := r.Header.Write(w); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}
	_, err := w.Write(r.Body)
	return err
}
