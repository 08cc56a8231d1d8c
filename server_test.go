// Copyright 2026 The asynchttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package asynchttp

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/gogama/asynchttp/request"
)

var httpServer = httptest.NewUnstartedServer(http.HandlerFunc(serverHandler))
var httpsServer = httptest.NewUnstartedServer(http.HandlerFunc(serverHandler))
var servers = []*httptest.Server{httpServer, httpsServer}

func TestMain(m *testing.M) {
	httpServer.Start()
	httpsServer.StartTLS()
	code := m.Run()
	httpServer.Close()
	httpsServer.Close()
	os.Exit(code)
}

func serverName(server *httptest.Server) string {
	switch server {
	case httpServer:
		return "http"
	case httpsServer:
		return "https"
	default:
		panic("unknown server")
	}
}

// serverTLS returns the TLS configuration trusting server's certificate,
// or nil for a plain HTTP server.
func serverTLS(server *httptest.Server) *tls.Config {
	if server.TLS == nil {
		return nil
	}
	pool := x509.NewCertPool()
	pool.AddCert(server.Certificate())
	return &tls.Config{RootCAs: pool}
}

type bodyChunk struct {
	Pause time.Duration
	Data  []byte
}

// serverInstruction tells serverHandler how to respond. It travels as
// the JSON request body, so instructed requests are POSTs.
type serverInstruction struct {
	HeaderPause time.Duration
	StatusCode  int
	SetCookies  []string
	Body        []bodyChunk
}

func (i *serverInstruction) toJSON() []byte {
	b, err := json.Marshal(i)
	if err != nil {
		panic(err)
	}

	return b
}

func (i *serverInstruction) toSpec(ctx context.Context, server *httptest.Server) *request.Spec {
	s, err := request.NewSpecWithContext(ctx, request.POST, server.URL+"/instruct", i.toJSON())
	if err != nil {
		panic(err)
	}
	s.TLSConfig = serverTLS(server)

	return s
}

func serverHandler(w http.ResponseWriter, req *http.Request) {
	// Echo what the client sent so tests can inspect it.
	header := w.Header()
	header.Set("X-Echo-Method", req.Method)
	header.Set("X-Echo-Cookie", req.Header.Get("Cookie"))
	header.Set("X-Echo-User-Agent", req.Header.Get("User-Agent"))
	header.Set("X-Echo-Content-Type", req.Header.Get("Content-Type"))

	b, err := io.ReadAll(req.Body)
	_ = req.Body.Close()
	if err != nil {
		w.WriteHeader(500)
		return
	}

	if req.URL.Path != "/instruct" {
		_, _ = w.Write(b)
		return
	}

	// Decode the instructions.
	var i serverInstruction
	if err = json.Unmarshal(b, &i); err != nil || i.StatusCode == 0 {
		w.WriteHeader(400)
		_, _ = io.WriteString(w, fmt.Sprintf("bad instruction: %v", err))
		return
	}

	// Get the Flusher, panicking if it's not available.
	f, ok := w.(http.Flusher)
	if !ok {
		panic("w does not implement Flusher")
	}

	// Determine the content length of the response.
	contentLength := 0
	for _, chunk := range i.Body {
		contentLength += len(chunk.Data)
	}
	header.Set("Content-Length", strconv.Itoa(contentLength))
	for _, c := range i.SetCookies {
		header.Add("Set-Cookie", c)
	}

	// Sleep for the duration indicated by the pause field. This is done
	// to allow the client to play with timeouts.
	time.Sleep(i.HeaderPause)

	w.WriteHeader(i.StatusCode)
	f.Flush()

	// Write the response in chunks, pausing before each chunk.
	for _, chunk := range i.Body {
		time.Sleep(chunk.Pause)
		if _, err = w.Write(chunk.Data); err != nil {
			return
		}
		f.Flush()
	}
}
