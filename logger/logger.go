// Copyright 2026 The asynchttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package logger provides the small logging interface used by the
// client and the cookie jar, with a console implementation, a discarding
// implementation and a recording implementation for tests.
package logger

import (
	"fmt"
	"log"
	"sync"
)

// Logger is the logging interface used throughout asynchttp.
type Logger interface {
	// Info logs an informational message.
	Info(format string, args ...interface{})

	// Warning logs a condition that was handled, for example a
	// malformed Set-Cookie header that was skipped.
	Warning(format string, args ...interface{})

	// Error logs a failure.
	Error(format string, args ...interface{})
}

// Standard wraps a *log.Logger, prefixing each message with its level.
type Standard struct {
	logger *log.Logger
}

// NewStandard creates a logger that writes through l.
func NewStandard(l *log.Logger) *Standard {
	if l == nil {
		l = log.Default()
	}
	return &Standard{logger: l}
}

func (s *Standard) Info(format string, args ...interface{}) {
	s.logger.Printf("[INFO] "+format, args...)
}

func (s *Standard) Warning(format string, args ...interface{}) {
	s.logger.Printf("[WARNING] "+format, args...)
}

func (s *Standard) Error(format string, args ...interface{}) {
	s.logger.Printf("[ERROR] "+format, args...)
}

// Nop discards all messages.
type Nop struct{}

func (Nop) Info(string, ...interface{})    {}
func (Nop) Warning(string, ...interface{}) {}
func (Nop) Error(string, ...interface{})   {}

// OrNop returns l, or Nop if l is nil.
func OrNop(l Logger) Logger {
	if l == nil {
		return Nop{}
	}
	return l
}

// Recorder records every message, formatted, for verification in tests.
// It is safe for concurrent use.
type Recorder struct {
	mu       sync.Mutex
	infos    []string
	warnings []string
	errors   []string
}

func (r *Recorder) Info(format string, args ...interface{}) {
	r.record(&r.infos, format, args)
}

func (r *Recorder) Warning(format string, args ...interface{}) {
	r.record(&r.warnings, format, args)
}

func (r *Recorder) Error(format string, args ...interface{}) {
	r.record(&r.errors, format, args)
}

func (r *Recorder) record(dst *[]string, format string, args []interface{}) {
	msg := fmt.Sprintf(format, args...)
	r.mu.Lock()
	defer r.mu.Unlock()
	*dst = append(*dst, msg)
}

// Infos returns a copy of the recorded informational messages.
func (r *Recorder) Infos() []string {
	return r.snapshot(&r.infos)
}

// Warnings returns a copy of the recorded warnings.
func (r *Recorder) Warnings() []string {
	return r.snapshot(&r.warnings)
}

// Errors returns a copy of the recorded errors.
func (r *Recorder) Errors() []string {
	return r.snapshot(&r.errors)
}

func (r *Recorder) snapshot(src *[]string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), *src...)
}

var (
	_ Logger = (*Standard)(nil)
	_ Logger = Nop{}
	_ Logger = (*Recorder)(nil)
)
