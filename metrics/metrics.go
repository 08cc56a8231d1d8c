// Copyright 2026 The asynchttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package metrics exports Prometheus metrics about the request runs of
// an asynchttp.Client.
package metrics

import (
	"strconv"

	"github.com/gogama/asynchttp"
	"github.com/gogama/asynchttp/request"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for request runs.
type Metrics struct {
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge
	CookiesReceived  prometheus.Counter
}

// New creates the metrics and registers them with reg. If reg is nil,
// prometheus.DefaultRegisterer is used.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Metrics{
		RequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "asynchttp",
				Name:      "requests_total",
				Help:      "Total number of request runs by method, status code and failure kind",
			},
			[]string{"method", "code", "kind"},
		),
		RequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "asynchttp",
				Name:      "request_duration_seconds",
				Help:      "Request run latency histogram",
				Buckets:   prometheus.ExponentialBuckets(0.001, 2, 15), // 1ms to ~16s
			},
			[]string{"method"},
		),
		RequestsInFlight: f.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "asynchttp",
				Name:      "requests_in_flight",
				Help:      "Current number of request runs in progress",
			},
		),
		CookiesReceived: f.NewCounter(
			prometheus.CounterOpts{
				Namespace: "asynchttp",
				Name:      "cookies_received_total",
				Help:      "Total number of Set-Cookie header values received",
			},
		),
	}
}

// Install adds handlers to g which keep m up to date with every run of
// a client using g.
func (m *Metrics) Install(g *asynchttp.HandlerGroup) {
	g.PushBack(asynchttp.BeforeExecutionStart, asynchttp.HandlerFunc(func(asynchttp.Event, *request.Result) {
		m.RequestsInFlight.Inc()
	}))
	g.PushBack(asynchttp.BeforeReadBody, asynchttp.HandlerFunc(func(_ asynchttp.Event, r *request.Result) {
		m.CookiesReceived.Add(float64(len(r.Header.Values("Set-Cookie"))))
	}))
	g.PushBack(asynchttp.AfterExecutionEnd, asynchttp.HandlerFunc(func(_ asynchttp.Event, r *request.Result) {
		m.RequestsInFlight.Dec()
		m.RecordResult(r)
	}))
}

// RecordResult records the outcome of a finished run. Runs which failed
// before a status was received are recorded with code "0".
func (m *Metrics) RecordResult(r *request.Result) {
	method := string(r.Spec.EffectiveMethod())
	kind := "none"
	if r.Err != nil {
		kind = r.Kind().Name()
	}

	m.RequestsTotal.WithLabelValues(method, strconv.Itoa(r.StatusCode), kind).Inc()
	m.RequestDuration.WithLabelValues(method).Observe(r.Duration().Seconds())
}

// WriteTextfile writes every metric gathered by g to path in the
// Prometheus text format, for collection by a node exporter textfile
// collector. If g is nil, prometheus.DefaultGatherer is used.
func WriteTextfile(g prometheus.Gatherer, path string) error {
	if g == nil {
		g = prometheus.DefaultGatherer
	}
	return prometheus.WriteToTextfile(path, g)
}
