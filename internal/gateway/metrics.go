// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Streamside Contributors

package gateway

import "github.com/prometheus/client_golang/prometheus"

// Metrics contains Prometheus metrics for gateway traffic.
type Metrics struct {
	RequestsTotal *prometheus.CounterVec
	RetriesTotal  *prometheus.CounterVec
}

// NewMetrics creates and registers gateway metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "streamside_gateway_requests_total",
				Help: "Total number of gateway requests by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
		RetriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "streamside_gateway_retries_total",
				Help: "Total number of transient-failure retries by operation",
			},
			[]string{"operation"},
		),
	}

	reg.MustRegister(m.RequestsTotal)
	reg.MustRegister(m.RetriesTotal)

	return m
}
