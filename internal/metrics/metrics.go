// Package metrics declares the Prometheus collectors shared across packages.
// They register with the default registry and are exposed by the serve command.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ProviderAttempts counts fallback loop outcomes per provider.
	ProviderAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "conditions",
		Name:      "provider_attempts_total",
		Help:      "Weather provider attempts by provider and outcome.",
	}, []string{"provider", "outcome"})

	// CacheLookups counts postal code cache lookups by result (hit or miss).
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "conditions",
		Name:      "cache_lookups_total",
		Help:      "Postal code cache lookups by result.",
	}, []string{"result"})

	// Requests counts HTTP API requests by route and status code.
	Requests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "conditions",
		Name:      "http_requests_total",
		Help:      "HTTP API requests by route and status.",
	}, []string{"route", "status"})
)
