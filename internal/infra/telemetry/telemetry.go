package telemetry

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/brightshield/insurance-portal/internal/infra/config"
)

// Provider represents a telemetry provider handle.
type Provider struct {
	quotesComputed prometheus.Counter
}

// Attach registers service-level collectors and returns a provider handle.
func Attach(_ context.Context, cfg *config.AppConfig) (*Provider, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}

	namespace := cfg.Telemetry.MetricsNamespace
	if namespace == "" {
		namespace = "portal"
	}

	quotesComputed := promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "quotes_computed_total",
		Help:      "Total number of premiums computed by the quote calculator",
	})

	return &Provider{quotesComputed: quotesComputed}, nil
}

// QuotesComputed exposes the premium-calculation counter.
func (p *Provider) QuotesComputed() prometheus.Counter {
	if p == nil {
		return prometheus.NewCounter(prometheus.CounterOpts{})
	}
	return p.quotesComputed
}
