package observability

import (
	"context"

	"github.com/aretw0/bpmnpath/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "bpmnpath"

// Metrics holds the collectors updated by the engine hooks.
type Metrics struct {
	Searches      *prometheus.CounterVec
	SearchHops    prometheus.Histogram
	Fetches       *prometheus.CounterVec
	FetchDuration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Searches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "searches_total",
				Help:      "Total number of path searches by outcome (found, not_found).",
			},
			[]string{"outcome"},
		),
		SearchHops: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "search_hops",
				Help:      "Number of sequence flows in found paths.",
				Buckets:   prometheus.LinearBuckets(0, 2, 10),
			},
		),
		Fetches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "definition_fetches_total",
				Help:      "Total number of definition loads by source and outcome (hit, fetched, error).",
			},
			[]string{"source", "outcome"},
		),
		FetchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "definition_fetch_seconds",
				Help:      "Duration of definition loads.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"source"},
		),
	}

	if reg != nil {
		reg.MustRegister(m.Searches, m.SearchHops, m.Fetches, m.FetchDuration)
	}
	return m
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnFetch: func(_ context.Context, e *domain.FetchEvent) {
			outcome := "fetched"
			switch {
			case e.Err != nil:
				outcome = "error"
			case e.CacheHit:
				outcome = "hit"
			}
			m.Fetches.WithLabelValues(e.Source, outcome).Inc()
			m.FetchDuration.WithLabelValues(e.Source).Observe(e.Duration.Seconds())
		},
		OnSearch: func(_ context.Context, e *domain.SearchEvent) {
			if !e.Found {
				m.Searches.WithLabelValues("not_found").Inc()
				return
			}
			m.Searches.WithLabelValues("found").Inc()
			m.SearchHops.Observe(float64(e.Hops))
		},
	}
}

// Chain merges several hook sets; each callback runs in order.
func Chain(hooks ...domain.LifecycleHooks) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnFetch: func(ctx context.Context, e *domain.FetchEvent) {
			for _, h := range hooks {
				if h.OnFetch != nil {
					h.OnFetch(ctx, e)
				}
			}
		},
		OnSearch: func(ctx context.Context, e *domain.SearchEvent) {
			for _, h := range hooks {
				if h.OnSearch != nil {
					h.OnSearch(ctx, e)
				}
			}
		},
	}
}
