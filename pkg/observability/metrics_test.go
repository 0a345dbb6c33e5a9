package observability_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aretw0/bpmnpath/pkg/domain"
	"github.com/aretw0/bpmnpath/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsHooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)
	hooks := m.Hooks()
	ctx := context.Background()

	hooks.OnSearch(ctx, &domain.SearchEvent{Found: true, Hops: 3})
	hooks.OnSearch(ctx, &domain.SearchEvent{Found: true, Hops: 1})
	hooks.OnSearch(ctx, &domain.SearchEvent{Found: false, Hops: -1})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Searches.WithLabelValues("found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Searches.WithLabelValues("not_found")))

	hooks.OnFetch(ctx, &domain.FetchEvent{Source: "camunda", Duration: time.Millisecond})
	hooks.OnFetch(ctx, &domain.FetchEvent{Source: "camunda", CacheHit: true})
	hooks.OnFetch(ctx, &domain.FetchEvent{Source: "camunda", Err: errors.New("down")})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Fetches.WithLabelValues("camunda", "fetched")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Fetches.WithLabelValues("camunda", "hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Fetches.WithLabelValues("camunda", "error")))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "bpmnpath_search_hops")
	assert.Contains(t, names, "bpmnpath_definition_fetch_seconds")
}

func TestChain(t *testing.T) {
	var order []string
	hooks := observability.Chain(
		domain.LifecycleHooks{OnSearch: func(context.Context, *domain.SearchEvent) { order = append(order, "first") }},
		domain.LifecycleHooks{},
		domain.LifecycleHooks{OnSearch: func(context.Context, *domain.SearchEvent) { order = append(order, "second") }},
	)

	hooks.OnSearch(context.Background(), &domain.SearchEvent{})
	hooks.OnFetch(context.Background(), &domain.FetchEvent{})
	assert.Equal(t, []string{"first", "second"}, order)
}
