/*
Package observability exposes engine activity as Prometheus metrics.

Metrics are fed through domain.LifecycleHooks, so the engine itself carries
no metrics dependency:

	m := observability.NewMetrics(prometheus.DefaultRegisterer)
	eng, _ := bpmnpath.New(bpmnpath.WithSource(src), bpmnpath.WithLifecycleHooks(m.Hooks()))
*/
package observability
