/*
Package observability turns engine lifecycle hooks into Prometheus metrics
and structured log lines.

	metrics := observability.NewMetrics()
	eng, _ := minimaxviz.New(nodes, minimaxviz.WithLifecycleHooks(
		metrics.Hooks().Merge(observability.LogHooks(logger)),
	))
	http.Handle("/metrics", metrics.Handler())
*/
package observability
