// Package metrics exposes Prometheus instruments for the HTTP surface.
//
// Every Metrics value owns its registry, so tests and several app
// instances never collide on the process-wide default registerer.
//
//	m := metrics.New("trustform")
//	r.Use(m.Middleware)
//	r.Handle("/metrics", m.Handler())
//
// Request durations are labelled with the chi route pattern instead of the
// raw path, which keeps MAC addresses and ids out of label values.
package metrics
