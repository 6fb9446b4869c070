// Package metrics provides build observability hooks for blogbuilder.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so metrics cost nothing unless a real implementation is
// supplied:
//
//	recorder := metrics.NewPrometheusRecorder(registry)
//	builder := build.New(cfg, build.WithRecorder(recorder))
//
// The CLI activates the Prometheus recorder when --metrics-file is given and
// writes the registry in text exposition format after the build. The preview
// server exposes the same registry over HTTP.
package metrics
