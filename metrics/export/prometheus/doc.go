// Package prometheus bridges authgate's in-process counters to the
// Prometheus client library.
//
// [Exporter] is a prometheus.Collector reading from an engine's metrics
// snapshot on every scrape, so the instrumented hot paths stay on plain
// atomic counters and pay nothing for the export.
package prometheus
