/*
Package observability turns drag/drop lifecycle events into logs and metrics.

Metrics exposes Prometheus counters fed by domain.LifecycleHooks; LoggingHooks
emits one structured log line per event; Compose fans a single hook set out to
several consumers.
*/
package observability
