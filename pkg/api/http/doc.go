// Package http implements the optional status server exposed while a run
// is in flight: health, Prometheus metrics, and a run progress snapshot.
package http
