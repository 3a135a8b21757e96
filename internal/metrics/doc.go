// Package metrics exposes sampling results as Prometheus metrics and reads
// the monitor's own runtime memory footprint.
package metrics
