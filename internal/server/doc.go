// Package server serves the Prometheus endpoint for a running monitor.
package server
