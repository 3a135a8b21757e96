// Package sampler implements the sampling-and-aggregation pass: process
// enumeration, prefix filtering, per-process reads, filtered totals and the
// system-wide USER object saturation estimate.
//
// The GUI object totals always cover every enumerated process. The filter
// narrows the rows that are reported, never the resource pressure figure.
package sampler
