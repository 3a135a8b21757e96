package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/agbru/handlewatch/internal/scheduler"
)

const namespace = "handlewatch"

// Exporter publishes the latest snapshot as gauges and counts passes.
// It owns a private registry so several exporters can coexist in tests.
type Exporter struct {
	registry *prometheus.Registry

	userObjects     prometheus.Gauge
	gdiObjects      prometheus.Gauge
	userSaturation  prometheus.Gauge
	processes       prometheus.Gauge
	matched         prometheus.Gauge
	filteredHandles prometheus.Gauge
	filteredThreads prometheus.Gauge
	filteredPagedKB prometheus.Gauge
	processHandles  *prometheus.GaugeVec
	passes          *prometheus.CounterVec
	passDuration    prometheus.Histogram
}

// NewExporter creates an Exporter with the Go runtime and process
// collectors registered alongside the handlewatch metrics.
func NewExporter() *Exporter {
	e := &Exporter{
		registry: prometheus.NewRegistry(),
		userObjects: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "system_user_objects",
			Help: "USER objects held by all visible processes.",
		}),
		gdiObjects: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "system_gdi_objects",
			Help: "GDI objects held by all visible processes.",
		}),
		userSaturation: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "user_saturation_percent",
			Help: "System USER objects as a percentage of the practical ceiling.",
		}),
		processes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "processes",
			Help: "Processes enumerated in the last pass.",
		}),
		matched: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "matched_processes",
			Help: "Processes matching the name filter in the last pass.",
		}),
		filteredHandles: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "filtered_handles",
			Help: "Open handles summed over the matched processes.",
		}),
		filteredThreads: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "filtered_threads",
			Help: "Threads summed over the matched processes.",
		}),
		filteredPagedKB: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "filtered_paged_pool_kilobytes",
			Help: "Paged pool summed over the matched processes.",
		}),
		processHandles: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Name: "process_handles",
			Help: "Open handles per matched process.",
		}, []string{"name", "pid"}),
		passes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "passes_total",
			Help: "Completed sampling passes by outcome.",
		}, []string{"result"}),
		passDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Name: "pass_duration_seconds",
			Help:    "Wall time of successful sampling passes.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
		}),
	}
	e.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		e.userObjects, e.gdiObjects, e.userSaturation, e.processes, e.matched,
		e.filteredHandles, e.filteredThreads, e.filteredPagedKB,
		e.processHandles, e.passes, e.passDuration,
	)
	return e
}

// Registry returns the registry backing the exporter.
func (e *Exporter) Registry() *prometheus.Registry {
	return e.registry
}

// Observe records a pass result. Failed passes only increment the error
// counter; the gauges keep the last good snapshot.
func (e *Exporter) Observe(r scheduler.Result) {
	if r.Err != nil {
		e.passes.WithLabelValues("error").Inc()
		return
	}
	e.passes.WithLabelValues("ok").Inc()

	s := r.Snapshot
	e.passDuration.Observe(s.Duration.Seconds())
	e.userObjects.Set(float64(s.SystemUserHandles))
	e.gdiObjects.Set(float64(s.SystemGdiHandles))
	e.userSaturation.Set(s.UserSaturationPercent)
	e.processes.Set(float64(s.ProcessCount))
	e.matched.Set(float64(len(s.Matched)))
	e.filteredHandles.Set(float64(s.FilteredTotals.Handles))
	e.filteredThreads.Set(float64(s.FilteredTotals.Threads))
	e.filteredPagedKB.Set(float64(s.FilteredTotals.PagedPoolKB))

	e.processHandles.Reset()
	for _, p := range s.Matched {
		e.processHandles.WithLabelValues(p.Name, strconv.Itoa(int(p.PID))).Set(float64(p.HandleCount))
	}
}
