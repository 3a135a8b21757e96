package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agbru/handlewatch/internal/logging"
	"github.com/agbru/handlewatch/internal/metrics"
)

// ShutdownTimeout bounds graceful shutdown once the serving context ends.
const ShutdownTimeout = 5 * time.Second

// Metrics tracks the HTTP surface itself and serves the exporter registry.
type Metrics struct {
	activeRequests prometheus.Gauge
	requestsTotal  *prometheus.CounterVec
	handler        http.Handler
}

// NewMetrics registers the HTTP metrics on the exporter's registry. A nil
// exporter gets a fresh one.
func NewMetrics(exporter *metrics.Exporter) *Metrics {
	if exporter == nil {
		exporter = metrics.NewExporter()
	}
	m := &Metrics{
		activeRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "handlewatch", Subsystem: "http", Name: "active_requests",
			Help: "Requests currently being served.",
		}),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "handlewatch", Subsystem: "http", Name: "requests_total",
			Help: "Requests served by path and status code.",
		}, []string{"path", "code"}),
	}
	reg := exporter.Registry()
	reg.MustRegister(m.activeRequests, m.requestsTotal)
	m.handler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
	return m
}

// IncrementActiveRequests marks a request as started.
func (m *Metrics) IncrementActiveRequests() { m.activeRequests.Inc() }

// DecrementActiveRequests marks a request as finished.
func (m *Metrics) DecrementActiveRequests() { m.activeRequests.Dec() }

// WritePrometheus writes the registry in the Prometheus text format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}

// Server exposes /metrics and /healthz.
type Server struct {
	addr     string
	metrics  *Metrics
	logger   logging.Logger
	security SecurityConfig
}

// New creates a Server listening on addr once Serve is called.
func New(addr string, exporter *metrics.Exporter, logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Server{
		addr:     addr,
		metrics:  NewMetrics(exporter),
		logger:   logger,
		security: DefaultSecurityConfig(),
	}
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", SecurityMiddleware(s.security, s.metricsMiddleware(s.handleMetrics)))
	mux.HandleFunc("/healthz", SecurityMiddleware(s.security, s.metricsMiddleware(s.handleHealth)))
	return mux
}

// Serve listens on the configured address until ctx is done, then shuts
// down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("metrics listener on %s: %w", s.addr, err)
	}
	return s.serve(ctx, ln)
}

func (s *Server) serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	s.logger.Info("metrics endpoint listening", logging.String("addr", ln.Addr().String()))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("metrics server shutdown: %w", err)
	}
	return nil
}

func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		defer s.metrics.DecrementActiveRequests()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)
		s.metrics.requestsTotal.WithLabelValues(r.URL.Path, strconv.Itoa(rec.status)).Inc()
	}
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		s.logger.Debug("rejected metrics request", logging.String("method", r.Method))
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.metrics.WritePrometheus(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
