package adapthttp

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"fittrack/internal/app"
	"fittrack/internal/metrics"
)

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	tracker   *app.TrackerService
	dashboard *app.DashboardService
	charts    *app.ChartsService
	transfer  *app.TransferService
	webDir    string

	logger   *slog.Logger
	metrics  *metrics.Manager
	gatherer prometheus.Gatherer
	limiter  *rate.Limiter
}

// New creates a Server wired to the given application services.
func New(ts *app.TrackerService, ds *app.DashboardService, cs *app.ChartsService, xs *app.TransferService, webDir string) *Server {
	return &Server{tracker: ts, dashboard: ds, charts: cs, transfer: xs, webDir: webDir}
}

// WithLogger sets the logger used for request logs. The default is
// slog.Default().
func (s *Server) WithLogger(l *slog.Logger) *Server {
	s.logger = l
	return s
}

// WithMetrics records request metrics into m and serves g on /metrics.
func (s *Server) WithMetrics(m *metrics.Manager, g prometheus.Gatherer) *Server {
	s.metrics = m
	s.gatherer = g
	return s
}

// WithRateLimit limits /api requests to rps with the given burst.
func (s *Server) WithRateLimit(rps float64, burst int) *Server {
	s.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	api.HandleFunc("/profile", s.handleProfile)

	api.HandleFunc("/entries", s.handleEntries)
	api.HandleFunc("/entries/today", s.handleEntryToday)
	api.HandleFunc("/entries/", s.handleEntryByDate)

	api.HandleFunc("/dashboard", s.handleDashboard)
	api.HandleFunc("/charts/weight", s.handleChartsWeight)

	api.HandleFunc("/export/json", s.handleExportJSON)
	api.HandleFunc("/export/csv", s.handleExportCSV)
	api.HandleFunc("/import", s.handleImport)
	api.HandleFunc("/data", s.handleData)

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", s.rateLimitMiddleware(api)))
	if s.gatherer != nil {
		root.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	root.Handle("/", spaFromDisk(s.webDir))

	return s.recoverMiddleware(s.requestIDMiddleware(s.loggingMiddleware(s.metricsMiddleware(withNoCache(root)))))
}

func (s *Server) log() *slog.Logger {
	if s.logger != nil {
		return s.logger
	}
	return slog.Default()
}
