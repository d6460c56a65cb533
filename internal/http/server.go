package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"dashboard/internal/cache"
	"dashboard/internal/chart"
	"dashboard/internal/invoices"
	applog "dashboard/internal/log"
	"dashboard/internal/metrics"
	"dashboard/internal/middleware/ratelimit"
	"dashboard/internal/middleware/security"
	"dashboard/internal/middleware/trace"
	"dashboard/internal/ports"
	appweb "dashboard/web"
)

// fetchTimeout bounds every backend read a handler performs.
const fetchTimeout = 7 * time.Second

// Deps are the collaborators the server renders from. Store, Update and
// Chart are required.
type Deps struct {
	Store ports.Store
	// Customers overrides Store for the customer select, typically a cache.
	Customers ports.CustomerLister
	Update    invoices.UpdateFunc
	Chart     *chart.Renderer

	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	// Caches is stopped on Shutdown when set.
	Caches *cache.Manager

	RateLimitPerMinute int
	Logger             *applog.Logger
}

type Server struct {
	http.Server
	templates *template.Template

	store     ports.Store
	customers ports.CustomerLister
	update    invoices.UpdateFunc
	chart     *chart.Renderer
	metrics   *metrics.Metrics
	caches    *cache.Manager

	limiter  *ratelimit.Limiter
	detector *security.Detector
	logger   *applog.Logger
	started  time.Time
}

// NewServer configures routes and templates, returning a ready-to-run http.Server.
func NewServer(addr string, deps Deps) (*Server, error) {
	if deps.Store == nil {
		return nil, errors.New("http: missing store")
	}
	if deps.Update == nil {
		return nil, errors.New("http: missing invoice updater")
	}
	if deps.Chart == nil {
		deps.Chart = chart.NewRenderer(deps.Store)
	}
	if deps.Customers == nil {
		deps.Customers = deps.Store
	}
	if deps.Logger == nil {
		deps.Logger = applog.Setup(applog.ComponentHTTP, slog.LevelInfo)
	}
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}

	t, err := template.New("").Funcs(templateFuncs()).ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("http: parse templates: %w", err)
	}

	s := &Server{
		templates: t,
		store:     deps.Store,
		customers: deps.Customers,
		update:    deps.Update,
		chart:     deps.Chart,
		metrics:   deps.Metrics,
		caches:    deps.Caches,
		limiter: ratelimit.NewLimiter(ratelimit.Config{
			RequestsPerMinute: deps.RateLimitPerMinute,
			CleanupInterval:   5 * time.Minute,
		}),
		detector: security.NewDetector(),
		logger:   deps.Logger,
		started:  time.Now(),
	}

	r := mux.NewRouter()
	r.NotFoundHandler = security.Headers(security.DefaultHeadersConfig())(http.HandlerFunc(s.handleNotFound))

	r.Use(
		trace.NewMiddleware(s.detector.ExtractClientIP, s.metrics).Middleware,
		applog.Middleware(s.logger),
		applog.RequestIDMiddleware(func(r *http.Request) string { return trace.GetRequestID(r.Context()) }),
		security.Headers(security.DefaultHeadersConfig()),
		s.detector.Middleware,
		s.limiter.Middleware(s.detector.ExtractClientIP, s.handleRateLimited, http.MethodPost),
	)

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		r.PathPrefix("/static/").Handler(security.StaticAssetMiddleware(3600)(static)).Methods(http.MethodGet)
	} else {
		s.logger.Warn("Failed to mount embedded static FS", "error", err)
	}

	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/readyz", s.handleReady).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	r.HandleFunc("/dashboard", s.handleDashboard).Methods(http.MethodGet)
	r.HandleFunc("/dashboard/revenue.svg", s.handleRevenueSVG).Methods(http.MethodGet)
	r.HandleFunc("/dashboard/revenue.xlsx", s.handleRevenueXLSX).Methods(http.MethodGet)
	r.HandleFunc(invoices.ListURL, s.handleInvoices).Methods(http.MethodGet)
	r.HandleFunc("/dashboard/invoices/{id}/edit", s.handleEditInvoice).Methods(http.MethodGet)
	r.HandleFunc("/dashboard/invoices/{id}/edit", s.handleUpdateInvoice).Methods(http.MethodPost)

	// UI partials
	r.HandleFunc("/ui/revenue-chart", s.handleRevenueChart).Methods(http.MethodGet)

	s.Server = http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s, nil
}

// Shutdown stops background cleanup and drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.limiter.Stop()
	if s.caches != nil {
		s.caches.Stop()
	}
	return s.Server.Shutdown(ctx)
}

// render executes the named template into a buffer first, so a failing
// template never leaves a half-written page behind.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution failed", "template", name, "error", err)
		InternalServerError("Something went wrong.").Write(w)
		return
	}
	NewHTMXResponse().Status(status).BodyHTML(buf.String()).Write(w)
}

func (s *Server) handleRateLimited(w http.ResponseWriter, r *http.Request) {
	slog.WarnContext(r.Context(), "Rate limit exceeded",
		"client_ip", s.detector.ExtractClientIP(r),
		"path", r.URL.Path)
	const msg = "Too many requests. Please try again later."
	resp := ErrorResponse(http.StatusTooManyRequests, msg)
	if IsHTMX(r) {
		resp.TriggerErrorNotification(msg)
	}
	resp.Write(w)
}
