package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// handleHealth performs basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.started).Round(time.Second).String(),
	})
}

// handleReady performs readiness check with dependency verification
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	status := "ready"
	httpStatus := http.StatusOK
	checks := make(map[string]any)

	if s.templates == nil {
		checks["templates"] = "failed: templates not loaded"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["templates"] = "ok"
	}

	if p, ok := s.store.(pinger); ok {
		if err := p.Ping(ctx); err != nil {
			checks["store"] = fmt.Sprintf("failed: %v", err)
			status = "not_ready"
			httpStatus = http.StatusServiceUnavailable
		} else {
			checks["store"] = "ok"
		}
	} else {
		checks["store"] = "ok"
	}

	checks["rate_limiter"] = map[string]any{
		"active_clients": s.limiter.ActiveClients(),
		"status":         "ok",
	}
	checks["security"] = map[string]any{
		"suspicious_requests": s.detector.SuspiciousCount(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks":    checks,
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

type errorPage struct {
	Title   string
	Message string
	BackURL string
}

// handleNotFound renders a 404 page, or a bare fragment for htmx.
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.notFound(w, r, "The page you are looking for does not exist.")
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request, msg string) {
	if IsHTMX(r) {
		NotFoundError(msg).Write(w)
		return
	}
	s.render(w, r, http.StatusNotFound, "error_page", errorPage{
		Title:   "404 Not Found",
		Message: msg,
		BackURL: "/dashboard",
	})
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, msg string) {
	if IsHTMX(r) {
		InternalServerError(msg).Write(w)
		return
	}
	s.render(w, r, http.StatusInternalServerError, "error_page", errorPage{
		Title:   "Something went wrong!",
		Message: msg,
		BackURL: "/dashboard",
	})
}
