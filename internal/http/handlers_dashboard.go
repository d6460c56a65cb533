package http

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"

	"dashboard/internal/chart"
	"dashboard/internal/metrics"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type dashboardPage struct {
	Title       string
	ChartTitle  string
	ChartHeight int
}

// handleDashboard renders the overview page. The chart itself arrives through
// the /ui/revenue-chart partial.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "dashboard_page", dashboardPage{
		Title:       "Dashboard",
		ChartTitle:  chart.Title,
		ChartHeight: s.chart.Height(),
	})
}

// loadChart fetches the series once and records the render outcome.
func (s *Server) loadChart(ctx context.Context) (chart.View, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	view, err := s.chart.Load(ctx)
	switch {
	case err != nil:
		s.metrics.ChartRender(metrics.ResultError)
		slog.ErrorContext(ctx, "Failed to fetch revenue", "error", err)
	case view.Empty:
		s.metrics.ChartRender(metrics.ResultEmpty)
	default:
		s.metrics.ChartRender(metrics.ResultSuccess)
	}
	return view, err
}

// handleRevenueChart returns the revenue chart partial.
func (s *Server) handleRevenueChart(w http.ResponseWriter, r *http.Request) {
	view, err := s.loadChart(r.Context())
	if err != nil {
		InternalServerError("Failed to fetch revenue data.").Write(w)
		return
	}
	s.render(w, r, http.StatusOK, "revenue_chart", view)
}

func (s *Server) handleRevenueSVG(w http.ResponseWriter, r *http.Request) {
	view, err := s.loadChart(r.Context())
	if err != nil {
		s.serverError(w, r, "Failed to fetch revenue data.")
		return
	}
	var buf bytes.Buffer
	if err := chart.RenderSVG(&buf, view); err != nil {
		slog.ErrorContext(r.Context(), "SVG render failed", "error", err)
		s.serverError(w, r, "Failed to render revenue chart.")
		return
	}
	NewHTMXResponse().
		Header("Content-Type", "image/svg+xml").
		Header("Cache-Control", "no-store").
		Body(buf.Bytes()).
		Write(w)
}

func (s *Server) handleRevenueXLSX(w http.ResponseWriter, r *http.Request) {
	view, err := s.loadChart(r.Context())
	if err != nil {
		s.serverError(w, r, "Failed to fetch revenue data.")
		return
	}
	data, err := chart.BuildXLSX(view)
	if err != nil {
		slog.ErrorContext(r.Context(), "XLSX export failed", "error", err)
		s.serverError(w, r, "Failed to export revenue.")
		return
	}
	NewHTMXResponse().
		Header("Content-Type", xlsxContentType).
		Header("Content-Disposition", `attachment; filename="revenue.xlsx"`).
		Body(data).
		Write(w)
}
