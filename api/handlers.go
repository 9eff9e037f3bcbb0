package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/finbrook/edgarscope/internal/growth"
	"github.com/finbrook/edgarscope/internal/insider"
	"github.com/finbrook/edgarscope/internal/metrics"
	"github.com/finbrook/edgarscope/internal/normalize"
	"github.com/finbrook/edgarscope/pkg/models"
)

// APIResponse is the uniform response envelope.
type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, resp APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

func writeData(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, APIResponse{Success: false, Error: err.Error()})
}

func intQuery(r *http.Request, key string, fallback int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeData(w, map[string]string{"status": "ok"})
}

// handleCatalog lists the supported metric definitions.
func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	writeData(w, metrics.All())
}

func (s *Server) handleMetric(w http.ResponseWriter, r *http.Request) {
	series, err := s.metricSeries(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeData(w, series)
}

func (s *Server) handleGrowth(w http.ResponseWriter, r *http.Request) {
	series, err := s.metricSeries(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	values := make([]float64, 0, len(series.DataPoints))
	for _, dp := range series.DataPoints {
		values = append(values, dp.Value)
	}

	writeData(w, struct {
		models.MetricSeries
		Calculations models.Calculations `json:"calculations"`
		Trend        string              `json:"trend,omitempty"`
	}{
		MetricSeries: *series,
		Calculations: growth.Growth(series.DataPoints),
		Trend:        growth.Signal(values),
	})
}

// metricSeries resolves the symbol, fetches company facts, and runs the
// normalization pipeline for a metric route.
func (s *Server) metricSeries(r *http.Request) (*models.MetricSeries, error) {
	symbol := chi.URLParam(r, "symbol")
	metricID := chi.URLParam(r, "metric")
	years := intQuery(r, "years", s.cfg.Metrics.DefaultYears)

	def, err := metrics.Lookup(metricID)
	if err != nil {
		return nil, err
	}

	cik, err := s.client.ResolveSymbol(r.Context(), symbol)
	if err != nil {
		return nil, err
	}

	facts, err := s.client.CompanyFacts(r.Context(), cik)
	if err != nil {
		return nil, err
	}

	series := normalize.Metric(facts, def, years)
	series.Symbol = symbol
	return &series, nil
}

func (s *Server) handleInsiders(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")
	days := intQuery(r, "days", s.cfg.Insider.LookbackDays)

	cik, err := s.client.ResolveSymbol(r.Context(), symbol)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	agg := insider.New(s.client, insider.Options{
		LookbackDays: s.cfg.Insider.LookbackDays,
		MaxFilings:   s.cfg.Insider.MaxFilings,
		BatchSize:    s.cfg.Insider.BatchSize,
		OnBatch: func(batch, total, fetched int) {
			s.hub.Broadcast(WSMessage{
				Type: "insider_progress",
				Payload: map[string]any{
					"symbol":  symbol,
					"batch":   batch,
					"batches": total,
					"fetched": fetched,
				},
			})
		},
	})

	activity, err := agg.Activity(r.Context(), cik, days)
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	activity.Symbol = symbol
	writeData(w, activity)
}

func (s *Server) handleFilings(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")
	formType := r.URL.Query().Get("type")
	count := intQuery(r, "count", 20)

	cik, err := s.client.ResolveSymbol(r.Context(), symbol)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	entries, err := s.client.RecentFilingsFeed(r.Context(), cik, formType, count)
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeData(w, entries)
}
