// Package trucks exposes the analytics service over HTTP.
package trucks

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/kilianp07/adaptivelog/app"
	"github.com/kilianp07/adaptivelog/core/fleet"
	"github.com/kilianp07/adaptivelog/core/model"
	"github.com/kilianp07/adaptivelog/infra/logger"
)

// Service is the part of app.Service the handlers use.
type Service interface {
	Trucks(fleet.Filter) []model.Truck
	TruckAnalytics(ctx context.Context, id string) (model.AnalyticsBundle, error)
	AllAnalytics(ctx context.Context, f fleet.Filter) ([]model.AnalyticsBundle, error)
	Weather(ctx context.Context, location string) (model.WeatherReport, error)
	FleetStats() model.FleetStats
	Recommendations() []model.Recommendation
}

var _ Service = (*app.Service)(nil)

type handler struct {
	svc Service
	log logger.Logger
}

// NewRouter returns the API routes. timeout bounds each request; zero
// disables the limit.
func NewRouter(svc Service, timeout time.Duration) http.Handler {
	h := &handler{svc: svc, log: logger.New("api")}
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.logRequests)
	r.Use(middleware.Recoverer)
	if timeout > 0 {
		r.Use(middleware.Timeout(timeout))
	}

	r.Get("/healthz", h.health)
	r.Route("/api", func(r chi.Router) {
		r.Get("/trucks", h.listTrucks)
		r.Get("/trucks/{id}/analytics", h.truckAnalytics)
		r.Get("/analytics", h.allAnalytics)
		r.Get("/stats", h.stats)
		r.Get("/recommendations", h.recommendations)
		r.Get("/weather/{location}", h.weather)
	})
	return r
}

func (h *handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		h.log.Debugw("http request", map[string]any{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"duration":   time.Since(start).String(),
			"request_id": middleware.GetReqID(r.Context()),
		})
	})
}

func filterFrom(r *http.Request) fleet.Filter {
	q := r.URL.Query()
	return fleet.Filter{Status: model.TruckStatus(q.Get("status")), Destination: q.Get("destination")}
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) listTrucks(w http.ResponseWriter, r *http.Request) {
	f := filterFrom(r)
	if f.Status != "" && !f.Status.Valid() {
		h.writeError(w, http.StatusBadRequest, "unknown status "+string(f.Status))
		return
	}
	h.writeJSON(w, http.StatusOK, h.svc.Trucks(f))
}

func (h *handler) truckAnalytics(w http.ResponseWriter, r *http.Request) {
	b, err := h.svc.TruckAnalytics(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, b)
}

func (h *handler) allAnalytics(w http.ResponseWriter, r *http.Request) {
	bundles, err := h.svc.AllAnalytics(r.Context(), filterFrom(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, bundles)
}

func (h *handler) stats(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, h.svc.FleetStats())
}

func (h *handler) recommendations(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, h.svc.Recommendations())
}

func (h *handler) weather(w http.ResponseWriter, r *http.Request) {
	rep, err := h.svc.Weather(r.Context(), chi.URLParam(r, "location"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, rep)
}

// statusClientClosedRequest is the nginx convention for a request the client
// abandoned before a response was written.
const statusClientClosedRequest = 499

func (h *handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, app.ErrTruckNotFound):
		h.writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		// The timeout middleware answers 504 itself once the request deadline
		// has passed.
		if errors.Is(r.Context().Err(), context.DeadlineExceeded) {
			return
		}
		h.writeError(w, http.StatusGatewayTimeout, err.Error())
	case errors.Is(err, context.Canceled):
		w.WriteHeader(statusClientClosedRequest)
	default:
		h.log.Errorf("request failed: %v", err)
		h.writeError(w, http.StatusBadGateway, err.Error())
	}
}

type errorBody struct {
	Error string `json:"error"`
}

func (h *handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, errorBody{Error: msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Errorf("encode response: %v", err)
	}
}
