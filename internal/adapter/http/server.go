// Package http exposes the agent's local control and observability
// surface: widget state, the operations a UI needs (locate, search,
// pick a place, change units), and the usual health and metrics routes.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pocketwx/pocketwx/internal/domain"
	"github.com/pocketwx/pocketwx/internal/session"
	"github.com/pocketwx/pocketwx/internal/store"
)

// Server exposes the agent over local HTTP.
type Server struct {
	httpServer *http.Server
	baseCtx    context.Context
	ctrl       *session.Controller
	search     *session.SearchSession
	prefs      *store.Store
	view       *View
	logger     *slog.Logger
}

// NewServer creates the agent server. baseCtx bounds the background
// work started by handlers, so it must outlive individual requests.
func NewServer(addr string, baseCtx context.Context, ctrl *session.Controller, search *session.SearchSession, prefs *store.Store, view *View, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		baseCtx: baseCtx,
		ctrl:    ctrl,
		search:  search,
		prefs:   prefs,
		view:    view,
		logger:  logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /v1/state", s.handleState)
	mux.HandleFunc("GET /v1/suggestions", s.handleSuggestions)
	mux.HandleFunc("POST /v1/locate", s.handleLocate)
	mux.HandleFunc("POST /v1/refresh", s.handleRefresh)
	mux.HandleFunc("POST /v1/location", s.handleLocation)
	mux.HandleFunc("POST /v1/query", s.handleQuery)
	mux.HandleFunc("PUT /v1/units", s.handleUnits)
	mux.HandleFunc("PUT /v1/theme", s.handleTheme)
	mux.HandleFunc("DELETE /v1/recents", s.handleRemoveRecent)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	if !s.ctrl.Ready() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "no forecast loaded yet"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

type statusView struct {
	Text    string `json:"text"`
	IsError bool   `json:"is_error"`
}

type currentView struct {
	domain.CurrentConditions
	PressureMmHg int `json:"pressure_mmhg"`
}

type stateResponse struct {
	Units           domain.Units         `json:"units"`
	Theme           domain.Theme         `json:"theme"`
	Loading         bool                 `json:"loading"`
	Status          statusView           `json:"status"`
	Location        *domain.Location     `json:"location,omitempty"`
	Recents         []domain.Location    `json:"recents"`
	Current         *currentView         `json:"current,omitempty"`
	Hourly          []domain.HourlyPoint `json:"hourly,omitempty"`
	Daily           []domain.DailyCard   `json:"daily,omitempty"`
	Recommendations []string             `json:"recommendations,omitempty"`
	FetchedAt       *time.Time           `json:"fetched_at,omitempty"`
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	prefs := s.prefs.Load()
	text, isErr := s.view.Status()

	resp := stateResponse{
		Units:    s.ctrl.Units(),
		Theme:    prefs.Theme,
		Loading:  s.ctrl.Loading(),
		Status:   statusView{Text: text, IsError: isErr},
		Location: s.ctrl.Location(),
		Recents:  prefs.Recents,
	}
	if resp.Recents == nil {
		resp.Recents = []domain.Location{}
	}

	if snap := s.ctrl.Snapshot(); snap != nil {
		pressure := snap.Current.PressureMSL
		if pressure == 0 {
			pressure = snap.Current.SurfacePressure
		}
		resp.Current = &currentView{
			CurrentConditions: snap.Current,
			PressureMmHg:      domain.PressureMmHg(pressure),
		}
		resp.Hourly = domain.HourlyNext(snap, domain.DefaultHourlyWindow)
		resp.Daily = domain.DailyCards(snap)
		resp.Recommendations = domain.Recommendations(snap)
		fetched := snap.FetchedAt
		resp.FetchedAt = &fetched
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSuggestions(w http.ResponseWriter, _ *http.Request) {
	query, results := s.view.Suggestions()
	writeJSON(w, http.StatusOK, map[string]any{
		"query":   query,
		"results": results,
	})
}

func (s *Server) handleLocate(w http.ResponseWriter, _ *http.Request) {
	s.ctrl.Locate(s.baseCtx, session.ReasonManual)
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleRefresh(w http.ResponseWriter, _ *http.Request) {
	s.ctrl.Refresh(s.baseCtx)
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleLocation(w http.ResponseWriter, r *http.Request) {
	var loc domain.Location
	if err := json.NewDecoder(r.Body).Decode(&loc); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid location payload"})
		return
	}
	if loc.Latitude == 0 && loc.Longitude == 0 && loc.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "location requires coordinates"})
		return
	}

	s.search.Reset()
	s.ctrl.Load(s.baseCtx, loc, session.ReasonManual)
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid query payload"})
		return
	}

	s.search.QueryChanged(s.baseCtx, body.Text)
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleUnits(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Units domain.Units `json:"units"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || !body.Units.Valid() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "units must be metric or imperial"})
		return
	}

	s.ctrl.SetUnits(s.baseCtx, body.Units)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleTheme(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Theme domain.Theme `json:"theme"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || !body.Theme.Valid() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "theme must be auto, light or dark"})
		return
	}

	s.prefs.Update(func(rec *domain.PreferenceRecord) {
		rec.Theme = body.Theme
	})
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRemoveRecent(w http.ResponseWriter, r *http.Request) {
	lat, errLat := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lon, errLon := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if errLat != nil || errLon != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "lat and lon query parameters are required"})
		return
	}

	s.ctrl.RemoveRecent(lat, lon)
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort local response
}
