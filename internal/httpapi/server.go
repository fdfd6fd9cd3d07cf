package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/shekokarmahesh/Status-App-Backend/internal/domain"
	"github.com/shekokarmahesh/Status-App-Backend/internal/httpapi/middleware"
	"github.com/shekokarmahesh/Status-App-Backend/internal/metrics"
	"github.com/shekokarmahesh/Status-App-Backend/internal/probe"
	"github.com/shekokarmahesh/Status-App-Backend/internal/query"
	"github.com/shekokarmahesh/Status-App-Backend/internal/repo"
	"github.com/shekokarmahesh/Status-App-Backend/internal/scheduler"
)

type Server struct {
	Logger   *zap.Logger
	Monitors repo.MonitorStore
	Ticks    repo.TickStore
	Query    *query.Service
	Batch    *scheduler.Batch
	Prober   probe.Prober
}

func NewServer(l *zap.Logger, ms repo.MonitorStore, ts repo.TickStore, b *scheduler.Batch, p probe.Prober) *Server {
	return &Server{
		Logger:   l,
		Monitors: ms,
		Ticks:    ts,
		Query:    query.NewService(ms, ts),
		Batch:    b,
		Prober:   p,
	}
}

func (s *Server) Router(keys middleware.OwnerKeys, allowedOrigins []string, rpm, burst int) http.Handler {
	r := chi.NewRouter()

	if len(allowedOrigins) == 0 {
		r.Use(cors.AllowAll().Handler)
	} else {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: allowedOrigins,
			AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Authorization", "X-API-Key", "X-Owner-ID", "Content-Type"},
		}))
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api/websites", func(r chi.Router) {
		r.Use(middleware.RateLimit(rpm, burst))
		r.Use(middleware.RequireOwner(keys))

		r.Post("/", s.handleRegister)
		r.Get("/", s.handleList)
		r.Get("/status", s.handleStatus)
		r.Get("/history", s.handleHistory)
		r.Delete("/", s.handleDisable)
		r.Post("/ping", s.handlePing)
	})

	return r
}

type registerPayload struct {
	URL string `json:"url"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	owner := middleware.Owner(r.Context())

	var p registerPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "bad payload")
		return
	}
	raw := strings.TrimSpace(p.URL)
	if raw == "" {
		writeError(w, http.StatusBadRequest, "URL is required")
		return
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	if u, err := url.ParseRequestURI(raw); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		writeError(w, http.StatusBadRequest, "invalid URL")
		return
	}

	m := &domain.Monitor{URL: raw, OwnerID: owner}
	if err := s.Monitors.Create(r.Context(), m); err != nil {
		s.writeStoreError(w, err)
		return
	}

	// one synchronous probe so the caller sees a first tick immediately
	out := s.Prober.Probe(r.Context(), m.URL)
	tick := &domain.Tick{
		Status:         out.Status,
		ResponseTimeMS: out.ResponseTimeMS,
		Timestamp:      time.Now().UTC(),
	}
	if err := s.Ticks.Append(r.Context(), m.ID, tick); err != nil {
		s.Logger.Warn("register_first_tick_error",
			zap.String("monitor_id", string(m.ID)),
			zap.Error(err),
		)
	}

	s.Logger.Info("registered_website",
		zap.String("monitor_id", string(m.ID)),
		zap.String("owner_id", owner),
		zap.String("url", m.URL),
		zap.String("status", string(out.Status)),
		zap.Int64("response_time_ms", out.ResponseTimeMS),
	)

	writeJSON(w, http.StatusCreated, map[string]any{
		"id":     m.ID,
		"result": tick,
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	owner := middleware.Owner(r.Context())
	websites, err := s.Query.List(r.Context(), owner)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"websites": websites})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	owner := middleware.Owner(r.Context())
	id := r.URL.Query().Get("websiteId")
	if id == "" {
		writeError(w, http.StatusBadRequest, "Website ID is required")
		return
	}
	st, err := s.Query.Status(r.Context(), domain.MonitorID(id), owner)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	owner := middleware.Owner(r.Context())
	id := r.URL.Query().Get("websiteId")
	if id == "" {
		writeError(w, http.StatusBadRequest, "Website ID is required")
		return
	}

	var q repo.HistoryQuery
	if v := r.URL.Query().Get("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid from")
			return
		}
		q.From = t
	}
	if v := r.URL.Query().Get("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid to")
			return
		}
		q.To = t
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		q.Limit = n
	}

	ticks, err := s.Query.History(r.Context(), domain.MonitorID(id), owner, q)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	if ticks == nil {
		ticks = []domain.Tick{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"ticks": ticks})
}

type disablePayload struct {
	WebsiteID string `json:"websiteId"`
}

func (s *Server) handleDisable(w http.ResponseWriter, r *http.Request) {
	owner := middleware.Owner(r.Context())
	var p disablePayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil || p.WebsiteID == "" {
		writeError(w, http.StatusBadRequest, "Website ID is required")
		return
	}
	if _, err := s.Monitors.Disable(r.Context(), domain.MonitorID(p.WebsiteID), owner); err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Deleted website successfully"})
}

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	owner := middleware.Owner(r.Context())
	if err := s.Batch.Run(r.Context(), owner); err != nil {
		s.Logger.Warn("ping_batch_error", zap.String("owner_id", owner), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "batch run failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "All websites pinged successfully"})
}

func (s *Server) writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "Website not found")
	default:
		s.Logger.Error("store_error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
