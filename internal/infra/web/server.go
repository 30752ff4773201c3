package web

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"telegram-numerology-bot/internal/usecase"
)

// Server exposes the operational HTTP surface: health probe, Prometheus
// metrics and a small JWT-protected stats API. The static web.api_key is
// only a login credential; everything behind /api/v1 wants a minted session
// token (Bearer header or admin cookie).
type Server struct {
	profileUC usecase.ProfileUseCase
	apiKey    string
	auth      *AuthManager
	startedAt time.Time
	log       *zerolog.Logger
}

func NewServer(profileUC usecase.ProfileUseCase, apiKey string, auth *AuthManager, logger *zerolog.Logger) *Server {
	return &Server{
		profileUC: profileUC,
		apiKey:    apiKey,
		auth:      auth,
		startedAt: time.Now(),
		log:       logger,
	}
}

// Router builds the chi router with all routes attached.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/api/v1/login", s.handleLogin)
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(s.authMiddleware)
		r.Get("/stats", s.handleStats)
		r.Post("/logout", s.handleLogout)
	})
	return r
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("numerology bot is running\n"))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"uptime": time.Since(s.startedAt).Truncate(time.Second).String(),
	})
}

// handleLogin exchanges the configured API key for a short-lived session JWT.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if s.apiKey == "" {
		s.log.Error().Msg("web.api_key is not configured")
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	key := bearerToken(r)
	if key == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if key != s.apiKey {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	token, err := s.auth.Mint(w)
	if err != nil {
		s.log.Error().Err(err).Msg("login: minting session token failed")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"token": token})
}

func (s *Server) handleLogout(w http.ResponseWriter, _ *http.Request) {
	s.auth.Clear(w)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	users, err := s.profileUC.Count(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("stats: count users failed")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"users":  users,
		"uptime": time.Since(s.startedAt).Truncate(time.Second).String(),
	})
}

// authMiddleware validates the session JWT from the Bearer header or the
// admin cookie.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := s.auth.ParseFromRequest(r); err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// bearerToken pulls the raw credential out of an Authorization header.
func bearerToken(r *http.Request) string {
	hdr := r.Header.Get("Authorization")
	if hdr == "" {
		return ""
	}
	parts := strings.SplitN(hdr, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
