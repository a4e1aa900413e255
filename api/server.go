// Package api exposes the read-only HTTP surface: leaderboard queries,
// member stats, point charts, and live race standings. All writes flow
// through events; nothing here mutates state.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	leaderboardservice "github.com/jbcre8iv/MotoSense-sub001/app/modules/leaderboard/application"
	liveraceservice "github.com/jbcre8iv/MotoSense-sub001/app/modules/liverace/application"
	"github.com/jbcre8iv/MotoSense-sub001/internal/attr"
)

// Server serves the read API.
type Server struct {
	logger      *slog.Logger
	leaderboard leaderboardservice.Service
	liverace    liveraceservice.Service
}

// NewServer creates a new Server.
func NewServer(
	logger *slog.Logger,
	leaderboard leaderboardservice.Service,
	liverace liveraceservice.Service,
) *Server {
	return &Server{
		logger:      logger,
		leaderboard: leaderboard,
		liverace:    liverace,
	}
}

// Routes builds the chi router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/leaderboard", s.handleGetLeaderboard)
	r.Get("/leaderboard/users/{userID}", s.handleGetMemberStats)
	r.Get("/leaderboard/chart", s.handleGetPointsChart)
	r.Get("/races/{raceID}/live", s.handleGetLiveStandings)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to encode response",
			attr.String("path", r.URL.Path),
			attr.Error(err),
		)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	http.Error(w, fmt.Sprintf("%v", err), status)
}
