package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	leaderboardservice "github.com/jbcre8iv/MotoSense-sub001/app/modules/leaderboard/application"
	leaderboarddomain "github.com/jbcre8iv/MotoSense-sub001/app/modules/leaderboard/domain"
	sharedtypes "github.com/jbcre8iv/MotoSense-sub001/app/shared/types"
)

// queryFromRequest maps query parameters onto a leaderboard query. Absent
// parameters default to the global all-time, all-series board.
func queryFromRequest(r *http.Request) (leaderboardservice.Query, error) {
	q := leaderboardservice.Query{
		Scope:  leaderboarddomain.Scope{Kind: leaderboarddomain.ScopeGlobal},
		Filter: leaderboarddomain.Filter{Window: leaderboarddomain.WindowAll, Series: leaderboarddomain.SeriesFilterAll},
	}

	params := r.URL.Query()

	if scope := params.Get("scope"); scope != "" {
		q.Scope.Kind = leaderboarddomain.ScopeKind(scope)
	}
	q.Scope.Region = params.Get("region")
	q.Scope.GroupID = sharedtypes.GroupID(params.Get("group"))

	switch q.Scope.Kind {
	case leaderboarddomain.ScopeRegional:
		if q.Scope.Region == "" {
			return q, errors.New("regional scope requires a region parameter")
		}
	case leaderboarddomain.ScopeGroup:
		if q.Scope.GroupID == "" {
			return q, errors.New("group scope requires a group parameter")
		}
	}

	if window := params.Get("window"); window != "" {
		switch w := leaderboarddomain.TimeWindow(window); w {
		case leaderboarddomain.WindowWeek, leaderboarddomain.WindowMonth, leaderboarddomain.WindowSeason, leaderboarddomain.WindowAll:
			q.Filter.Window = w
		default:
			return q, fmt.Errorf("unknown window: %s", window)
		}
	}

	if series := params.Get("series"); series != "" {
		switch sf := leaderboarddomain.SeriesFilter(series); sf {
		case leaderboarddomain.SeriesFilterSX, leaderboarddomain.SeriesFilterMX, leaderboarddomain.SeriesFilterAll:
			q.Filter.Series = sf
		default:
			return q, fmt.Errorf("unknown series: %s", series)
		}
	}

	return q, nil
}

func (s *Server) handleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	query, err := queryFromRequest(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	ranked, err := s.leaderboard.GetLeaderboard(r.Context(), query)
	if err != nil {
		if errors.Is(err, leaderboarddomain.ErrFriendsUnavailable) {
			s.writeError(w, http.StatusNotImplemented, err)
			return
		}
		s.writeError(w, http.StatusInternalServerError, fmt.Errorf("failed to fetch leaderboard: %w", err))
		return
	}

	s.writeJSON(w, r, ranked)
}

func (s *Server) handleGetMemberStats(w http.ResponseWriter, r *http.Request) {
	userID := sharedtypes.UserID(chi.URLParam(r, "userID"))
	if userID == "" {
		s.writeError(w, http.StatusBadRequest, errors.New("user id missing"))
		return
	}

	query, err := queryFromRequest(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	stats, err := s.leaderboard.GetMemberStats(r.Context(), userID, query)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, fmt.Errorf("failed to fetch member stats: %w", err))
		return
	}

	s.writeJSON(w, r, stats)
}

func (s *Server) handleGetPointsChart(w http.ResponseWriter, r *http.Request) {
	userID := sharedtypes.UserID(r.URL.Query().Get("user"))
	if userID == "" {
		s.writeError(w, http.StatusBadRequest, errors.New("user parameter missing"))
		return
	}

	png, err := s.leaderboard.GeneratePointsChart(r.Context(), userID)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, fmt.Errorf("failed to render chart: %w", err))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if _, err := w.Write(png); err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to write chart response", "error", err)
	}
}
