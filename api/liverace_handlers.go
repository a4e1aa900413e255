package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	sharedtypes "github.com/jbcre8iv/MotoSense-sub001/app/shared/types"
)

func (s *Server) handleGetLiveStandings(w http.ResponseWriter, r *http.Request) {
	raceID := sharedtypes.RaceID(chi.URLParam(r, "raceID"))
	if raceID == "" {
		s.writeError(w, http.StatusBadRequest, errors.New("race id missing"))
		return
	}

	snapshot, err := s.liverace.GetLiveStandings(r.Context(), raceID)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, fmt.Errorf("failed to fetch live standings: %w", err))
		return
	}

	s.writeJSON(w, r, snapshot)
}
