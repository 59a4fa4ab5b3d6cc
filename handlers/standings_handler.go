package handlers

import (
	"net/http"

	"github.com/matchday-app/championship-engine/services"
)

type StandingsHandler struct {
	standingsService services.StandingsService
}

func NewStandingsHandler(standingsService services.StandingsService) *StandingsHandler {
	return &StandingsHandler{standingsService: standingsService}
}

// GetStandings handles GET /championships/{championshipID}/standings
func (h *StandingsHandler) GetStandings(w http.ResponseWriter, r *http.Request) {
	userID, championshipID, ok := authAndChampionshipID(w, r)
	if !ok {
		return
	}

	view, err := h.standingsService.GetStandings(r.Context(), userID, championshipID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": view}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
