package handlers

import (
	"net/http"

	"github.com/matchday-app/championship-engine/services"
)

type MatchHandler struct {
	scheduleService services.ScheduleService
	matchService    services.MatchService
}

func NewMatchHandler(scheduleService services.ScheduleService, matchService services.MatchService) *MatchHandler {
	return &MatchHandler{
		scheduleService: scheduleService,
		matchService:    matchService,
	}
}

// GenerateFixtures handles POST /championships/{championshipID}/fixtures
func (h *MatchHandler) GenerateFixtures(w http.ResponseWriter, r *http.Request) {
	userID, championshipID, ok := authAndChampionshipID(w, r)
	if !ok {
		return
	}

	var input services.GenerateFixturesInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	output, err := h.scheduleService.GenerateFixtures(r.Context(), userID, championshipID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{
		"championship": output.Championship,
		"generated":    output.Generated,
		"skipped":      output.Skipped,
	}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListMatches handles GET /championships/{championshipID}/matches
func (h *MatchHandler) ListMatches(w http.ResponseWriter, r *http.Request) {
	userID, championshipID, ok := authAndChampionshipID(w, r)
	if !ok {
		return
	}

	matches, err := h.matchService.ListMatches(r.Context(), userID, championshipID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RecordResult handles PUT /championships/{championshipID}/matches/{matchID}/result
func (h *MatchHandler) RecordResult(w http.ResponseWriter, r *http.Request) {
	userID, championshipID, ok := authAndChampionshipID(w, r)
	if !ok {
		return
	}
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.RecordResultInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	champ, err := h.matchService.RecordResult(r.Context(), userID, championshipID, matchID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"championship": champ}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
