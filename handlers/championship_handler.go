package handlers

import (
	"errors"
	"net/http"

	"github.com/matchday-app/championship-engine/middleware"
	"github.com/matchday-app/championship-engine/services"
)

var errInvalidStatusAction = errors.New("status action must be finish, pause, or resume")

type ChampionshipHandler struct {
	championshipService services.ChampionshipService
}

func NewChampionshipHandler(championshipService services.ChampionshipService) *ChampionshipHandler {
	return &ChampionshipHandler{championshipService: championshipService}
}

// Create handles POST /championships
func (h *ChampionshipHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	var input services.CreateChampionshipInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	champ, err := h.championshipService.Create(r.Context(), userID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"championship": champ}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// List handles GET /championships
func (h *ChampionshipHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	championships, err := h.championshipService.List(r.Context(), userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"championships": championships}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Get handles GET /championships/{championshipID}
func (h *ChampionshipHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}
	id, err := getIDFromURL(r, "championshipID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	champ, err := h.championshipService.GetByID(r.Context(), userID, id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"championship": champ}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Delete handles DELETE /championships/{championshipID}
func (h *ChampionshipHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}
	id, err := getIDFromURL(r, "championshipID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.championshipService.Delete(r.Context(), userID, id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetCurrent handles GET /championships/current
func (h *ChampionshipHandler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	champ, err := h.championshipService.GetCurrent(r.Context(), userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"championship": champ}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SetCurrent handles PUT /championships/current
func (h *ChampionshipHandler) SetCurrent(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	var input struct {
		ChampionshipID string `json:"championship_id"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.championshipService.SetCurrent(r.Context(), userID, input.ChampionshipID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateStatus handles PATCH /championships/{championshipID}/status with an
// action of finish, pause, or resume.
func (h *ChampionshipHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}
	id, err := getIDFromURL(r, "championshipID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Action string `json:"action"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var champ interface{}
	switch input.Action {
	case "finish":
		champ, err = h.championshipService.Finish(r.Context(), userID, id)
	case "pause":
		champ, err = h.championshipService.Pause(r.Context(), userID, id)
	case "resume":
		champ, err = h.championshipService.Resume(r.Context(), userID, id)
	default:
		badRequestResponse(w, r, errInvalidStatusAction)
		return
	}
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"championship": champ}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
