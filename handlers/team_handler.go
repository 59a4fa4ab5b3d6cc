package handlers

import (
	"errors"
	"net/http"

	"github.com/matchday-app/championship-engine/middleware"
	"github.com/matchday-app/championship-engine/services"
)

const maxBadgeSize = 5 << 20 // 5MB

type TeamHandler struct {
	rosterService services.RosterService
}

func NewTeamHandler(rosterService services.RosterService) *TeamHandler {
	return &TeamHandler{rosterService: rosterService}
}

// AddTeam handles POST /championships/{championshipID}/teams
func (h *TeamHandler) AddTeam(w http.ResponseWriter, r *http.Request) {
	userID, championshipID, ok := authAndChampionshipID(w, r)
	if !ok {
		return
	}

	var input services.TeamInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	champ, err := h.rosterService.AddTeam(r.Context(), userID, championshipID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"championship": champ}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateTeam handles PUT /championships/{championshipID}/teams/{teamID}
func (h *TeamHandler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	userID, championshipID, ok := authAndChampionshipID(w, r)
	if !ok {
		return
	}
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.TeamInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	champ, err := h.rosterService.UpdateTeam(r.Context(), userID, championshipID, teamID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"championship": champ}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RemoveTeam handles DELETE /championships/{championshipID}/teams/{teamID}
func (h *TeamHandler) RemoveTeam(w http.ResponseWriter, r *http.Request) {
	userID, championshipID, ok := authAndChampionshipID(w, r)
	if !ok {
		return
	}
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if _, err := h.rosterService.RemoveTeam(r.Context(), userID, championshipID, teamID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddPlayer handles POST /championships/{championshipID}/teams/{teamID}/players
func (h *TeamHandler) AddPlayer(w http.ResponseWriter, r *http.Request) {
	userID, championshipID, ok := authAndChampionshipID(w, r)
	if !ok {
		return
	}
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.PlayerInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	champ, err := h.rosterService.AddPlayer(r.Context(), userID, championshipID, teamID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"championship": champ}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdatePlayer handles PUT /championships/{championshipID}/teams/{teamID}/players/{playerID}
func (h *TeamHandler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	userID, championshipID, ok := authAndChampionshipID(w, r)
	if !ok {
		return
	}
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	playerID, err := getIDFromURL(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.PlayerInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	champ, err := h.rosterService.UpdatePlayer(r.Context(), userID, championshipID, teamID, playerID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"championship": champ}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RemovePlayer handles DELETE /championships/{championshipID}/teams/{teamID}/players/{playerID}
func (h *TeamHandler) RemovePlayer(w http.ResponseWriter, r *http.Request) {
	userID, championshipID, ok := authAndChampionshipID(w, r)
	if !ok {
		return
	}
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	playerID, err := getIDFromURL(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if _, err := h.rosterService.RemovePlayer(r.Context(), userID, championshipID, teamID, playerID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UploadBadge handles POST /championships/{championshipID}/teams/{teamID}/badge
func (h *TeamHandler) UploadBadge(w http.ResponseWriter, r *http.Request) {
	userID, championshipID, ok := authAndChampionshipID(w, r)
	if !ok {
		return
	}
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := r.ParseMultipartForm(maxBadgeSize); err != nil {
		badRequestResponse(w, r, errors.New("badge upload must be multipart form data"))
		return
	}
	file, header, err := r.FormFile("badge")
	if err != nil {
		badRequestResponse(w, r, errors.New("badge file is required"))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	champ, err := h.rosterService.SetTeamBadge(r.Context(), userID, championshipID, teamID, contentType, file)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"championship": champ}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UploadChampionshipBadge handles POST /championships/{championshipID}/badge
func (h *TeamHandler) UploadChampionshipBadge(w http.ResponseWriter, r *http.Request) {
	userID, championshipID, ok := authAndChampionshipID(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxBadgeSize); err != nil {
		badRequestResponse(w, r, errors.New("badge upload must be multipart form data"))
		return
	}
	file, header, err := r.FormFile("badge")
	if err != nil {
		badRequestResponse(w, r, errors.New("badge file is required"))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	champ, err := h.rosterService.SetChampionshipBadge(r.Context(), userID, championshipID, contentType, file)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"championship": champ}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// authAndChampionshipID extracts the shared prologue of the nested routes.
func authAndChampionshipID(w http.ResponseWriter, r *http.Request) (userID, championshipID string, ok bool) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return "", "", false
	}
	championshipID, err = getIDFromURL(r, "championshipID")
	if err != nil {
		badRequestResponse(w, r, err)
		return "", "", false
	}
	return userID, championshipID, true
}
