package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/kos3l/manageable-kanban-api/models"
	"github.com/kos3l/manageable-kanban-api/services"
)

type TeamHandler struct {
	Service *services.TeamService
}

func NewTeamHandler(service *services.TeamService) *TeamHandler {
	return &TeamHandler{Service: service}
}

// GetAllTeams lists every team the caller belongs to.
func (h *TeamHandler) GetAllTeams(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	teams, err := h.Service.GetAllTeams(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, teams)
}

// GetTeamByID returns one team.
func (h *TeamHandler) GetTeamByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	teamID, ok := pathID(w, mux.Vars(r)["id"])
	if !ok {
		return
	}

	team, err := h.Service.GetTeamByID(r.Context(), userID, teamID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, team)
}

// CreateTeam creates a team owned by the caller.
func (h *TeamHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var dto models.CreateTeamDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	team, err := h.Service.CreateTeam(r.Context(), userID, dto)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, team)
}

// UpdateTeam renames a team or updates its description.
func (h *TeamHandler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	teamID, ok := pathID(w, mux.Vars(r)["id"])
	if !ok {
		return
	}

	var dto models.UpdateTeamDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	team, err := h.Service.UpdateTeam(r.Context(), userID, teamID, dto)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, team)
}

// UpdateMembers replaces the team's member set with the desired one.
func (h *TeamHandler) UpdateMembers(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	teamID, ok := pathID(w, mux.Vars(r)["id"])
	if !ok {
		return
	}

	var dto models.UpdateTeamMembersDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	team, err := h.Service.UpdateMembers(r.Context(), userID, teamID, dto.Users)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, team)
}

// DeleteTeam soft-deletes a team.
func (h *TeamHandler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	teamID, ok := pathID(w, mux.Vars(r)["id"])
	if !ok {
		return
	}

	if err := h.Service.DeleteTeam(r.Context(), userID, teamID); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, "Team was succesfully deleted.")
}
