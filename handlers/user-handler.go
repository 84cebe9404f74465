package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/kos3l/manageable-kanban-api/models"
	"github.com/kos3l/manageable-kanban-api/services"
)

type UserHandler struct {
	Service *services.UserService
}

func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{Service: service}
}

// Register creates a user together with their default team.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var dto models.CreateUserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	user, team, err := h.Service.Register(r.Context(), dto)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"error": nil,
		"data":  []string{user.ID.Hex(), team.ID.Hex()},
	})
}

// Login verifies credentials and returns the token pair.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var dto models.LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	_, accessToken, refreshToken, err := h.Service.Login(r.Context(), dto)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("auth-token", accessToken)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"error": nil,
		"data": map[string]string{
			"token":        accessToken,
			"refreshToken": refreshToken,
		},
	})
}

// Refresh exchanges a refresh token for a new access token.
func (h *UserHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var dto models.RefreshTokenDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	accessToken, err := h.Service.Refresh(r.Context(), dto.RefreshToken)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": accessToken})
}

// GetUserByID returns one user profile.
func (h *UserHandler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	if _, ok := callerID(w, r); !ok {
		return
	}
	userID, ok := pathID(w, mux.Vars(r)["id"])
	if !ok {
		return
	}

	user, err := h.Service.GetUserByID(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// UpdateUser edits the caller's own profile fields.
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	userID, ok := pathID(w, mux.Vars(r)["id"])
	if !ok {
		return
	}
	if userID != caller {
		http.Error(w, "Cannot update another user", http.StatusForbidden)
		return
	}

	var dto models.UpdateUserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	if err := h.Service.UpdateUser(r.Context(), userID, dto); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, "User was succesfully updated.")
}
