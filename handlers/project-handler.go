package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/kos3l/manageable-kanban-api/models"
	"github.com/kos3l/manageable-kanban-api/services"
)

type ProjectHandler struct {
	Service *services.ProjectService
	Columns *services.ColumnService
}

func NewProjectHandler(service *services.ProjectService, columns *services.ColumnService) *ProjectHandler {
	return &ProjectHandler{Service: service, Columns: columns}
}

// GetAllProjects lists the projects of one team.
func (h *ProjectHandler) GetAllProjects(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	teamID, ok := pathID(w, mux.Vars(r)["teamId"])
	if !ok {
		return
	}

	projects, err := h.Service.GetAllProjects(r.Context(), userID, teamID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

// GetProjectByID returns one project.
func (h *ProjectHandler) GetProjectByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	projectID, ok := pathID(w, mux.Vars(r)["id"])
	if !ok {
		return
	}

	project, err := h.Service.GetProjectByID(r.Context(), userID, projectID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

// CreateProject creates a project under a team.
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	teamID, ok := pathID(w, mux.Vars(r)["teamId"])
	if !ok {
		return
	}

	var dto models.CreateProjectDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	project, err := h.Service.CreateProject(r.Context(), userID, teamID, dto)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

// UpdateProject edits a project's fields and date window.
func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	projectID, ok := pathID(w, mux.Vars(r)["id"])
	if !ok {
		return
	}

	var dto models.UpdateProjectDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	project, err := h.Service.UpdateProject(r.Context(), userID, projectID, dto)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

// CompleteProject marks a project Completed.
func (h *ProjectHandler) CompleteProject(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	projectID, ok := pathID(w, mux.Vars(r)["id"])
	if !ok {
		return
	}

	if err := h.Service.CompleteProject(r.Context(), userID, projectID); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, "Project was succesfully completed.")
}

// DeleteProject soft-deletes a project.
func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	projectID, ok := pathID(w, mux.Vars(r)["id"])
	if !ok {
		return
	}

	if err := h.Service.DeleteProject(r.Context(), userID, projectID); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, "Project was succesfully deleted.")
}

// AddColumn appends a new column to the project.
func (h *ProjectHandler) AddColumn(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	projectID, ok := pathID(w, mux.Vars(r)["id"])
	if !ok {
		return
	}

	var dto models.CreateColumnDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	project, err := h.Columns.AddColumn(r.Context(), userID, projectID, dto)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

// RenameColumn updates one column's name.
func (h *ProjectHandler) RenameColumn(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	projectID, ok := pathID(w, mux.Vars(r)["id"])
	if !ok {
		return
	}

	var dto models.UpdateColumnDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	if err := h.Columns.RenameColumn(r.Context(), userID, projectID, dto); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, "Column was succesfully updated.")
}

// DeleteColumn removes a column and every task it holds.
func (h *ProjectHandler) DeleteColumn(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	projectID, ok := pathID(w, mux.Vars(r)["id"])
	if !ok {
		return
	}
	columnID, ok := pathID(w, mux.Vars(r)["columnId"])
	if !ok {
		return
	}

	if err := h.Columns.DeleteColumn(r.Context(), userID, projectID, columnID); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, "Column was succesfully deleted.")
}

// ReorderColumn moves one column to a new position.
func (h *ProjectHandler) ReorderColumn(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	projectID, ok := pathID(w, mux.Vars(r)["id"])
	if !ok {
		return
	}

	var dto models.UpdateColumnOrderDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	if err := h.Columns.ReorderColumn(r.Context(), userID, projectID, dto); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, "Column order was succesfully updated.")
}
