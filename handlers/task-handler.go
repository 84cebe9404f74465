package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/kos3l/manageable-kanban-api/models"
	"github.com/kos3l/manageable-kanban-api/services"
)

type TaskHandler struct {
	Service *services.TaskService
}

func NewTaskHandler(service *services.TaskService) *TaskHandler {
	return &TaskHandler{Service: service}
}

// GetTasksByProject lists every task under a project.
func (h *TaskHandler) GetTasksByProject(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	projectID, ok := pathID(w, mux.Vars(r)["projectId"])
	if !ok {
		return
	}

	tasks, err := h.Service.GetTasksByProject(r.Context(), userID, projectID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

// GetTasksByColumn lists the tasks of one column.
func (h *TaskHandler) GetTasksByColumn(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	projectID, ok := pathID(w, mux.Vars(r)["projectId"])
	if !ok {
		return
	}
	columnID, ok := pathID(w, mux.Vars(r)["columnId"])
	if !ok {
		return
	}

	tasks, err := h.Service.GetTasksByColumn(r.Context(), userID, projectID, columnID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

// GetTasksForUser lists the tasks under a project assigned to one member.
func (h *TaskHandler) GetTasksForUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	projectID, ok := pathID(w, mux.Vars(r)["projectId"])
	if !ok {
		return
	}
	targetUserID, ok := pathID(w, mux.Vars(r)["userId"])
	if !ok {
		return
	}

	tasks, err := h.Service.GetTasksForUserByProject(r.Context(), userID, projectID, targetUserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

// GetOneTask returns a single task.
func (h *TaskHandler) GetOneTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	taskID, ok := pathID(w, mux.Vars(r)["id"])
	if !ok {
		return
	}

	task, err := h.Service.GetOneTask(r.Context(), userID, taskID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// CreateTask creates a task inside one of the project's columns.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	projectID, ok := pathID(w, mux.Vars(r)["projectId"])
	if !ok {
		return
	}

	var dto models.CreateTaskDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	task, err := h.Service.CreateTask(r.Context(), userID, projectID, dto)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// UpdateTask edits a task's fields.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	taskID, ok := pathID(w, mux.Vars(r)["id"])
	if !ok {
		return
	}

	var dto models.UpdateTaskDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	task, err := h.Service.UpdateTask(r.Context(), userID, taskID, dto)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// DeleteTask removes a task and all references to it.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	taskID, ok := pathID(w, mux.Vars(r)["id"])
	if !ok {
		return
	}

	if err := h.Service.DeleteTask(r.Context(), userID, taskID); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, "Task was succesfully deleted.")
}

// ReorderTasks replaces one column's task order.
func (h *TaskHandler) ReorderTasks(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	projectID, ok := pathID(w, mux.Vars(r)["projectId"])
	if !ok {
		return
	}

	var dto models.UpdateTaskOrderDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	if err := h.Service.ReorderTasks(r.Context(), userID, projectID, dto); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, "Task order was succesfully updated.")
}

// AssignUser adds a team member to the task's assignees.
func (h *TaskHandler) AssignUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	taskID, ok := pathID(w, mux.Vars(r)["id"])
	if !ok {
		return
	}
	targetUserID, ok := pathID(w, mux.Vars(r)["userId"])
	if !ok {
		return
	}

	if err := h.Service.AssignUser(r.Context(), userID, taskID, targetUserID); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, "User was succesfully assigned.")
}

// UnassignUser removes a member from the task's assignees.
func (h *TaskHandler) UnassignUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	taskID, ok := pathID(w, mux.Vars(r)["id"])
	if !ok {
		return
	}
	targetUserID, ok := pathID(w, mux.Vars(r)["userId"])
	if !ok {
		return
	}

	if err := h.Service.UnassignUser(r.Context(), userID, taskID, targetUserID); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, "User was succesfully unassigned.")
}

// AddLabel attaches a label to a task.
func (h *TaskHandler) AddLabel(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	taskID, ok := pathID(w, mux.Vars(r)["id"])
	if !ok {
		return
	}

	var dto models.CreateLabelDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	label, err := h.Service.AddLabel(r.Context(), userID, taskID, dto)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, label)
}

// RemoveLabel detaches a label from a task.
func (h *TaskHandler) RemoveLabel(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	taskID, ok := pathID(w, mux.Vars(r)["id"])
	if !ok {
		return
	}
	labelID, ok := pathID(w, mux.Vars(r)["labelId"])
	if !ok {
		return
	}

	if err := h.Service.RemoveLabel(r.Context(), userID, taskID, labelID); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, "Label was succesfully removed.")
}
