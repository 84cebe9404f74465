package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/kos3l/manageable-kanban-api/apperrors"
	"github.com/kos3l/manageable-kanban-api/logging"
	"github.com/kos3l/manageable-kanban-api/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// writeJSON serializes a payload with the given status code.
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logging.Logger.Errorf("Event ID: RESPONSE_ENCODE_FAILED, Description: Failed to encode response: %v", err)
		}
	}
}

// writeMessage reports a successful mutation. Every mutation replies 200
// with a message body.
func writeMessage(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, map[string]string{"message": message})
}

// writeError maps a typed service error to its HTTP status. The services
// never embed protocol codes; this is the only place where the mapping lives.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch apperrors.KindOf(err) {
	case apperrors.KindValidationFailed:
		status = http.StatusBadRequest
	case apperrors.KindForbidden:
		status = http.StatusForbidden
	case apperrors.KindNotFound:
		status = http.StatusNotFound
	case apperrors.KindInvariantViolation, apperrors.KindInvalidTransition, apperrors.KindConflict:
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		logging.Logger.Errorf("Event ID: REQUEST_FAILED, Description: Unhandled service error: %v", err)
		writeJSON(w, status, map[string]string{"message": "internal server error"})
		return
	}
	writeJSON(w, status, map[string]string{"message": err.Error()})
}

// callerID extracts the authenticated user id placed by the JWT middleware.
func callerID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	userID, ok := utils.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorised", http.StatusUnauthorized)
		return primitive.NilObjectID, false
	}
	return userID, true
}

// pathID parses one hex object id out of the route variables.
func pathID(w http.ResponseWriter, raw string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		http.Error(w, "Invalid id format", http.StatusBadRequest)
		return primitive.NilObjectID, false
	}
	return id, true
}
