package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kos3l/manageable-kanban-api/apperrors"
)

// Every mutation reply goes through writeMessage and is a 200.
func TestWriteMessageStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	writeMessage(rec, "User was succesfully updated.")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("body is not json: %v", err)
	}
	if body["message"] != "User was succesfully updated." {
		t.Fatalf("body = %v", body)
	}
}

func TestWriteErrorStatusMapping(t *testing.T) {
	tests := []struct {
		kind apperrors.Kind
		want int
	}{
		{apperrors.KindValidationFailed, http.StatusBadRequest},
		{apperrors.KindForbidden, http.StatusForbidden},
		{apperrors.KindNotFound, http.StatusNotFound},
		{apperrors.KindInvariantViolation, http.StatusConflict},
		{apperrors.KindInvalidTransition, http.StatusConflict},
		{apperrors.KindConflict, http.StatusConflict},
		{apperrors.KindInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, apperrors.New(tt.kind, "boom"))
			if rec.Code != tt.want {
				t.Fatalf("status for %v = %d, want %d", tt.kind, rec.Code, tt.want)
			}
		})
	}
}

// Internal faults never leak their message to the client.
func TestWriteErrorInternalMasked(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, apperrors.New(apperrors.KindInternal, "dial tcp: connection refused"))

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("body is not json: %v", err)
	}
	if body["message"] != "internal server error" {
		t.Fatalf("internal detail leaked: %v", body)
	}
}

func TestPathID(t *testing.T) {
	rec := httptest.NewRecorder()
	if _, ok := pathID(rec, "not-a-hex-id"); ok {
		t.Fatalf("malformed id accepted")
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	rec = httptest.NewRecorder()
	id, ok := pathID(rec, "65f000000000000000000001")
	if !ok {
		t.Fatalf("valid id rejected")
	}
	if id.Hex() != "65f000000000000000000001" {
		t.Fatalf("parsed id = %s", id.Hex())
	}
}
