package services

import (
	"testing"

	"github.com/kos3l/manageable-kanban-api/apperrors"
	"go.mongodb.org/mongo-driver/mongo"
)

// Linking against a nonexistent document must surface NotFound so the
// surrounding transaction aborts instead of committing a one-sided write.
func TestMatchedOrNotFound(t *testing.T) {
	err := matchedOrNotFound(&mongo.UpdateResult{MatchedCount: 0}, "user not found")
	if !apperrors.IsKind(err, apperrors.KindNotFound) {
		t.Fatalf("zero matches = %v, want not found", err)
	}
	if err.Error() != "user not found" {
		t.Fatalf("message = %q", err.Error())
	}

	if err := matchedOrNotFound(&mongo.UpdateResult{MatchedCount: 1}, "user not found"); err != nil {
		t.Fatalf("matched update rejected: %v", err)
	}
}
