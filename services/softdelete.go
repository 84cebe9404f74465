package services

import (
	"context"
	"time"

	"github.com/kos3l/manageable-kanban-api/apperrors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// SoftDeleteLedger marks team and project aggregates as deleted with a
// timestamp instead of physically removing them.
type SoftDeleteLedger struct {
	now func() time.Time
}

func NewSoftDeleteLedger() *SoftDeleteLedger {
	return &SoftDeleteLedger{now: func() time.Time { return time.Now().UTC() }}
}

// MarkDeleted sets the soft-delete flag and timestamp on one document.
func (l *SoftDeleteLedger) MarkDeleted(ctx context.Context, coll *mongo.Collection, id primitive.ObjectID) error {
	res, err := coll.UpdateOne(ctx,
		bson.M{"_id": id, "isDeleted": bson.M{"$ne": true}},
		bson.M{"$set": bson.M{"isDeleted": true, "deletedAt": l.now()}},
	)
	if err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "failed to delete document", err)
	}
	if res.MatchedCount == 0 {
		return apperrors.New(apperrors.KindNotFound, "document not found or already deleted")
	}
	return nil
}

// NotDeleted merges the default soft-delete exclusion into a read filter.
// Every read path goes through this so deleted aggregates stay invisible.
func NotDeleted(filter bson.M) bson.M {
	filter["isDeleted"] = bson.M{"$ne": true}
	return filter
}
