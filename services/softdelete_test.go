package services

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNotDeletedMergesExclusion(t *testing.T) {
	id := primitive.NewObjectID()
	filter := NotDeleted(bson.M{"_id": id})

	if filter["_id"] != id {
		t.Fatalf("original filter fields lost")
	}
	exclusion, ok := filter["isDeleted"].(bson.M)
	if !ok {
		t.Fatalf("isDeleted clause missing: %v", filter)
	}
	if exclusion["$ne"] != true {
		t.Fatalf("exclusion = %v, want $ne true", exclusion)
	}
}

func TestNotDeletedEmptyFilter(t *testing.T) {
	filter := NotDeleted(bson.M{})
	if len(filter) != 1 {
		t.Fatalf("filter = %v, want only the exclusion", filter)
	}
}
