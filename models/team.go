package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Team struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name        string               `bson:"name" json:"name"`
	Description string               `bson:"description,omitempty" json:"description"`
	CreatedBy   primitive.ObjectID   `bson:"createdBy" json:"createdBy"`
	Users       []primitive.ObjectID `bson:"users" json:"users"`
	Projects    []primitive.ObjectID `bson:"projects" json:"projects"`
	IsDeleted   bool                 `bson:"isDeleted" json:"-"`
	DeletedAt   *time.Time           `bson:"deletedAt,omitempty" json:"-"`
	CreatedAt   time.Time            `bson:"createdAt,omitempty" json:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt,omitempty" json:"updatedAt"`
}

// HasUser reports whether the given user is the creator or a member of the team.
func (t *Team) HasUser(userID primitive.ObjectID) bool {
	if t.CreatedBy == userID {
		return true
	}
	for _, id := range t.Users {
		if id == userID {
			return true
		}
	}
	return false
}
