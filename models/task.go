package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Task struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title       string               `bson:"title" json:"title"`
	Description string               `bson:"description,omitempty" json:"description"`
	StartDate   time.Time            `bson:"startDate" json:"startDate"`
	EndDate     time.Time            `bson:"endDate" json:"endDate"`
	ColumnID    primitive.ObjectID   `bson:"columnId" json:"columnId"`
	ProjectID   primitive.ObjectID   `bson:"projectId" json:"projectId"`
	UserIDs     []primitive.ObjectID `bson:"userIds" json:"userIds"`
	Labels      []Label              `bson:"labels" json:"labels"`
	CreatedAt   time.Time            `bson:"createdAt,omitempty" json:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt,omitempty" json:"updatedAt"`
}

// Label is embedded in a task.
type Label struct {
	ID    primitive.ObjectID `bson:"_id" json:"id"`
	Name  string             `bson:"name" json:"name"`
	Color string             `bson:"color" json:"color"`
}
