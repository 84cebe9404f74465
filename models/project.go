package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProjectStatus follows the lifecycle NotStarted -> Ongoing -> Overdue -> Completed.
type ProjectStatus int

const (
	StatusNotStarted ProjectStatus = iota
	StatusOngoing
	StatusOverdue
	StatusCompleted
)

func (s ProjectStatus) String() string {
	switch s {
	case StatusNotStarted:
		return "not started"
	case StatusOngoing:
		return "ongoing"
	case StatusOverdue:
		return "overdue"
	case StatusCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

type Project struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description"`
	TechStack   []string           `bson:"techStack" json:"techStack"`
	Status      ProjectStatus      `bson:"status" json:"status"`
	StartDate   time.Time          `bson:"startDate" json:"startDate"`
	EndDate     time.Time          `bson:"endDate" json:"endDate"`
	TeamID      primitive.ObjectID `bson:"teamId" json:"teamId"`
	Columns     []Column           `bson:"columns" json:"columns"`
	IsDeleted   bool               `bson:"isDeleted" json:"-"`
	DeletedAt   *time.Time         `bson:"deletedAt,omitempty" json:"-"`
	CreatedAt   time.Time          `bson:"createdAt,omitempty" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt,omitempty" json:"updatedAt"`
}

// Column is embedded in a project. The tasks slice is the authoritative
// display order for the tasks referencing this column.
type Column struct {
	ID    primitive.ObjectID   `bson:"_id" json:"id"`
	Name  string               `bson:"name" json:"name"`
	Order int                  `bson:"order" json:"order"`
	Tasks []primitive.ObjectID `bson:"tasks" json:"tasks"`
}

// ColumnByID returns a pointer into the project's columns slice, or nil.
func (p *Project) ColumnByID(columnID primitive.ObjectID) *Column {
	for i := range p.Columns {
		if p.Columns[i].ID == columnID {
			return &p.Columns[i]
		}
	}
	return nil
}
