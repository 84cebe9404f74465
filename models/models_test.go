package models

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestHasUser(t *testing.T) {
	creator := primitive.NewObjectID()
	member := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	team := Team{CreatedBy: creator, Users: []primitive.ObjectID{creator, member}}

	if !team.HasUser(creator) {
		t.Fatalf("creator not recognised as team user")
	}
	if !team.HasUser(member) {
		t.Fatalf("member not recognised as team user")
	}
	if team.HasUser(stranger) {
		t.Fatalf("stranger recognised as team user")
	}
}

func TestColumnByID(t *testing.T) {
	columnID := primitive.NewObjectID()
	project := Project{Columns: []Column{
		{ID: primitive.NewObjectID(), Name: "Backlog", Order: 0},
		{ID: columnID, Name: "Doing", Order: 1},
	}}

	column := project.ColumnByID(columnID)
	if column == nil || column.Name != "Doing" {
		t.Fatalf("ColumnByID = %v, want the Doing column", column)
	}

	// Mutations through the returned pointer must land in the project.
	column.Name = "In Progress"
	if project.Columns[1].Name != "In Progress" {
		t.Fatalf("pointer does not alias the project's columns slice")
	}

	if project.ColumnByID(primitive.NewObjectID()) != nil {
		t.Fatalf("unknown id returned a column")
	}
}

func TestProjectStatusString(t *testing.T) {
	tests := []struct {
		status ProjectStatus
		want   string
	}{
		{StatusNotStarted, "not started"},
		{StatusOngoing, "ongoing"},
		{StatusOverdue, "overdue"},
		{StatusCompleted, "completed"},
		{ProjectStatus(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Fatalf("String(%d) = %q, want %q", int(tt.status), got, tt.want)
		}
	}
}
