package validations

import (
	"strings"
	"testing"
	"time"

	"github.com/kos3l/manageable-kanban-api/apperrors"
	"github.com/kos3l/manageable-kanban-api/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestValidateCreateUser(t *testing.T) {
	valid := models.CreateUserDTO{
		FirstName: "Maria",
		LastName:  "Jensen",
		Email:     "maria@example.com",
		Password:  "hunter22",
		Birthdate: day(1995, 4, 12),
	}

	if err := ValidateCreateUser(valid); err != nil {
		t.Fatalf("valid payload rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*models.CreateUserDTO)
	}{
		{"short first name", func(d *models.CreateUserDTO) { d.FirstName = "Jo" }},
		{"missing last name", func(d *models.CreateUserDTO) { d.LastName = "" }},
		{"email without at sign", func(d *models.CreateUserDTO) { d.Email = "maria.example.com" }},
		{"short password", func(d *models.CreateUserDTO) { d.Password = "abc" }},
		{"missing birthdate", func(d *models.CreateUserDTO) { d.Birthdate = time.Time{} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dto := valid
			tt.mutate(&dto)
			if err := ValidateCreateUser(dto); !apperrors.IsKind(err, apperrors.KindValidationFailed) {
				t.Fatalf("got %v, want validation failure", err)
			}
		})
	}
}

func TestValidateCreateTeam(t *testing.T) {
	if err := ValidateCreateTeam(models.CreateTeamDTO{Name: "Platform"}); err != nil {
		t.Fatalf("team without description rejected: %v", err)
	}
	if err := ValidateCreateTeam(models.CreateTeamDTO{Name: "X"}); !apperrors.IsKind(err, apperrors.KindValidationFailed) {
		t.Fatalf("one-letter name accepted")
	}
	long := strings.Repeat("d", 1057)
	if err := ValidateCreateTeam(models.CreateTeamDTO{Name: "Platform", Description: long}); !apperrors.IsKind(err, apperrors.KindValidationFailed) {
		t.Fatalf("oversized description accepted")
	}
}

func TestValidateCreateProject(t *testing.T) {
	valid := models.CreateProjectDTO{
		Name:      "Website relaunch",
		TechStack: []string{"go", "react"},
		StartDate: day(2024, 1, 1),
		EndDate:   day(2024, 3, 1),
	}
	if err := ValidateCreateProject(valid); err != nil {
		t.Fatalf("valid payload rejected: %v", err)
	}

	noStack := valid
	noStack.TechStack = nil
	if err := ValidateCreateProject(noStack); !apperrors.IsKind(err, apperrors.KindValidationFailed) {
		t.Fatalf("missing techStack accepted")
	}

	inverted := valid
	inverted.StartDate, inverted.EndDate = valid.EndDate, valid.StartDate
	if err := ValidateCreateProject(inverted); !apperrors.IsKind(err, apperrors.KindValidationFailed) {
		t.Fatalf("inverted date window accepted")
	}
}

func TestValidateColumnOrder(t *testing.T) {
	columnID := primitive.NewObjectID()

	if err := ValidateColumnOrder(models.UpdateColumnOrderDTO{ColumnID: columnID, Order: 0}); err != nil {
		t.Fatalf("order 0 rejected: %v", err)
	}
	if err := ValidateColumnOrder(models.UpdateColumnOrderDTO{ColumnID: columnID, Order: 300}); err != nil {
		t.Fatalf("order 300 rejected: %v", err)
	}
	if err := ValidateColumnOrder(models.UpdateColumnOrderDTO{ColumnID: columnID, Order: -1}); !apperrors.IsKind(err, apperrors.KindValidationFailed) {
		t.Fatalf("negative order accepted")
	}
	if err := ValidateColumnOrder(models.UpdateColumnOrderDTO{ColumnID: columnID, Order: 301}); !apperrors.IsKind(err, apperrors.KindValidationFailed) {
		t.Fatalf("order above 300 accepted")
	}
	if err := ValidateColumnOrder(models.UpdateColumnOrderDTO{Order: 1}); !apperrors.IsKind(err, apperrors.KindValidationFailed) {
		t.Fatalf("missing columnId accepted")
	}
}

func TestValidateTaskOrder(t *testing.T) {
	columnID := primitive.NewObjectID()

	if err := ValidateTaskOrder(models.UpdateTaskOrderDTO{ColumnID: columnID, Tasks: []primitive.ObjectID{}}); err != nil {
		t.Fatalf("empty task list rejected: %v", err)
	}
	if err := ValidateTaskOrder(models.UpdateTaskOrderDTO{ColumnID: columnID}); !apperrors.IsKind(err, apperrors.KindValidationFailed) {
		t.Fatalf("nil task list accepted")
	}
}

func TestValidateCreateTask(t *testing.T) {
	valid := models.CreateTaskDTO{
		Title:     "Ship login page",
		StartDate: day(2024, 1, 5),
		EndDate:   day(2024, 1, 12),
		ColumnID:  primitive.NewObjectID(),
	}
	if err := ValidateCreateTask(valid); err != nil {
		t.Fatalf("valid payload rejected: %v", err)
	}

	noColumn := valid
	noColumn.ColumnID = primitive.NilObjectID
	if err := ValidateCreateTask(noColumn); !apperrors.IsKind(err, apperrors.KindValidationFailed) {
		t.Fatalf("missing columnId accepted")
	}
}

func TestValidateCreateLabel(t *testing.T) {
	if err := ValidateCreateLabel(models.CreateLabelDTO{Name: "bug", Color: "#ff0000"}); err != nil {
		t.Fatalf("valid label rejected: %v", err)
	}
	if err := ValidateCreateLabel(models.CreateLabelDTO{Name: "bug"}); !apperrors.IsKind(err, apperrors.KindValidationFailed) {
		t.Fatalf("missing color accepted")
	}
}

func TestValidateUpdateUserPointerFields(t *testing.T) {
	if err := ValidateUpdateUser(models.UpdateUserDTO{}); err != nil {
		t.Fatalf("empty update rejected: %v", err)
	}
	short := "Al"
	if err := ValidateUpdateUser(models.UpdateUserDTO{FirstName: &short}); !apperrors.IsKind(err, apperrors.KindValidationFailed) {
		t.Fatalf("short first name accepted on update")
	}
}
