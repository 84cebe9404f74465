// Package validations holds the field-level rules applied to request payloads
// before any mutation is attempted. Every failure is a ValidationFailed error
// carrying the first rule that was broken.
package validations

import (
	"strings"

	"github.com/kos3l/manageable-kanban-api/apperrors"
	"github.com/kos3l/manageable-kanban-api/models"
)

func stringLength(field, value string, min, max int, required bool) error {
	if value == "" {
		if required {
			return apperrors.Newf(apperrors.KindValidationFailed, "%s is required", field)
		}
		return nil
	}
	if len(value) < min || len(value) > max {
		return apperrors.Newf(apperrors.KindValidationFailed, "%s must be between %d and %d characters", field, min, max)
	}
	return nil
}

func ValidateCreateUser(dto models.CreateUserDTO) error {
	if err := stringLength("firstName", dto.FirstName, 3, 255, true); err != nil {
		return err
	}
	if err := stringLength("lastName", dto.LastName, 3, 255, true); err != nil {
		return err
	}
	if err := stringLength("email", dto.Email, 6, 255, true); err != nil {
		return err
	}
	if !strings.Contains(dto.Email, "@") {
		return apperrors.New(apperrors.KindValidationFailed, "email must be a valid email address")
	}
	if err := stringLength("password", dto.Password, 6, 255, true); err != nil {
		return err
	}
	if dto.Birthdate.IsZero() {
		return apperrors.New(apperrors.KindValidationFailed, "birthdate is required")
	}
	return nil
}

func ValidateLogin(dto models.LoginDTO) error {
	if err := stringLength("email", dto.Email, 6, 255, true); err != nil {
		return err
	}
	return stringLength("password", dto.Password, 6, 255, true)
}

func ValidateUpdateUser(dto models.UpdateUserDTO) error {
	if dto.FirstName != nil {
		if err := stringLength("firstName", *dto.FirstName, 3, 255, true); err != nil {
			return err
		}
	}
	if dto.LastName != nil {
		if err := stringLength("lastName", *dto.LastName, 3, 255, true); err != nil {
			return err
		}
	}
	if dto.Birthdate != nil && dto.Birthdate.IsZero() {
		return apperrors.New(apperrors.KindValidationFailed, "birthdate must be a valid date")
	}
	return nil
}

func ValidateCreateTeam(dto models.CreateTeamDTO) error {
	if err := stringLength("name", dto.Name, 2, 255, true); err != nil {
		return err
	}
	return stringLength("description", dto.Description, 3, 1056, false)
}

func ValidateUpdateTeam(dto models.UpdateTeamDTO) error {
	if dto.Name != nil {
		if err := stringLength("name", *dto.Name, 2, 255, true); err != nil {
			return err
		}
	}
	if dto.Description != nil {
		return stringLength("description", *dto.Description, 3, 1056, false)
	}
	return nil
}

func ValidateCreateProject(dto models.CreateProjectDTO) error {
	if err := stringLength("name", dto.Name, 2, 255, true); err != nil {
		return err
	}
	if err := stringLength("description", dto.Description, 3, 1056, false); err != nil {
		return err
	}
	if dto.TechStack == nil {
		return apperrors.New(apperrors.KindValidationFailed, "techStack is required")
	}
	if dto.StartDate.IsZero() || dto.EndDate.IsZero() {
		return apperrors.New(apperrors.KindValidationFailed, "startDate and endDate are required")
	}
	if !dto.EndDate.After(dto.StartDate) {
		return apperrors.New(apperrors.KindValidationFailed, "endDate must be greater than startDate")
	}
	return nil
}

func ValidateUpdateProject(dto models.UpdateProjectDTO) error {
	if dto.Name != nil {
		if err := stringLength("name", *dto.Name, 2, 255, true); err != nil {
			return err
		}
	}
	if dto.Description != nil {
		if err := stringLength("description", *dto.Description, 3, 1056, false); err != nil {
			return err
		}
	}
	if dto.StartDate != nil && dto.EndDate != nil && !dto.EndDate.After(*dto.StartDate) {
		return apperrors.New(apperrors.KindValidationFailed, "endDate must be greater than startDate")
	}
	return nil
}

func ValidateCreateColumn(dto models.CreateColumnDTO) error {
	return stringLength("name", dto.Name, 2, 255, true)
}

func ValidateUpdateColumn(dto models.UpdateColumnDTO) error {
	if dto.ID.IsZero() {
		return apperrors.New(apperrors.KindValidationFailed, "column id is required")
	}
	return stringLength("name", dto.Name, 2, 255, true)
}

func ValidateColumnOrder(dto models.UpdateColumnOrderDTO) error {
	if dto.ColumnID.IsZero() {
		return apperrors.New(apperrors.KindValidationFailed, "columnId is required")
	}
	if dto.Order < 0 || dto.Order > 300 {
		return apperrors.New(apperrors.KindValidationFailed, "order must be between 0 and 300")
	}
	return nil
}

func ValidateTaskOrder(dto models.UpdateTaskOrderDTO) error {
	if dto.ColumnID.IsZero() {
		return apperrors.New(apperrors.KindValidationFailed, "columnId is required")
	}
	if dto.Tasks == nil {
		return apperrors.New(apperrors.KindValidationFailed, "tasks is required")
	}
	return nil
}

func ValidateCreateTask(dto models.CreateTaskDTO) error {
	if err := stringLength("title", dto.Title, 2, 255, true); err != nil {
		return err
	}
	if err := stringLength("description", dto.Description, 3, 1056, false); err != nil {
		return err
	}
	if dto.StartDate.IsZero() || dto.EndDate.IsZero() {
		return apperrors.New(apperrors.KindValidationFailed, "startDate and endDate are required")
	}
	if dto.ColumnID.IsZero() {
		return apperrors.New(apperrors.KindValidationFailed, "columnId is required")
	}
	return nil
}

func ValidateUpdateTask(dto models.UpdateTaskDTO) error {
	if dto.Title != nil {
		if err := stringLength("title", *dto.Title, 2, 255, true); err != nil {
			return err
		}
	}
	if dto.Description != nil {
		return stringLength("description", *dto.Description, 3, 1056, false)
	}
	return nil
}

func ValidateCreateLabel(dto models.CreateLabelDTO) error {
	if err := stringLength("name", dto.Name, 2, 255, true); err != nil {
		return err
	}
	return stringLength("color", dto.Color, 1, 24, true)
}
