package services

import (
	"time"

	"github.com/kos3l/manageable-kanban-api/apperrors"
)

// ValidateTaskWindow checks that a task's dates form a valid interval that
// falls entirely within the owning project's window. All comparisons are
// inclusive on the bounds and done in UTC.
func ValidateTaskWindow(taskStart, taskEnd, projectStart, projectEnd time.Time) error {
	taskStart, taskEnd = taskStart.UTC(), taskEnd.UTC()
	projectStart, projectEnd = projectStart.UTC(), projectEnd.UTC()

	if !taskEnd.After(taskStart) {
		return apperrors.New(apperrors.KindValidationFailed, "task endDate must be greater than startDate")
	}
	if taskStart.Before(projectStart) || taskEnd.After(projectEnd) {
		return apperrors.New(apperrors.KindValidationFailed, "task dates must fall within the project window")
	}
	return nil
}

// ValidateProjectWindow checks that a new project window still contains the
// earliest task start and the latest task end date. A project's dates can
// never be edited to exclude existing tasks.
func ValidateProjectWindow(newStart, newEnd time.Time, earliestTaskStart, latestTaskEnd *time.Time) error {
	newStart, newEnd = newStart.UTC(), newEnd.UTC()

	if !newEnd.After(newStart) {
		return apperrors.New(apperrors.KindValidationFailed, "endDate must be greater than startDate")
	}
	if earliestTaskStart != nil && earliestTaskStart.UTC().Before(newStart) {
		return apperrors.New(apperrors.KindValidationFailed, "project startDate cannot exclude existing tasks")
	}
	if latestTaskEnd != nil && latestTaskEnd.UTC().After(newEnd) {
		return apperrors.New(apperrors.KindValidationFailed, "project endDate cannot exclude existing tasks")
	}
	return nil
}
