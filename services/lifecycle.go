package services

import (
	"time"

	"github.com/kos3l/manageable-kanban-api/apperrors"
	"github.com/kos3l/manageable-kanban-api/models"
)

// LifecycleClock derives a project's status from the current time and its
// date window. All comparisons happen in UTC so that stored dates and "now"
// compare consistently regardless of caller locale.
type LifecycleClock struct {
	Now func() time.Time
}

func NewLifecycleClock() *LifecycleClock {
	return &LifecycleClock{Now: func() time.Time { return time.Now().UTC() }}
}

// Refresh applies the lazy date-driven transition performed on every read:
// a project past its end date becomes Overdue unless it is Completed.
// Reports whether the status changed.
func (c *LifecycleClock) Refresh(p *models.Project) bool {
	if p.Status != models.StatusNotStarted && p.Status != models.StatusOngoing {
		return false
	}
	if c.Now().After(p.EndDate.UTC()) {
		p.Status = models.StatusOverdue
		return true
	}
	return false
}

// OnFirstTask fires the NotStarted -> Ongoing transition the first time a
// task is created under the project, provided the project has started.
// Reports whether the status changed.
func (c *LifecycleClock) OnFirstTask(p *models.Project) bool {
	if p.Status != models.StatusNotStarted {
		return false
	}
	if !c.Now().Before(p.StartDate.UTC()) {
		p.Status = models.StatusOngoing
		return true
	}
	return false
}

// OnEndDateChange fires the Overdue -> Ongoing transition when an update
// pushes the end date back to the present or the future. Reports whether
// the status changed.
func (c *LifecycleClock) OnEndDateChange(p *models.Project, newEndDate time.Time) bool {
	if p.Status != models.StatusOverdue {
		return false
	}
	if !c.Now().After(newEndDate.UTC()) {
		p.Status = models.StatusOngoing
		return true
	}
	return false
}

// Complete marks the project Completed. Completing a project that has not
// started is an invalid transition; Completed itself is terminal with
// respect to date-driven transitions.
func (c *LifecycleClock) Complete(p *models.Project) error {
	if p.Status == models.StatusNotStarted {
		return apperrors.New(apperrors.KindInvalidTransition, "can't complete a project that hasn't started")
	}
	p.Status = models.StatusCompleted
	return nil
}
