package services

import (
	"testing"
	"time"

	"github.com/kos3l/manageable-kanban-api/apperrors"
	"github.com/kos3l/manageable-kanban-api/models"
)

func clockAt(t time.Time) *LifecycleClock {
	return &LifecycleClock{Now: func() time.Time { return t }}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func projectWindow(status models.ProjectStatus, start, end time.Time) *models.Project {
	return &models.Project{Status: status, StartDate: start, EndDate: end}
}

func TestRefreshMarksOverdueOnRead(t *testing.T) {
	clock := clockAt(date(2024, 2, 1))
	p := projectWindow(models.StatusOngoing, date(2024, 1, 1), date(2024, 1, 31))

	if !clock.Refresh(p) {
		t.Fatalf("Refresh did not report a change")
	}
	if p.Status != models.StatusOverdue {
		t.Fatalf("status = %v, want Overdue", p.Status)
	}
}

func TestRefreshTable(t *testing.T) {
	tests := []struct {
		name       string
		status     models.ProjectStatus
		now        time.Time
		end        time.Time
		wantChange bool
		wantStatus models.ProjectStatus
	}{
		{"ongoing before end", models.StatusOngoing, date(2024, 1, 15), date(2024, 1, 31), false, models.StatusOngoing},
		{"ongoing past end", models.StatusOngoing, date(2024, 2, 1), date(2024, 1, 31), true, models.StatusOverdue},
		{"not started past end", models.StatusNotStarted, date(2024, 2, 1), date(2024, 1, 31), true, models.StatusOverdue},
		{"completed is terminal", models.StatusCompleted, date(2024, 2, 1), date(2024, 1, 31), false, models.StatusCompleted},
		{"already overdue", models.StatusOverdue, date(2024, 2, 1), date(2024, 1, 31), false, models.StatusOverdue},
		{"exactly at end is not overdue", models.StatusOngoing, date(2024, 1, 31), date(2024, 1, 31), false, models.StatusOngoing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := clockAt(tt.now)
			p := projectWindow(tt.status, date(2024, 1, 1), tt.end)
			if got := clock.Refresh(p); got != tt.wantChange {
				t.Fatalf("Refresh = %v, want %v", got, tt.wantChange)
			}
			if p.Status != tt.wantStatus {
				t.Fatalf("status = %v, want %v", p.Status, tt.wantStatus)
			}
		})
	}
}

func TestOnFirstTaskStartsProject(t *testing.T) {
	clock := clockAt(date(2024, 1, 15))
	p := projectWindow(models.StatusNotStarted, date(2024, 1, 1), date(2024, 1, 31))

	if !clock.OnFirstTask(p) {
		t.Fatalf("OnFirstTask did not report a change")
	}
	if p.Status != models.StatusOngoing {
		t.Fatalf("status = %v, want Ongoing", p.Status)
	}
}

func TestOnFirstTaskBeforeProjectStart(t *testing.T) {
	clock := clockAt(date(2023, 12, 20))
	p := projectWindow(models.StatusNotStarted, date(2024, 1, 1), date(2024, 1, 31))

	if clock.OnFirstTask(p) {
		t.Fatalf("OnFirstTask fired before the project start date")
	}
	if p.Status != models.StatusNotStarted {
		t.Fatalf("status = %v, want NotStarted", p.Status)
	}
}

func TestOnFirstTaskOnlyFromNotStarted(t *testing.T) {
	clock := clockAt(date(2024, 1, 15))
	for _, status := range []models.ProjectStatus{models.StatusOngoing, models.StatusOverdue, models.StatusCompleted} {
		p := projectWindow(status, date(2024, 1, 1), date(2024, 1, 31))
		if clock.OnFirstTask(p) {
			t.Fatalf("OnFirstTask fired from %v", status)
		}
	}
}

func TestOnEndDateChangeRecoversOverdue(t *testing.T) {
	clock := clockAt(date(2024, 2, 1))
	p := projectWindow(models.StatusOverdue, date(2024, 1, 1), date(2024, 1, 31))

	if !clock.OnEndDateChange(p, date(2024, 3, 1)) {
		t.Fatalf("OnEndDateChange did not report a change")
	}
	if p.Status != models.StatusOngoing {
		t.Fatalf("status = %v, want Ongoing", p.Status)
	}
}

func TestOnEndDateChangeStillPast(t *testing.T) {
	clock := clockAt(date(2024, 3, 1))
	p := projectWindow(models.StatusOverdue, date(2024, 1, 1), date(2024, 1, 31))

	if clock.OnEndDateChange(p, date(2024, 2, 15)) {
		t.Fatalf("OnEndDateChange fired for an end date still in the past")
	}
	if p.Status != models.StatusOverdue {
		t.Fatalf("status = %v, want Overdue", p.Status)
	}
}

func TestCompleteFromNotStartedFails(t *testing.T) {
	clock := clockAt(date(2024, 1, 15))
	p := projectWindow(models.StatusNotStarted, date(2024, 1, 1), date(2024, 1, 31))

	err := clock.Complete(p)
	if !apperrors.IsKind(err, apperrors.KindInvalidTransition) {
		t.Fatalf("Complete from NotStarted = %v, want invalid transition", err)
	}
	if p.Status != models.StatusNotStarted {
		t.Fatalf("status changed to %v on a refused transition", p.Status)
	}
}

func TestCompleteFromActiveStates(t *testing.T) {
	clock := clockAt(date(2024, 1, 15))
	for _, status := range []models.ProjectStatus{models.StatusOngoing, models.StatusOverdue} {
		p := projectWindow(status, date(2024, 1, 1), date(2024, 1, 31))
		if err := clock.Complete(p); err != nil {
			t.Fatalf("Complete from %v failed: %v", status, err)
		}
		if p.Status != models.StatusCompleted {
			t.Fatalf("status = %v, want Completed", p.Status)
		}
	}
}

// A completed project stays completed no matter how far past its end date a
// later read happens.
func TestCompletedSurvivesLaterReads(t *testing.T) {
	p := projectWindow(models.StatusOngoing, date(2024, 1, 1), date(2024, 1, 31))

	if err := clockAt(date(2024, 1, 20)).Complete(p); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if clockAt(date(2025, 6, 1)).Refresh(p) {
		t.Fatalf("Refresh changed a completed project")
	}
	if p.Status != models.StatusCompleted {
		t.Fatalf("status = %v, want Completed", p.Status)
	}
}
