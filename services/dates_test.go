package services

import (
	"testing"
	"time"

	"github.com/kos3l/manageable-kanban-api/apperrors"
)

func TestValidateTaskWindow(t *testing.T) {
	projectStart := date(2024, 1, 1)
	projectEnd := date(2024, 3, 1)

	tests := []struct {
		name    string
		start   time.Time
		end     time.Time
		wantErr bool
	}{
		{"inside window", date(2024, 1, 10), date(2024, 2, 10), false},
		{"exactly on bounds", projectStart, projectEnd, false},
		{"starts before project", date(2023, 12, 30), date(2024, 2, 10), true},
		{"ends after project", date(2024, 1, 10), date(2024, 3, 2), true},
		{"end before start", date(2024, 2, 10), date(2024, 1, 10), true},
		{"zero-length task", date(2024, 1, 10), date(2024, 1, 10), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTaskWindow(tt.start, tt.end, projectStart, projectEnd)
			if tt.wantErr {
				if !apperrors.IsKind(err, apperrors.KindValidationFailed) {
					t.Fatalf("got %v, want validation failure", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateProjectWindow(t *testing.T) {
	earliest := date(2024, 1, 10)
	latest := date(2024, 2, 20)

	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		earliest *time.Time
		latest   *time.Time
		wantErr  bool
	}{
		{"contains all tasks", date(2024, 1, 1), date(2024, 3, 1), &earliest, &latest, false},
		{"no tasks yet", date(2024, 5, 1), date(2024, 6, 1), nil, nil, false},
		{"start excludes earliest task", date(2024, 1, 15), date(2024, 3, 1), &earliest, &latest, true},
		{"end excludes latest task", date(2024, 1, 1), date(2024, 2, 15), &earliest, &latest, true},
		{"end before start", date(2024, 3, 1), date(2024, 1, 1), nil, nil, true},
		{"tight fit on both bounds", earliest, latest, &earliest, &latest, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProjectWindow(tt.start, tt.end, tt.earliest, tt.latest)
			if tt.wantErr {
				if !apperrors.IsKind(err, apperrors.KindValidationFailed) {
					t.Fatalf("got %v, want validation failure", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
