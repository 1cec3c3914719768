package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitItems(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", []string{}},
		{"blank lines dropped", "\n  \n\t\n", []string{}},
		{"trims and keeps order", "  Setup repo \n\nKickoff call\r\n", []string{"Setup repo", "Kickoff call"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitItems(tt.in))
		})
	}
}

func TestFormRoundTrip(t *testing.T) {
	report := WeeklyReport{
		ID:                  "r1",
		ProjectID:           "p1",
		WeekStartDate:       "2024-03-04",
		WeekEndDate:         "2024-03-10",
		Summary:             "Kickoff done",
		CompletedActivities: []string{"Setup repo", "Kickoff call"},
		CreatedAt:           "2024-03-04T08:00:00Z",
	}

	var got WeeklyReport
	got.ID = report.ID
	got.ProjectID = report.ProjectID
	got.CreatedAt = report.CreatedAt
	FormFromReport(report).ApplyTo(&got)

	assert.Equal(t, report.CompletedActivities, got.CompletedActivities)
	assert.Equal(t, report.Summary, got.Summary)
	assert.Equal(t, report.WeekStartDate, got.WeekStartDate)
	assert.Empty(t, got.ActivitiesThisWeek)
	assert.NotNil(t, got.ActivitiesThisWeek)
}
