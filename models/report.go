package models

import "strings"

// WeeklyReport is one week's structured status update for a project
type WeeklyReport struct {
	ID                        string   `json:"id"`
	ProjectID                 string   `json:"projectId"`
	WeekStartDate             string   `json:"weekStartDate"` // YYYY-MM-DD
	WeekEndDate               string   `json:"weekEndDate"`   // YYYY-MM-DD
	Summary                   string   `json:"summary"`
	ActivitiesThisWeek        []string `json:"activitiesThisWeek"`
	CompletedActivities       []string `json:"completedActivities"`
	StartedActivities         []string `json:"startedActivities"`
	MilestonesAchieved        []string `json:"milestonesAchieved"`
	BlockersAndChallenges     []string `json:"blockersAndChallenges"`
	DecisionsNeeded           []string `json:"decisionsNeeded"`
	PlannedActivitiesNextWeek []string `json:"plannedActivitiesNextWeek"`
	CreatedAt                 string   `json:"createdAt"`
}

// ReportForm holds the editable text form of a report, one list item per line
type ReportForm struct {
	WeekStartDate             string
	WeekEndDate               string
	Summary                   string
	ActivitiesThisWeek        string
	CompletedActivities       string
	StartedActivities         string
	MilestonesAchieved        string
	BlockersAndChallenges     string
	DecisionsNeeded           string
	PlannedActivitiesNextWeek string
}

// FormFromReport fills a form with the values of an existing report
func FormFromReport(r WeeklyReport) ReportForm {
	return ReportForm{
		WeekStartDate:             r.WeekStartDate,
		WeekEndDate:               r.WeekEndDate,
		Summary:                   r.Summary,
		ActivitiesThisWeek:        JoinItems(r.ActivitiesThisWeek),
		CompletedActivities:       JoinItems(r.CompletedActivities),
		StartedActivities:         JoinItems(r.StartedActivities),
		MilestonesAchieved:        JoinItems(r.MilestonesAchieved),
		BlockersAndChallenges:     JoinItems(r.BlockersAndChallenges),
		DecisionsNeeded:           JoinItems(r.DecisionsNeeded),
		PlannedActivitiesNextWeek: JoinItems(r.PlannedActivitiesNextWeek),
	}
}

// ApplyTo copies the form values onto r. Identity fields are left untouched.
func (f ReportForm) ApplyTo(r *WeeklyReport) {
	r.WeekStartDate = strings.TrimSpace(f.WeekStartDate)
	r.WeekEndDate = strings.TrimSpace(f.WeekEndDate)
	r.Summary = strings.TrimSpace(f.Summary)
	r.ActivitiesThisWeek = SplitItems(f.ActivitiesThisWeek)
	r.CompletedActivities = SplitItems(f.CompletedActivities)
	r.StartedActivities = SplitItems(f.StartedActivities)
	r.MilestonesAchieved = SplitItems(f.MilestonesAchieved)
	r.BlockersAndChallenges = SplitItems(f.BlockersAndChallenges)
	r.DecisionsNeeded = SplitItems(f.DecisionsNeeded)
	r.PlannedActivitiesNextWeek = SplitItems(f.PlannedActivitiesNextWeek)
}

// SplitItems turns multi-line text into list items, trimming each line and
// dropping blank ones. The result is never nil.
func SplitItems(text string) []string {
	items := []string{}
	for _, line := range strings.Split(text, "\n") {
		if item := strings.TrimSpace(line); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// JoinItems is the inverse of SplitItems
func JoinItems(items []string) string {
	return strings.Join(items, "\n")
}
