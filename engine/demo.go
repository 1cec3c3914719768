package engine

import (
	"fmt"

	"veckorapport/models"
)

// SeedDemo creates a sample project with one report for the current week
func (s *Service) SeedDemo() (models.Project, models.WeeklyReport, error) {
	p, err := s.CreateProject(ProjectInput{Name: "Q1 Rollout", CustomerName: "Acme AB"})
	if err != nil {
		return models.Project{}, models.WeeklyReport{}, fmt.Errorf("failed to seed project: %w", err)
	}

	form := s.NewReportForm(nil)
	form.Summary = "Projektet har startat och miljöerna är på plats."
	form.ActivitiesThisWeek = "Kickoff med kund\nGenomgång av krav"
	form.CompletedActivities = "Setup repo\nKickoff call"
	form.StartedActivities = "CI-pipeline"
	form.PlannedActivitiesNextWeek = "Första leveransen till testmiljö"

	r, err := s.SaveReport(p.ID, "", form)
	if err != nil {
		return models.Project{}, models.WeeklyReport{}, fmt.Errorf("failed to seed report: %w", err)
	}
	return p, r, nil
}
