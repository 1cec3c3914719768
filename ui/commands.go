package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"veckorapport/engine"
	"veckorapport/export"
	"veckorapport/models"
)

// exportFailedMessage is shown for any export failure; details go to the log
const exportFailedMessage = "Det gick inte att exportera PDF. Försök igen."

// ProjectSavedMsg is sent when a create or update of a project completes
type ProjectSavedMsg struct {
	project models.Project
	created bool
	err     error
}

// ProjectDeletedMsg is sent when a project and its reports have been removed
type ProjectDeletedMsg struct {
	projectID string
	err       error
}

// ReportSavedMsg is sent when a report has been stored
type ReportSavedMsg struct {
	report models.WeeklyReport
	err    error
}

// ReportDeletedMsg is sent when a report has been removed
type ReportDeletedMsg struct {
	reportID string
	err      error
}

// ExportMsg is sent when a PDF export finishes
type ExportMsg struct {
	result export.Result
	err    error
}

// saveProjectCmd creates or updates a project in the background
func saveProjectCmd(svc *engine.Service, id string, in engine.ProjectInput) tea.Cmd {
	return func() tea.Msg {
		if id == "" {
			p, err := svc.CreateProject(in)
			return ProjectSavedMsg{project: p, created: true, err: err}
		}
		p, err := svc.UpdateProject(id, in)
		return ProjectSavedMsg{project: p, err: err}
	}
}

// deleteProjectCmd removes a project together with its reports
func deleteProjectCmd(svc *engine.Service, id string) tea.Cmd {
	return func() tea.Msg {
		return ProjectDeletedMsg{projectID: id, err: svc.DeleteProject(id)}
	}
}

// saveReportCmd stores a new or edited report
func saveReportCmd(svc *engine.Service, projectID, reportID string, form models.ReportForm) tea.Cmd {
	return func() tea.Msg {
		r, err := svc.SaveReport(projectID, reportID, form)
		return ReportSavedMsg{report: r, err: err}
	}
}

// deleteReportCmd removes a single report
func deleteReportCmd(svc *engine.Service, id string) tea.Cmd {
	return func() tea.Msg {
		return ReportDeletedMsg{reportID: id, err: svc.DeleteReport(id)}
	}
}

// exportReportCmd writes the report as a PDF into dir
func exportReportCmd(svc *engine.Service, reportID, dir string) tea.Cmd {
	return func() tea.Msg {
		res, err := svc.ExportReport(context.Background(), reportID, dir)
		return ExportMsg{result: res, err: err}
	}
}
