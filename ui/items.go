package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"

	"veckorapport/models"
	"veckorapport/render"
)

// projectItem wraps a Project and implements the list.Item interface
type projectItem struct {
	project models.Project
}

// FilterValue implements list.Item
func (i projectItem) FilterValue() string {
	return i.project.Name + " " + i.project.CustomerName
}

// Title implements list.DefaultItem
func (i projectItem) Title() string {
	return i.project.Name
}

// Description implements list.DefaultItem
func (i projectItem) Description() string {
	desc := i.project.CustomerName
	if i.project.HasLogo() {
		desc += " • logotyp"
	}
	return desc
}

// reportItem wraps a WeeklyReport for the report history list
type reportItem struct {
	report models.WeeklyReport
}

func (i reportItem) FilterValue() string {
	return i.report.WeekStartDate + " " + i.report.Summary
}

func (i reportItem) Title() string {
	return "Vecka " + render.ShortDateRange(i.report)
}

func (i reportItem) Description() string {
	summary := strings.ReplaceAll(i.report.Summary, "\n", " ")
	if summary == "" {
		return "Ingen sammanfattning"
	}
	return summary
}

func projectItems(projects []models.Project) []list.Item {
	items := make([]list.Item, len(projects))
	for i, p := range projects {
		items[i] = projectItem{project: p}
	}
	return items
}

func reportItems(reports []models.WeeklyReport) []list.Item {
	items := make([]list.Item, len(reports))
	for i, r := range reports {
		items[i] = reportItem{report: r}
	}
	return items
}
