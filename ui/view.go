package ui

import (
	"fmt"
	"strings"
)

// View renders the UI
func (m model) View() string {
	var body, help string
	switch m.screen {
	case screenProjectForm:
		body = docStyle.Render(m.projectForm.view())
	case screenReportForm:
		body = docStyle.Render(m.reportForm.view())
	case screenProject:
		body, help = m.viewProject()
	case screenReport:
		body, help = m.viewReport()
	default:
		body, help = m.viewProjects()
	}
	return body + m.viewFooter() + help
}

// viewProjects renders the project list screen
func (m model) viewProjects() (string, string) {
	if len(m.projects.Items()) == 0 {
		return docStyle.Render(titleStyle.Render("Veckorapport") + "\n\n" +
				subtitleStyle.Render("Inga projekt än. Tryck n för att skapa ditt första projekt.")),
			helpStyle.Render("\n\nKeys: n=nytt projekt  q=avsluta")
	}
	return m.projects.View(),
		helpStyle.Render("\n\nKeys: enter=öppna  n=nytt projekt  /=filtrera  q=avsluta")
}

// viewProject renders the project detail screen
func (m model) viewProject() (string, string) {
	if m.project == nil {
		return "", ""
	}
	header := titleStyle.Render(m.project.Name) + "\n" + subtitleStyle.Render(m.project.CustomerName) + "\n\n"

	body := m.reports.View()
	if len(m.reports.Items()) == 0 {
		body = subtitleStyle.Render("Inga rapporter än. Tryck n för att skapa en ny veckorapport.")
	}
	return docStyle.Render(header + body),
		helpStyle.Render("\n\nKeys: enter=visa  n=ny veckorapport  e=redigera projekt  d=ta bort projekt  p=exportera PDF  esc=tillbaka")
}

// viewReport renders the report preview screen
func (m model) viewReport() (string, string) {
	if m.report == nil {
		return "", ""
	}
	return m.preview.View(),
		helpStyle.Render(fmt.Sprintf("\n\n%3.f%%  Keys: ↑/↓=scrolla  e=redigera  d=ta bort  p=exportera PDF  esc=tillbaka", m.preview.ScrollPercent()*100))
}

// viewFooter renders confirmation prompts, progress and messages
func (m model) viewFooter() string {
	var b strings.Builder

	switch m.confirm {
	case confirmProject:
		b.WriteString("\n\n" + warningStyle.Render("⚠ "+deleteProjectPrompt) + "\n" +
			errorStyle.Render("y = ta bort | n/esc = avbryt"))
	case confirmReport:
		b.WriteString("\n\n" + warningStyle.Render("⚠ "+deleteReportPrompt) + "\n" +
			errorStyle.Render("y = ta bort | n/esc = avbryt"))
	}

	if m.isExporting {
		b.WriteString("\n\n" + statusStyle.Bold(true).Render("⟳ Exporterar..."))
	}
	if m.errorMessage != "" {
		b.WriteString(errorStyle.Render("\n\n⚠ " + m.errorMessage))
	}
	if m.statusMessage != "" && !m.isExporting {
		b.WriteString(statusStyle.Render("\n\n✓ " + m.statusMessage))
	}
	return b.String()
}
