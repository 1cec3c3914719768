package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"veckorapport/engine"
	"veckorapport/models"
)

// clearLogoValue in the logo field removes the current logo
const clearLogoValue = "-"

// projectForm edits a project's name, customer name and logo file
type projectForm struct {
	editingID string // empty when creating
	hasLogo   bool
	inputs    []textinput.Model
	focus     int
}

var projectFormLabels = []string{"Projektnamn", "Kundnamn", "Logotyp (sökväg till bildfil)"}

func newProjectForm(existing *models.Project) projectForm {
	f := projectForm{inputs: make([]textinput.Model, len(projectFormLabels))}
	for i := range f.inputs {
		ti := textinput.New()
		ti.CharLimit = 256
		ti.Width = 60
		f.inputs[i] = ti
	}
	f.inputs[0].Placeholder = "t.ex. Q1 Rollout"
	f.inputs[1].Placeholder = "t.ex. Acme AB"
	f.inputs[2].Placeholder = "valfri, png/jpeg/gif/webp"

	if existing != nil {
		f.editingID = existing.ID
		f.hasLogo = existing.HasLogo()
		f.inputs[0].SetValue(existing.Name)
		f.inputs[1].SetValue(existing.CustomerName)
		if f.hasLogo {
			f.inputs[2].Placeholder = "tomt behåller logotypen, '-' tar bort den"
		}
	}
	f.inputs[0].Focus()
	return f
}

func (f projectForm) input() engine.ProjectInput {
	logo := strings.TrimSpace(f.inputs[2].Value())
	in := engine.ProjectInput{
		Name:         f.inputs[0].Value(),
		CustomerName: f.inputs[1].Value(),
	}
	if logo == clearLogoValue {
		in.ClearLogo = true
	} else {
		in.LogoPath = logo
	}
	return in
}

func (f *projectForm) setFocus(i int) tea.Cmd {
	n := len(f.inputs)
	f.focus = ((i % n) + n) % n
	for j := range f.inputs {
		f.inputs[j].Blur()
	}
	return f.inputs[f.focus].Focus()
}

func (f projectForm) onLastField() bool {
	return f.focus == len(f.inputs)-1
}

func (f projectForm) update(msg tea.Msg) (projectForm, tea.Cmd) {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f projectForm) view() string {
	title := "Nytt Projekt"
	if f.editingID != "" {
		title = "Redigera Projekt"
	}
	s := titleStyle.Render(title) + "\n\n"
	for i, in := range f.inputs {
		label := labelStyle
		if i == f.focus {
			label = focusedLabelStyle
		}
		s += label.Render(projectFormLabels[i]) + "\n" + in.View() + "\n\n"
	}
	return s + helpStyle.Render("tab=nästa fält  enter=spara (sista fältet)  esc=avbryt")
}

// reportFormLabels lists the report form fields in display order
var reportFormLabels = []string{
	"Vecka Startar",
	"Vecka Slutar",
	"Sammanfattning",
	"Aktiviteter Under Veckan",
	"Avslutade Aktiviteter",
	"Påbörjade Aktiviteter",
	"Uppnådda Milstolpar",
	"Blockeringar och Utmaningar",
	"Beslut som Behöver Fattas",
	"Planerade Aktiviteter Nästa Vecka",
}

// reportForm edits one weekly report: two date inputs and eight text areas
type reportForm struct {
	projectID string
	editingID string
	dates     [2]textinput.Model
	areas     [8]textarea.Model
	focus     int
}

func newReportForm(projectID string, existing *models.WeeklyReport, values models.ReportForm) reportForm {
	f := reportForm{projectID: projectID}
	if existing != nil {
		f.editingID = existing.ID
	}

	for i := range f.dates {
		ti := textinput.New()
		ti.Placeholder = "ÅÅÅÅ-MM-DD"
		ti.CharLimit = 10
		ti.Width = 12
		f.dates[i] = ti
	}
	f.dates[0].SetValue(values.WeekStartDate)
	f.dates[1].SetValue(values.WeekEndDate)

	texts := []string{
		values.Summary,
		values.ActivitiesThisWeek,
		values.CompletedActivities,
		values.StartedActivities,
		values.MilestonesAchieved,
		values.BlockersAndChallenges,
		values.DecisionsNeeded,
		values.PlannedActivitiesNextWeek,
	}
	for i := range f.areas {
		ta := textarea.New()
		ta.ShowLineNumbers = false
		ta.SetWidth(70)
		ta.SetHeight(3)
		if i > 0 {
			ta.Placeholder = "En punkt per rad"
		}
		ta.SetValue(texts[i])
		f.areas[i] = ta
	}

	f.dates[0].Focus()
	return f
}

func (f reportForm) fieldCount() int {
	return len(f.dates) + len(f.areas)
}

func (f reportForm) values() models.ReportForm {
	return models.ReportForm{
		WeekStartDate:             f.dates[0].Value(),
		WeekEndDate:               f.dates[1].Value(),
		Summary:                   f.areas[0].Value(),
		ActivitiesThisWeek:        f.areas[1].Value(),
		CompletedActivities:       f.areas[2].Value(),
		StartedActivities:         f.areas[3].Value(),
		MilestonesAchieved:        f.areas[4].Value(),
		BlockersAndChallenges:     f.areas[5].Value(),
		DecisionsNeeded:           f.areas[6].Value(),
		PlannedActivitiesNextWeek: f.areas[7].Value(),
	}
}

func (f *reportForm) setFocus(i int) tea.Cmd {
	n := f.fieldCount()
	f.focus = ((i % n) + n) % n
	for j := range f.dates {
		f.dates[j].Blur()
	}
	for j := range f.areas {
		f.areas[j].Blur()
	}
	if f.focus < len(f.dates) {
		return f.dates[f.focus].Focus()
	}
	return f.areas[f.focus-len(f.dates)].Focus()
}

func (f reportForm) update(msg tea.Msg) (reportForm, tea.Cmd) {
	var cmd tea.Cmd
	if f.focus < len(f.dates) {
		f.dates[f.focus], cmd = f.dates[f.focus].Update(msg)
	} else {
		i := f.focus - len(f.dates)
		f.areas[i], cmd = f.areas[i].Update(msg)
	}
	return f, cmd
}

func (f reportForm) setWidth(width int) reportForm {
	w := width - 6
	if w < 30 {
		w = 30
	}
	for i := range f.areas {
		f.areas[i].SetWidth(w)
	}
	return f
}

func (f reportForm) view() string {
	title := "Ny Veckorapport"
	if f.editingID != "" {
		title = "Redigera Veckorapport"
	}
	s := titleStyle.Render(title) + "\n\n"

	for i := range f.dates {
		label := labelStyle
		if i == f.focus {
			label = focusedLabelStyle
		}
		s += label.Render(reportFormLabels[i]) + " " + f.dates[i].View() + "\n"
	}
	s += "\n"
	for i := range f.areas {
		label := labelStyle
		if i+len(f.dates) == f.focus {
			label = focusedLabelStyle
		}
		s += label.Render(reportFormLabels[i+len(f.dates)]) + "\n" + f.areas[i].View() + "\n"
	}
	return s + "\n" + helpStyle.Render("tab/shift+tab=byt fält  ctrl+s=spara  esc=avbryt")
}
