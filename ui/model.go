package ui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"veckorapport/engine"
	"veckorapport/models"
	"veckorapport/render"
)

// screenState represents the current screen being displayed
type screenState int

const (
	screenProjects screenState = iota
	screenProjectForm
	screenProject
	screenReportForm
	screenReport
)

// confirmKind is the deletion awaiting a yes/no answer
type confirmKind int

const (
	confirmNone confirmKind = iota
	confirmProject
	confirmReport
)

const (
	deleteProjectPrompt = "Är du säker på att du vill ta bort detta projekt? Alla rapporter kommer också tas bort."
	deleteReportPrompt  = "Är du säker på att du vill ta bort denna rapport?"
)

// model represents the Bubble Tea application model
type model struct {
	svc       *engine.Service
	exportDir string

	screen      screenState
	returnTo    screenState // where the project form goes back to
	projects    list.Model
	reports     list.Model
	preview     viewport.Model
	projectForm projectForm
	reportForm  reportForm

	project *models.Project      // project being viewed
	report  *models.WeeklyReport // report being viewed

	confirm       confirmKind
	isExporting   bool
	errorMessage  string
	statusMessage string
	width         int
	height        int
	ready         bool
}

// NewModel creates the application model with projects loaded from the service.
// Exported PDFs are written to exportDir.
func NewModel(svc *engine.Service, exportDir string) (tea.Model, error) {
	if svc == nil {
		return nil, errors.New("service is required")
	}

	projects := list.New(projectItems(svc.Projects()), list.NewDefaultDelegate(), 80, 20)
	projects.Title = "Veckorapport - Projekt"
	projects.SetStatusBarItemName("projekt", "projekt")
	projects.SetShowStatusBar(true)
	projects.SetFilteringEnabled(true)
	projects.SetShowHelp(false)

	reports := list.New([]list.Item{}, list.NewDefaultDelegate(), 80, 20)
	reports.SetStatusBarItemName("rapport", "rapporter")
	reports.SetFilteringEnabled(false)
	reports.SetShowHelp(false)

	return model{
		svc:       svc,
		exportDir: exportDir,
		screen:    screenProjects,
		projects:  projects,
		reports:   reports,
		preview:   viewport.New(80, 20),
		width:     80,
		height:    24,
	}, nil
}

// Init initializes the model
func (m model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		listWidth := msg.Width - 4
		listHeight := msg.Height - 8
		if listHeight < 10 {
			listHeight = 10
		}
		m.projects.SetSize(listWidth, listHeight)
		m.reports.SetSize(listWidth, listHeight)
		m.preview.Width = listWidth
		m.preview.Height = listHeight
		if m.screen == screenReportForm {
			m.reportForm = m.reportForm.setWidth(msg.Width)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.confirm != confirmNone {
			return m.updateConfirm(msg)
		}

	case ProjectSavedMsg:
		if msg.err != nil {
			m.errorMessage = fmt.Sprintf("Kunde inte spara projektet: %v", msg.err)
			return m, nil
		}
		m.errorMessage = ""
		m.statusMessage = "Projektet sparades"
		m.reloadProjects()
		if msg.created {
			m.screen = screenProjects
			return m, nil
		}
		p := msg.project
		m.project = &p
		m.screen = m.returnTo
		m.reports.Title = p.Name
		return m, nil

	case ProjectDeletedMsg:
		if msg.err != nil {
			m.errorMessage = fmt.Sprintf("Kunde inte ta bort projektet: %v", msg.err)
			return m, nil
		}
		m.project = nil
		m.report = nil
		m.statusMessage = "Projektet och dess rapporter togs bort"
		m.errorMessage = ""
		m.reloadProjects()
		m.screen = screenProjects
		return m, nil

	case ReportSavedMsg:
		if msg.err != nil {
			m.errorMessage = fmt.Sprintf("Kunde inte spara rapporten: %v", msg.err)
			return m, nil
		}
		m.errorMessage = ""
		m.statusMessage = "Rapporten sparades"
		m.reloadReports()
		m.openReport(msg.report)
		return m, nil

	case ReportDeletedMsg:
		if msg.err != nil {
			m.errorMessage = fmt.Sprintf("Kunde inte ta bort rapporten: %v", msg.err)
			return m, nil
		}
		m.report = nil
		m.statusMessage = "Rapporten togs bort"
		m.errorMessage = ""
		m.reloadReports()
		m.screen = screenProject
		return m, nil

	case ExportMsg:
		m.isExporting = false
		if msg.err != nil {
			m.errorMessage = exportFailedMessage
			m.statusMessage = ""
			return m, nil
		}
		m.errorMessage = ""
		m.statusMessage = fmt.Sprintf("PDF sparad: %s (%d sidor)", msg.result.Path, msg.result.Pages)
		return m, nil
	}

	switch m.screen {
	case screenProjectForm:
		return m.updateProjectForm(msg)
	case screenProject:
		return m.updateProject(msg)
	case screenReportForm:
		return m.updateReportForm(msg)
	case screenReport:
		return m.updateReport(msg)
	}
	return m.updateProjects(msg)
}

// updateConfirm answers a pending delete confirmation
func (m model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	kind := m.confirm
	switch msg.String() {
	case "y", "j":
		m.confirm = confirmNone
		switch {
		case kind == confirmProject && m.project != nil:
			return m, deleteProjectCmd(m.svc, m.project.ID)
		case kind == confirmReport && m.report != nil:
			return m, deleteReportCmd(m.svc, m.report.ID)
		}
	case "n", "esc":
		m.confirm = confirmNone
		m.statusMessage = "Avbrutet"
	}
	return m, nil
}

// updateProjects handles the project list screen
func (m model) updateProjects(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && m.projects.FilterState() != list.Filtering {
		switch msg.String() {
		case "q":
			return m, tea.Quit

		case "n":
			m.projectForm = newProjectForm(nil)
			m.screen = screenProjectForm
			m.returnTo = screenProjects
			m.errorMessage = ""
			return m, textinput.Blink

		case "enter":
			item, ok := m.projects.SelectedItem().(projectItem)
			if !ok {
				return m, nil
			}
			m.openProject(item.project)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.projects, cmd = m.projects.Update(msg)
	return m, cmd
}

// updateProjectForm handles the create/edit project screen
func (m model) updateProjectForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			m.screen = m.returnTo
			m.errorMessage = ""
			return m, nil
		case "tab", "down":
			return m, m.projectForm.setFocus(m.projectForm.focus + 1)
		case "shift+tab", "up":
			return m, m.projectForm.setFocus(m.projectForm.focus - 1)
		case "enter":
			if !m.projectForm.onLastField() {
				return m, m.projectForm.setFocus(m.projectForm.focus + 1)
			}
			return m, saveProjectCmd(m.svc, m.projectForm.editingID, m.projectForm.input())
		}
	}

	var cmd tea.Cmd
	m.projectForm, cmd = m.projectForm.update(msg)
	return m, cmd
}

// updateProject handles the project detail screen with its report history
func (m model) updateProject(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && m.project != nil {
		switch msg.String() {
		case "esc", "q":
			m.project = nil
			m.screen = screenProjects
			m.statusMessage = ""
			m.errorMessage = ""
			return m, nil

		case "enter":
			item, ok := m.reports.SelectedItem().(reportItem)
			if !ok {
				return m, nil
			}
			m.openReport(item.report)
			return m, nil

		case "n":
			values := m.svc.NewReportForm(nil)
			m.reportForm = newReportForm(m.project.ID, nil, values).setWidth(m.width)
			m.screen = screenReportForm
			m.errorMessage = ""
			return m, textinput.Blink

		case "e":
			m.projectForm = newProjectForm(m.project)
			m.screen = screenProjectForm
			m.returnTo = screenProject
			m.errorMessage = ""
			return m, textinput.Blink

		case "d":
			m.confirm = confirmProject
			m.statusMessage = ""
			return m, nil

		case "p":
			item, ok := m.reports.SelectedItem().(reportItem)
			if !ok {
				return m, nil
			}
			return m.startExport(item.report.ID)
		}
	}

	var cmd tea.Cmd
	m.reports, cmd = m.reports.Update(msg)
	return m, cmd
}

// updateReportForm handles the create/edit report screen
func (m model) updateReportForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			if m.report != nil && m.reportForm.editingID != "" {
				m.screen = screenReport
			} else {
				m.screen = screenProject
			}
			m.errorMessage = ""
			return m, nil
		case "tab":
			return m, m.reportForm.setFocus(m.reportForm.focus + 1)
		case "shift+tab":
			return m, m.reportForm.setFocus(m.reportForm.focus - 1)
		case "ctrl+s":
			return m, saveReportCmd(m.svc, m.reportForm.projectID, m.reportForm.editingID, m.reportForm.values())
		}
	}

	var cmd tea.Cmd
	m.reportForm, cmd = m.reportForm.update(msg)
	return m, cmd
}

// updateReport handles the report preview screen
func (m model) updateReport(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && m.report != nil {
		switch msg.String() {
		case "esc", "q":
			m.report = nil
			m.screen = screenProject
			m.statusMessage = ""
			m.errorMessage = ""
			return m, nil

		case "e":
			m.reportForm = newReportForm(m.report.ProjectID, m.report, m.svc.NewReportForm(m.report)).setWidth(m.width)
			m.screen = screenReportForm
			m.errorMessage = ""
			return m, tea.Batch(textinput.Blink, textarea.Blink)

		case "d":
			m.confirm = confirmReport
			m.statusMessage = ""
			return m, nil

		case "p":
			return m.startExport(m.report.ID)
		}
	}

	var cmd tea.Cmd
	m.preview, cmd = m.preview.Update(msg)
	return m, cmd
}

// startExport kicks off a PDF export unless one is already running
func (m model) startExport(reportID string) (tea.Model, tea.Cmd) {
	if m.isExporting {
		return m, nil
	}
	m.isExporting = true
	m.errorMessage = ""
	m.statusMessage = "Exporterar PDF..."
	return m, exportReportCmd(m.svc, reportID, m.exportDir)
}

func (m *model) openProject(p models.Project) {
	m.project = &p
	m.reports.Title = p.Name
	m.reloadReports()
	m.reports.Select(0)
	m.screen = screenProject
	m.statusMessage = ""
	m.errorMessage = ""
}

func (m *model) openReport(r models.WeeklyReport) {
	m.report = &r
	if p, err := m.svc.Project(r.ProjectID); err == nil {
		m.preview.SetContent(render.Text(render.Render(p, r)))
		m.preview.GotoTop()
	}
	m.screen = screenReport
}

func (m *model) reloadProjects() {
	m.projects.SetItems(projectItems(m.svc.Projects()))
}

func (m *model) reloadReports() {
	if m.project == nil {
		return
	}
	m.reports.SetItems(reportItems(m.svc.Reports(m.project.ID)))
}
