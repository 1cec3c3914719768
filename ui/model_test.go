package ui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veckorapport/engine"
	"veckorapport/store"
)

func newTestModel(t *testing.T, seed bool) (model, *engine.Service, string) {
	t.Helper()
	now := time.Date(2024, 3, 6, 9, 0, 0, 0, time.UTC)
	svc := engine.New(store.New(store.NewMemoryKV(), nil), engine.WithClock(func() time.Time { return now }))
	if seed {
		_, _, err := svc.SeedDemo()
		require.NoError(t, err)
	}
	dir := t.TempDir()
	m, err := NewModel(svc, dir)
	require.NoError(t, err)
	return m.(model), svc, dir
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m model, msgs ...tea.Msg) (model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(model)
	}
	return m, cmd
}

func TestEmptyProjectList(t *testing.T) {
	m, _, _ := newTestModel(t, false)
	assert.Equal(t, screenProjects, m.screen)
	assert.Contains(t, m.View(), "Inga projekt än")
}

func TestCreateProjectFlow(t *testing.T) {
	m, svc, _ := newTestModel(t, false)

	m, _ = send(t, m, runes("n"))
	require.Equal(t, screenProjectForm, m.screen)

	m, _ = send(t, m,
		runes("Q1 Rollout"), tea.KeyMsg{Type: tea.KeyEnter},
		runes("Acme AB"), tea.KeyMsg{Type: tea.KeyEnter},
	)
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	m, _ = send(t, m, cmd())
	assert.Equal(t, screenProjects, m.screen)
	assert.Empty(t, m.errorMessage)
	require.Len(t, svc.Projects(), 1)
	assert.Equal(t, "Acme AB", svc.Projects()[0].CustomerName)
	assert.Len(t, m.projects.Items(), 1)
}

func TestCreateProjectValidationError(t *testing.T) {
	m, svc, _ := newTestModel(t, false)

	m, _ = send(t, m, runes("n"), tea.KeyMsg{Type: tea.KeyEnter}, tea.KeyMsg{Type: tea.KeyEnter})
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	m, _ = send(t, m, cmd())
	assert.Equal(t, screenProjectForm, m.screen)
	assert.NotEmpty(t, m.errorMessage)
	assert.Empty(t, svc.Projects())
}

func TestOpenProjectAndReport(t *testing.T) {
	m, _, _ := newTestModel(t, true)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, screenProject, m.screen)
	require.Len(t, m.reports.Items(), 1)
	assert.Contains(t, m.View(), "Vecka 2024-03-04 - 2024-03-10")

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, screenReport, m.screen)
	assert.Contains(t, m.preview.View(), "Veckorapport")

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, screenProject, m.screen)
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, screenProjects, m.screen)
}

func TestNewReportFlow(t *testing.T) {
	m, svc, _ := newTestModel(t, true)
	projectID := svc.Projects()[0].ID

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter}, runes("n"))
	require.Equal(t, screenReportForm, m.screen)
	assert.Equal(t, "2024-03-04", m.reportForm.dates[0].Value())
	assert.Equal(t, "2024-03-10", m.reportForm.dates[1].Value())

	// start, end, summary, activities, completed
	for i := 0; i < 4; i++ {
		m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	}
	m, _ = send(t, m, runes("Setup repo"))
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)

	m, _ = send(t, m, cmd())
	assert.Equal(t, screenReport, m.screen)
	require.NotNil(t, m.report)
	assert.Equal(t, []string{"Setup repo"}, m.report.CompletedActivities)
	assert.Len(t, svc.Reports(projectID), 2)
	assert.Len(t, m.reports.Items(), 2)
}

func TestExportBlocksSecondExport(t *testing.T) {
	m, _, _ := newTestModel(t, true)
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter}, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, screenReport, m.screen)

	m, first := send(t, m, runes("p"))
	require.NotNil(t, first)
	assert.True(t, m.isExporting)

	m, second := send(t, m, runes("p"))
	assert.Nil(t, second)
	assert.True(t, m.isExporting)

	m, _ = send(t, m, first())
	assert.False(t, m.isExporting)
	assert.Empty(t, m.errorMessage)
	assert.Contains(t, m.statusMessage, "veckorapport-Q1 Rollout-2024-03-04.pdf")
}

func TestExportFailureResetsFlag(t *testing.T) {
	m, _, _ := newTestModel(t, true)
	m.isExporting = true

	m, _ = send(t, m, ExportMsg{err: errors.New("capture failed")})
	assert.False(t, m.isExporting)
	assert.Equal(t, exportFailedMessage, m.errorMessage)
}

func TestDeleteProjectConfirmation(t *testing.T) {
	m, svc, _ := newTestModel(t, true)
	projectID := svc.Projects()[0].ID

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter}, runes("d"))
	require.Equal(t, confirmProject, m.confirm)
	assert.Contains(t, m.View(), "Alla rapporter kommer också tas bort")

	m, cmd := send(t, m, runes("n"))
	assert.Nil(t, cmd)
	assert.Equal(t, confirmNone, m.confirm)
	assert.Len(t, svc.Projects(), 1)

	m, _ = send(t, m, runes("d"))
	m, cmd = send(t, m, runes("y"))
	require.NotNil(t, cmd)

	m, _ = send(t, m, cmd())
	assert.Equal(t, screenProjects, m.screen)
	assert.Empty(t, svc.Projects())
	assert.Empty(t, svc.Reports(projectID))
	assert.Empty(t, m.projects.Items())
}

func TestDeleteReportConfirmation(t *testing.T) {
	m, svc, _ := newTestModel(t, true)
	projectID := svc.Projects()[0].ID

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter}, tea.KeyMsg{Type: tea.KeyEnter}, runes("d"))
	require.Equal(t, confirmReport, m.confirm)

	m, cmd := send(t, m, runes("y"))
	require.NotNil(t, cmd)
	m, _ = send(t, m, cmd())

	assert.Equal(t, screenProject, m.screen)
	assert.Empty(t, svc.Reports(projectID))
	assert.Contains(t, m.View(), "Inga rapporter än")
}

func TestReportItemUsesShortDates(t *testing.T) {
	_, svc, _ := newTestModel(t, true)
	r := svc.Reports(svc.Projects()[0].ID)[0]

	item := reportItem{report: r}
	assert.Equal(t, "Vecka 2024-03-04 - 2024-03-10", item.Title())
}
