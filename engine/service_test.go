package engine

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veckorapport/models"
	"veckorapport/render"
	"veckorapport/store"
)

// Wednesday in the week 2024-03-04 .. 2024-03-10
var fixedNow = time.Date(2024, 3, 6, 10, 30, 0, 0, time.UTC)

func newService(t *testing.T) *Service {
	t.Helper()
	return New(store.New(store.NewMemoryKV(), nil), WithClock(func() time.Time { return fixedNow }))
}

func writePNG(t *testing.T, dir string) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	for x := 0; x < 40; x++ {
		img.Set(x, 10, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	path := filepath.Join(dir, "logo.png")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
	return path
}

func TestQ1RolloutEndToEnd(t *testing.T) {
	svc := newService(t)

	p, err := svc.CreateProject(ProjectInput{Name: "Q1 Rollout", CustomerName: "Acme AB"})
	require.NoError(t, err)

	form := svc.NewReportForm(nil)
	assert.Equal(t, "2024-03-04", form.WeekStartDate)
	assert.Equal(t, "2024-03-10", form.WeekEndDate)
	form.Summary = "Kickoff done"
	form.CompletedActivities = "Setup repo\nKickoff call\n"

	r, err := svc.SaveReport(p.ID, "", form)
	require.NoError(t, err)

	reports := svc.Reports(p.ID)
	require.Len(t, reports, 1)
	assert.Equal(t, r, reports[0])

	doc, _, _, err := svc.Document(r.ID)
	require.NoError(t, err)

	header := doc.Sections[0]
	assert.Equal(t, render.SectionHeader, header.Kind)
	assert.Equal(t, []string{"Q1 Rollout", "4 mars 2024 - 10 mars 2024"}, header.Lines)

	completed, ok := doc.Find("completedActivities")
	require.True(t, ok)
	assert.Equal(t, "Avslutade Aktiviteter", completed.Heading)
	assert.Equal(t, []string{"Setup repo", "Kickoff call"}, completed.Items)

	dir := t.TempDir()
	res, err := svc.ExportReport(context.Background(), r.ID, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "veckorapport-Q1 Rollout-2024-03-04.pdf"), res.Path)
	assert.Equal(t, 1, res.Pages)
	assert.FileExists(t, res.Path)
	assert.False(t, svc.Exporting())
}

func TestCreateProjectValidation(t *testing.T) {
	svc := newService(t)

	_, err := svc.CreateProject(ProjectInput{Name: "  ", CustomerName: "Acme AB"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateProject(ProjectInput{Name: "Q1 Rollout"})
	assert.ErrorIs(t, err, ErrValidation)

	p, err := svc.CreateProject(ProjectInput{Name: " Q1 Rollout ", CustomerName: " Acme AB "})
	require.NoError(t, err)
	assert.Equal(t, "Q1 Rollout", p.Name)
	assert.Equal(t, "Acme AB", p.CustomerName)
	assert.Equal(t, "2024-03-06T10:30:00Z", p.CreatedAt)
	assert.NotEmpty(t, p.ID)
	assert.Len(t, svc.Projects(), 1)
}

func TestUpdateProjectKeepsIdentity(t *testing.T) {
	svc := newService(t)
	p, err := svc.CreateProject(ProjectInput{Name: "Q1 Rollout", CustomerName: "Acme AB", LogoPath: writePNG(t, t.TempDir())})
	require.NoError(t, err)
	require.True(t, p.HasLogo())

	updated, err := svc.UpdateProject(p.ID, ProjectInput{Name: "Q2 Rollout", CustomerName: "Acme AB"})
	require.NoError(t, err)
	assert.Equal(t, p.ID, updated.ID)
	assert.Equal(t, p.CreatedAt, updated.CreatedAt)
	assert.Equal(t, p.LogoURL, updated.LogoURL, "logo kept when no new path is given")

	cleared, err := svc.UpdateProject(p.ID, ProjectInput{Name: "Q2 Rollout", CustomerName: "Acme AB", ClearLogo: true})
	require.NoError(t, err)
	assert.False(t, cleared.HasLogo())

	_, err = svc.UpdateProject("missing", ProjectInput{Name: "x", CustomerName: "y"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveReportRules(t *testing.T) {
	svc := newService(t)
	p, err := svc.CreateProject(ProjectInput{Name: "Q1 Rollout", CustomerName: "Acme AB"})
	require.NoError(t, err)

	_, err = svc.SaveReport("missing", "", svc.NewReportForm(nil))
	assert.ErrorIs(t, err, ErrNotFound)

	bad := svc.NewReportForm(nil)
	bad.WeekStartDate = "4 mars"
	_, err = svc.SaveReport(p.ID, "", bad)
	assert.ErrorIs(t, err, ErrValidation)

	// end before start is accepted
	reversed := models.ReportForm{WeekStartDate: "2024-03-10", WeekEndDate: "2024-03-04"}
	r, err := svc.SaveReport(p.ID, "", reversed)
	require.NoError(t, err)
	assert.Equal(t, []string{}, r.CompletedActivities)

	edit := svc.NewReportForm(&r)
	edit.Summary = "Updated"
	edited, err := svc.SaveReport(p.ID, r.ID, edit)
	require.NoError(t, err)
	assert.Equal(t, r.ID, edited.ID)
	assert.Equal(t, r.CreatedAt, edited.CreatedAt)
	assert.Equal(t, p.ID, edited.ProjectID)
	assert.Equal(t, "Updated", edited.Summary)
	assert.Len(t, svc.Reports(p.ID), 1)

	_, err = svc.SaveReport(p.ID, "missing", edit)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteProjectCascades(t *testing.T) {
	svc := newService(t)
	p, err := svc.CreateProject(ProjectInput{Name: "Q1 Rollout", CustomerName: "Acme AB"})
	require.NoError(t, err)
	other, err := svc.CreateProject(ProjectInput{Name: "Other", CustomerName: "Beta AB"})
	require.NoError(t, err)

	for _, id := range []string{p.ID, p.ID, other.ID} {
		_, err := svc.SaveReport(id, "", svc.NewReportForm(nil))
		require.NoError(t, err)
	}

	require.NoError(t, svc.DeleteProject(p.ID))
	assert.Empty(t, svc.Reports(p.ID))
	assert.Len(t, svc.Reports(other.ID), 1)
	_, err = svc.Project(p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteReport(t *testing.T) {
	svc := newService(t)
	p, _, err := svc.SeedDemo()
	require.NoError(t, err)
	reports := svc.Reports(p.ID)
	require.Len(t, reports, 1)

	require.NoError(t, svc.DeleteReport(reports[0].ID))
	assert.Empty(t, svc.Reports(p.ID))
	_, err = svc.Report(reports[0].ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExportUnknownReport(t *testing.T) {
	svc := newService(t)
	_, err := svc.ExportReport(context.Background(), "missing", t.TempDir())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExportFailuresAreLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	svc := New(store.New(store.NewMemoryKV(), nil), WithClock(func() time.Time { return fixedNow }), WithLogger(logger))

	_, err := svc.ExportReport(context.Background(), "missing", t.TempDir())
	require.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, buf.String(), "export failed")
	assert.Contains(t, buf.String(), "report_id=missing")

	p, err := svc.CreateProject(ProjectInput{Name: "Q1 Rollout", CustomerName: "Acme AB"})
	require.NoError(t, err)
	r, err := svc.SaveReport(p.ID, "", svc.NewReportForm(nil))
	require.NoError(t, err)

	// A regular file where the export directory should be
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))
	buf.Reset()

	_, err = svc.ExportReport(context.Background(), r.ID, filepath.Join(blocker, "out"))
	require.Error(t, err)
	assert.Contains(t, buf.String(), "export failed")
	assert.Contains(t, buf.String(), "report_id="+r.ID)
}

func TestExportWithLogo(t *testing.T) {
	svc := newService(t)
	p, err := svc.CreateProject(ProjectInput{Name: "Q1 Rollout", CustomerName: "Acme AB", LogoPath: writePNG(t, t.TempDir())})
	require.NoError(t, err)
	r, err := svc.SaveReport(p.ID, "", svc.NewReportForm(nil))
	require.NoError(t, err)

	res, err := svc.ExportReport(context.Background(), r.ID, t.TempDir())
	require.NoError(t, err)
	assert.FileExists(t, res.Path)
}

func TestLoadLogo(t *testing.T) {
	dir := t.TempDir()

	url, err := LoadLogo(writePNG(t, dir))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "data:image/png;base64,"))

	text := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(text, []byte("not an image"), 0644))
	_, err = LoadLogo(text)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = LoadLogo(dir)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = LoadLogo(filepath.Join(dir, "missing.png"))
	assert.Error(t, err)
}

func TestCurrentWeekSunday(t *testing.T) {
	sunday := time.Date(2024, 3, 10, 23, 0, 0, 0, time.UTC)
	svc := New(store.New(store.NewMemoryKV(), nil), WithClock(func() time.Time { return sunday }))

	start, end := svc.CurrentWeek()
	assert.Equal(t, "2024-03-04", start)
	assert.Equal(t, "2024-03-10", end)
}
