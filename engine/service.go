// Package engine implements the report workflows on top of the store, the
// renderer and the exporter.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"veckorapport/dateutil"
	"veckorapport/export"
	"veckorapport/models"
	"veckorapport/render"
	"veckorapport/store"
)

var (
	// ErrNotFound is returned when a project or report id does not resolve
	ErrNotFound = errors.New("not found")
	// ErrValidation is returned when user input is rejected
	ErrValidation = errors.New("invalid input")
)

// ProjectInput is the editable part of a project
type ProjectInput struct {
	Name         string
	CustomerName string
	LogoPath     string // image file to embed; empty keeps the current logo
	ClearLogo    bool
}

// Service ties the store to rendering and export
type Service struct {
	store    store.Store
	surface  *render.Surface
	exporter *export.Exporter
	now      func() time.Time
	logger   *slog.Logger
}

// Option configures a Service
type Option func(*Service)

// WithClock replaces time.Now, used for week defaults and timestamps
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithExporter replaces the default PDF exporter
func WithExporter(e *export.Exporter) Option {
	return func(s *Service) { s.exporter = e }
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// New creates a Service over st
func New(st store.Store, opts ...Option) *Service {
	s := &Service{
		store:   st,
		surface: render.NewSurface(),
		now:     time.Now,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.exporter == nil {
		s.exporter = export.NewPDF(export.WithLogger(s.logger))
	}
	return s
}

// Projects returns every project in storage order
func (s *Service) Projects() []models.Project {
	return s.store.ListProjects()
}

// Project looks a project up by id
func (s *Service) Project(id string) (models.Project, error) {
	p, ok := s.store.GetProject(id)
	if !ok {
		return models.Project{}, fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	return p, nil
}

// CreateProject validates in and stores a new project
func (s *Service) CreateProject(in ProjectInput) (models.Project, error) {
	name, customer, err := validateProject(in)
	if err != nil {
		return models.Project{}, err
	}

	p := models.Project{
		ID:           dateutil.GenerateID(),
		Name:         name,
		CustomerName: customer,
		CreatedAt:    dateutil.Timestamp(s.now()),
	}
	if in.LogoPath != "" {
		logo, err := LoadLogo(in.LogoPath)
		if err != nil {
			return models.Project{}, err
		}
		p.LogoURL = logo
	}

	if err := s.store.UpsertProject(p); err != nil {
		return models.Project{}, fmt.Errorf("failed to create project: %w", err)
	}
	s.logger.Info("project created", "project_id", p.ID, "name", p.Name)
	return p, nil
}

// UpdateProject edits an existing project. Its id and creation time are kept.
func (s *Service) UpdateProject(id string, in ProjectInput) (models.Project, error) {
	p, err := s.Project(id)
	if err != nil {
		return models.Project{}, err
	}
	name, customer, err := validateProject(in)
	if err != nil {
		return models.Project{}, err
	}

	p.Name = name
	p.CustomerName = customer
	switch {
	case in.LogoPath != "":
		logo, err := LoadLogo(in.LogoPath)
		if err != nil {
			return models.Project{}, err
		}
		p.LogoURL = logo
	case in.ClearLogo:
		p.LogoURL = ""
	}

	if err := s.store.UpsertProject(p); err != nil {
		return models.Project{}, fmt.Errorf("failed to update project: %w", err)
	}
	s.logger.Info("project updated", "project_id", p.ID)
	return p, nil
}

// DeleteProject removes the project together with all of its reports
func (s *Service) DeleteProject(id string) error {
	if err := s.store.DeleteProject(id); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	s.logger.Info("project deleted", "project_id", id)
	return nil
}

// Reports returns the project's reports, most recent week first
func (s *Service) Reports(projectID string) []models.WeeklyReport {
	return s.store.ListReportsByProject(projectID)
}

// Report looks a report up by id
func (s *Service) Report(id string) (models.WeeklyReport, error) {
	r, ok := s.store.GetReport(id)
	if !ok {
		return models.WeeklyReport{}, fmt.Errorf("report %s: %w", id, ErrNotFound)
	}
	return r, nil
}

// NewReportForm returns the form for editing existing, or a blank form dated
// to the current week when existing is nil.
func (s *Service) NewReportForm(existing *models.WeeklyReport) models.ReportForm {
	if existing != nil {
		return models.FormFromReport(*existing)
	}
	start, end := dateutil.WeekDates(s.now())
	return models.ReportForm{WeekStartDate: start, WeekEndDate: end}
}

// CurrentWeek returns the Monday and Sunday of the current week
func (s *Service) CurrentWeek() (start, end string) {
	return dateutil.WeekDates(s.now())
}

// SaveReport stores form as a new report of projectID, or as an edit of
// existingID when it is not empty.
func (s *Service) SaveReport(projectID, existingID string, form models.ReportForm) (models.WeeklyReport, error) {
	if _, err := s.Project(projectID); err != nil {
		return models.WeeklyReport{}, err
	}

	var r models.WeeklyReport
	if existingID != "" {
		existing, err := s.Report(existingID)
		if err != nil {
			return models.WeeklyReport{}, err
		}
		r = existing
	} else {
		r = models.WeeklyReport{
			ID:        dateutil.GenerateID(),
			ProjectID: projectID,
			CreatedAt: dateutil.Timestamp(s.now()),
		}
	}

	form.ApplyTo(&r)
	if err := validateWeek(r.WeekStartDate, r.WeekEndDate); err != nil {
		return models.WeeklyReport{}, err
	}

	if err := s.store.UpsertReport(r); err != nil {
		return models.WeeklyReport{}, fmt.Errorf("failed to save report: %w", err)
	}
	s.logger.Info("report saved", "report_id", r.ID, "project_id", r.ProjectID, "week", r.WeekStartDate)
	return r, nil
}

// DeleteReport removes a single report
func (s *Service) DeleteReport(id string) error {
	if err := s.store.DeleteReport(id); err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}
	s.logger.Info("report deleted", "report_id", id)
	return nil
}

// Document renders the report together with its project
func (s *Service) Document(reportID string) (render.Document, models.Project, models.WeeklyReport, error) {
	r, err := s.Report(reportID)
	if err != nil {
		return render.Document{}, models.Project{}, models.WeeklyReport{}, err
	}
	p, err := s.Project(r.ProjectID)
	if err != nil {
		return render.Document{}, models.Project{}, models.WeeklyReport{}, err
	}
	return render.Render(p, r), p, r, nil
}

// Exporting reports whether an export is running
func (s *Service) Exporting() bool {
	return s.exporter.Busy()
}

// ExportReport writes the report as a PDF into dir and returns where it went
func (s *Service) ExportReport(ctx context.Context, reportID, dir string) (export.Result, error) {
	doc, p, r, err := s.Document(reportID)
	if err != nil {
		s.logger.Error("export failed", "report_id", reportID, "error", err)
		return export.Result{}, err
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		s.logger.Error("export failed", "report_id", reportID, "dir", dir, "error", err)
		return export.Result{}, fmt.Errorf("failed to create export directory: %w", err)
	}

	target := "report-" + r.ID
	s.surface.Mount(target, doc)
	defer s.surface.Unmount(target)

	return s.exporter.Export(ctx, s.surface, target, filepath.Join(dir, export.Filename(p, r)))
}

func validateProject(in ProjectInput) (name, customer string, err error) {
	name = strings.TrimSpace(in.Name)
	customer = strings.TrimSpace(in.CustomerName)
	if name == "" {
		return "", "", fmt.Errorf("%w: project name is required", ErrValidation)
	}
	if customer == "" {
		return "", "", fmt.Errorf("%w: customer name is required", ErrValidation)
	}
	return name, customer, nil
}

func validateWeek(start, end string) error {
	if _, err := time.Parse(dateutil.DateLayout, start); err != nil {
		return fmt.Errorf("%w: week start %q is not YYYY-MM-DD", ErrValidation, start)
	}
	if _, err := time.Parse(dateutil.DateLayout, end); err != nil {
		return fmt.Errorf("%w: week end %q is not YYYY-MM-DD", ErrValidation, end)
	}
	return nil
}
