// Package store owns the project and report collections and enforces the
// cascade from a project to its reports.
package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"

	"veckorapport/dateutil"
	"veckorapport/models"
)

// Keys under which the two collections are persisted
const (
	ProjectsKey = "veckorapport_projects"
	ReportsKey  = "veckorapport_reports"
)

// Store is the persistence boundary used by the rest of the application.
// Reads never fail: a missing or corrupt collection reads as empty. Writes
// fail without changing anything when the medium cannot be read.
type Store interface {
	ListProjects() []models.Project
	GetProject(id string) (models.Project, bool)
	UpsertProject(p models.Project) error
	DeleteProject(id string) error

	ListReports() []models.WeeklyReport
	ListReportsByProject(projectID string) []models.WeeklyReport
	GetReport(id string) (models.WeeklyReport, bool)
	UpsertReport(r models.WeeklyReport) error
	DeleteReport(id string) error
}

// KV is a durable key-value medium. Put must apply all entries or none.
type KV interface {
	Get(key string) (string, bool, error)
	Put(entries map[string]string) error
}

// KVStore implements Store on top of a KV medium, keeping each collection as
// a JSON array under its own key.
type KVStore struct {
	kv     KV
	logger *slog.Logger
}

var _ Store = (*KVStore)(nil)

// New creates a KVStore. A nil logger falls back to slog.Default().
func New(kv KV, logger *slog.Logger) *KVStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &KVStore{kv: kv, logger: logger}
}

// ListProjects returns all projects in storage order
func (s *KVStore) ListProjects() []models.Project {
	return s.projects()
}

// GetProject looks a project up by id
func (s *KVStore) GetProject(id string) (models.Project, bool) {
	for _, p := range s.projects() {
		if p.ID == id {
			return p, true
		}
	}
	return models.Project{}, false
}

// UpsertProject replaces the project with the same id in place, or appends it
func (s *KVStore) UpsertProject(p models.Project) error {
	projects, err := s.loadProjects()
	if err != nil {
		return fmt.Errorf("failed to save project: %w", err)
	}
	replaced := false
	for i := range projects {
		if projects[i].ID == p.ID {
			projects[i] = p
			replaced = true
			break
		}
	}
	if !replaced {
		projects = append(projects, p)
	}

	raw, err := encode(projects)
	if err != nil {
		return fmt.Errorf("failed to encode projects: %w", err)
	}
	if err := s.kv.Put(map[string]string{ProjectsKey: raw}); err != nil {
		return fmt.Errorf("failed to save project: %w", err)
	}
	return nil
}

// DeleteProject removes the project and every report that belongs to it.
// Both collections are written in a single Put so a failure leaves neither changed.
func (s *KVStore) DeleteProject(id string) error {
	projects, err := s.loadProjects()
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	keptProjects := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		if p.ID != id {
			keptProjects = append(keptProjects, p)
		}
	}

	reports, err := s.loadReports()
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	keptReports := make([]models.WeeklyReport, 0, len(reports))
	for _, r := range reports {
		if r.ProjectID != id {
			keptReports = append(keptReports, r)
		}
	}

	rawProjects, err := encode(keptProjects)
	if err != nil {
		return fmt.Errorf("failed to encode projects: %w", err)
	}
	rawReports, err := encode(keptReports)
	if err != nil {
		return fmt.Errorf("failed to encode reports: %w", err)
	}

	if err := s.kv.Put(map[string]string{ProjectsKey: rawProjects, ReportsKey: rawReports}); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	if removed := len(reports) - len(keptReports); removed > 0 {
		s.logger.Debug("cascaded project delete", "project_id", id, "reports_removed", removed)
	}
	return nil
}

// ListReports returns all reports in storage order
func (s *KVStore) ListReports() []models.WeeklyReport {
	return s.reports()
}

// ListReportsByProject returns the project's reports, most recent week first.
// Reports with the same start date keep their stored order.
func (s *KVStore) ListReportsByProject(projectID string) []models.WeeklyReport {
	filtered := []models.WeeklyReport{}
	for _, r := range s.reports() {
		if r.ProjectID == projectID {
			filtered = append(filtered, r)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return weekAfter(filtered[i].WeekStartDate, filtered[j].WeekStartDate)
	})
	return filtered
}

// GetReport looks a report up by id
func (s *KVStore) GetReport(id string) (models.WeeklyReport, bool) {
	for _, r := range s.reports() {
		if r.ID == id {
			return r, true
		}
	}
	return models.WeeklyReport{}, false
}

// UpsertReport replaces the report with the same id in place, or appends it
func (s *KVStore) UpsertReport(r models.WeeklyReport) error {
	reports, err := s.loadReports()
	if err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	replaced := false
	for i := range reports {
		if reports[i].ID == r.ID {
			reports[i] = r
			replaced = true
			break
		}
	}
	if !replaced {
		reports = append(reports, r)
	}

	raw, err := encode(reports)
	if err != nil {
		return fmt.Errorf("failed to encode reports: %w", err)
	}
	if err := s.kv.Put(map[string]string{ReportsKey: raw}); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

// DeleteReport removes a single report; projects are not affected
func (s *KVStore) DeleteReport(id string) error {
	reports, err := s.loadReports()
	if err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}
	kept := make([]models.WeeklyReport, 0, len(reports))
	for _, r := range reports {
		if r.ID != id {
			kept = append(kept, r)
		}
	}

	raw, err := encode(kept)
	if err != nil {
		return fmt.Errorf("failed to encode reports: %w", err)
	}
	if err := s.kv.Put(map[string]string{ReportsKey: raw}); err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}
	return nil
}

func (s *KVStore) projects() []models.Project {
	projects, err := s.loadProjects()
	if err != nil {
		s.logger.Warn("failed to read collection, using empty", "key", ProjectsKey, "error", err)
		return []models.Project{}
	}
	return projects
}

func (s *KVStore) reports() []models.WeeklyReport {
	reports, err := s.loadReports()
	if err != nil {
		s.logger.Warn("failed to read collection, using empty", "key", ReportsKey, "error", err)
		return []models.WeeklyReport{}
	}
	return reports
}

// loadProjects fails only when the medium cannot be read. Writers must not
// continue in that case or they would overwrite the unread records.
func (s *KVStore) loadProjects() ([]models.Project, error) {
	projects := []models.Project{}
	if err := s.load(ProjectsKey, &projects); err != nil {
		return nil, err
	}
	if projects == nil {
		return []models.Project{}, nil
	}
	return projects, nil
}

func (s *KVStore) loadReports() ([]models.WeeklyReport, error) {
	reports := []models.WeeklyReport{}
	if err := s.load(ReportsKey, &reports); err != nil {
		return nil, err
	}
	if reports == nil {
		return []models.WeeklyReport{}, nil
	}
	return reports, nil
}

// load decodes the collection under key into dst. A read error from the
// medium is returned; unparsable data leaves dst empty.
func (s *KVStore) load(key string, dst any) error {
	raw, ok, err := s.kv.Get(key)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", key, err)
	}
	if !ok || raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		s.logger.Warn("corrupt collection, using empty", "key", key, "error", err)
		resetSlice(dst)
	}
	return nil
}

func resetSlice(dst any) {
	switch v := dst.(type) {
	case *[]models.Project:
		*v = []models.Project{}
	case *[]models.WeeklyReport:
		*v = []models.WeeklyReport{}
	}
}

func encode(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// weekAfter reports whether week start a sorts before b in newest-first order.
// Unparsable dates sort after every valid one.
func weekAfter(a, b string) bool {
	ta, errA := dateutil.ParseDate(a)
	tb, errB := dateutil.ParseDate(b)
	if errA != nil {
		return false
	}
	if errB != nil {
		return true
	}
	return ta.After(tb)
}
