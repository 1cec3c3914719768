// Package render turns a project and one of its weekly reports into the
// printable report document.
//
// Render is pure: the same input always yields the same Document. Layout and
// rasterization build on its output.
package render

import (
	"strings"

	"veckorapport/dateutil"
	"veckorapport/models"
)

// DocumentTitle heads every report document
const DocumentTitle = "Veckorapport"

// SectionKind identifies the kind of a document section
type SectionKind int

const (
	SectionLogo SectionKind = iota
	SectionHeader
	SectionSummary
	SectionList
)

func (k SectionKind) String() string {
	switch k {
	case SectionLogo:
		return "logo"
	case SectionHeader:
		return "header"
	case SectionSummary:
		return "summary"
	case SectionList:
		return "list"
	}
	return "unknown"
}

// Section is one block of the document. Which fields are set depends on Kind.
type Section struct {
	Kind    SectionKind
	Field   string   // report field behind a summary or list section
	Heading string   // header title or section heading
	Lines   []string // header lines: project name, date range
	Text    string   // summary text
	Items   []string // list items in report order
	LogoURL string
	AltText string
}

// Document is the ordered section list of one rendered report
type Document struct {
	Sections []Section
}

// listSection binds a list field to its heading, in document order
type listSection struct {
	field   string
	heading string
	items   func(r models.WeeklyReport) []string
}

var listSections = []listSection{
	{"activitiesThisWeek", "Aktiviteter Under Veckan", func(r models.WeeklyReport) []string { return r.ActivitiesThisWeek }},
	{"completedActivities", "Avslutade Aktiviteter", func(r models.WeeklyReport) []string { return r.CompletedActivities }},
	{"startedActivities", "Påbörjade Aktiviteter", func(r models.WeeklyReport) []string { return r.StartedActivities }},
	{"milestonesAchieved", "Uppnådda Milstolpar", func(r models.WeeklyReport) []string { return r.MilestonesAchieved }},
	{"blockersAndChallenges", "Blockeringar och Utmaningar", func(r models.WeeklyReport) []string { return r.BlockersAndChallenges }},
	{"decisionsNeeded", "Beslut som Behöver Fattas", func(r models.WeeklyReport) []string { return r.DecisionsNeeded }},
	{"plannedActivitiesNextWeek", "Planerade Aktiviteter Nästa Vecka", func(r models.WeeklyReport) []string { return r.PlannedActivitiesNextWeek }},
}

// DateRange formats the report's week as "4 mars 2024 - 10 mars 2024"
func DateRange(r models.WeeklyReport) string {
	return dateutil.FormatDate(r.WeekStartDate) + " - " + dateutil.FormatDate(r.WeekEndDate)
}

// ShortDateRange formats the report's week as "2024-03-04 - 2024-03-10" for lists
func ShortDateRange(r models.WeeklyReport) string {
	return dateutil.FormatDateShort(r.WeekStartDate) + " - " + dateutil.FormatDateShort(r.WeekEndDate)
}

// Render builds the document for report r of project p.
// Sections whose field is empty are left out entirely, heading included.
func Render(p models.Project, r models.WeeklyReport) Document {
	var sections []Section

	if p.LogoURL != "" {
		sections = append(sections, Section{Kind: SectionLogo, LogoURL: p.LogoURL, AltText: p.CustomerName})
	}

	sections = append(sections, Section{
		Kind:    SectionHeader,
		Heading: DocumentTitle,
		Lines:   []string{p.Name, DateRange(r)},
	})

	if r.Summary != "" {
		sections = append(sections, Section{Kind: SectionSummary, Field: "summary", Heading: "Sammanfattning", Text: r.Summary})
	}

	for _, ls := range listSections {
		items := ls.items(r)
		if len(items) == 0 {
			continue
		}
		sections = append(sections, Section{
			Kind:    SectionList,
			Field:   ls.field,
			Heading: ls.heading,
			Items:   append([]string(nil), items...),
		})
	}

	return Document{Sections: sections}
}

// Find returns the first section rendered for the given report field
func (d Document) Find(field string) (Section, bool) {
	for _, s := range d.Sections {
		if s.Field == field {
			return s, true
		}
	}
	return Section{}, false
}

// Text renders the document as plain text for terminal previews
func Text(d Document) string {
	var b strings.Builder
	for i, s := range d.Sections {
		if i > 0 {
			b.WriteString("\n")
		}
		switch s.Kind {
		case SectionLogo:
			b.WriteString("[logotyp: " + s.AltText + "]\n")
		case SectionHeader:
			b.WriteString(s.Heading + "\n")
			for _, line := range s.Lines {
				b.WriteString(line + "\n")
			}
			b.WriteString(strings.Repeat("─", 40) + "\n")
		case SectionSummary:
			b.WriteString(s.Heading + "\n")
			b.WriteString(s.Text + "\n")
		case SectionList:
			b.WriteString(s.Heading + "\n")
			for _, item := range s.Items {
				b.WriteString("  • " + item + "\n")
			}
		}
	}
	return b.String()
}
