package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"veckorapport/config"
	"veckorapport/dateutil"
	"veckorapport/db"
	"veckorapport/engine"
	"veckorapport/export"
	"veckorapport/logging"
	"veckorapport/render"
	"veckorapport/store"
	"veckorapport/ui"
)

const version = "1.0.0"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v":
			fmt.Printf("Veckorapport v%s\n", version)
			return
		case "--help", "-h":
			printHelp()
			return
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.EnsureDirs(); err != nil {
		log.Fatalf("Failed to prepare data directory: %v", err)
	}

	if len(os.Args) > 1 {
		logger := logging.New(os.Stderr, cfg.LogLevel)
		slog.SetDefault(logger)
		if err := runCommand(cfg, logger, os.Args[1], os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// The TUI owns the terminal, so logs go to a file
	logger, logFile, err := logging.NewFile(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer logFile.Close()
	slog.SetDefault(logger)

	svc, closeDB, err := openService(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer closeDB()

	m, err := ui.NewModel(svc, cfg.ExportDir)
	if err != nil {
		log.Fatalf("Failed to create UI model: %v", err)
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("Error running program: %v", err)
	}
}

// openService opens the SQLite database and wires the store into a Service
func openService(cfg *config.Config, logger *slog.Logger) (*engine.Service, func(), error) {
	gdb, err := db.Open(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	st := store.New(db.NewKV(gdb), logger)
	closeDB := func() {
		if err := db.Close(gdb); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}
	exporter := export.NewPDF(export.WithScale(cfg.ExportScale), export.WithLogger(logger))
	return engine.New(st, engine.WithLogger(logger), engine.WithExporter(exporter)), closeDB, nil
}

func runCommand(cfg *config.Config, logger *slog.Logger, name string, args []string) error {
	if name == "week" {
		start, end := dateutil.WeekDates(time.Now())
		fmt.Printf("Vecka %s - %s (%s - %s)\n", start, end, dateutil.FormatDate(start), dateutil.FormatDate(end))
		return nil
	}

	svc, closeDB, err := openService(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer closeDB()

	switch name {
	case "projects":
		return listProjects(svc)
	case "reports":
		if len(args) < 1 {
			return fmt.Errorf("usage: veckorapport reports <project-id>")
		}
		return listReports(svc, args[0])
	case "export":
		if len(args) < 1 {
			return fmt.Errorf("usage: veckorapport export <report-id> [dir]")
		}
		dir := cfg.ExportDir
		if len(args) > 1 {
			dir = args[1]
		}
		return exportReport(svc, args[0], dir)
	case "demo":
		p, r, err := svc.SeedDemo()
		if err != nil {
			return err
		}
		fmt.Printf("✓ Created project %q for %s (ID: %s)\n", p.Name, p.CustomerName, p.ID)
		fmt.Printf("✓ Created report for week %s (ID: %s)\n", render.DateRange(r), r.ID)
		return nil
	}
	return fmt.Errorf("unknown command %q, see --help", name)
}

func listProjects(svc *engine.Service) error {
	projects := svc.Projects()
	if len(projects) == 0 {
		fmt.Println("Inga projekt än. Kör 'veckorapport demo' eller starta det interaktiva läget.")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPROJEKT\tKUND\tRAPPORTER")
	for _, p := range projects {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", p.ID, p.Name, p.CustomerName, len(svc.Reports(p.ID)))
	}
	return w.Flush()
}

func listReports(svc *engine.Service, projectID string) error {
	p, err := svc.Project(projectID)
	if err != nil {
		return err
	}
	reports := svc.Reports(p.ID)
	fmt.Printf("%s (%s)\n\n", p.Name, p.CustomerName)
	if len(reports) == 0 {
		fmt.Println("Inga rapporter än.")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tVECKA\tSAMMANFATTNING")
	for _, r := range reports {
		fmt.Fprintf(w, "%s\t%s\t%s\n", r.ID, render.ShortDateRange(r), r.Summary)
	}
	return w.Flush()
}

func exportReport(svc *engine.Service, reportID, dir string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := svc.ExportReport(ctx, reportID, dir)
	if err != nil {
		return err
	}
	fmt.Printf("✓ Exported %s (%d pages)\n", res.Path, res.Pages)
	return nil
}

func printHelp() {
	fmt.Printf(`Veckorapport v%s - Weekly consulting reports

USAGE:
    veckorapport [command]

COMMANDS:
    projects                    List projects
    reports <project-id>        List a project's reports, newest week first
    export <report-id> [dir]    Export a report as PDF (default dir: VECKORAPPORT_EXPORT_DIR)
    week                        Show the current Monday-Sunday week
    demo                        Create the "Q1 Rollout" sample project and report
    --help, -h                  Show this help message
    --version, -v               Show version information

INTERACTIVE MODE (default):
    When no command is provided, Veckorapport starts in interactive mode.

KEYBOARD SHORTCUTS:
    enter           Open project / report
    n               New project / new weekly report
    e               Edit project / report
    d               Delete project (with its reports) / report
    p               Export report as PDF
    tab, shift+tab  Move between form fields
    ctrl+s          Save report form
    /               Filter projects
    esc             Back
    q, ctrl+c       Quit

ENVIRONMENT:
    VECKORAPPORT_HOME        Data directory (default ~/.veckorapport)
    VECKORAPPORT_DB          SQLite database path
    VECKORAPPORT_EXPORT_DIR  PDF output directory (default current directory)
    VECKORAPPORT_LOG         Log file used by the interactive mode
    VECKORAPPORT_EXPORT_SCALE  PDF capture scale, 1-4 (default 2)
    LOG_LEVEL                debug, info, warn or error
`, version)
}
