package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/mrlokans/fitadmin/internal/config"
	"github.com/mrlokans/fitadmin/internal/database/programs"
	"github.com/mrlokans/fitadmin/internal/importers"
	"github.com/mrlokans/fitadmin/internal/interchange"
)

// ImportCommand loads an exported file (json, csv or xlsx) into the database.
type ImportCommand struct {
	FilePath     string
	Format       string
	Type         string
	DatabasePath string
	MaxErrors    int
}

func NewImportCommand() *ImportCommand {
	return &ImportCommand{}
}

func (cmd *ImportCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)

	fs.StringVar(&cmd.FilePath, "file", "", "Path to the export file (required)")
	fs.StringVar(&cmd.Format, "format", "", "json, csv or xlsx (default: from the file extension)")
	fs.StringVar(&cmd.Type, "type", string(interchange.TypeAll), "all, programs, workouts or exercises")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")
	fs.IntVar(&cmd.MaxErrors, "max-errors", config.DefaultMaxReportedErrors, "Maximum number of row errors to print")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s import -file <path> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Import programs, workouts and exercises from an export file.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s import -file fitness-data-1718000000000.json\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s import -file backup.csv -type exercises\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.FilePath == "" {
		return fmt.Errorf("required flag -file not provided")
	}
	return nil
}

func (cmd *ImportCommand) Run() error {
	format, err := formatFor(cmd.Format, cmd.FilePath)
	if err != nil {
		return err
	}
	entityType, err := interchange.ParseEntityType(cmd.Type)
	if err != nil {
		return err
	}

	content, err := os.ReadFile(cmd.FilePath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", cmd.FilePath, err)
	}

	fmt.Printf("Importing %s (%s, %s)\n", cmd.FilePath, format, entityType)

	db, err := openDatabase(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	dec, err := importers.NewFileDecoder(format, content)
	if err != nil {
		return err
	}

	orchestrator := importers.NewOrchestrator(programs.NewRepository(db.DB), importers.Options{MaxReportedErrors: cmd.MaxErrors})
	result, err := orchestrator.Import(dec, entityType)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Println(result.Message())
	printErrors(result.Errors, result.TotalErrors)
	return nil
}
