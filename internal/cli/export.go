package cli

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/mrlokans/fitadmin/internal/config"
	"github.com/mrlokans/fitadmin/internal/database/programs"
	"github.com/mrlokans/fitadmin/internal/exporters"
	"github.com/mrlokans/fitadmin/internal/interchange"
)

// ExportCommand writes the stored hierarchy to a file.
type ExportCommand struct {
	Format       string
	Type         string
	OutputPath   string
	DatabasePath string
}

func NewExportCommand() *ExportCommand {
	return &ExportCommand{}
}

func (cmd *ExportCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)

	fs.StringVar(&cmd.Format, "format", string(interchange.FormatJSON), "json, csv or xlsx")
	fs.StringVar(&cmd.Type, "type", string(interchange.TypeAll), "all, programs, workouts or exercises")
	fs.StringVar(&cmd.OutputPath, "output", "", "Output file (default: fitness-data-<timestamp>.<format> in the current directory)")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s export [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Export programs, workouts and exercises.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *ExportCommand) Run() error {
	format, err := interchange.ParseFormat(cmd.Format)
	if err != nil {
		return err
	}
	entityType, err := interchange.ParseEntityType(cmd.Type)
	if err != nil {
		return err
	}

	db, err := openDatabase(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	result, err := exporters.NewSerializer(programs.NewRepository(db.DB)).Export(format, entityType)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	output := cmd.OutputPath
	if output == "" {
		output = exporters.Filename(format, time.Now())
	}
	if err := os.WriteFile(output, result.Body, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}

	fmt.Printf("Exported %d programs, %d workouts, %d exercises to %s\n",
		result.Programs, result.Workouts, result.Exercises, output)
	return nil
}
