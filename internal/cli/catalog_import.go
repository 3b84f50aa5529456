package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/mrlokans/fitadmin/internal/config"
	"github.com/mrlokans/fitadmin/internal/database/programs"
	"github.com/mrlokans/fitadmin/internal/importers"
)

// CatalogImportCommand loads a scraped exercise catalog into the exercise pool
// or into one program.
type CatalogImportCommand struct {
	FilePath     string
	Layout       string
	ProgramID    uint
	DatabasePath string
	StrictRows   bool
}

func NewCatalogImportCommand() *CatalogImportCommand {
	return &CatalogImportCommand{}
}

func (cmd *CatalogImportCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("catalog-import", flag.ContinueOnError)

	fs.StringVar(&cmd.FilePath, "file", "", "Path to the catalog csv file (required)")
	fs.StringVar(&cmd.Layout, "layout", "", "Catalog layout: bodybuilding or fitnessprogramer (required)")
	fs.UintVar(&cmd.ProgramID, "program", 0, "Attach exercises to this program instead of the pool")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")
	fs.BoolVar(&cmd.StrictRows, "strict", false, "Report short rows instead of dropping them")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s catalog-import -file <path> -layout <layout> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Import an exercise catalog. Exercises already present (by name) are skipped.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.FilePath == "" {
		return fmt.Errorf("required flag -file not provided")
	}
	if _, err := importers.LayoutByName(cmd.Layout); err != nil {
		return err
	}
	return nil
}

func (cmd *CatalogImportCommand) Run() error {
	layout, err := importers.LayoutByName(cmd.Layout)
	if err != nil {
		return err
	}

	content, err := os.ReadFile(cmd.FilePath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", cmd.FilePath, err)
	}

	db, err := openDatabase(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	var programID *uint
	if cmd.ProgramID != 0 {
		programID = &cmd.ProgramID
	}

	importer := importers.NewCatalogImporter(programs.NewRepository(db.DB), importers.CatalogOptions{
		MaxReportedErrors: config.DefaultMaxReportedErrors,
		StrictRows:        cmd.StrictRows,
	})
	result, err := importer.Import(layout, string(content), programID)
	if err != nil {
		return fmt.Errorf("catalog import failed: %w", err)
	}

	fmt.Println(result.Message())
	printErrors(result.Errors, result.TotalErrors)
	return nil
}
