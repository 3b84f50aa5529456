package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mrlokans/fitadmin/internal/database"
	"github.com/mrlokans/fitadmin/internal/interchange"
)

func openDatabase(path string) (*database.Database, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path for database: %w", err)
	}
	db, err := database.NewDatabase(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return db, nil
}

// formatFor returns the explicit format or, when empty, the one implied by
// the file extension.
func formatFor(explicit, path string) (interchange.Format, error) {
	if explicit == "" {
		explicit = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}
	return interchange.ParseFormat(explicit)
}

func printErrors(errs []string, total int) {
	if total == 0 {
		return
	}
	fmt.Printf("\n%d rows failed:\n", total)
	for _, msg := range errs {
		fmt.Printf("  [ERROR] %s\n", msg)
	}
	if hidden := total - len(errs); hidden > 0 {
		fmt.Printf("  ... and %d more\n", hidden)
	}
}
