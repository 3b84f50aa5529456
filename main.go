package main

import (
	"fmt"
	"os"

	"github.com/mrlokans/fitadmin/internal/cli"
	"github.com/mrlokans/fitadmin/internal/config"
	"github.com/mrlokans/fitadmin/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

// command is implemented by every CLI subcommand.
type command interface {
	ParseFlags(args []string) error
	Run() error
}

func main() {
	// If no arguments or "serve" command, run the HTTP server
	if len(os.Args) < 2 || os.Args[1] == "serve" {
		cfg := config.NewConfig()
		entrypoint.Run(cfg, Version)
		return
	}

	name := os.Args[1]
	args := os.Args[2:]

	var cmd command
	switch name {
	case "import":
		cmd = cli.NewImportCommand()
	case "export":
		cmd = cli.NewExportCommand()
	case "catalog-import":
		cmd = cli.NewCatalogImportCommand()
	case "hash-password":
		cmd = cli.NewHashPasswordCommand()
	case "version":
		fmt.Printf("fitadmin %s (%s)\n", Version, Commit)
		return
	case "-h", "--help", "help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", name)
		printUsage()
		os.Exit(1)
	}

	if err := cmd.ParseFlags(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  serve           Start the HTTP server (default if no command given)\n")
	fmt.Fprintf(os.Stderr, "  import          Import programs, workouts and exercises from a json, csv or xlsx file\n")
	fmt.Fprintf(os.Stderr, "  export          Export programs, workouts and exercises to a file\n")
	fmt.Fprintf(os.Stderr, "  catalog-import  Import a bodybuilding or fitnessprogramer exercise catalog\n")
	fmt.Fprintf(os.Stderr, "  hash-password   Print a bcrypt hash for ADMIN_PASSWORD_HASH\n")
	fmt.Fprintf(os.Stderr, "  version         Print the version\n")
	fmt.Fprintf(os.Stderr, "\nUse '%s <command> -h' for help on a specific command.\n", os.Args[0])
}
