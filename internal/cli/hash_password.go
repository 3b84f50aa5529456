package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/mrlokans/fitadmin/internal/auth"
)

// HashPasswordCommand prints a bcrypt hash suitable for ADMIN_PASSWORD_HASH.
type HashPasswordCommand struct {
	Password string
	Cost     int
}

func NewHashPasswordCommand() *HashPasswordCommand {
	return &HashPasswordCommand{}
}

func (cmd *HashPasswordCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("hash-password", flag.ContinueOnError)

	fs.StringVar(&cmd.Password, "password", "", "Admin password to hash (required)")
	fs.IntVar(&cmd.Cost, "cost", auth.DefaultBcryptCost, "bcrypt cost")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s hash-password -password <password>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Print a bcrypt hash for the ADMIN_PASSWORD_HASH setting.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Password == "" {
		return fmt.Errorf("required flag -password not provided")
	}
	return nil
}

func (cmd *HashPasswordCommand) Run() error {
	hash, err := auth.HashPassword(cmd.Password, cmd.Cost)
	if err != nil {
		return err
	}
	fmt.Println(hash)
	return nil
}
