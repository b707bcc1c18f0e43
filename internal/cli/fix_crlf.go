// Package cli implements the maintenance subcommands.
package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/eren/sozluk/internal/config"
	"github.com/eren/sozluk/internal/storage/sqldb"
)

// FixCRLFCommand normalizes CRLF line endings to LF across all entry texts
// in the relational store. One-shot data hygiene, not steady-state behavior.
type FixCRLFCommand struct {
	DatabasePath string
}

func NewFixCRLFCommand() *FixCRLFCommand {
	return &FixCRLFCommand{}
}

func (cmd *FixCRLFCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("fix-crlf", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the SQLite database file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s fix-crlf [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Rewrite CRLF line endings to LF in every stored entry text.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *FixCRLFCommand) Run() error {
	repo, err := sqldb.Open(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}

	changed, err := repo.FixCRLF()
	if err != nil {
		return err
	}

	fmt.Printf("Normalized line endings in %d entries\n", changed)
	return nil
}
