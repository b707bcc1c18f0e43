package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/eren/sozluk/internal/config"
	"github.com/eren/sozluk/internal/storage/memdb"
	"github.com/eren/sozluk/internal/storage/sqldb"
)

// MigrateCommand replays a snapshot file into the relational store,
// preserving entry identifiers and timestamps.
type MigrateCommand struct {
	SnapshotPath string
	DatabasePath string
	DryRun       bool
}

func NewMigrateCommand() *MigrateCommand {
	return &MigrateCommand{}
}

func (cmd *MigrateCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("migrate-to-db", flag.ExitOnError)

	fs.StringVar(&cmd.SnapshotPath, "snapshot", config.DefaultSnapshotPath, "Path to the snapshot file to migrate from")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the SQLite database file to migrate into")
	fs.BoolVar(&cmd.DryRun, "dry-run", false, "Show what would be migrated without writing")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s migrate-to-db [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Copy every entry from a snapshot-backend file into the relational\n")
		fmt.Fprintf(os.Stderr, "backend, keeping identifiers and timestamps intact.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *MigrateCommand) Run() error {
	source, err := memdb.Open(cmd.SnapshotPath)
	if err != nil {
		return fmt.Errorf("opening snapshot: %w", err)
	}

	entries := source.Entries()
	if cmd.DryRun {
		fmt.Printf("Would migrate %d entries from %s to %s\n", len(entries), cmd.SnapshotPath, cmd.DatabasePath)
		return nil
	}

	repo, err := sqldb.Open(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}

	for _, entry := range entries {
		if err := repo.ImportEntry(entry); err != nil {
			return fmt.Errorf("importing entry %s: %w", entry.ID, err)
		}
	}

	fmt.Printf("Migrated %d entries\n", len(entries))
	return nil
}
