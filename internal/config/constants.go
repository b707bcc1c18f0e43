package config

const (
	// DefaultDatabasePath is where the relational backend keeps its SQLite file.
	DefaultDatabasePath = "./sozluk.sqlite"
	// DefaultSnapshotPath is where the snapshot backend keeps its JSON dump.
	DefaultSnapshotPath = "./sozluk.json"
)
