package migration

import "time"

// Migration is one versioned schema change, loaded from
// NNN_name.up.sql / NNN_name.down.sql file pairs.
type Migration struct {
	Version     int64      `json:"version"`
	Name        string     `json:"name"`
	UpSQL       string     `json:"-"`
	DownSQL     string     `json:"-"`
	UpChecksum  string     `json:"up_checksum"`
	Applied     bool       `json:"applied"`
	AppliedAt   *time.Time `json:"applied_at,omitempty"`
	HasDownFile bool       `json:"has_down_file"`
}

// Status summarizes the migration state of a database.
type Status struct {
	CurrentVersion int64       `json:"current_version"`
	Migrations     []Migration `json:"migrations"`
	AppliedCount   int         `json:"applied_count"`
	PendingCount   int         `json:"pending_count"`
}

// Config migration runner settings.
type Config struct {
	// MigrationsPath is the directory holding the SQL files.
	MigrationsPath string

	// TableName is the tracking table, created on Initialize.
	TableName string

	// ValidateChecksums refuses to run when an applied migration's file
	// has changed since it was recorded.
	ValidateChecksums bool
}

// DefaultConfig returns the settings used by both the app startup path
// and the migrate CLI.
func DefaultConfig() *Config {
	return &Config{
		MigrationsPath:    "./migrations",
		TableName:         "schema_migrations",
		ValidateChecksums: true,
	}
}
