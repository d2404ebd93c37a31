package migration

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mskard-business-solutions/gogreen-backend/internal/db"
)

// lockKey is the advisory lock shared by all runner instances so only one
// process migrates at a time.
const lockKey = 198712

// Runner applies versioned SQL migrations and tracks them in the database.
type Runner struct {
	db     *sql.DB
	config *Config
}

// NewRunner creates a new runner.
func NewRunner(db *sql.DB, config *Config) *Runner {
	if config == nil {
		config = DefaultConfig()
	}
	return &Runner{db: db, config: config}
}

// Initialize creates the tracking table.
func (r *Runner) Initialize() error {
	createTableSQL := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			version BIGINT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			up_checksum VARCHAR(64) NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`, r.config.TableName)

	if _, err := r.db.Exec(createTableSQL); err != nil {
		return fmt.Errorf("creating migration tracking table: %w", err)
	}

	log.Info().Str("table", r.config.TableName).Msg("Migration tracking initialized")
	return nil
}

// Up applies all pending migrations in version order.
func (r *Runner) Up() error {
	if err := r.withLock(func() error {
		migrations, err := r.load()
		if err != nil {
			return err
		}

		for _, m := range migrations {
			if m.Applied {
				continue
			}
			if err := r.apply(m); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return err
	}

	log.Info().Msg("✅ Migrations up to date")
	return nil
}

// Down rolls back the most recently applied migration.
func (r *Runner) Down() error {
	return r.withLock(func() error {
		migrations, err := r.load()
		if err != nil {
			return err
		}

		var last *Migration
		for i := len(migrations) - 1; i >= 0; i-- {
			if migrations[i].Applied {
				last = &migrations[i]
				break
			}
		}
		if last == nil {
			return fmt.Errorf("no applied migrations to roll back")
		}
		if !last.HasDownFile {
			return fmt.Errorf("migration %d has no down file", last.Version)
		}

		return r.rollback(*last)
	})
}

// Status reports applied and pending migrations.
func (r *Runner) Status() (*Status, error) {
	migrations, err := r.load()
	if err != nil {
		return nil, err
	}

	status := &Status{Migrations: migrations}
	for _, m := range migrations {
		if m.Applied {
			status.AppliedCount++
			if m.Version > status.CurrentVersion {
				status.CurrentVersion = m.Version
			}
		} else {
			status.PendingCount++
		}
	}

	return status, nil
}

// withLock serializes migration runs via a session advisory lock.
func (r *Runner) withLock(fn func() error) error {
	if _, err := r.db.Exec(`SELECT pg_advisory_lock($1)`, lockKey); err != nil {
		return fmt.Errorf("acquiring migration lock: %w", err)
	}
	defer r.db.Exec(`SELECT pg_advisory_unlock($1)`, lockKey)

	return fn()
}

// apply runs one up migration and records it, in a single transaction.
func (r *Runner) apply(m Migration) error {
	started := time.Now()

	err := db.WithTransaction(r.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(m.UpSQL); err != nil {
			return fmt.Errorf("applying migration %d (%s): %w", m.Version, m.Name, err)
		}

		insertSQL := fmt.Sprintf(
			`INSERT INTO %s (version, name, up_checksum) VALUES ($1, $2, $3)`,
			r.config.TableName,
		)
		if _, err := tx.Exec(insertSQL, m.Version, m.Name, m.UpChecksum); err != nil {
			return fmt.Errorf("recording migration %d: %w", m.Version, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Info().
		Int64("version", m.Version).
		Str("name", m.Name).
		Dur("took", time.Since(started)).
		Msg("✅ Migration applied")

	return nil
}

// rollback runs one down migration and removes its record.
func (r *Runner) rollback(m Migration) error {
	err := db.WithTransaction(r.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(m.DownSQL); err != nil {
			return fmt.Errorf("rolling back migration %d (%s): %w", m.Version, m.Name, err)
		}

		deleteSQL := fmt.Sprintf(`DELETE FROM %s WHERE version = $1`, r.config.TableName)
		if _, err := tx.Exec(deleteSQL, m.Version); err != nil {
			return fmt.Errorf("removing migration record %d: %w", m.Version, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Info().Int64("version", m.Version).Str("name", m.Name).Msg("Migration rolled back")
	return nil
}

// load reads migration files and merges in the applied records.
func (r *Runner) load() ([]Migration, error) {
	migrations, err := r.loadFiles()
	if err != nil {
		return nil, err
	}

	applied, err := r.loadApplied()
	if err != nil {
		return nil, err
	}

	for i := range migrations {
		record, ok := applied[migrations[i].Version]
		if !ok {
			continue
		}
		migrations[i].Applied = true
		migrations[i].AppliedAt = &record.appliedAt

		if r.config.ValidateChecksums && record.checksum != migrations[i].UpChecksum {
			return nil, fmt.Errorf(
				"migration %d changed after being applied (checksum mismatch)",
				migrations[i].Version,
			)
		}
	}

	return migrations, nil
}

type appliedRecord struct {
	checksum  string
	appliedAt time.Time
}

func (r *Runner) loadApplied() (map[int64]appliedRecord, error) {
	querySQL := fmt.Sprintf(`SELECT version, up_checksum, applied_at FROM %s`, r.config.TableName)

	rows, err := r.db.Query(querySQL)
	if err != nil {
		return nil, fmt.Errorf("querying applied migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int64]appliedRecord)
	for rows.Next() {
		var version int64
		var record appliedRecord
		if err := rows.Scan(&version, &record.checksum, &record.appliedAt); err != nil {
			return nil, fmt.Errorf("scanning migration record: %w", err)
		}
		applied[version] = record
	}

	return applied, rows.Err()
}

// loadFiles parses NNN_name.up.sql files (and their optional down pair)
// from the migrations directory, sorted by version.
func (r *Runner) loadFiles() ([]Migration, error) {
	entries, err := os.ReadDir(r.config.MigrationsPath)
	if err != nil {
		return nil, fmt.Errorf("reading migrations directory: %w", err)
	}

	var migrations []Migration
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".up.sql") {
			continue
		}

		base := strings.TrimSuffix(entry.Name(), ".up.sql")
		parts := strings.SplitN(base, "_", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("malformed migration filename: %s", entry.Name())
		}

		version, err := strconv.ParseInt(parts[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed migration version in %s: %w", entry.Name(), err)
		}

		upSQL, err := os.ReadFile(filepath.Join(r.config.MigrationsPath, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading migration %s: %w", entry.Name(), err)
		}

		m := Migration{
			Version:    version,
			Name:       parts[1],
			UpSQL:      string(upSQL),
			UpChecksum: checksum(upSQL),
		}

		downPath := filepath.Join(r.config.MigrationsPath, base+".down.sql")
		if downSQL, err := os.ReadFile(downPath); err == nil {
			m.DownSQL = string(downSQL)
			m.HasDownFile = true
		}

		migrations = append(migrations, m)
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	return migrations, nil
}

func checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
