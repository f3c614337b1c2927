// Package migrations applies the embedded schema migrations in version
// order. Each NNNNNN_name.up.sql file runs once, inside its own
// transaction, and is recorded in a migrations table; the matching
// .down.sql files document the rollback but are never run automatically.
package migrations

import (
	"database/sql"
	"embed"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

//go:embed *.sql
var schemaFS embed.FS

const versionTable = `
	CREATE TABLE IF NOT EXISTS migrations (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`

// RunMigrations brings the database schema up to date
func RunMigrations(db *sql.DB) error {
	if _, err := db.Exec(versionTable); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := appliedVersions(db)
	if err != nil {
		return fmt.Errorf("failed to read applied migrations: %w", err)
	}

	for _, name := range upFiles() {
		version := fileVersion(name)
		if version == 0 || applied[version] {
			continue
		}
		if err := applyFile(db, name, version); err != nil {
			return fmt.Errorf("failed to apply migration %d: %w", version, err)
		}
	}
	return nil
}

// upFiles lists the embedded up-migration files in version order
func upFiles() []string {
	entries, err := schemaFS.ReadDir(".")
	if err != nil {
		return nil
	}

	var names []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			names = append(names, entry.Name())
		}
	}
	sort.Slice(names, func(i, j int) bool {
		return fileVersion(names[i]) < fileVersion(names[j])
	})
	return names
}

// fileVersion parses the numeric prefix of a migration filename, zero when
// the name carries none
func fileVersion(name string) int {
	prefix, _, ok := strings.Cut(name, "_")
	if !ok {
		return 0
	}
	version, err := strconv.Atoi(prefix)
	if err != nil {
		return 0
	}
	return version
}

func appliedVersions(db *sql.DB) (map[int]bool, error) {
	rows, err := db.Query("SELECT version FROM migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

// applyFile runs one migration and records its version, atomically
func applyFile(db *sql.DB, name string, version int) error {
	script, err := schemaFS.ReadFile(name)
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(string(script)); err != nil {
		tx.Rollback()
		return err
	}
	if _, err := tx.Exec("INSERT INTO migrations (version) VALUES (?)", version); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
