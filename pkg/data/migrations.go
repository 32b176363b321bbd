package data

import (
	"database/sql"
	"fmt"
)

type migration struct {
	version int
	name    string
	stmts   []string
}

// migrations are applied in order and never rewritten once released; schema
// changes go in a new entry.
var migrations = []migration{
	{
		version: 1,
		name:    "create menu_items",
		stmts: []string{
			`CREATE TABLE IF NOT EXISTS menu_items (
				id          INTEGER PRIMARY KEY,
				title       VARCHAR NOT NULL,
				description VARCHAR NOT NULL DEFAULT '',
				price       DOUBLE NOT NULL,
				image       VARCHAR NOT NULL DEFAULT '',
				category    VARCHAR NOT NULL DEFAULT ''
			)`,
		},
	},
	{
		version: 2,
		name:    "create preferences",
		stmts: []string{
			`CREATE TABLE IF NOT EXISTS preferences (
				pref_key   VARCHAR PRIMARY KEY,
				pref_value VARCHAR NOT NULL
			)`,
		},
	},
}

// SchemaVersion is the version the current binary migrates to.
func SchemaVersion() int {
	return migrations[len(migrations)-1].version
}

func migrate(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version    INTEGER PRIMARY KEY,
		name       VARCHAR NOT NULL,
		applied_at TIMESTAMP NOT NULL DEFAULT current_timestamp
	)`); err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	var current int
	if err := db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		if err := applyMigration(db, m); err != nil {
			return fmt.Errorf("migration %d (%s): %w", m.version, m.name, err)
		}
	}
	return nil
}

func applyMigration(db *sql.DB, m migration) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range m.stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}
	if _, err := tx.Exec(`INSERT INTO schema_migrations (version, name) VALUES (?, ?)`, m.version, m.name); err != nil {
		return err
	}
	return tx.Commit()
}
