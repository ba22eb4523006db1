package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the SQLite coordinate store schema.
func InitSchema(db *sql.DB) error {
	return initSchema(db, []string{`
	CREATE TABLE IF NOT EXISTS coordinate_cache (
        system TEXT PRIMARY KEY,
        x REAL NOT NULL,
        y REAL NOT NULL,
        z REAL NOT NULL
    );
	`})
}

// Initialize the PostgreSQL coordinate store schema.
func InitPostgresSchema(db *sql.DB) error {
	return initSchema(db, []string{`
	CREATE TABLE IF NOT EXISTS coordinate_cache (
        system TEXT PRIMARY KEY,
        x DOUBLE PRECISION NOT NULL,
        y DOUBLE PRECISION NOT NULL,
        z DOUBLE PRECISION NOT NULL
    );
	`})
}

func initSchema(db *sql.DB, statements []string) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
