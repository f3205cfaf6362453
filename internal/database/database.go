// Package database sets up/opens the program database.
package database

import (
	"database/sql"
	"fmt"

	"github.com/Tangesion/MediaPorter/internal/domain/errconsts"
	"github.com/Tangesion/MediaPorter/internal/utils/logging"

	// Package sqlite3 provides interface to SQLite3 databases.
	_ "github.com/mattn/go-sqlite3"
)

const dbDriver = "sqlite3"

// Database holds the open program database handle.
type Database struct {
	DB *sql.DB
}

// Open opens (creating if needed) the database at the given path and
// prepares the schema.
func Open(dbPath string) (d *Database, err error) {
	d = new(Database)
	d.DB, err = sql.Open(dbDriver, dbPath)
	if err != nil {
		return nil, fmt.Errorf(errconsts.DBOpenFail, dbPath, err)
	}

	// Enable foreign keys
	if _, err := d.DB.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Enable Write-Ahead Logging for concurrent access
	if _, err := d.DB.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// Allow SQLite to wait for locks (in milliseconds)
	if _, err := d.DB.Exec(`PRAGMA busy_timeout = 5000;`); err != nil {
		return nil, fmt.Errorf("failed to set busy_timeout: %w", err)
	}

	// Slightly reduce fsync frequency for faster writes
	if _, err := d.DB.Exec(`PRAGMA synchronous = NORMAL;`); err != nil {
		return nil, fmt.Errorf("failed to set synchronous mode: %w", err)
	}

	if err := d.initTables(); err != nil {
		return nil, fmt.Errorf(errconsts.DBSchemaFail, err)
	}
	return d, nil
}

// Close closes the database handle.
func (d *Database) Close() error {
	return d.DB.Close()
}

// initTables initializes the SQL tables.
func (d *Database) initTables() error {
	tx, err := d.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logging.E("Panic rollback failed for table creation: %v", rbErr)
			}
			panic(p)
		} else if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logging.E("transaction rollback failed after original error %v: %v", err, rbErr)
			}
		}
	}()

	if err = initProgramTable(tx); err != nil {
		return err
	}

	if err = initDownloadsTable(tx); err != nil {
		return err
	}

	if err = initSettingsTable(tx); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit table creation: %w", err)
	}
	return nil
}
