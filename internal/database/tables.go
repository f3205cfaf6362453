package database

import (
	"database/sql"
	"fmt"
)

// initDownloadsTable initializes the download history table.
func initDownloadsTable(tx *sql.Tx) error {
	query := `
    CREATE TABLE IF NOT EXISTS downloads (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        run_id TEXT NOT NULL,
        url TEXT NOT NULL,
        mode TEXT NOT NULL,
        success INTEGER NOT NULL DEFAULT 0,
        message TEXT,
        output_path TEXT,
        created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
    );
    CREATE INDEX IF NOT EXISTS idx_downloads_run ON downloads(run_id);
    CREATE INDEX IF NOT EXISTS idx_downloads_url ON downloads(url);
    CREATE INDEX IF NOT EXISTS idx_downloads_created ON downloads(created_at);
    `
	if _, err := tx.Exec(query); err != nil {
		return fmt.Errorf("failed to create downloads table: %w", err)
	}
	return nil
}

// initSettingsTable initializes the settings table.
func initSettingsTable(tx *sql.Tx) error {
	query := `
    CREATE TABLE IF NOT EXISTS settings (
        key TEXT PRIMARY KEY,
        value TEXT NOT NULL,
        updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
    );
    `
	if _, err := tx.Exec(query); err != nil {
		return fmt.Errorf("failed to create settings table: %w", err)
	}
	return nil
}

// initProgramTable initializes the single-row program state table.
func initProgramTable(tx *sql.Tx) error {
	query := `
    CREATE TABLE IF NOT EXISTS program (
        id INTEGER PRIMARY KEY CHECK(id = 1),
        running INTEGER NOT NULL DEFAULT 0,
        pid INTEGER,
        started_at TIMESTAMP,
        last_heartbeat TIMESTAMP,
        host TEXT
    );
    INSERT OR IGNORE INTO program (id, running) VALUES (1, 0);
    `
	if _, err := tx.Exec(query); err != nil {
		return fmt.Errorf("failed to create program table: %w", err)
	}
	return nil
}
