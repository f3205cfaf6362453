// Package contracts defines interfaces that decouple the application layer from storage implementations.
package contracts

import (
	"database/sql"
	"time"

	"github.com/Tangesion/MediaPorter/internal/models"
)

// Store allows access to the main store repo methods.
type Store interface {
	HistoryStore() HistoryStore
	SettingsStore() SettingsStore
}

// HistoryStore allows access to download history repo methods.
type HistoryStore interface {
	GetDB() *sql.DB

	// SaveRun records every result of a finished run and prunes old rows.
	SaveRun(summary models.RunSummary) error

	// List returns newest-first entries. A zero since means no time filter;
	// limit <= 0 means no row cap.
	List(limit int, since time.Time) ([]models.HistoryEntry, error)

	// FailedURLsLastRun returns the failed URLs of the most recent run,
	// deduplicated, in first-seen order.
	FailedURLsLastRun() ([]string, error)

	Clear() error
}

// SettingsStore allows access to persisted run option methods.
type SettingsStore interface {
	GetDB() *sql.DB

	// Load returns the persisted settings; found is false before any save.
	Load() (s models.Settings, found bool, err error)

	Save(s models.Settings) error
}
