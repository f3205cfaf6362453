package repo

import (
	"database/sql"

	"github.com/Tangesion/MediaPorter/internal/contracts"
)

type Store struct {
	db            *sql.DB
	historyStore  *HistoryStore
	settingsStore *SettingsStore
}

func InitStores(db *sql.DB) *Store {
	return &Store{
		db:            db,
		historyStore:  GetHistoryStore(db),
		settingsStore: GetSettingsStore(db),
	}
}

// HistoryStore with pointer receiver
func (s *Store) HistoryStore() contracts.HistoryStore {
	return s.historyStore
}

// SettingsStore with pointer receiver
func (s *Store) SettingsStore() contracts.SettingsStore {
	return s.settingsStore
}
