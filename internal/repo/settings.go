package repo

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Tangesion/MediaPorter/internal/domain/consts"
	"github.com/Tangesion/MediaPorter/internal/models"

	"github.com/Masterminds/squirrel"
)

// settingsKey is the row key holding the persisted run options blob.
const settingsKey = "run_options"

// SettingsStore holds a pointer to the sql.DB.
type SettingsStore struct {
	DB *sql.DB
}

// GetSettingsStore returns a settings store instance with injected database.
func GetSettingsStore(db *sql.DB) *SettingsStore {
	return &SettingsStore{
		DB: db,
	}
}

// GetDB returns the database.
func (ss *SettingsStore) GetDB() *sql.DB {
	return ss.DB
}

// Load returns the persisted settings; found is false before any save.
func (ss *SettingsStore) Load() (s models.Settings, found bool, err error) {
	var raw string
	err = squirrel.
		Select(consts.QSetValue).
		From(consts.DBSettings).
		Where(squirrel.Eq{consts.QSetKey: settingsKey}).
		RunWith(ss.DB).
		QueryRow().
		Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Settings{}, false, nil
	}
	if err != nil {
		return models.Settings{}, false, fmt.Errorf("failed to load settings: %w", err)
	}

	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return models.Settings{}, false, fmt.Errorf("failed to decode settings: %w", err)
	}
	return s, true, nil
}

// Save upserts the settings blob.
func (ss *SettingsStore) Save(s models.Settings) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	query := squirrel.
		Insert(consts.DBSettings).
		Columns(consts.QSetKey, consts.QSetValue, consts.QSetUpdatedAt).
		Values(settingsKey, string(raw), time.Now()).
		Suffix(fmt.Sprintf("ON CONFLICT(%s) DO UPDATE SET %s = excluded.%s, %s = excluded.%s",
			consts.QSetKey, consts.QSetValue, consts.QSetValue, consts.QSetUpdatedAt, consts.QSetUpdatedAt)).
		RunWith(ss.DB)

	if _, err := query.Exec(); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
