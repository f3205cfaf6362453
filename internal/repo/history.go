package repo

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Tangesion/MediaPorter/internal/domain/consts"
	"github.com/Tangesion/MediaPorter/internal/models"
	"github.com/Tangesion/MediaPorter/internal/utils/logging"

	"github.com/Masterminds/squirrel"
)

// HistoryStore holds a pointer to the sql.DB.
type HistoryStore struct {
	DB *sql.DB
}

// GetHistoryStore returns a history store instance with injected database.
func GetHistoryStore(db *sql.DB) *HistoryStore {
	return &HistoryStore{
		DB: db,
	}
}

// GetDB returns the database.
func (hs *HistoryStore) GetDB() *sql.DB {
	return hs.DB
}

// SaveRun records every result of a finished run, then prunes the table
// down to the newest entries.
func (hs *HistoryStore) SaveRun(summary models.RunSummary) (err error) {
	if len(summary.Results) == 0 {
		return nil
	}

	tx, err := hs.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logging.E("Panic rollback failed for run %q: %v", summary.RunID, rbErr)
			}
			panic(p)
		} else if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logging.E("Rollback failed for run %q (original error: %v): %v", summary.RunID, err, rbErr)
			}
		}
	}()

	now := time.Now()
	for _, r := range summary.Results {
		query := squirrel.
			Insert(consts.DBDownloads).
			Columns(
				consts.QDLRunID,
				consts.QDLURL,
				consts.QDLMode,
				consts.QDLSuccess,
				consts.QDLMessage,
				consts.QDLOutputPath,
				consts.QDLCreatedAt,
			).
			Values(summary.RunID, r.URL, r.Mode, r.Success, r.Message, r.OutputPath, now).
			RunWith(tx)

		if _, err = query.Exec(); err != nil {
			return fmt.Errorf("failed to insert history row for %q: %w", r.URL, err)
		}
	}

	prune := squirrel.
		Delete(consts.DBDownloads).
		Where(squirrel.Expr(
			fmt.Sprintf("%s NOT IN (SELECT %s FROM %s ORDER BY %s DESC LIMIT ?)",
				consts.QDLID, consts.QDLID, consts.DBDownloads, consts.QDLID),
			consts.HistoryKeepEntries,
		)).
		RunWith(tx)

	if _, err = prune.Exec(); err != nil {
		return fmt.Errorf("failed to prune history: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit history for run %q: %w", summary.RunID, err)
	}
	return nil
}

// List returns history entries newest first. A zero since means no time
// filter; limit <= 0 means no row cap.
func (hs *HistoryStore) List(limit int, since time.Time) ([]models.HistoryEntry, error) {
	query := squirrel.
		Select(
			consts.QDLID,
			consts.QDLRunID,
			consts.QDLURL,
			consts.QDLMode,
			consts.QDLSuccess,
			consts.QDLMessage,
			consts.QDLOutputPath,
			consts.QDLCreatedAt,
		).
		From(consts.DBDownloads).
		OrderBy(fmt.Sprintf("%s DESC", consts.QDLID))

	if !since.IsZero() {
		query = query.Where(squirrel.GtOrEq{consts.QDLCreatedAt: since})
	}
	if limit > 0 {
		query = query.Limit(uint64(limit))
	}

	sqlStr, args, err := query.PlaceholderFormat(squirrel.Question).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build history query: %w", err)
	}

	rows, err := hs.DB.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []models.HistoryEntry
	for rows.Next() {
		var (
			e          models.HistoryEntry
			message    sql.NullString
			outputPath sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.RunID, &e.URL, &e.Mode, &e.Success, &message, &outputPath, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		e.Message = message.String
		e.OutputPath = outputPath.String
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history rows: %w", err)
	}
	return entries, nil
}

// FailedURLsLastRun returns the failed URLs of the most recent run,
// deduplicated, in first-seen order.
func (hs *HistoryStore) FailedURLsLastRun() ([]string, error) {
	var lastRun string
	err := squirrel.
		Select(consts.QDLRunID).
		From(consts.DBDownloads).
		OrderBy(fmt.Sprintf("%s DESC", consts.QDLID)).
		Limit(1).
		RunWith(hs.DB).
		QueryRow().
		Scan(&lastRun)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find last run: %w", err)
	}

	query := squirrel.
		Select(consts.QDLURL).
		From(consts.DBDownloads).
		Where(squirrel.Eq{consts.QDLRunID: lastRun}).
		Where(squirrel.Eq{consts.QDLSuccess: false}).
		OrderBy(fmt.Sprintf("%s ASC", consts.QDLID))

	sqlStr, args, err := query.PlaceholderFormat(squirrel.Question).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build failed URL query: %w", err)
	}

	rows, err := hs.DB.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query failed URLs: %w", err)
	}
	defer rows.Close()

	seen := make(map[string]bool)
	var urls []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, fmt.Errorf("failed to scan failed URL: %w", err)
		}
		if seen[u] {
			continue
		}
		seen[u] = true
		urls = append(urls, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read failed URL rows: %w", err)
	}
	return urls, nil
}

// Clear deletes all history entries.
func (hs *HistoryStore) Clear() error {
	if _, err := squirrel.Delete(consts.DBDownloads).RunWith(hs.DB).Exec(); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}
