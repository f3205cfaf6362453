package app

import (
	"fmt"

	"github.com/Tangesion/MediaPorter/internal/contracts"
	"github.com/Tangesion/MediaPorter/internal/parsing"
	"github.com/Tangesion/MediaPorter/internal/utils/logging"
)

// ShowHistory prints stored download results, newest first. The since string
// accepts any common date layout; empty means no time filter.
func ShowHistory(s contracts.Store, limit int, since string) error {
	cutoff, err := parsing.ParseSince(since)
	if err != nil {
		return err
	}

	entries, err := s.HistoryStore().List(limit, cutoff)
	if err != nil {
		return fmt.Errorf("failed to load download history: %w", err)
	}
	if len(entries) == 0 {
		logging.I("No download history recorded.")
		return nil
	}

	for _, e := range entries {
		status := "OK  "
		detail := e.OutputPath
		if !e.Success {
			status = "FAIL"
			detail = e.Message
		}
		logging.P("%s  %s  [%s] %s\n      %s\n",
			e.CreatedAt.Format("2006-01-02 15:04"), status, e.Mode, e.URL, detail)
	}
	logging.I("%d history entries shown.", len(entries))
	return nil
}

// ClearHistory wipes every stored download result.
func ClearHistory(s contracts.Store) error {
	if err := s.HistoryStore().Clear(); err != nil {
		return fmt.Errorf("failed to clear download history: %w", err)
	}
	logging.S("Download history cleared.")
	return nil
}
