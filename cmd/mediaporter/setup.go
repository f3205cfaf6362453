package main

import (
	"github.com/Tangesion/MediaPorter/internal/database"
	"github.com/Tangesion/MediaPorter/internal/domain/paths"
	"github.com/Tangesion/MediaPorter/internal/repo"
)

// initializeApplication sets up the database, stores, and instance lock for
// the current run.
func initializeApplication() (store *repo.Store, db *database.Database, progControl *repo.ProgControl, err error) {
	db, err = database.Open(paths.DBFilePath)
	if err != nil {
		return nil, nil, nil, err
	}

	store = repo.InitStores(db.DB)

	progControl = repo.NewProgController(db.DB)
	if progControl.ProcessID, err = progControl.StartMediaPorter(); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, nil, nil, closeErr
		}
		return nil, nil, nil, err
	}

	return store, db, progControl, nil
}
