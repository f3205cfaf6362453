// Package main is the entrypoint of MediaPorter.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Tangesion/MediaPorter/internal/cfg"
	"github.com/Tangesion/MediaPorter/internal/domain/paths"
	"github.com/Tangesion/MediaPorter/internal/downloads"
	"github.com/Tangesion/MediaPorter/internal/utils/logging"
)

// init runs before the program begins.
func init() {
	if err := paths.InitAppFilesDirs(); err != nil {
		fmt.Printf("MediaPorter exiting with error: %v\n", err)
		os.Exit(1)
	}
}

// main is the main entrypoint of the program.
func main() {
	startTime := time.Now()

	fmt.Printf("\nMain MediaPorter file/dir locations:\n\nDatabase: %s\nLog file: %s\n\n",
		paths.DBFilePath, paths.LogFilePath)

	if err := logging.Setup(paths.LogFilePath, 0); err != nil {
		fmt.Printf("could not set up logging, proceeding without: %v\n", err)
	}

	// Initialize application (DB, stores, instance lock)
	store, db, progControl, err := initializeApplication()
	if err != nil {
		if strings.HasPrefix(err.Error(), "failure:") {
			logging.E("DB %v", err)
			os.Exit(1)
		}
		fmt.Printf("MediaPorter exiting: %v\n", err)
		return
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.E("failed to close database: %v", err)
		}
	}()

	logging.I("MediaPorter (PID: %d) started at: %v",
		progControl.ProcessID, startTime.Format("2006-01-02 15:04:05.00 MST"))

	// create cancellable context for shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT)

	// heartbeat shutdown channel
	heartbeatDone := make(chan struct{})

	// run heartbeat goroutine
	go func() {
		startHeartbeat(ctx, progControl)
		close(heartbeatDone)
	}()

	// ---- RUN PROGRAM ----
	runErr := func() error {
		if err := cfg.InitCommands(ctx, store, downloads.New()); err != nil {
			return err
		}
		return cfg.Execute()
	}()

	// ---- SHUTDOWN ----
	cancel()        // stop goroutines
	<-heartbeatDone // wait for heartbeat to flush DB state
	cleanup(progControl, startTime)

	if runErr != nil {
		logging.E("Error: %v", runErr)
		os.Exit(1)
	}
}
