// Package logging prints colored console output and mirrors it into a
// structured logfile.
package logging

import (
	"os"
	"sync"
	"time"

	"github.com/Tangesion/MediaPorter/internal/domain/consts"
	"github.com/Tangesion/MediaPorter/internal/domain/regex"

	"github.com/rs/zerolog"
)

// Console color tags.
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[91m"
	ColorGreen  = "\033[92m"
	ColorYellow = "\033[93m"
	ColorBlue   = "\033[34m"
	ColorCyan   = "\033[96m"
)

const (
	redError      = ColorRed + "[ERROR] " + ColorReset
	greenSuccess  = ColorGreen + "[Success] " + ColorReset
	yellowDebug   = ColorYellow + "[Debug] " + ColorReset
	yellowWarning = ColorYellow + "[Warning] " + ColorReset
	blueInfo      = ColorCyan + "[Info] " + ColorReset
)

var (
	Level int = -1 // Pre initialization
	mu    sync.Mutex

	fileLogger zerolog.Logger
	loggable   bool
)

// Setup opens (or creates) the logfile and initializes the file sink.
func Setup(logFilePath string, level int) error {
	f, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, consts.PermsLogFile)
	if err != nil {
		return err
	}

	zerolog.TimeFieldFormat = time.RFC3339
	fileLogger = zerolog.New(f).With().Timestamp().Logger()
	loggable = true
	Level = level

	fileLogger.Info().Msg("=========== session start ===========")
	return nil
}

// Loggable reports whether the file sink is initialized.
func Loggable() bool {
	return loggable
}

// StripAnsi removes ANSI escape codes from a string.
func StripAnsi(input string) string {
	return regex.AnsiEscapeCompile().ReplaceAllString(input, "")
}

// writeLog mirrors a console message into the logfile, colors stripped.
func writeLog(lvl zerolog.Level, msg string) {
	if !loggable {
		return
	}
	fileLogger.WithLevel(lvl).Msg(StripAnsi(msg))
}
