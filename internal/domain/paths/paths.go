// Package paths initializes MediaPorter's filepaths, directories, etc.
package paths

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Tangesion/MediaPorter/internal/domain/consts"
)

const (
	appDir     = "." + consts.AppName
	dbFile     = consts.AppName + ".db"
	logFile    = consts.AppName + ".log"
	authDir    = "auth"
	cookieFile = "bilibili_cookies.txt"
	dlDir      = "MediaPorter"
)

// File and directory path strings.
var (
	HomeAppDir         string
	DBFilePath         string
	LogFilePath        string
	AuthDir            string
	CookieFilePath     string
	DefaultDownloadDir string
)

// InitAppFilesDirs initializes necessary program directories and filepaths.
func InitAppFilesDirs() error {
	userHomeDir, err := os.UserHomeDir()
	if err != nil {
		return errors.New("failed to get home directory")
	}

	// Home app dir ~/.mediaporter
	HomeAppDir = filepath.Join(userHomeDir, appDir)
	if _, err := os.Stat(HomeAppDir); os.IsNotExist(err) {
		if err := os.MkdirAll(HomeAppDir, consts.PermsDataDir); err != nil {
			return fmt.Errorf("failed to make directories: %w", err)
		}
	}

	// Auth dir ~/.mediaporter/auth, owner only
	AuthDir = filepath.Join(HomeAppDir, authDir)
	if _, err := os.Stat(AuthDir); os.IsNotExist(err) {
		if err := os.MkdirAll(AuthDir, consts.PermsAuthDir); err != nil {
			return fmt.Errorf("failed to make auth directory: %w", err)
		}
	}

	// Main files
	DBFilePath = filepath.Join(HomeAppDir, dbFile)
	LogFilePath = filepath.Join(HomeAppDir, logFile)
	CookieFilePath = filepath.Join(AuthDir, cookieFile)

	// Default download target ~/Downloads/MediaPorter
	DefaultDownloadDir = filepath.Join(userHomeDir, "Downloads", dlDir)

	return nil
}
