package cfg

import (
	"fmt"

	"github.com/Tangesion/MediaPorter/internal/cfg/validation"
	"github.com/Tangesion/MediaPorter/internal/contracts"
	"github.com/Tangesion/MediaPorter/internal/domain/keys"
	"github.com/Tangesion/MediaPorter/internal/domain/paths"
	"github.com/Tangesion/MediaPorter/internal/models"

	"github.com/spf13/cobra"
)

// loadRunSettings builds the effective options for a command: stored
// settings, then config file values over them. Flag overrides come last via
// the apply helpers.
func loadRunSettings(s contracts.Store) (models.Settings, error) {
	settings, found, err := s.SettingsStore().Load()
	if err != nil {
		return models.Settings{}, fmt.Errorf("failed to load stored settings: %w", err)
	}
	if !found {
		settings = models.DefaultSettings()
	}

	if err := overlayFileSettings(&settings); err != nil {
		return models.Settings{}, err
	}

	if settings.DownloadDir == "" {
		settings.DownloadDir = paths.DefaultDownloadDir
	}
	return settings, nil
}

// applyDownloadFlags overrides settings with download flags the user
// explicitly entered.
func applyDownloadFlags(cmd *cobra.Command, settings *models.Settings, mode, quality, downloadDir string, retries int) error {
	f := cmd.Flags()

	if f.Changed(keys.DownloadMode) {
		m, err := validation.ValidateMode(mode)
		if err != nil {
			return err
		}
		settings.Mode = m
	}
	if f.Changed(keys.VideoQuality) {
		q, err := validation.ValidateQuality(quality)
		if err != nil {
			return err
		}
		settings.VideoQuality = q
	}
	if f.Changed(keys.MaxRetries) {
		settings.MaxRetries = validation.ValidateRetries(retries)
	}
	if f.Changed(keys.DownloadDir) {
		settings.DownloadDir = downloadDir
	}
	return nil
}

// applyAuthFlags overrides settings with cookie flags the user explicitly
// entered. The cookie source is revalidated whenever any of them changed.
func applyAuthFlags(cmd *cobra.Command, settings *models.Settings, cookieSource, browserName, cookieFile string) error {
	f := cmd.Flags()

	if f.Changed(keys.BrowserName) {
		b, err := validation.ValidateBrowser(browserName)
		if err != nil {
			return err
		}
		settings.BrowserName = b
	}
	if f.Changed(keys.CookiePath) {
		settings.CookieFile = cookieFile
	}
	if f.Changed(keys.CookieSource) {
		src, err := validation.ValidateCookieSource(cookieSource, settings.BrowserName, settings.CookieFile)
		if err != nil {
			return err
		}
		settings.CookieSource = src
	} else if f.Changed(keys.CookiePath) {
		src, err := validation.ValidateCookieSource(string(settings.CookieSource), settings.BrowserName, settings.CookieFile)
		if err != nil {
			return err
		}
		settings.CookieSource = src
	}
	return nil
}
