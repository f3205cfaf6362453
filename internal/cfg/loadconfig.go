package cfg

import (
	"github.com/Tangesion/MediaPorter/internal/cfg/validation"
	"github.com/Tangesion/MediaPorter/internal/domain/keys"
	"github.com/Tangesion/MediaPorter/internal/models"

	"github.com/spf13/viper"
)

// loadConfigFile loads the preset configuration file into v. Any format
// Viper supports works (TOML, YAML, JSON).
func loadConfigFile(v *viper.Viper, file string) error {
	if _, err := validation.ValidateFile(file, false); err != nil {
		return err
	}

	v.SetConfigFile(file)
	if err := v.ReadInConfig(); err != nil {
		return err
	}
	return nil
}

// overlayFileSettings applies config file values onto settings. Only keys
// present in the file are touched, so stored settings survive for the rest.
func overlayFileSettings(settings *models.Settings) error {
	if fileCfg.IsSet(keys.DownloadMode) {
		mode, err := validation.ValidateMode(fileCfg.GetString(keys.DownloadMode))
		if err != nil {
			return err
		}
		settings.Mode = mode
	}
	if fileCfg.IsSet(keys.VideoQuality) {
		quality, err := validation.ValidateQuality(fileCfg.GetString(keys.VideoQuality))
		if err != nil {
			return err
		}
		settings.VideoQuality = quality
	}
	if fileCfg.IsSet(keys.MaxRetries) {
		settings.MaxRetries = validation.ValidateRetries(fileCfg.GetInt(keys.MaxRetries))
	}
	if fileCfg.IsSet(keys.DownloadDir) {
		settings.DownloadDir = fileCfg.GetString(keys.DownloadDir)
	}
	if fileCfg.IsSet(keys.BrowserName) {
		browser, err := validation.ValidateBrowser(fileCfg.GetString(keys.BrowserName))
		if err != nil {
			return err
		}
		settings.BrowserName = browser
	}
	if fileCfg.IsSet(keys.CookiePath) {
		settings.CookieFile = fileCfg.GetString(keys.CookiePath)
	}
	if fileCfg.IsSet(keys.CookieSource) {
		source, err := validation.ValidateCookieSource(fileCfg.GetString(keys.CookieSource), settings.BrowserName, settings.CookieFile)
		if err != nil {
			return err
		}
		settings.CookieSource = source
	}
	return nil
}
