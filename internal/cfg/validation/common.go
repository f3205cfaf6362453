// Package validation handles validation of user flag input.
package validation

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/Tangesion/MediaPorter/internal/domain/consts"
	"github.com/Tangesion/MediaPorter/internal/utils/logging"
)

// ValidateMode checks the download mode flag. Empty input defaults to audio.
func ValidateMode(mode string) (consts.Mode, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", string(consts.ModeAudio):
		return consts.ModeAudio, nil
	case string(consts.ModeVideo):
		return consts.ModeVideo, nil
	}
	return "", fmt.Errorf("invalid download mode %q (must be 'audio' or 'video')", mode)
}

// ValidateQuality checks the video quality cap flag. Empty input defaults to
// auto, meaning no height cap.
func ValidateQuality(q string) (string, error) {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return consts.QualityAuto, nil
	}
	if slices.Contains(consts.QualityOptions[:], q) {
		return q, nil
	}
	return "", fmt.Errorf("invalid video quality %q (options: %v)", q, consts.QualityOptions)
}

// ValidateRetries clamps the retry count into the supported range.
func ValidateRetries(n int) int {
	switch {
	case n < consts.MinRetries:
		logging.D(1, "Retry count %d below minimum, using %d", n, consts.MinRetries)
		return consts.MinRetries
	case n > consts.MaxRetries:
		logging.D(1, "Retry count %d above maximum, using %d", n, consts.MaxRetries)
		return consts.MaxRetries
	}
	return n
}

// ValidateBrowser checks the cookie browser flag.
func ValidateBrowser(name string) (string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if slices.Contains(consts.SupportedBrowsers[:], name) {
		return name, nil
	}
	return "", fmt.Errorf("invalid browser %q (options: %v)", name, consts.SupportedBrowsers)
}

// ValidateCookieSource checks the cookie source flag together with the browser
// and file flags it depends on. Empty input means no cookies.
func ValidateCookieSource(source, browserName, cookieFile string) (consts.CookieSource, error) {
	switch consts.CookieSource(strings.ToLower(strings.TrimSpace(source))) {
	case "", consts.CookieSourceNone:
		return consts.CookieSourceNone, nil
	case consts.CookieSourceBrowser:
		if _, err := ValidateBrowser(browserName); err != nil {
			return "", err
		}
		return consts.CookieSourceBrowser, nil
	case consts.CookieSourceFile:
		if strings.TrimSpace(cookieFile) == "" {
			return "", errors.New("cookie source 'file' requires a cookie file path")
		}
		if _, err := ValidateFile(cookieFile, false); err != nil {
			return "", fmt.Errorf("cookie file %q is invalid: %w", cookieFile, err)
		}
		return consts.CookieSourceFile, nil
	}
	return "", fmt.Errorf("invalid cookie source %q (must be 'none', 'browser' or 'file')", source)
}

// ValidateDirectory validates that the directory exists, else creates it if desired.
func ValidateDirectory(dir string, createIfNotFound bool) (os.FileInfo, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("directory path is empty")
	}

	info, err := os.Stat(dir)
	switch {
	case err == nil:
		if !info.IsDir() {
			return nil, fmt.Errorf("path %q exists but is not a directory", dir)
		}
		return info, nil
	case os.IsNotExist(err):
		if !createIfNotFound {
			return nil, fmt.Errorf("directory %q does not exist", dir)
		}
		logging.D(1, "Directory %q does not exist, creating it...", dir)
		if err := os.MkdirAll(dir, consts.PermsDownloadDir); err != nil {
			return nil, fmt.Errorf("failed to create directory %q: %w", dir, err)
		}
		return os.Stat(dir)
	}
	return nil, err
}

// ValidateFile validates that the file exists, else creates it if desired.
func ValidateFile(f string, createIfNotFound bool) (os.FileInfo, error) {
	if strings.TrimSpace(f) == "" {
		return nil, errors.New("file path is empty")
	}

	info, err := os.Stat(f)
	switch {
	case err == nil:
		if info.IsDir() {
			return nil, fmt.Errorf("path %q is a directory, not a file", f)
		}
		return info, nil
	case os.IsNotExist(err):
		if !createIfNotFound {
			return nil, fmt.Errorf("file %q does not exist", f)
		}
		created, err := os.OpenFile(f, os.O_CREATE|os.O_WRONLY, consts.PermsMediaFile)
		if err != nil {
			return nil, fmt.Errorf("failed to create file %q: %w", f, err)
		}
		if err := created.Close(); err != nil {
			return nil, err
		}
		return os.Stat(f)
	}
	return nil, err
}
