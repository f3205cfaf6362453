package validation_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Tangesion/MediaPorter/internal/cfg/validation"
	"github.com/Tangesion/MediaPorter/internal/domain/consts"
)

// TestValidateMode checks mode parsing, defaults and rejections.
func TestValidateMode(t *testing.T) {
	t.Parallel()

	// Empty input defaults to audio
	mode, err := validation.ValidateMode("")
	if err != nil {
		t.Fatalf("expected no error for empty mode, got: %v", err)
	}
	if mode != consts.ModeAudio {
		t.Fatalf("expected default mode %q, got %q", consts.ModeAudio, mode)
	}

	// Case and whitespace are forgiven
	mode, err = validation.ValidateMode("  Video ")
	if err != nil {
		t.Fatalf("expected no error for 'Video', got: %v", err)
	}
	if mode != consts.ModeVideo {
		t.Fatalf("expected mode %q, got %q", consts.ModeVideo, mode)
	}

	// Unknown mode rejected
	if _, err = validation.ValidateMode("podcast"); err == nil {
		t.Fatalf("expected error for unknown mode, got nil")
	}
}

// TestValidateQuality checks quality option parsing and defaults.
func TestValidateQuality(t *testing.T) {
	t.Parallel()

	// Empty input defaults to auto
	q, err := validation.ValidateQuality("")
	if err != nil {
		t.Fatalf("expected no error for empty quality, got: %v", err)
	}
	if q != consts.QualityAuto {
		t.Fatalf("expected default quality %q, got %q", consts.QualityAuto, q)
	}

	// Each listed option passes unchanged
	for _, opt := range consts.QualityOptions {
		got, err := validation.ValidateQuality(opt)
		if err != nil {
			t.Fatalf("expected option %q to pass, got: %v", opt, err)
		}
		if got != opt {
			t.Fatalf("expected quality %q, got %q", opt, got)
		}
	}

	// Arbitrary heights rejected
	if _, err = validation.ValidateQuality("144"); err == nil {
		t.Fatalf("expected error for unsupported quality, got nil")
	}
}

// TestValidateRetries checks the retry clamp bounds.
func TestValidateRetries(t *testing.T) {
	t.Parallel()

	if got := validation.ValidateRetries(-3); got != consts.MinRetries {
		t.Fatalf("expected clamp to %d, got %d", consts.MinRetries, got)
	}
	if got := validation.ValidateRetries(99); got != consts.MaxRetries {
		t.Fatalf("expected clamp to %d, got %d", consts.MaxRetries, got)
	}
	if got := validation.ValidateRetries(2); got != 2 {
		t.Fatalf("expected in-range value to pass through, got %d", got)
	}
}

// TestValidateBrowser checks browser name validation.
func TestValidateBrowser(t *testing.T) {
	t.Parallel()

	got, err := validation.ValidateBrowser(" Edge ")
	if err != nil {
		t.Fatalf("expected 'Edge' to pass, got: %v", err)
	}
	if got != "edge" {
		t.Fatalf("expected canonical browser name %q, got %q", "edge", got)
	}

	if _, err = validation.ValidateBrowser("netscape"); err == nil {
		t.Fatalf("expected error for unsupported browser, got nil")
	}
}

// TestValidateCookieSource checks the source flag and its dependent flags.
func TestValidateCookieSource(t *testing.T) {
	t.Parallel()

	// Empty input means no cookies
	src, err := validation.ValidateCookieSource("", "", "")
	if err != nil {
		t.Fatalf("expected no error for empty source, got: %v", err)
	}
	if src != consts.CookieSourceNone {
		t.Fatalf("expected source %q, got %q", consts.CookieSourceNone, src)
	}

	// Browser source requires a valid browser
	if _, err = validation.ValidateCookieSource("browser", "netscape", ""); err == nil {
		t.Fatalf("expected error for unsupported browser, got nil")
	}
	src, err = validation.ValidateCookieSource("browser", "chrome", "")
	if err != nil {
		t.Fatalf("expected browser source to pass, got: %v", err)
	}
	if src != consts.CookieSourceBrowser {
		t.Fatalf("expected source %q, got %q", consts.CookieSourceBrowser, src)
	}

	// File source requires an existing file
	if _, err = validation.ValidateCookieSource("file", "", ""); err == nil {
		t.Fatalf("expected error for missing cookie file path, got nil")
	}
	missing := filepath.Join(t.TempDir(), "cookies.txt")
	if _, err = validation.ValidateCookieSource("file", "", missing); err == nil {
		t.Fatalf("expected error for non-existent cookie file, got nil")
	}
	if err := os.WriteFile(missing, []byte("# Netscape HTTP Cookie File\n"), 0o600); err != nil {
		t.Fatalf("failed to write cookie file: %v", err)
	}
	src, err = validation.ValidateCookieSource("file", "", missing)
	if err != nil {
		t.Fatalf("expected file source to pass, got: %v", err)
	}
	if src != consts.CookieSourceFile {
		t.Fatalf("expected source %q, got %q", consts.CookieSourceFile, src)
	}

	// Unknown source rejected
	if _, err = validation.ValidateCookieSource("clipboard", "", ""); err == nil {
		t.Fatalf("expected error for unknown source, got nil")
	}
}

// TestValidateDirectory runs checks for directory validation.
func TestValidateDirectory_ExistingDirectory(t *testing.T) {
	tmp := t.TempDir()

	info, err := validation.ValidateDirectory(tmp, false)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if info == nil {
		t.Fatalf("expected file info, got nil")
	}
}

func TestValidateDirectory_CreateIfMissing(t *testing.T) {
	tmp := t.TempDir()
	missing := filepath.Join(tmp, "new")

	// Missing, no create
	if _, err := validation.ValidateDirectory(missing, false); err == nil {
		t.Fatalf("expected error for missing directory, got nil")
	}

	// Missing, create it
	info, err := validation.ValidateDirectory(missing, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, statErr := os.Stat(missing); statErr != nil {
		t.Fatalf("directory was not created")
	}
	if info == nil {
		t.Fatalf("expected file info, got nil")
	}
}

func TestValidateDirectory_PathIsFile(t *testing.T) {
	tmp := t.TempDir()
	fpath := filepath.Join(tmp, "plain.txt")
	if err := os.WriteFile(fpath, []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	if _, err := validation.ValidateDirectory(fpath, false); err == nil {
		t.Fatalf("expected error for file path, got nil")
	}
}

// TestValidateFile runs checks for file validation.
func TestValidateFile(t *testing.T) {
	tmp := t.TempDir()

	// Existing file passes
	fpath := filepath.Join(tmp, "present.txt")
	if err := os.WriteFile(fpath, []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	info, err := validation.ValidateFile(fpath, false)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if info == nil {
		t.Fatalf("expected file info, got nil")
	}

	// Directory path rejected
	if _, err := validation.ValidateFile(tmp, false); err == nil {
		t.Fatalf("expected error for directory path, got nil")
	}

	// Missing, no create
	missing := filepath.Join(tmp, "absent.txt")
	if _, err := validation.ValidateFile(missing, false); err == nil {
		t.Fatalf("expected error for missing file, got nil")
	}

	// Missing, create it
	if _, err := validation.ValidateFile(missing, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, statErr := os.Stat(missing); statErr != nil {
		t.Fatalf("file was not created")
	}
}
