package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/Tangesion/MediaPorter/internal/auth"
	"github.com/Tangesion/MediaPorter/internal/contracts"
	"github.com/Tangesion/MediaPorter/internal/domain/consts"
	"github.com/Tangesion/MediaPorter/internal/domain/paths"
	"github.com/Tangesion/MediaPorter/internal/models"
	"github.com/Tangesion/MediaPorter/internal/utils/logging"
)

// QRLoginClient drives the QR login challenge protocol. This build ships
// without one, so 'login qr' reports the feature as unavailable; builds that
// bundle a protocol client set this before command execution.
var QRLoginClient contracts.QRClient

// CheckLoginStatus verifies the configured cookies against the account
// endpoint and prints the account report.
func CheckLoginStatus(ctx context.Context, settings models.Settings) error {
	report, err := auth.CheckLogin(ctx, settings.CookieSource, settings.CookieFile)
	if err != nil {
		return fmt.Errorf("login check failed: %w", err)
	}

	logging.P("%s\n", report.String())
	if !report.IsLogin {
		logging.W("Not logged in. Membership-gated qualities will be unavailable.")
		return nil
	}

	logging.S("Logged in as %s", report.Uname)
	if !report.ActiveVIP() {
		logging.I("No active membership on this account.")
	}
	return nil
}

// QRLogin runs the interactive QR login flow, then makes the produced cookie
// file the stored cookie source.
func QRLogin(ctx context.Context, s contracts.Store) error {
	if QRLoginClient == nil {
		logging.E("QR login is not bundled with this build. Use 'login check' with a cookie file or browser cookies instead.")
		return errors.New("no QR login client available")
	}

	hooks := auth.QRHooks{
		OnChallenge: func(c models.QRChallenge) {
			logging.I("Scan this link with the mobile app to log in:\n%s", c.DisplayPayload)
		},
		OnStatus: func(res models.QRPollResult) {
			switch res.Status {
			case models.QRWaitingScan:
				logging.D(1, "Waiting for scan...")
			case models.QRWaitingConfirm:
				logging.I("Scanned. Confirm the login on your device.")
			}
		},
	}

	cookiePath, report, err := auth.RunQRLogin(ctx, QRLoginClient, hooks)
	if err != nil {
		return err
	}

	logging.S("Login successful. Cookies saved to %s", cookiePath)
	if report != "" {
		logging.P("%s\n", report)
	}
	return switchCookieSource(s, cookiePath)
}

// ExportCookies dumps the browser store's platform cookies to the app's
// cookie file and makes that file the stored cookie source.
func ExportCookies(ctx context.Context, s contracts.Store) error {
	path, err := auth.ExportBrowserCookies(ctx, paths.CookieFilePath)
	if err != nil {
		return fmt.Errorf("cookie export failed: %w", err)
	}

	logging.S("Browser cookies exported to %s", path)
	return switchCookieSource(s, path)
}

// switchCookieSource points the persisted settings at a cookie file so
// later runs pick it up without flags.
func switchCookieSource(s contracts.Store, cookiePath string) error {
	settings, found, err := s.SettingsStore().Load()
	if err != nil {
		return fmt.Errorf("failed to load stored settings: %w", err)
	}
	if !found {
		settings = models.DefaultSettings()
	}

	settings.CookieSource = consts.CookieSourceFile
	settings.CookieFile = cookiePath
	if err := s.SettingsStore().Save(settings); err != nil {
		return fmt.Errorf("failed to persist cookie source: %w", err)
	}

	logging.I("Cookie source set to file: %s", cookiePath)
	return nil
}
