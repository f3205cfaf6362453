package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Tangesion/MediaPorter/internal/contracts"
	"github.com/Tangesion/MediaPorter/internal/formats"
	"github.com/Tangesion/MediaPorter/internal/models"
	"github.com/Tangesion/MediaPorter/internal/parsing"
	"github.com/Tangesion/MediaPorter/internal/scraper"
	"github.com/Tangesion/MediaPorter/internal/utils/logging"
)

// DiagnoseLinks explains what pasted text parses into: which links are
// supported, which were rejected and why, and what each supported page
// titles itself as. Short links are resolved to their canonical URL first.
func DiagnoseLinks(text string) error {
	if strings.TrimSpace(text) == "" {
		return errors.New("no text provided")
	}

	valid, diagnostics := parsing.DiagnoseURLs(text)
	for _, d := range diagnostics {
		logging.W("%s", d)
	}
	if len(valid) == 0 {
		logging.I("No supported links found.")
		return nil
	}

	sc := scraper.New()
	for _, u := range valid {
		target := u
		if scraper.IsShortLink(u) {
			resolved, err := sc.ResolveShortLink(u)
			if err != nil {
				logging.W("Could not resolve short link %s: %v", u, err)
				continue
			}
			logging.I("Short link %s resolves to %s", u, resolved)
			target = resolved
		}

		title, err := sc.PageTitle(target)
		switch {
		case err != nil:
			logging.W("Could not reach %s: %v", target, err)
		case title == "":
			logging.S("OK: %s", target)
		default:
			logging.S("OK: %s (%s)", target, title)
		}
	}
	return nil
}

// DiagnoseFormats probes one URL's format catalogue and prints a summary.
// A limit of zero prints every format.
func DiagnoseFormats(ctx context.Context, backend contracts.Backend, rawURL string, settings models.Settings, limit int) error {
	catalogue, err := backend.Probe(ctx, rawURL, models.ExtractOptions{
		CookieSource: settings.CookieSource,
		BrowserName:  settings.BrowserName,
		CookieFile:   settings.CookieFile,
	})
	if err != nil {
		return fmt.Errorf("failed to probe formats for %q: %w", rawURL, err)
	}

	logging.I("Formats for %s:", rawURL)
	logging.P("%s\n", formats.SummarizeFormats(catalogue, limit))
	return nil
}
