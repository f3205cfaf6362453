// Package auth acquires platform cookies, exports them for the backend,
// and checks the resulting login state.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Tangesion/MediaPorter/internal/domain/consts"
	"github.com/Tangesion/MediaPorter/internal/utils/logging"

	"github.com/browserutils/kooky"
	// Use all browsers for Kooky:
	_ "github.com/browserutils/kooky/browser/all"
)

// ReadBrowserCookies loads valid platform cookies from the installed
// browser stores.
func ReadBrowserCookies(ctx context.Context) ([]*http.Cookie, error) {
	kookieCookies, err := kooky.ReadCookies(ctx, kooky.Valid, kooky.DomainHasSuffix(consts.PlatformRootDomain))
	if err != nil {
		return nil, fmt.Errorf("failed reading browser cookies: %w", err)
	}

	if len(kookieCookies) == 0 {
		logging.I("No cookies found for %s", consts.PlatformRootDomain)
		return nil, nil
	}

	logging.I("Found %d cookies for %s", len(kookieCookies), consts.PlatformRootDomain)
	return convertToHTTPCookies(kookieCookies), nil
}

// ExportBrowserCookies writes the browser store's platform cookies to a
// Netscape-format file the backend can consume, returning its path.
func ExportBrowserCookies(ctx context.Context, cookieFilePath string) (string, error) {
	cookies, err := ReadBrowserCookies(ctx)
	if err != nil {
		return "", err
	}
	if len(cookies) == 0 {
		return "", errors.New("no platform cookies found in any browser store")
	}
	if err := WriteNetscapeFile(cookies, cookieFilePath); err != nil {
		return "", err
	}
	return cookieFilePath, nil
}

// convertToHTTPCookies converts kooky cookies to http.Cookie format.
func convertToHTTPCookies(kookyCookies []*kooky.Cookie) []*http.Cookie {
	httpCookies := make([]*http.Cookie, len(kookyCookies))
	for i, c := range kookyCookies {
		httpCookies[i] = &http.Cookie{
			Name:    c.Name,
			Value:   c.Value,
			Path:    c.Path,
			Domain:  c.Domain,
			Secure:  c.Secure,
			Expires: c.Expires,
		}
	}
	return httpCookies
}
