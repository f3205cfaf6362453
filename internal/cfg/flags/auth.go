package cfgflags

import (
	"github.com/Tangesion/MediaPorter/internal/domain/keys"

	"github.com/spf13/cobra"
)

// SetAuthFlags sets flags related to cookies and login.
func SetAuthFlags(cmd *cobra.Command, cookieSource, browserName, cookieFile *string) {
	if cookieSource != nil {
		cmd.Flags().StringVar(cookieSource, keys.CookieSource, "", "Cookie source for gated downloads ('none', 'browser' or 'file')")
	}

	if browserName != nil {
		cmd.Flags().StringVar(browserName, keys.BrowserName, "", "Browser to read cookies from (e.g. firefox)")
	}

	if cookieFile != nil {
		cmd.Flags().StringVar(cookieFile, keys.CookiePath, "", "Path to a Netscape-format cookie file")
	}
}
