package cfg

import (
	"context"
	"fmt"

	"github.com/Tangesion/MediaPorter/internal/app"
	cfgflags "github.com/Tangesion/MediaPorter/internal/cfg/flags"
	"github.com/Tangesion/MediaPorter/internal/contracts"

	"github.com/spf13/cobra"
)

// initLoginCmds groups the cookie and login commands.
func initLoginCmds(ctx context.Context, s contracts.Store) *cobra.Command {
	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Login commands",
		Long:  "Check, export, or create login cookies for membership-gated downloads.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("please specify a subcommand. Use --help to see available subcommands")
		},
	}

	loginCmd.AddCommand(loginCheckCmd(ctx, s))
	loginCmd.AddCommand(loginQRCmd(ctx, s))
	loginCmd.AddCommand(loginExportCmd(ctx, s))

	return loginCmd
}

// loginCheckCmd verifies the configured cookies against the account endpoint.
func loginCheckCmd(ctx context.Context, s contracts.Store) *cobra.Command {
	var cookieSource, browserName, cookieFile string

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Check the current login state",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadRunSettings(s)
			if err != nil {
				return err
			}
			if err := applyAuthFlags(cmd, &settings, cookieSource, browserName, cookieFile); err != nil {
				return err
			}
			return app.CheckLoginStatus(ctx, settings)
		},
	}

	cfgflags.SetAuthFlags(checkCmd, &cookieSource, &browserName, &cookieFile)

	return checkCmd
}

// loginQRCmd runs the interactive QR login flow.
func loginQRCmd(ctx context.Context, s contracts.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "qr",
		Short: "Log in by scanning a QR challenge",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.QRLogin(ctx, s)
		},
	}
}

// loginExportCmd dumps browser cookies to the app's cookie file.
func loginExportCmd(ctx context.Context, s contracts.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Export browser cookies to a cookie file",
		Long:  "Export reads the platform cookies from your installed browsers and writes them to the app's Netscape-format cookie file.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.ExportCookies(ctx, s)
		},
	}
}
