package cfg

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Tangesion/MediaPorter/internal/app"
	cfgflags "github.com/Tangesion/MediaPorter/internal/cfg/flags"
	"github.com/Tangesion/MediaPorter/internal/contracts"
	"github.com/Tangesion/MediaPorter/internal/domain/keys"

	"github.com/spf13/cobra"
)

// initDiagnoseCmds groups the pre-flight inspection commands.
func initDiagnoseCmds(ctx context.Context, s contracts.Store, backend contracts.Backend) *cobra.Command {
	diagCmd := &cobra.Command{
		Use:   "diagnose",
		Short: "Diagnose commands",
		Long:  "Inspect links and format catalogues without downloading anything.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("please specify a subcommand. Use --help to see available subcommands")
		},
	}

	diagCmd.AddCommand(diagnoseLinksCmd())
	diagCmd.AddCommand(diagnoseFormatsCmd(ctx, s, backend))

	return diagCmd
}

// diagnoseLinksCmd explains how pasted link text parses.
func diagnoseLinksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "links [text...]",
		Short: "Explain how pasted link text parses",
		Long:  "Links reports which lines are supported, which were rejected and why, and what each supported page titles itself as.",
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, "\n")
			if text == "" {
				raw, err := io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("failed to read stdin: %w", err)
				}
				text = string(raw)
			}
			return app.DiagnoseLinks(text)
		},
	}
}

// diagnoseFormatsCmd probes one URL's format catalogue.
func diagnoseFormatsCmd(ctx context.Context, s contracts.Store, backend contracts.Backend) *cobra.Command {
	var (
		cookieSource, browserName, cookieFile string
		limit                                 int
	)

	formatsCmd := &cobra.Command{
		Use:   "formats <url>",
		Short: "List the formats a link offers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadRunSettings(s)
			if err != nil {
				return err
			}
			if err := applyAuthFlags(cmd, &settings, cookieSource, browserName, cookieFile); err != nil {
				return err
			}
			return app.DiagnoseFormats(ctx, backend, args[0], settings, limit)
		},
	}

	cfgflags.SetAuthFlags(formatsCmd, &cookieSource, &browserName, &cookieFile)
	formatsCmd.Flags().IntVar(&limit, keys.Limit, 0, "Maximum number of formats to print (0 prints all)")

	return formatsCmd
}
