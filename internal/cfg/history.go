package cfg

import (
	"fmt"

	"github.com/Tangesion/MediaPorter/internal/app"
	"github.com/Tangesion/MediaPorter/internal/contracts"
	"github.com/Tangesion/MediaPorter/internal/domain/keys"

	"github.com/spf13/cobra"
)

// initHistoryCmds groups the download history commands.
func initHistoryCmds(s contracts.Store) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "History commands",
		Long:  "List or clear the stored download history.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("please specify a subcommand. Use --help to see available subcommands")
		},
	}

	historyCmd.AddCommand(historyListCmd(s))
	historyCmd.AddCommand(historyClearCmd(s))

	return historyCmd
}

// historyListCmd prints stored download results, newest first.
func historyListCmd(s contracts.Store) *cobra.Command {
	var (
		limit int
		since string
	)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List download history",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.ShowHistory(s, limit, since)
		},
	}

	listCmd.Flags().IntVar(&limit, keys.Limit, 0, "Maximum entries to list (0 lists all)")
	listCmd.Flags().StringVar(&since, keys.Since, "", "Only list entries on or after this date")

	return listCmd
}

// historyClearCmd wipes the stored download history.
func historyClearCmd(s contracts.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear download history",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.ClearHistory(s)
		},
	}
}
