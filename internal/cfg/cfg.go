// Package cfg provides configuration and command-line interface setup for MediaPorter.
package cfg

import (
	"context"
	"fmt"
	"strings"

	"github.com/Tangesion/MediaPorter/internal/contracts"
	"github.com/Tangesion/MediaPorter/internal/domain/keys"
	"github.com/Tangesion/MediaPorter/internal/utils/logging"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// fileCfg holds values read from an optional config file. They sit between
// stored settings and explicit flags in precedence.
var fileCfg = viper.New()

var rootCmd = &cobra.Command{
	Use:   "mediaporter",
	Short: "MediaPorter is a Bilibili audio and video downloading tool.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if lvl := viper.GetInt(keys.DebugLevel); lvl > 0 {
			if lvl > 5 {
				lvl = 5
			}
			logging.Level = lvl
		}

		if viper.IsSet(keys.TomlPath) {
			cfgFile := viper.GetString(keys.TomlPath)
			if cfgFile != "" {
				if err := loadConfigFile(fileCfg, cfgFile); err != nil {
					return fmt.Errorf("failed loading config file: %w", err)
				}
			}
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// InitCommands initializes all commands and their flags.
func InitCommands(ctx context.Context, s contracts.Store, backend contracts.Backend) error {
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer("_", "-")) // Convert "download_dir" to "download-dir"

	if err := initProgramFlags(rootCmd); err != nil {
		return err
	}

	rootCmd.AddCommand(initRunCmd(ctx, s, backend))
	rootCmd.AddCommand(initDiagnoseCmds(ctx, s, backend))
	rootCmd.AddCommand(initLoginCmds(ctx, s))
	rootCmd.AddCommand(initHistoryCmds(s))
	rootCmd.AddCommand(initServeCmd(ctx, s, backend))

	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

// initProgramFlags sets flags available on every command.
func initProgramFlags(rootCmd *cobra.Command) error {
	rootCmd.PersistentFlags().Int(keys.DebugLevel, 0, "Debug level (0-5)")
	if err := viper.BindPFlag(keys.DebugLevel, rootCmd.PersistentFlags().Lookup(keys.DebugLevel)); err != nil {
		return err
	}

	rootCmd.PersistentFlags().String(keys.TomlPath, "", "Config file holding run option defaults")
	if err := viper.BindPFlag(keys.TomlPath, rootCmd.PersistentFlags().Lookup(keys.TomlPath)); err != nil {
		return err
	}

	return nil
}
