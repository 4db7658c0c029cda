package main

import (
	"fmt"
	"os"
	"path/filepath"

	"cosmossdk.io/log"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	flagHome        = "home"
	flagLogLevel    = "log-level"
	flagLogFormat   = "log-format"
	flagDBBackend   = "db-backend"
	flagMetricsPort = "metrics-port"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// NewRootCmd builds the vestammd command tree. Configuration is resolved in
// order: flags, VESTAMM_* environment variables, then vestamm.yaml in the
// home directory.
func NewRootCmd() *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "vestammd",
		Short: "Vesting-locked AMM accounting engine",
		Long: `vestammd runs the vesting-locked constant-product AMM accounting engine:
pools, time-locked LP stakes, fee-funded reward distribution and the
supporting token ledger.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			v.SetEnvPrefix("VESTAMM")
			v.AutomaticEnv()

			v.SetConfigName("vestamm")
			v.SetConfigType("yaml")
			v.AddConfigPath(v.GetString(flagHome))
			if err := v.ReadInConfig(); err != nil {
				if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
					return fmt.Errorf("read config: %w", err)
				}
			}
			return nil
		},
	}

	home := defaultHome()
	rootCmd.PersistentFlags().String(flagHome, home, "directory for config and data")
	rootCmd.PersistentFlags().String(flagLogLevel, "info", "log level (trace|debug|info|warn|error)")
	rootCmd.PersistentFlags().String(flagLogFormat, "plain", "log format (plain|json)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newServeCmd(v),
		newDemoCmd(v),
		newGenesisCmd(v),
	)
	return rootCmd
}

func defaultHome() string {
	userHome, err := os.UserHomeDir()
	if err != nil {
		return ".vestamm"
	}
	return filepath.Join(userHome, ".vestamm")
}

// newLogger builds the process logger from resolved config.
func newLogger(v *viper.Viper) (log.Logger, error) {
	level, err := zerolog.ParseLevel(v.GetString(flagLogLevel))
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	opts := []log.Option{log.LevelOption(level)}
	if v.GetString(flagLogFormat) == "json" {
		opts = append(opts, log.OutputJSONOption())
	}
	return log.NewLogger(os.Stderr, opts...), nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the vestammd version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Println(Version)
		},
	}
}
