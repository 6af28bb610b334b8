package main

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/ComposableFi/ibc-core/internal/config"
)

const (
	flagHome = "home"
	flagNode = "node"
)

// NewRootCmd creates the ibc-core command. Every subcommand reads its
// configuration through the same viper instance, so a flag overrides the
// environment which overrides the config file.
func NewRootCmd() *cobra.Command {
	v := config.NewViper()

	rootCmd := &cobra.Command{
		Use:           "ibc-core",
		Short:         "IBC core node: commitment store, light clients and relayer queries",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return config.ReadInConfig(v, homeDir(v))
		},
	}

	rootCmd.PersistentFlags().String(flagHome, defaultHome(), "directory holding the config file and database")
	rootCmd.PersistentFlags().String("log-level", config.DefaultConfig().LogLevel, "log level (debug, info, error, none)")
	rootCmd.PersistentFlags().String("log-format", config.DefaultConfig().LogFormat, "log format (plain, json)")
	bindPersistentFlag(v, flagHome, rootCmd, flagHome)
	bindPersistentFlag(v, config.KeyLogLevel, rootCmd, "log-level")
	bindPersistentFlag(v, config.KeyLogFormat, rootCmd, "log-format")

	rootCmd.AddCommand(
		startCmd(v),
		queryCmd(v),
		configCmd(v),
	)

	return rootCmd
}

func defaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ibc-core"
	}
	return filepath.Join(home, ".ibc-core")
}

func homeDir(v *viper.Viper) string {
	return v.GetString(flagHome)
}

func bindPersistentFlag(v *viper.Viper, key string, cmd *cobra.Command, name string) {
	if err := v.BindPFlag(key, cmd.PersistentFlags().Lookup(name)); err != nil {
		panic(err)
	}
}

func bindFlag(v *viper.Viper, key string, cmd *cobra.Command, name string) {
	if err := v.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
		panic(err)
	}
}

// newLogger builds the process logger from the configured level and format.
func newLogger(cfg config.Config) (log.Logger, error) {
	var logger log.Logger
	if cfg.LogFormat == "json" {
		logger = log.NewTMJSONLogger(log.NewSyncWriter(os.Stdout))
	} else {
		logger = log.NewTMLogger(log.NewSyncWriter(os.Stdout))
	}

	option, err := log.AllowLevel(cfg.LogLevel)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid %s", config.KeyLogLevel)
	}
	return log.NewFilter(logger, option), nil
}
