// Package config loads CLI configuration: a YAML config file, environment
// overrides and defaults.
package config

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// Init loads the configuration file and environment overrides. Called
// once from the root command before any subcommand runs.
func Init() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		configDir := filepath.Join(home, ".config", "autostruct")
		viper.AddConfigPath(configDir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("AUTOSTRUCT")

	viper.SetDefault("base_dir", ".")
	viper.SetDefault("format", "ascii")
	viper.SetDefault("dry_run", false)

	// A missing config file is fine; defaults and env cover it.
	_ = viper.ReadInConfig()
}

// AddGlobalFlags registers flags shared by every subcommand.
func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/autostruct/config.yaml)")
}

// NewLogger builds the shared CLI logger. Quiet unless there are issues;
// verbose raises it to debug.
func NewLogger(verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.WarnLevel)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

func BaseDir() string { return viper.GetString("base_dir") }

func DefaultFormat() string { return viper.GetString("format") }

func DefaultDryRun() bool { return viper.GetBool("dry_run") }
