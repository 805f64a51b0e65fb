// Package cli handles the command-line interface logic
// using the Cobra library.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/BartekS5/odevalidator/internal/config"
	"github.com/BartekS5/odevalidator/pkg/logger"
)

type rootOptions struct {
	LogLevel  string
	LogFormat string
	LogFile   string

	cfg *config.Config
}

func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "odevalidator",
		Short: "Validate JSON records against field rules",
		Long: `odevalidator checks JSON records pulled from a file, MongoDB, a SQL table or
a Redis list against the field rules of an INI configuration file and prints a
pass/fail report per record.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "Log level: debug, info, warn, error (default from LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVar(&opts.LogFormat, "log-format", "", "Log format: text, json (default from LOG_FORMAT)")
	rootCmd.PersistentFlags().StringVar(&opts.LogFile, "log-file", "", "Also append logs to this file (default from LOG_FILE)")

	rootCmd.AddCommand(NewValidateCmd(opts), NewCheckCmd())

	return rootCmd
}

// setup loads the environment settings, lets flags override them and
// initializes the logger.
func (o *rootOptions) setup(cmd *cobra.Command) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = o.LogLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = o.LogFormat
	}
	if flags.Changed("log-file") {
		cfg.LogFile = o.LogFile
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	if err := logger.InitLogger(cfg.LogFile, level, cfg.LogFormat); err != nil {
		return err
	}

	o.cfg = cfg
	return nil
}
