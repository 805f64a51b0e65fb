package cli

import (
	"github.com/spf13/cobra"

	"github.com/BartekS5/odevalidator/internal/etl"
)

type ValidateOptions struct {
	RulesFile     string
	Format        string
	Output        string
	MetricsFile   string
	RecordIDPath  string
	BatchSize     int
	LenientPaths  bool
	FailOnInvalid bool
}

func NewValidateCmd(root *rootOptions) *cobra.Command {
	opts := &ValidateOptions{}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate records from a source against a rule file",
	}

	cmd.PersistentFlags().StringVarP(&opts.RulesFile, "config", "c", "", "Path to the INI rule file")
	cmd.PersistentFlags().StringVarP(&opts.Format, "format", "f", etl.FormatJSON, "Report format: json, yaml")
	cmd.PersistentFlags().StringVarP(&opts.Output, "output", "o", "", "Write the report to this file instead of stdout")
	cmd.PersistentFlags().StringVar(&opts.MetricsFile, "metrics-file", "", "Write Prometheus metrics to this textfile after the run")
	cmd.PersistentFlags().StringVar(&opts.RecordIDPath, "record-id-path", "", "Dotted path of the record identifier (default from RECORD_ID_PATH)")
	cmd.PersistentFlags().IntVarP(&opts.BatchSize, "batch-size", "b", 0, "Page size for database sources (default from BATCH_SIZE)")
	cmd.PersistentFlags().BoolVar(&opts.LenientPaths, "lenient-paths", false, "Report untraversable paths as missing fields instead of failing")
	cmd.PersistentFlags().BoolVar(&opts.FailOnInvalid, "fail-on-invalid", false, "Exit with status 2 when any record fails validation")
	cmd.MarkPersistentFlagRequired("config")

	fileCmd := &cobra.Command{
		Use:   "file <path>",
		Short: "Validate newline-delimited JSON records from a file ('-' for stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runValidation(c, root.cfg, opts, sourceFile, args[0])
		},
	}

	mongoCmd := &cobra.Command{
		Use:   "mongo",
		Short: "Validate documents of a MongoDB collection",
		RunE: func(c *cobra.Command, args []string) error {
			return runValidation(c, root.cfg, opts, sourceMongo, "")
		},
	}

	sqlCmd := &cobra.Command{
		Use:   "sql",
		Short: "Validate JSON payloads stored in a SQL table",
		RunE: func(c *cobra.Command, args []string) error {
			return runValidation(c, root.cfg, opts, sourceSQL, "")
		},
	}

	redisCmd := &cobra.Command{
		Use:   "redis",
		Short: "Drain and validate records from a Redis list",
		RunE: func(c *cobra.Command, args []string) error {
			return runValidation(c, root.cfg, opts, sourceRedis, "")
		},
	}

	cmd.AddCommand(fileCmd, mongoCmd, sqlCmd, redisCmd)
	return cmd
}
