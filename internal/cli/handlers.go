package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/BartekS5/odevalidator/internal/config"
	"github.com/BartekS5/odevalidator/internal/etl"
	"github.com/BartekS5/odevalidator/internal/validator"
	"github.com/BartekS5/odevalidator/pkg/database"
	"github.com/BartekS5/odevalidator/pkg/logger"
	"github.com/BartekS5/odevalidator/pkg/metrics"
)

// ErrInvalidRecords is returned with --fail-on-invalid when any record failed.
var ErrInvalidRecords = errors.New("one or more records failed validation")

type source string

const (
	sourceFile  source = "file"
	sourceMongo source = "mongo"
	sourceSQL   source = "sql"
	sourceRedis source = "redis"
)

func runValidation(cmd *cobra.Command, cfg *config.Config, opts *ValidateOptions, src source, arg string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// 1. Rules
	var tcOpts []validator.TestCaseOption
	if opts.LenientPaths {
		tcOpts = append(tcOpts, validator.WithLenientTraversal())
	}
	tc, err := validator.LoadTestCase(opts.RulesFile, tcOpts...)
	if err != nil {
		return err
	}
	logger.Info("loaded rules", "file", opts.RulesFile, "fields", len(tc.Fields()))

	recordIDPath := cfg.RecordIDPath
	if opts.RecordIDPath != "" {
		recordIDPath = opts.RecordIDPath
	}
	batchSize := cfg.BatchSize
	if opts.BatchSize > 0 {
		batchSize = opts.BatchSize
	}

	// 2. Source
	queue, closeSource, err := openSource(ctx, cfg, src, arg, batchSize)
	if err != nil {
		return err
	}
	defer closeSource()
	logger.Debug("opened record source", "source", string(src), "batch_size", batchSize)

	// 3. Report destination
	var out io.Writer = cmd.OutOrStdout()
	var tmp *os.File
	if opts.Output != "" {
		// The report goes to a temp file next to the destination and only
		// replaces it once the run succeeded.
		tmp, err = os.CreateTemp(filepath.Dir(opts.Output), ".odevalidator-report-*")
		if err != nil {
			return fmt.Errorf("failed to create report file: %w", err)
		}
		defer func() {
			tmp.Close()
			os.Remove(tmp.Name())
		}()
		out = tmp
	}
	writer, err := etl.NewReportWriter(out, opts.Format)
	if err != nil {
		return err
	}

	m := metrics.New()
	bv := validator.NewBatchValidator(tc, validator.WithRecordIDPath(recordIDPath))
	report, err := etl.NewPipeline(queue, bv, writer, m).Run(ctx)
	if err == nil && tmp != nil {
		err = commitReport(tmp, opts.Output)
	}

	if opts.MetricsFile != "" {
		if mErr := m.WriteTextfile(opts.MetricsFile); mErr != nil {
			logger.Warn("could not write metrics file", "file", opts.MetricsFile, "error", mErr)
		}
	}
	if err != nil {
		return err
	}

	if opts.FailOnInvalid && report.Summary().InvalidRecords > 0 {
		return ErrInvalidRecords
	}
	return nil
}

func commitReport(tmp *os.File, dest string) error {
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return fmt.Errorf("failed to move report to '%s': %w", dest, err)
	}
	return nil
}

func openSource(ctx context.Context, cfg *config.Config, src source, arg string, batchSize int) (validator.Queue, func(), error) {
	switch src {
	case sourceFile:
		q, err := etl.OpenFileQueue(arg)
		if err != nil {
			return nil, nil, err
		}
		return q, func() {
			if err := q.Close(); err != nil {
				logger.Error("failed to close record file", "file", arg, "error", err)
			}
		}, nil

	case sourceMongo:
		if err := cfg.RequireMongo(); err != nil {
			return nil, nil, err
		}
		client, err := database.ConnectMongo(ctx, cfg.MongoConnString)
		if err != nil {
			return nil, nil, err
		}
		ext := &etl.MongoExtractor{
			Client:     client,
			Database:   cfg.MongoDatabase,
			Collection: cfg.MongoCollection,
			SortField:  cfg.MongoSortField,
		}
		return etl.NewExtractorQueue(ext, batchSize), func() { client.Disconnect(context.Background()) }, nil

	case sourceSQL:
		if err := cfg.RequireSQL(); err != nil {
			return nil, nil, err
		}
		db, err := database.ConnectSQL(ctx, cfg.SQLDriver, cfg.SQLConnString)
		if err != nil {
			return nil, nil, err
		}
		ext := &etl.SQLExtractor{
			DB:            db,
			Driver:        cfg.SQLDriver,
			Table:         cfg.SQLTable,
			IDColumn:      cfg.SQLIDColumn,
			PayloadColumn: cfg.SQLPayloadColumn,
		}
		return etl.NewExtractorQueue(ext, batchSize), func() { db.Close() }, nil

	case sourceRedis:
		if err := cfg.RequireRedis(); err != nil {
			return nil, nil, err
		}
		client, err := database.ConnectRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return etl.NewRedisQueue(client, cfg.RedisKey), func() { client.Close() }, nil
	}

	return nil, nil, fmt.Errorf("unknown source %q", src)
}
