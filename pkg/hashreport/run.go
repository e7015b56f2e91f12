package hashreport

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/weberc2/hashreport/pkg/log"
	"github.com/weberc2/hashreport/pkg/types"
	"go.uber.org/zap"
)

// Options configure a run.
type Options struct {
	// Inputs are the input report paths, in the order they are ingested.
	Inputs []string

	// OutputDirectory receives both reports. Defaults to the working
	// directory.
	OutputDirectory string

	// Timestamp is shared by the report names; see `Timestamp`. Defaults to
	// the current time.
	Timestamp string

	// Label, if set, is slugified into the report names.
	Label string

	// Sorted emits hashes in lexicographic order rather than first-seen
	// order.
	Sorted bool

	// Notifier reports progress. The zero value discards it.
	Notifier Notifier
}

// Run ingests every input in order and writes the orphans and duplicates
// reports. No report is created unless every input parses.
func Run(ctx context.Context, opts *Options) (summary Summary, err error) {
	if len(opts.Inputs) < 1 {
		err = &types.UsageError{Message: "no input reports given"}
		return
	}
	notifier := opts.Notifier
	if notifier.w == nil {
		notifier = NewNotifier(io.Discard)
	}

	logger := log.FromContext(ctx)
	if wd, wdErr := os.Getwd(); wdErr == nil {
		logger.Debug("current working directory", zap.String("path", wd))
	}

	paths := make([]string, len(opts.Inputs))
	for i, input := range opts.Inputs {
		if paths[i], err = filepath.Abs(input); err != nil {
			err = &types.IOError{Path: input, Err: err}
			return
		}
		logger.Info(
			"input report",
			zap.Int("index", i),
			zap.String("path", paths[i]),
		)
	}

	agg := NewAggregate()
	for i, path := range paths {
		notifier.ParsingReport(i, len(paths), path)
		logger.Info("parsing", zap.String("path", path))
		if err = IngestFile(ctx, agg, path); err != nil {
			err = fmt.Errorf("parsing input reports: %w", err)
			return
		}
		logger.Info("done parsing", zap.String("path", path))
	}

	notifier.ParsedReports(agg.Len(), agg.Rows())
	logger.Info(
		"parsed hashes",
		zap.Int("hashes", agg.Len()),
		zap.Int("rows", agg.Rows()),
	)

	directory := opts.OutputDirectory
	if directory == "" {
		directory = "."
	}
	timestamp := opts.Timestamp
	if timestamp == "" {
		timestamp = Timestamp(time.Now())
	}
	names := NewReportNames(timestamp, opts.Label)
	notifier.WritingReports(names)
	logger.Info("generating report files")
	if summary, err = WriteReports(
		ctx,
		agg,
		opts.Sorted,
		directory,
		names,
	); err != nil {
		err = fmt.Errorf("generating reports: %w", err)
		return
	}

	notifier.Summary(&summary)
	logger.Info(
		"creation of reports complete",
		zap.Int("orphans", summary.Orphans),
		zap.Int("duplicateSets", summary.DuplicateSets),
		zap.Int("duplicateRows", summary.DuplicateRows),
		zap.Int64("redundantBytes", summary.RedundantBytes),
	)
	return
}
