package hashreport

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/weberc2/hashreport/pkg/log"
	"github.com/weberc2/hashreport/pkg/types"
	"go.uber.org/zap"
)

// ReportHeader is the first line of both output reports.
const ReportHeader = "HASH\tPATH\tBYTES\n"

// Summary counts what a partition wrote.
type Summary struct {
	// Rows is the number of input rows across all sources.
	Rows int

	// Hashes is the number of distinct hashes.
	Hashes int

	// Orphans is the number of hashes seen exactly once, which is also the
	// number of rows in the orphans report.
	Orphans int

	// DuplicateSets is the number of hashes seen more than once.
	DuplicateSets int

	// DuplicateRows is the number of rows in the duplicates report.
	DuplicateRows int

	// RedundantBytes sums `size * (n-1)` over the duplicate sets whose size
	// parses as an integer.
	RedundantBytes int64
}

// ReportWriter writes tab-separated report rows. It always terminates rows
// with a single line feed.
type ReportWriter struct {
	name string
	w    *bufio.Writer
	rows int
}

// NewReportWriter writes the report header to `w`. `name` identifies the
// report in errors.
func NewReportWriter(name string, w io.Writer) (*ReportWriter, error) {
	rw := ReportWriter{name: name, w: bufio.NewWriter(w)}
	if _, err := rw.w.WriteString(ReportHeader); err != nil {
		return nil, &types.OutputWriteError{Path: name, Err: err}
	}
	return &rw, nil
}

// WriteGroup writes one row per occurrence in `group`.
func (rw *ReportWriter) WriteGroup(group *Group) error {
	for _, o := range group.Occurrences {
		if _, err := fmt.Fprintf(
			rw.w,
			"%s\t%s\t%s\n",
			group.Hash,
			o.Path,
			o.Size,
		); err != nil {
			return &types.OutputWriteError{Path: rw.name, Err: err}
		}
		rw.rows++
	}
	return nil
}

// Rows returns the number of rows written, excluding the header.
func (rw *ReportWriter) Rows() int { return rw.rows }

// Flush writes any buffered rows to the underlying writer.
func (rw *ReportWriter) Flush() error {
	if err := rw.w.Flush(); err != nil {
		return &types.OutputWriteError{Path: rw.name, Err: err}
	}
	return nil
}

// Partition writes every group of `agg` to exactly one of the two reports:
// groups with a single occurrence go to `orphans`, the rest to
// `duplicates`. A group is never split between the reports.
func Partition(
	ctx context.Context,
	agg *Aggregate,
	sorted bool,
	orphans *ReportWriter,
	duplicates *ReportWriter,
) (summary Summary, err error) {
	logger := log.FromContext(ctx)
	summary.Rows = agg.Rows()
	summary.Hashes = agg.Len()

	err = agg.Each(sorted, func(group *Group) error {
		if group.IsOrphan() {
			logger.Debug(
				"recording orphan",
				zap.String("hash", group.Hash),
				zap.String("path", group.Occurrences[0].Path),
			)
			summary.Orphans++
			return orphans.WriteGroup(group)
		}

		summary.DuplicateSets++
		summary.DuplicateRows += len(group.Occurrences)
		if size, err := strconv.ParseInt(
			group.Occurrences[0].Size,
			10,
			64,
		); err == nil {
			summary.RedundantBytes += size * int64(len(group.Occurrences)-1)
		}
		return duplicates.WriteGroup(group)
	})
	if err != nil {
		return
	}

	err = errors.Join(orphans.Flush(), duplicates.Flush())
	return
}

// WriteReports creates both reports in `directory` and partitions `agg` into
// them. The files must not already exist. If one report cannot be created
// or written, whatever was written to the other is left in place.
func WriteReports(
	ctx context.Context,
	agg *Aggregate,
	sorted bool,
	directory string,
	names ReportNames,
) (summary Summary, err error) {
	orphansPath := filepath.Join(directory, names.Orphans)
	duplicatesPath := filepath.Join(directory, names.Duplicates)

	var orphansFile, duplicatesFile *os.File
	if orphansFile, err = createReport(orphansPath); err != nil {
		return
	}
	defer closeReport(orphansFile, &err)

	if duplicatesFile, err = createReport(duplicatesPath); err != nil {
		return
	}
	defer closeReport(duplicatesFile, &err)

	logger := log.FromContext(ctx)
	logger.Info("writing orphans report", zap.String("path", orphansPath))
	logger.Info("writing duplicates report", zap.String("path", duplicatesPath))

	var orphans, duplicates *ReportWriter
	if orphans, err = NewReportWriter(orphansPath, orphansFile); err != nil {
		return
	}
	if duplicates, err = NewReportWriter(
		duplicatesPath,
		duplicatesFile,
	); err != nil {
		return
	}

	summary, err = Partition(ctx, agg, sorted, orphans, duplicates)
	return
}

func createReport(path string) (*os.File, error) {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return nil, &types.OutputWriteError{Path: path, Err: err}
	}
	return file, nil
}

func closeReport(file *os.File, err *error) {
	if closeErr := file.Close(); closeErr != nil {
		*err = errors.Join(
			*err,
			&types.OutputWriteError{Path: file.Name(), Err: closeErr},
		)
	}
}
