package hashreport

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/weberc2/hashreport/pkg/log"
	"github.com/weberc2/hashreport/pkg/types"
	"go.uber.org/zap"
)

// Ingest folds every record from `reader` into `agg`. It stops at the first
// malformed row; records read before it remain in `agg`, but callers treat
// any error as fatal to the run.
func Ingest(
	ctx context.Context,
	agg *Aggregate,
	reader *RecordReader,
) error {
	logger := log.FromContext(ctx)
	for {
		record, err := reader.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		if agg.Add(&record) {
			logger.Debug("added first record for hash", zap.String("hash", record.Hash))
		}
		if ce := logger.Check(zap.DebugLevel, "parsed record"); ce != nil {
			ce.Write(
				zap.String("source", reader.Source()),
				zap.Int("line", reader.Line()),
				zap.String("size", record.Size),
				zap.String("hash", record.Hash),
				zap.String("path", record.Path),
			)
		}
	}
}

// IngestFile opens the report at `path`, ingests it into `agg`, and closes
// it, even if parsing fails. Open and read failures are returned as
// `*types.IOError`; grammar violations as `*types.MalformedInputError`.
func IngestFile(ctx context.Context, agg *Aggregate, path string) (err error) {
	var file *os.File
	if file, err = os.Open(path); err != nil {
		return &types.IOError{Path: path, Err: err}
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			err = errors.Join(err, &types.IOError{Path: path, Err: closeErr})
		}
	}()

	var reader *RecordReader
	if reader, err = NewRecordReader(path, file); err != nil {
		return
	}
	err = Ingest(ctx, agg, reader)
	return
}
