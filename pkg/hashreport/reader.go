package hashreport

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/weberc2/hashreport/pkg/types"
)

// Column names of the input report header.
const (
	ColumnSize = "Size-bytes"
	ColumnHash = "Hash"
	ColumnFile = "File"
)

// Header is the input report header, in order.
var Header = [...]string{ColumnSize, ColumnHash, ColumnFile}

// RecordReader reads `types.Record`s from a comma-delimited input report.
type RecordReader struct {
	source string
	csv    *csv.Reader

	sizeIndex int
	hashIndex int
	fileIndex int
}

// NewRecordReader consumes and validates the header of the report read from
// `r`. `source` names the report in errors.
func NewRecordReader(source string, r io.Reader) (*RecordReader, error) {
	reader := RecordReader{source: source, csv: csv.NewReader(r)}
	reader.csv.FieldsPerRecord = len(Header)
	// paths are passed through verbatim
	reader.csv.TrimLeadingSpace = false

	header, err := reader.csv.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &types.MalformedInputError{
				Source: source,
				Reason: "missing header",
			}
		}
		return nil, reader.wrap(err)
	}

	indices := map[string]*int{
		ColumnSize: &reader.sizeIndex,
		ColumnHash: &reader.hashIndex,
		ColumnFile: &reader.fileIndex,
	}
	seen := make(map[string]struct{}, len(header))
	for i, name := range header {
		index, ok := indices[name]
		if !ok {
			return nil, &types.MalformedInputError{
				Source: source,
				Line:   1,
				Reason: fmt.Sprintf(
					"unexpected header column `%s`; wanted %q",
					name,
					Header,
				),
			}
		}
		if _, dup := seen[name]; dup {
			return nil, &types.MalformedInputError{
				Source: source,
				Line:   1,
				Reason: fmt.Sprintf("duplicate header column `%s`", name),
			}
		}
		seen[name] = struct{}{}
		*index = i
	}

	return &reader, nil
}

// Source returns the name the reader was created with.
func (r *RecordReader) Source() string { return r.source }

// Next returns the next record, or `io.EOF` once the report is exhausted.
// Any grammar violation is returned as a `*types.MalformedInputError`.
func (r *RecordReader) Next() (record types.Record, err error) {
	var fields []string
	if fields, err = r.csv.Read(); err != nil {
		if !errors.Is(err, io.EOF) {
			err = r.wrap(err)
		}
		return
	}

	record = types.NewRecord(
		fields[r.sizeIndex],
		fields[r.hashIndex],
		fields[r.fileIndex],
	)
	return
}

// Line returns the line on which the most recently read row starts.
func (r *RecordReader) Line() int {
	line, _ := r.csv.FieldPos(0)
	return line
}

func (r *RecordReader) wrap(err error) error {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return &types.MalformedInputError{
			Source: r.source,
			Line:   parseErr.StartLine,
			Err:    err,
		}
	}
	return &types.IOError{Path: r.source, Err: err}
}
