package hashreport

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/weberc2/hashreport/pkg/types"
)

func TestRecordReader(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		wanted    []types.Record
		wantedErr types.WantedError
	}{
		{
			name:  "simple",
			input: "Size-bytes,Hash,File\n100,AAA,/x/1.txt\n200,BBB,/x/2.txt\n",
			wanted: []types.Record{
				{Size: "100", Hash: "aaa", Path: "/x/1.txt"},
				{Size: "200", Hash: "bbb", Path: "/x/2.txt"},
			},
		},
		{
			name:   "header-only",
			input:  "Size-bytes,Hash,File\n",
			wanted: nil,
		},
		{
			name:  "normalizes-hash-and-size-but-not-path",
			input: "Size-bytes,Hash,File\n 100 , ABC123 , /x/ spaced .txt \n",
			wanted: []types.Record{
				{Size: "100", Hash: "abc123", Path: " /x/ spaced .txt "},
			},
		},
		{
			name: "quoted-fields",
			input: "Size-bytes,Hash,File\n" +
				"7,abc,\"/x/with,comma.txt\"\n" +
				"8,def,\"/x/with\nnewline.txt\"\n" +
				"9,fed,\"/x/with \"\"quotes\"\".txt\"\n",
			wanted: []types.Record{
				{Size: "7", Hash: "abc", Path: "/x/with,comma.txt"},
				{Size: "8", Hash: "def", Path: "/x/with\nnewline.txt"},
				{Size: "9", Hash: "fed", Path: "/x/with \"quotes\".txt"},
			},
		},
		{
			name:  "crlf-line-endings",
			input: "Size-bytes,Hash,File\r\n1,a,/a\r\n",
			wanted: []types.Record{
				{Size: "1", Hash: "a", Path: "/a"},
			},
		},
		{
			name:  "header-matched-by-name",
			input: "File,Hash,Size-bytes\n/a,A,1\n",
			wanted: []types.Record{
				{Size: "1", Hash: "a", Path: "/a"},
			},
		},
		{
			name:      "wrong-header-name",
			input:     "Size,Hash,File\n100,AAA,/x/1.txt\n",
			wantedErr: &types.MalformedInputError{Source: "test.csv", Line: 1},
		},
		{
			name:      "header-names-are-case-sensitive",
			input:     "size-bytes,hash,file\n100,AAA,/x/1.txt\n",
			wantedErr: &types.MalformedInputError{Source: "test.csv", Line: 1},
		},
		{
			name:      "duplicate-header-column",
			input:     "Hash,Hash,File\n100,AAA,/x/1.txt\n",
			wantedErr: &types.MalformedInputError{Source: "test.csv", Line: 1},
		},
		{
			name:      "short-header",
			input:     "Size-bytes,Hash\n100,AAA\n",
			wantedErr: &types.MalformedInputError{Source: "test.csv", Line: 1},
		},
		{
			name:      "empty",
			input:     "",
			wantedErr: &types.MalformedInputError{Source: "test.csv"},
		},
		{
			name:      "wrong-column-count",
			input:     "Size-bytes,Hash,File\n1,a,/a\n2,b\n",
			wanted:    []types.Record{{Size: "1", Hash: "a", Path: "/a"}},
			wantedErr: &types.MalformedInputError{Source: "test.csv", Line: 3},
		},
		{
			name:      "unbalanced-quotes",
			input:     "Size-bytes,Hash,File\n1,a,\"/a\n",
			wantedErr: &types.MalformedInputError{Source: "test.csv", Line: 2},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			found, err := readAll("test.csv", tc.input)
			if err := types.CompareErr(tc.wantedErr, err); err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tc.wanted, found); diff != "" {
				t.Fatalf("unexpected records (-wanted +found):\n%s", diff)
			}
		})
	}
}

func TestRecordReaderErrorNamesSource(t *testing.T) {
	_, err := readAll("/reports/a.csv", "Size,Hash,File\n")
	if err == nil {
		t.Fatal("wanted error; found `nil`")
	}
	if !strings.Contains(err.Error(), "/reports/a.csv") {
		t.Fatalf("wanted error mentioning source; found `%v`", err)
	}
}

func readAll(source, input string) (records []types.Record, err error) {
	reader, err := NewRecordReader(source, strings.NewReader(input))
	if err != nil {
		return nil, err
	}
	if reader.Source() != source {
		return nil, fmt.Errorf(
			"wanted source `%s`; found `%s`",
			source,
			reader.Source(),
		)
	}
	for {
		record, err := reader.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return records, nil
			}
			return records, err
		}
		records = append(records, record)
	}
}
