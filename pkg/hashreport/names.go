package hashreport

import (
	"time"

	"github.com/gosimple/slug"
)

// TimestampLayout renders local time with its numeric UTC offset, e.g.
// `2024-03-09_17-04-59_-0500`.
const TimestampLayout = "2006-01-02_15-04-05_-0700"

// Timestamp formats `t` for use in report and log file names. A run
// resolves it once and shares it between all of its artifacts.
func Timestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// ReportNames are the file names of a run's two reports.
type ReportNames struct {
	Orphans    string
	Duplicates string
}

// NewReportNames derives the report names for a run. An empty `label`
// yields `HASH-REPORT_ORPHANS__<timestamp>.tsv` and
// `HASH-REPORT_DUPLICATES__<timestamp>.tsv`; otherwise the slugified label
// is appended to each name before the extension.
func NewReportNames(timestamp, label string) ReportNames {
	suffix := timestamp
	if label != "" {
		if s := slug.Make(label); s != "" {
			suffix += "__" + s
		}
	}
	return ReportNames{
		Orphans:    "HASH-REPORT_ORPHANS__" + suffix + ".tsv",
		Duplicates: "HASH-REPORT_DUPLICATES__" + suffix + ".tsv",
	}
}

// LogFileName is the name of a run's diagnostic log.
func LogFileName(timestamp string) string { return timestamp + ".log" }
