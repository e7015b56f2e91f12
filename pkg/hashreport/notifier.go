package hashreport

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
)

// Notifier prints progress for a human watching the console. Diagnostic
// detail goes to the logger instead.
type Notifier struct {
	w   io.Writer
	now func() time.Time
}

func NewNotifier(w io.Writer) (n Notifier) {
	n.w = w
	n.now = time.Now
	return
}

func (n Notifier) LoggingTo(path string) {
	fmt.Fprintf(n.w, "%s logging to %s\n", n.nowStr(), path)
}

func (n Notifier) ParsingReport(index, total int, path string) {
	fmt.Fprintf(
		n.w,
		"%s parsing report %d/%d: %s\n",
		n.nowStr(),
		index+1,
		total,
		path,
	)
}

func (n Notifier) ParsedReports(hashes, rows int) {
	fmt.Fprintf(
		n.w,
		"%s collected %d rows with %d distinct hashes\n",
		n.nowStr(),
		rows,
		hashes,
	)
}

var bold = color.New(color.Bold)

func (n Notifier) WritingReports(names ReportNames) {
	bold.Fprintf(
		n.w,
		"%s writing reports %s and %s\n",
		n.nowStr(),
		names.Orphans,
		names.Duplicates,
	)
}

var green = color.New(color.FgGreen)

func (n Notifier) Summary(s *Summary) {
	green.Fprintf(n.w, "%s  %s\n", n.nowStr(), s)
}

func (s *Summary) String() string {
	return fmt.Sprintf(
		"%d orphans, %d duplicate sets (%d rows, %s redundant)",
		s.Orphans,
		s.DuplicateSets,
		s.DuplicateRows,
		formatBytes(s.RedundantBytes),
	)
}

var byteUnits = [...]string{"B", "KB", "MB", "GB", "TB", "PB", "EB"}

// formatBytes scales `n` by powers of 1000 and rounds to a whole unit.
func formatBytes(n int64) string {
	if n > -1000 && n < 1000 {
		return fmt.Sprintf("%dB", n)
	}
	scaled, unit := float64(n), 0
	for (scaled >= 1000 || scaled <= -1000) && unit < len(byteUnits)-1 {
		scaled /= 1000
		unit++
	}
	return fmt.Sprintf("%.0f%s", scaled, byteUnits[unit])
}

func (n Notifier) nowStr() string {
	now := n.now
	if now == nil {
		now = time.Now
	}
	return now().Format("2006-01-02 15:04:05")
}
