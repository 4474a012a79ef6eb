package app

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"

	"github.com/breezeflow/breeze/internal/color"
	"github.com/breezeflow/breeze/internal/config"
	"github.com/breezeflow/breeze/internal/session"
	"github.com/breezeflow/breeze/internal/timeutil"
	"github.com/breezeflow/breeze/internal/ui"
)

const (
	noSessionsMsg = "No sessions found for the specified time range"
	dateFormat    = "Jan 02, 2006 03:04 PM"
)

// filterRecords keeps the records that started within the filter period.
func filterRecords(records []session.Record, f *config.FilterConfig) []session.Record {
	var out []session.Record

	for i := range records {
		r := records[i]

		if !f.StartTime.IsZero() && r.StartTime.Before(f.StartTime) {
			continue
		}

		if !f.EndTime.IsZero() && r.StartTime.After(f.EndTime) {
			continue
		}

		out = append(out, r)
	}

	return out
}

// formatRemaining formats a duration as MM:SS.
func formatRemaining(d time.Duration) string {
	return timeutil.Clock(int(d / time.Second))
}

var recordsHeader = []string{"#", "START DATE", "END DATE", "DURATION", "ENDED", "STATUS"}

// printRecordsTable prints a record table to w.
func printRecordsTable(w io.Writer, records []session.Record, now time.Time) error {
	rows := make([][]string, len(records))

	for i := range records {
		r := &records[i]

		statusText := color.Success("completed")
		if !r.Completed {
			statusText = color.Failure("abandoned")
		}

		rows[i] = []string{
			fmt.Sprintf("%d", i+1),
			r.StartTime.Local().Format(dateFormat),
			r.EndTime.Local().Format(dateFormat),
			timeutil.Clock(r.Duration),
			humanize.RelTime(r.EndTime, now, "ago", "from now"),
			statusText,
		}
	}

	return ui.PrintTable(w, recordsHeader, rows)
}

// listRecords prints out a table of records.
func listRecords(w io.Writer, records []session.Record, now time.Time) error {
	if len(records) == 0 {
		pterm.Info.Println(noSessionsMsg)
		return nil
	}

	return printRecordsTable(w, records, now)
}
