package stats

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"

	"github.com/breezeflow/breeze/internal/color"
	"github.com/breezeflow/breeze/internal/timeutil"
)

const (
	barChartChar  = "▇"
	noSessionsMsg = "No sessions found for the specified time range"
)

// FormatMinutes expresses a minutes value as hours and minutes.
func FormatMinutes(val int) string {
	hrs, mins := timeutil.MinsToHoursAndMins(val)
	if hrs == 0 {
		return fmt.Sprintf("%dm", mins)
	}

	return fmt.Sprintf("%sh %dm", humanize.Comma(int64(hrs)), mins)
}

func getBarChart(title string, buckets []Bucket) string {
	if len(buckets) == 0 {
		return ""
	}

	bars := make(pterm.Bars, 0, len(buckets))

	for _, b := range buckets {
		bars = append(bars, pterm.Bar{
			Label: b.Label,
			Value: b.Minutes,
		})
	}

	chart, err := pterm.DefaultBarChart.WithHorizontalBarCharacter(barChartChar).
		WithHorizontal().
		WithShowValue().
		WithBars(bars).
		Srender()
	if err != nil {
		pterm.Error.Println(err)
		return ""
	}

	header := color.Heading(fmt.Sprintf("\n%s breakdown (minutes)", title))

	return header + chart
}

// getSummary retrieves the work session summary for the reporting period.
func getSummary(s *Summary) string {
	header := fmt.Sprintf("%s\n", color.Heading("Summary"))

	timeLogged := fmt.Sprintf(
		"Time logged: %s\n",
		color.Figure(FormatMinutes(s.TotalMinutes)),
	)

	completed := fmt.Sprintln("Sessions completed:", color.Figure(s.Completed))
	abandoned := fmt.Sprintln("Sessions abandoned:", color.Figure(s.Abandoned))

	return header + timeLogged + completed + abandoned
}

func getAverages(s *Summary) string {
	header := fmt.Sprintf("\n%s\n", color.Heading("Averages"))

	perDay := fmt.Sprintf(
		"Time logged per day: %s\n",
		color.Figure(FormatMinutes(s.AvgMinutesPerDay)),
	)

	perSession := fmt.Sprintf(
		"Session length: %s\n",
		color.Figure(FormatMinutes(s.AvgSessionMinutes)),
	)

	return header + perDay + perSession
}

// Render writes the human readable report for the summary.
func Render(w io.Writer, s *Summary) error {
	if s.Completed+s.Abandoned == 0 {
		_, err := fmt.Fprintln(w, noSessionsMsg)
		return err
	}

	reportingStart := s.StartTime.Format("January 02, 2006")
	reportingEnd := s.EndTime.Format("January 02, 2006")
	timePeriod := "Reporting period: " + reportingStart + " - " + reportingEnd

	header := pterm.DefaultHeader.WithBackgroundStyle(pterm.NewStyle(pterm.BgYellow)).
		WithTextStyle(pterm.NewStyle(pterm.FgBlack)).
		Sprintln(timePeriod)

	var history string
	if s.Days > 1 && s.Days <= 31 {
		history = getBarChart("Daily", s.Daily)
	}

	output := fmt.Sprint(
		header,
		getSummary(s),
		getAverages(s),
		history,
		getBarChart("Weekly", s.Weekly),
		getBarChart("Hourly", s.Hourly),
	)

	_, err := fmt.Fprintln(w, strings.TrimSpace(output))

	return err
}
