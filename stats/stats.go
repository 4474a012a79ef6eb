// Package stats reports focus statistics computed from the focus log
package stats

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/breezeflow/breeze/internal/session"
	"github.com/breezeflow/breeze/internal/timeutil"
)

const hoursInDay = timeutil.HoursInADay

// TodaySummary is the focus summary for the current day.
type TodaySummary struct {
	Sessions int `json:"sessions"`
	Minutes  int `json:"minutes"`
}

// Bucket is the focus time attributed to a day, weekday or hour.
type Bucket struct {
	Label   string `json:"label"`
	Minutes int    `json:"minutes"`
}

// Summary aggregates the focus log over a reporting period.
type Summary struct {
	StartTime         time.Time `json:"start_time"`
	EndTime           time.Time `json:"end_time"`
	Daily             []Bucket  `json:"daily"`
	Weekly            []Bucket  `json:"weekly"`
	Hourly            []Bucket  `json:"hourly"`
	Days              int       `json:"days"`
	TotalMinutes      int       `json:"total_minutes"`
	Completed         int       `json:"completed"`
	Abandoned         int       `json:"abandoned"`
	AvgMinutesPerDay  int       `json:"avg_minutes_per_day"`
	AvgSessionMinutes int       `json:"avg_session_minutes"`
}

// focused reports whether r counts towards focus time. Break entries only
// exist in logs imported from the web app.
func focused(r *session.Record) bool {
	if r.Name != session.Work && r.Name != "" {
		return false
	}

	return !r.EndTime.IsZero() && !r.EndTime.Before(r.StartTime)
}

// Today counts the completed work sessions that ended on the same day as now
// and their total length in minutes.
func Today(records []session.Record, now time.Time) TodaySummary {
	var (
		sum  TodaySummary
		secs int
	)

	for i := range records {
		r := &records[i]

		if !focused(r) || !r.Completed || !timeutil.SameDay(now, r.EndTime) {
			continue
		}

		sum.Sessions++
		secs += r.Duration
	}

	sum.Minutes = timeutil.Round(float64(secs) / 60)

	return sum
}

func minutes(d time.Duration) int {
	return timeutil.Round(d.Minutes())
}

// nextHour returns the start of the hour following t.
func nextHour(t time.Time) time.Time {
	return time.Date(
		t.Year(),
		t.Month(),
		t.Day(),
		t.Hour()+1,
		0,
		0,
		0,
		t.Location(),
	)
}

type aggregates struct {
	daily  map[int]time.Duration
	weekly map[time.Weekday]time.Duration
	hourly map[int]time.Duration
}

// add attributes the interval [start, end) to the day, weekday and hour it
// falls in, splitting it at hour boundaries.
func (a *aggregates) add(start, end time.Time) {
	for cur := start; cur.Before(end); {
		next := nextHour(cur)
		if next.After(end) {
			next = end
		}

		piece := next.Sub(cur)

		a.daily[timeutil.DayFormat(cur)] += piece
		a.weekly[cur.Weekday()] += piece
		a.hourly[cur.Hour()] += piece

		cur = next
	}
}

// Compute aggregates the work sessions that overlap [start, end]. Time
// outside the period is not counted. A zero start means all time, starting
// on the day of the earliest session.
func Compute(records []session.Record, start, end time.Time) *Summary {
	if start.IsZero() {
		for i := range records {
			r := &records[i]
			if focused(r) && (start.IsZero() || r.StartTime.Before(start)) {
				start = r.StartTime
			}
		}

		if !start.IsZero() {
			start = timeutil.RoundToStart(start.In(end.Location()))
		}
	}

	s := &Summary{
		StartTime: start,
		EndTime:   end,
	}

	agg := aggregates{
		daily:  make(map[int]time.Duration),
		weekly: make(map[time.Weekday]time.Duration),
		hourly: make(map[int]time.Duration),
	}

	var total time.Duration

	for i := range records {
		r := &records[i]

		if !focused(r) || !r.EndTime.After(start) || r.StartTime.After(end) {
			continue
		}

		from := r.StartTime.In(end.Location())
		if from.Before(start) {
			from = start
		}

		to := r.EndTime.In(end.Location())
		if to.After(end) {
			to = end
		}

		total += to.Sub(from)
		agg.add(from, to)

		if r.Completed {
			s.Completed++
		} else {
			s.Abandoned++
		}
	}

	s.TotalMinutes = minutes(total)

	s.Days = max(1, timeutil.Round(end.Sub(start).Hours())/hoursInDay)
	if start.IsZero() {
		s.Days = 1
	}

	s.AvgMinutesPerDay = timeutil.Round(total.Minutes() / float64(s.Days))

	if n := s.Completed + s.Abandoned; n > 0 {
		s.AvgSessionMinutes = timeutil.Round(total.Minutes() / float64(n))
	}

	if !start.IsZero() {
		for date := timeutil.RoundToStart(start); !date.After(end); date = date.AddDate(0, 0, 1) {
			s.Daily = append(s.Daily, Bucket{
				Label:   date.Format(time.DateOnly),
				Minutes: minutes(agg.daily[timeutil.DayFormat(date)]),
			})
		}
	}

	for d := time.Sunday; d <= time.Saturday; d++ {
		s.Weekly = append(s.Weekly, Bucket{
			Label:   d.String(),
			Minutes: minutes(agg.weekly[d]),
		})
	}

	for h := range hoursInDay {
		s.Hourly = append(s.Hourly, Bucket{
			Label:   fmt.Sprintf("%02d:00", h),
			Minutes: minutes(agg.hourly[h]),
		})
	}

	return s
}

// ToJSON returns the indented JSON form of the summary.
func (s *Summary) ToJSON() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}
