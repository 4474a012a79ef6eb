package config

import (
	"slices"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/breezeflow/breeze/internal/timeutil"
)

// FilterConfig bounds the focus records included in history and stats.
type FilterConfig struct {
	StartTime time.Time
	EndTime   time.Time
}

// periods lists the accepted --period values.
var periods = []timeutil.Period{
	timeutil.PeriodAllTime,
	timeutil.PeriodToday,
	timeutil.PeriodYesterday,
	timeutil.Period7Days,
	timeutil.Period14Days,
	timeutil.Period30Days,
	timeutil.Period90Days,
	timeutil.Period180Days,
	timeutil.Period365Days,
}

// Filter builds a FilterConfig from the --period, --start and --end flags.
// A period takes precedence over explicit dates. Without any flag, the last
// seven days are selected.
func Filter(ctx *cli.Context, now time.Time) (*FilterConfig, error) {
	f := &FilterConfig{}

	period := timeutil.Period(strings.TrimSpace(ctx.String("period")))

	if period != "" && !slices.Contains(periods, period) {
		return nil, errInvalidPeriod.Fmt(period)
	}

	start := strings.TrimSpace(ctx.String("start"))
	end := strings.TrimSpace(ctx.String("end"))

	if period == "" && start == "" && end == "" {
		period = timeutil.Period7Days
	}

	if period != "" {
		var err error

		f.StartTime, f.EndTime, err = period.Bounds(now)
		if err != nil {
			return nil, errInvalidPeriod.Fmt(period)
		}

		return f, nil
	}

	f.EndTime = now

	if start != "" {
		t, err := timeutil.FromStr(start, now)
		if err != nil {
			return nil, errInvalidDate.Fmt("start").Wrap(err)
		}

		f.StartTime = t
	}

	if end != "" {
		t, err := timeutil.FromStr(end, now)
		if err != nil {
			return nil, errInvalidDate.Fmt("end").Wrap(err)
		}

		f.EndTime = t
	}

	if f.EndTime.Before(f.StartTime) {
		return nil, errInvalidDateRange
	}

	return f, nil
}
