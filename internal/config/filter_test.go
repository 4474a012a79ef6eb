package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type FilterTest struct {
	Flags    map[string]string
	Expected FilterConfig
	Err      error
	Name     string
}

func TestFilter(t *testing.T) {
	now := time.Date(2026, time.March, 15, 14, 30, 0, 0, time.UTC)
	endOfDay := time.Date(2026, time.March, 15, 23, 59, 59, 0, time.UTC)

	filterTestCases := []FilterTest{
		{
			Name:  "default to the last seven days",
			Flags: map[string]string{},
			Expected: FilterConfig{
				StartTime: time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC),
				EndTime:   endOfDay,
			},
		},
		{
			Name: "today",
			Flags: map[string]string{
				"period": "today",
			},
			Expected: FilterConfig{
				StartTime: time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC),
				EndTime:   endOfDay,
			},
		},
		{
			Name: "yesterday",
			Flags: map[string]string{
				"period": "yesterday",
			},
			Expected: FilterConfig{
				StartTime: time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC),
				EndTime:   time.Date(2026, time.March, 14, 23, 59, 59, 0, time.UTC),
			},
		},
		{
			Name: "all time",
			Flags: map[string]string{
				"period": "all-time",
			},
			Expected: FilterConfig{
				EndTime: endOfDay,
			},
		},
		{
			Name: "period wins over dates",
			Flags: map[string]string{
				"period": "today",
				"start":  "2026-01-01",
			},
			Expected: FilterConfig{
				StartTime: time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC),
				EndTime:   endOfDay,
			},
		},
		{
			Name: "explicit start",
			Flags: map[string]string{
				"start": "2026-03-01 08:00",
			},
			Expected: FilterConfig{
				StartTime: time.Date(2026, time.March, 1, 8, 0, 0, 0, time.UTC),
				EndTime:   now,
			},
		},
		{
			Name: "unknown period",
			Flags: map[string]string{
				"period": "fortnight",
			},
			Err: errInvalidPeriod,
		},
		{
			Name: "end before start",
			Flags: map[string]string{
				"start": "2026-03-10",
				"end":   "2026-03-01",
			},
			Err: errInvalidDateRange,
		},
		{
			Name: "unparseable start",
			Flags: map[string]string{
				"start": "qqq zzz xyzzy",
			},
			Err: errInvalidDate,
		},
	}

	for _, tc := range filterTestCases {
		t.Run(tc.Name, func(t *testing.T) {
			ctx := newContext(t, tc.Flags)

			cfg, err := Filter(ctx, now)

			if tc.Err != nil {
				assert.ErrorIs(t, err, tc.Err)
				return
			}

			require.NoError(t, err)
			assert.True(t,
				tc.Expected.StartTime.Equal(cfg.StartTime),
				"start: want %v, got %v", tc.Expected.StartTime, cfg.StartTime,
			)
			assert.True(t,
				tc.Expected.EndTime.Equal(cfg.EndTime),
				"end: want %v, got %v", tc.Expected.EndTime, cfg.EndTime,
			)
		})
	}
}
