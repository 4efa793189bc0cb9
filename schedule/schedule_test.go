// Copyright 2026 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package schedule_test

import (
	"strings"
	"testing"
	"time"

	"cloudeng.io/calendar"
	"cloudeng.io/calendar/schedule"
	"cloudeng.io/datetime"
)

func newDate(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func cd(y, m, d int) datetime.CalendarDate {
	return datetime.CalendarDate{Year: y, Month: datetime.Month(m), Day: d}
}

func formatDates(dates []time.Time) string {
	var out strings.Builder
	for i, d := range dates {
		if i > 0 {
			out.WriteByte(',')
		}
		out.WriteString(d.Format(time.DateOnly))
	}
	return out.String()
}

func TestConstraints(t *testing.T) {
	md := func(m, d int) time.Time {
		return time.Date(2024, time.Month(m), d, 12, 30, 0, 0, time.UTC)
	}
	ct := func(weekday, weekend bool, exclude ...datetime.CalendarDate) schedule.Constraints {
		return schedule.Constraints{
			Weekdays: weekday,
			Weekends: weekend,
			Exclude:  exclude,
		}
	}

	for i, tc := range []struct {
		when       time.Time
		constraint schedule.Constraints
		result     bool
	}{
		{md(1, 2), ct(false, false), true},
		{md(1, 6), ct(false, false), true},

		{md(1, 1), ct(true, false), true},
		{md(1, 5), ct(true, false), true},
		{md(1, 6), ct(true, false), false},
		{md(1, 7), ct(true, false), false},

		{md(1, 5), ct(false, true), false},
		{md(1, 6), ct(false, true), true},
		{md(1, 7), ct(false, true), true},

		{md(1, 6), ct(true, true), true},

		{md(1, 2), ct(false, false, cd(2024, 1, 2)), false},
		{md(1, 3), ct(false, false, cd(2024, 1, 2)), true},
		{md(1, 2), ct(true, false, cd(2024, 1, 2)), false},
		{md(1, 2), ct(true, false, cd(2023, 1, 2)), true},
		// excluded dates do not override the weekday selection.
		{md(1, 6), ct(true, false, cd(2024, 1, 2)), false},
		{md(1, 7), ct(false, true, cd(2024, 1, 6)), true},
		{md(1, 6), ct(false, true, cd(2024, 1, 6)), false},
	} {
		if got, want := tc.constraint.Include(tc.when), tc.result; got != want {
			t.Errorf("%v: got %v, want %v", i, got, want)
		}
	}

	if !(schedule.Constraints{}).Empty() || ct(true, false).Empty() || ct(false, false, cd(2024, 1, 1)).Empty() {
		t.Errorf("Empty is incorrect")
	}

	if got, want := ct(true, false, cd(2024, 1, 2), cd(2024, 1, 3)).String(), "excluding custom dates: 2024-01-02, 2024-01-03: weekdays only"; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestCalendarDate(t *testing.T) {
	loc := time.FixedZone("X", 10*60*60)
	when := time.Date(2024, 3, 1, 5, 0, 0, 0, loc)
	if got, want := schedule.CalendarDate(when), cd(2024, 3, 1); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	// The date is taken in the location of the time being tested.
	dc := schedule.Constraints{Exclude: datetime.CalendarDateList{cd(2024, 3, 1)}}
	if dc.Include(when) {
		t.Errorf("%v should be excluded", when)
	}
	if !dc.Include(when.UTC()) {
		t.Errorf("%v should be included", when.UTC())
	}
}

func TestConstrained(t *testing.T) {
	days := func() *calendar.Closed {
		return calendar.NewClosed(newDate(2024, 1, 1), newDate(2024, 1, 10), calendar.Days(1))
	}
	for _, tc := range []struct {
		constraint schedule.Constraints
		want       string
	}{
		{schedule.Constraints{}, "2024-01-01,2024-01-02,2024-01-03,2024-01-04,2024-01-05,2024-01-06,2024-01-07,2024-01-08,2024-01-09,2024-01-10"},
		{schedule.Constraints{Weekdays: true}, "2024-01-01,2024-01-02,2024-01-03,2024-01-04,2024-01-05,2024-01-08,2024-01-09,2024-01-10"},
		{schedule.Constraints{Weekends: true}, "2024-01-06,2024-01-07"},
		{schedule.Constraints{Weekdays: true, Exclude: datetime.CalendarDateList{cd(2024, 1, 2), cd(2024, 1, 9)}}, "2024-01-01,2024-01-03,2024-01-04,2024-01-05,2024-01-08,2024-01-10"},
	} {
		var dates []time.Time
		for d := range schedule.Constrained(days().All(), tc.constraint) {
			dates = append(dates, d)
		}
		if got, want := formatDates(dates), tc.want; got != want {
			t.Errorf("%v: got %v, want %v", tc.constraint, got, want)
		}
	}

	// Month ends, clamped from the 31st, that fall on a weekday.
	monthly := calendar.NewOpenEnded(newDate(2024, 3, 31), calendar.Months(1))
	weekdays := schedule.Constrained(monthly.All(), schedule.Constraints{Weekdays: true})
	if got, want := formatDates(schedule.Take(weekdays, 3)), "2024-04-30,2024-05-30,2024-07-30"; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestTake(t *testing.T) {
	it := calendar.NewOpenEnded(newDate(2024, 1, 1), calendar.Weeks(1))
	if got, want := formatDates(schedule.Take(it.All(), 3)), "2024-01-01,2024-01-08,2024-01-15"; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got := schedule.Take(it.All(), 0); got != nil {
		t.Errorf("got %v, want nil", got)
	}
	closed := calendar.NewClosed(newDate(2024, 1, 1), newDate(2024, 1, 2), calendar.Days(1))
	if got, want := formatDates(schedule.Take(closed.All(), 10)), "2024-01-01,2024-01-02"; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestMerge(t *testing.T) {
	monthly := calendar.NewClosed(newDate(2024, 1, 1), newDate(2024, 3, 31), calendar.Months(1))
	threeWeekly := calendar.NewClosed(newDate(2024, 1, 10), newDate(2024, 3, 31), calendar.Weeks(3))
	var dates []time.Time
	for d := range schedule.Merge(monthly, threeWeekly) {
		dates = append(dates, d)
	}
	if got, want := formatDates(dates), "2024-01-01,2024-01-10,2024-01-31,2024-02-01,2024-02-21,2024-03-01,2024-03-13"; got != want {
		t.Errorf("got %v, want %v", got, want)
	}

	every2 := calendar.NewOpenEnded(newDate(2024, 1, 1), calendar.Days(2))
	every3 := calendar.NewOpenEnded(newDate(2024, 1, 1), calendar.Days(3))
	if got, want := formatDates(schedule.Take(schedule.Merge(every2, every3), 5)), "2024-01-01,2024-01-01,2024-01-03,2024-01-04,2024-01-05"; got != want {
		t.Errorf("got %v, want %v", got, want)
	}

	if got := schedule.Take(schedule.Merge(), 3); len(got) != 0 {
		t.Errorf("got %v, want none", got)
	}

	empty := calendar.NewClosed(newDate(2024, 3, 1), newDate(2024, 1, 1), calendar.Days(1))
	single := calendar.NewClosed(newDate(2024, 1, 1), newDate(2024, 1, 1), calendar.Days(1))
	if got, want := formatDates(schedule.Take(schedule.Merge(empty, single), 3)), "2024-01-01"; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestMergeSubSecond(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	single := func(offset time.Duration) calendar.Iterator {
		when := base.Add(offset)
		return calendar.NewClosed(when, when, calendar.Days(1))
	}
	formatNanos := func(dates []time.Time) string {
		var out []string
		for _, d := range dates {
			out = append(out, d.Format(time.RFC3339Nano))
		}
		return strings.Join(out, ",")
	}

	merged := schedule.Take(schedule.Merge(
		single(900*time.Millisecond),
		single(100*time.Millisecond),
		single(500*time.Millisecond)), 10)
	if got, want := formatNanos(merged), "2024-01-01T00:00:00.1Z,2024-01-01T00:00:00.5Z,2024-01-01T00:00:00.9Z"; got != want {
		t.Errorf("got %v, want %v", got, want)
	}

	// Interleaved sub-second steps and dates centuries apart.
	fast := calendar.NewClosed(base.Add(time.Nanosecond), base.Add(time.Second), calendar.Fixed(400*time.Millisecond))
	slow := calendar.NewClosed(base, base.AddDate(0, 0, 1), calendar.Fixed(300*time.Millisecond))
	early := calendar.NewClosed(newDate(1500, 1, 1), newDate(1500, 1, 1), calendar.Days(1))
	late := calendar.NewClosed(newDate(2500, 1, 1), newDate(2500, 1, 1), calendar.Days(1))
	merged = schedule.Take(schedule.Merge(late, fast, slow, early), 7)
	if got, want := formatNanos(merged), "1500-01-01T00:00:00Z,2024-01-01T00:00:00Z,2024-01-01T00:00:00.000000001Z,2024-01-01T00:00:00.3Z,2024-01-01T00:00:00.400000001Z,2024-01-01T00:00:00.6Z,2024-01-01T00:00:00.800000001Z"; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	for i := 1; i < len(merged); i++ {
		if merged[i].Before(merged[i-1]) {
			t.Errorf("%v: %v is before %v", i, merged[i], merged[i-1])
		}
	}
}
