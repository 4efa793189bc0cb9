// Copyright 2026 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package schedule provides support for filtering and combining the
// date sequences produced by the calendar package's iterators.
package schedule

import (
	"fmt"
	"iter"
	"strings"
	"time"

	"cloudeng.io/datetime"
)

// Constraints represents constraints on date values such as weekdays,
// weekends or specific calendar dates to exclude. Excluded dates take
// precedence over weekdays and weekends, so that a date in Exclude is never
// included and any other date is subject to the weekday and weekend
// selection.
type Constraints struct {
	Weekdays bool                      // If true, include weekdays
	Weekends bool                      // If true, include weekends
	Exclude  datetime.CalendarDateList // If non-empty, exclude these dates
}

// CalendarDate returns the year, month and day of when as a
// datetime.CalendarDate for use with Constraints.Exclude.
func CalendarDate(when time.Time) datetime.CalendarDate {
	year, month, day := when.Date()
	return datetime.CalendarDate{Year: year, Month: datetime.Month(month), Day: day}
}

func (dc Constraints) days() datetime.Constraints {
	return datetime.Constraints{Weekdays: dc.Weekdays, Weekends: dc.Weekends}
}

func (dc Constraints) String() string {
	var out strings.Builder
	if len(dc.Exclude) > 0 {
		out.WriteString("excluding custom dates: ")
		for i, d := range dc.Exclude {
			if i > 0 {
				out.WriteString(", ")
			}
			fmt.Fprintf(&out, "%04d-%02d-%02d", d.Year, d.Month, d.Day)
		}
		out.WriteString(": ")
	}
	out.WriteString(dc.days().String())
	return out.String()
}

// Include returns true if the given date satisfies the constraints.
// Excluded dates are compared by year, month and day only.
// An empty set of Constraints will return true, ie. include all dates.
func (dc Constraints) Include(when time.Time) bool {
	if dc.Exclude.Contains(CalendarDate(when)) {
		return false
	}
	return dc.days().Include(when)
}

// Empty returns true if no constraints are set.
func (dc Constraints) Empty() bool {
	return datetime.Constraints{
		Weekdays:       dc.Weekdays,
		Weekends:       dc.Weekends,
		CustomCalendar: dc.Exclude,
	}.Empty()
}

// Constrained returns an iterator that yields only those dates from seq
// that satisfy the supplied constraints.
func Constrained(seq iter.Seq[time.Time], dc Constraints) iter.Seq[time.Time] {
	if dc.Empty() {
		return seq
	}
	return func(yield func(time.Time) bool) {
		for t := range seq {
			if !dc.Include(t) {
				continue
			}
			if !yield(t) {
				return
			}
		}
	}
}

// Take returns up to n dates from seq.
func Take(seq iter.Seq[time.Time], n int) []time.Time {
	if n <= 0 {
		return nil
	}
	out := make([]time.Time, 0, n)
	for t := range seq {
		out = append(out, t)
		if len(out) == n {
			break
		}
	}
	return out
}
