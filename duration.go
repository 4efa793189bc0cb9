// Copyright 2026 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package calendar provides calendar aware durations, ie. durations that
// include years and months whose length varies, and iterators over the
// dates obtained by repeatedly adding such a duration to a starting date.
package calendar

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"cloudeng.io/errors"
)

const (
	// MaxYear and MinYear bound the years that may result from adding
	// a Duration to a time.Time.
	MaxYear = math.MaxInt32
	MinYear = math.MinInt32

	maxYearSpan = int64(MaxYear) - int64(MinYear)

	day = 24 * time.Hour
)

// ErrOverflow is returned when adding a Duration would result in a year
// outside of the range [MinYear, MaxYear].
var ErrOverflow = errors.New("calendar duration overflow")

// Duration represents a signed offset made up of a number of years, a
// number of months and a fixed length time.Duration. Years and months
// are calendar units whose length in days varies, whereas the fixed
// component is always the same length.
//
// Years and months are never normalized into each other, so 14 months is
// a different, though often equivalent, Duration to 1 year and 2 months.
// Two Durations are equal iff all three of their components are equal
// and hence Durations may be compared using ==.
//
// The zero value is the zero Duration.
type Duration struct {
	years  int
	months int
	fixed  time.Duration
}

// New returns a Duration with the specified components, each of which
// may be positive, negative or zero.
func New(years, months int, fixed time.Duration) Duration {
	return Duration{years: years, months: months, fixed: fixed}
}

// Zero returns the zero Duration.
func Zero() Duration {
	return Duration{}
}

// Years returns a Duration of n years.
func Years(n int) Duration {
	return Duration{years: n}
}

// Months returns a Duration of n months.
func Months(n int) Duration {
	return Duration{months: n}
}

// Weeks returns a Duration of n weeks of 7 days each.
func Weeks(n int) Duration {
	return Duration{fixed: time.Duration(n) * 7 * day}
}

// Days returns a Duration of n days of 24 hours each.
func Days(n int) Duration {
	return Duration{fixed: time.Duration(n) * day}
}

// Hours returns a Duration of n hours.
func Hours(n int) Duration {
	return Duration{fixed: time.Duration(n) * time.Hour}
}

// Minutes returns a Duration of n minutes.
func Minutes(n int) Duration {
	return Duration{fixed: time.Duration(n) * time.Minute}
}

// Seconds returns a Duration of n seconds.
func Seconds(n int) Duration {
	return Duration{fixed: time.Duration(n) * time.Second}
}

// Milliseconds returns a Duration of n milliseconds.
func Milliseconds(n int) Duration {
	return Duration{fixed: time.Duration(n) * time.Millisecond}
}

// Microseconds returns a Duration of n microseconds.
func Microseconds(n int) Duration {
	return Duration{fixed: time.Duration(n) * time.Microsecond}
}

// Nanoseconds returns a Duration of n nanoseconds.
func Nanoseconds(n int) Duration {
	return Duration{fixed: time.Duration(n)}
}

// Fixed returns a Duration that has only the fixed length component d.
func Fixed(d time.Duration) Duration {
	return Duration{fixed: d}
}

// Years returns the years component.
func (d Duration) Years() int {
	return d.years
}

// Months returns the months component.
func (d Duration) Months() int {
	return d.months
}

// FixedPart returns the fixed length component.
func (d Duration) FixedPart() time.Duration {
	return d.fixed
}

// IsZero returns true if all components of d are zero.
func (d Duration) IsZero() bool {
	return d == Duration{}
}

// Equal returns true if all of the components of d and o are equal.
func (d Duration) Equal(o Duration) bool {
	return d == o
}

// Plus returns the component-wise sum of d and o. Components that
// overflow wrap around, use CheckedPlus to detect this. Note that
// applying the sum to a date is not necessarily the same as applying d and
// then o since the day of the month may be clamped differently, for
// example, 2024-01-31 plus 2 months is 2024-03-31, whereas adding
// 1 month twice yields 2024-02-29 and then 2024-03-29.
func (d Duration) Plus(o Duration) Duration {
	return Duration{
		years:  d.years + o.years,
		months: d.months + o.months,
		fixed:  d.fixed + o.fixed,
	}
}

// Minus returns the component-wise difference of d and o. Components
// that overflow wrap around.
func (d Duration) Minus(o Duration) Duration {
	return Duration{
		years:  d.years - o.years,
		months: d.months - o.months,
		fixed:  d.fixed - o.fixed,
	}
}

// Neg returns d with all of its components negated, a component that
// is the most negative value of its type is returned unchanged. Adding the negated
// Duration does not undo adding d if the day of the month was clamped,
// for example, 2024-01-31 plus 1 month is 2024-02-29, and 2024-02-29
// minus 1 month is 2024-01-29.
func (d Duration) Neg() Duration {
	return Duration{
		years:  -d.years,
		months: -d.months,
		fixed:  -d.fixed,
	}
}

// Mul returns d with each component multiplied by n. Components that
// overflow wrap around, use CheckedMul to detect this.
func (d Duration) Mul(n int) Duration {
	return Duration{
		years:  d.years * n,
		months: d.months * n,
		fixed:  d.fixed * time.Duration(n),
	}
}

// Div returns d with each component divided by n, truncating
// towards zero. It panics if n is zero.
func (d Duration) Div(n int) Duration {
	return Duration{
		years:  d.years / n,
		months: d.months / n,
		fixed:  d.fixed / time.Duration(n),
	}
}

// CheckedPlus is like Plus but returns an error wrapping ErrOverflow
// if any component overflows.
func (d Duration) CheckedPlus(o Duration) (Duration, error) {
	years, ok1 := checkedSum(d.years, o.years)
	months, ok2 := checkedSum(d.months, o.months)
	fixed, ok3 := checkedSum(d.fixed, o.fixed)
	if !ok1 || !ok2 || !ok3 {
		return Duration{}, fmt.Errorf("%v plus %v: %w", d, o, ErrOverflow)
	}
	return Duration{years: years, months: months, fixed: fixed}, nil
}

// CheckedMul is like Mul but returns an error wrapping ErrOverflow
// if any component overflows.
func (d Duration) CheckedMul(n int) (Duration, error) {
	years, ok1 := checkedProduct(d.years, n)
	months, ok2 := checkedProduct(d.months, n)
	fixed, ok3 := checkedProduct(d.fixed, time.Duration(n))
	if !ok1 || !ok2 || !ok3 {
		return Duration{}, fmt.Errorf("%v times %v: %w", d, n, ErrOverflow)
	}
	return Duration{years: years, months: months, fixed: fixed}, nil
}

func checkedSum[T int | time.Duration](a, b T) (T, bool) {
	r := a + b
	return r, (b >= 0) == (r >= a)
}

func checkedProduct[T int | time.Duration](a, b T) (T, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	r := a * b
	return r, r/b == a && (r < 0) == ((a < 0) != (b < 0))
}

// Add returns t plus d. It panics if the result would overflow, see
// CheckedAdd.
func (d Duration) Add(t time.Time) time.Time {
	r, err := d.CheckedAdd(t)
	if err != nil {
		panic(err)
	}
	return r
}

// CheckedAdd returns t plus d. The components of d are applied in a fixed
// order, years first, then months and finally the fixed length component.
//
// Adding years retains the month and day of the month unless that day
// does not exist in the new year (ie. Feb 29), in which case the last day
// of the month is used. Adding months carries whole years into the year
// and similarly uses the last day of the new month if the day of the month
// does not exist in it; the day is never allowed to overflow into the
// following month. The time of day and location of t are retained by
// both of these steps. The fixed component is then added using
// time.Time.Add, which may cross month and year boundaries.
//
// The order of application is significant since the result of each
// step depends on the clamping performed by the previous one, for
// example, 2024-02-29 plus 1 year and 1 month is 2025-03-28.
//
// Components that are zero are not applied and hence adding the zero
// Duration returns t unchanged. An error wrapping ErrOverflow is returned
// if the resulting year would be outside of [MinYear, MaxYear].
func (d Duration) CheckedAdd(t time.Time) (time.Time, error) {
	var err error
	if d.years != 0 {
		if t, err = addYears(t, d.years); err != nil {
			return time.Time{}, err
		}
	}
	if d.months != 0 {
		if t, err = addMonths(t, d.months); err != nil {
			return time.Time{}, err
		}
	}
	if d.fixed != 0 {
		t = t.Add(d.fixed)
		if y := t.Year(); y > MaxYear || y < MinYear {
			return time.Time{}, fmt.Errorf("year %v: %w", y, ErrOverflow)
		}
	}
	return t, nil
}

func shiftYear(year, years int) (int, error) {
	if n := int64(years); n > maxYearSpan || n < -maxYearSpan {
		return 0, fmt.Errorf("%v years: %w", years, ErrOverflow)
	}
	y := int64(year) + int64(years)
	if y > MaxYear || y < MinYear {
		return 0, fmt.Errorf("year %v: %w", y, ErrOverflow)
	}
	return int(y), nil
}

func withDate(t time.Time, year int, month time.Month, dom int) time.Time {
	hour, minute, sec := t.Clock()
	return time.Date(year, month, clampDay(year, month, dom), hour, minute, sec, t.Nanosecond(), t.Location())
}

func addYears(t time.Time, years int) (time.Time, error) {
	year, month, dom := t.Date()
	ny, err := shiftYear(year, years)
	if err != nil {
		return time.Time{}, err
	}
	return withDate(t, ny, month, dom), nil
}

func addMonths(t time.Time, months int) (time.Time, error) {
	year, month, dom := t.Date()
	years, rem := floorDivMod(months, 12)
	carry, month0 := floorDivMod(int(month)-1+rem, 12)
	ny, err := shiftYear(year, years+carry)
	if err != nil {
		return time.Time{}, err
	}
	return withDate(t, ny, time.Month(month0+1), dom), nil
}

func writeComponent[T int | int64](out *strings.Builder, n T, designator byte) {
	if n == 0 {
		return
	}
	out.WriteString(strconv.FormatInt(int64(n), 10))
	out.WriteByte(designator)
}

// String returns an ISO8601 style representation of the Duration, eg.
// P1Y2M3DT4H. Components with differing signs are each written
// with their own sign, eg. P1M-2D. Days are computed as multiples of 24
// hours of the fixed component.
func (d Duration) String() string {
	if d.IsZero() {
		return "P0D"
	}
	var out strings.Builder
	if d.years <= 0 && d.months <= 0 && d.fixed <= 0 {
		out.WriteByte('-')
		d = d.Neg()
	}
	out.WriteByte('P')
	writeComponent(&out, d.years, 'Y')
	writeComponent(&out, d.months, 'M')
	writeComponent(&out, int64(d.fixed/day), 'D')
	rem := d.fixed % day
	if rem == 0 {
		return out.String()
	}
	out.WriteByte('T')
	hours := rem / time.Hour
	rem -= hours * time.Hour
	minutes := rem / time.Minute
	rem -= minutes * time.Minute
	writeComponent(&out, int64(hours), 'H')
	writeComponent(&out, int64(minutes), 'M')
	if rem != 0 {
		out.WriteString(strconv.FormatFloat(rem.Seconds(), 'f', -1, 64))
		out.WriteByte('S')
	}
	return out.String()
}
