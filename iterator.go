// Copyright 2026 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package calendar

import (
	"iter"
	"time"
)

// Iterator is implemented by OpenEnded and Closed. Next returns the next
// date in the sequence and true, or the zero time and false once the
// sequence is exhausted.
type Iterator interface {
	Next() (time.Time, bool)
}

// OpenEnded iterates over an unbounded sequence of dates, start,
// start+step, start+step+step etc, where each date is obtained by adding
// step to the previous one using Duration.Add. Note that since the day of
// the month may be clamped at each step the sequence is not the same
// as start+step*n, eg. monthly from Jan 31 yields Jan 31, Feb 29, Mar 29,
// Apr 29 etc.
//
// An OpenEnded iterator is not safe for concurrent use and cannot be
// restarted, create a new one instead.
type OpenEnded struct {
	cursor time.Time
	step   Duration
	err    error
}

// NewOpenEnded returns an OpenEnded iterator whose first date is start.
func NewOpenEnded(start time.Time, step Duration) *OpenEnded {
	return &OpenEnded{cursor: start, step: step}
}

// Next implements Iterator. It only returns false if the next date
// could not be computed because of an overflow, in which case Err
// will return the error.
func (o *OpenEnded) Next() (time.Time, bool) {
	if o.err != nil {
		return time.Time{}, false
	}
	current := o.cursor
	next, err := o.step.CheckedAdd(current)
	if err != nil {
		o.err = err
		return current, true
	}
	o.cursor = next
	return current, true
}

// Err returns any error encountered whilst iterating.
func (o *OpenEnded) Err() error {
	return o.err
}

// All returns an iterator over the remaining dates. Dates consumed by
// All are no longer available to Next.
func (o *OpenEnded) All() iter.Seq[time.Time] {
	return all(o)
}

// To returns a Closed iterator that continues from the next date that
// o would return, using the same step, up to and including end. The
// returned iterator and o do not share state.
func (o *OpenEnded) To(end time.Time) *Closed {
	if o.err != nil {
		return &Closed{end: end, step: o.step, done: true, err: o.err}
	}
	return NewClosed(o.cursor, end, o.step)
}

// Pairwise returns an iterator over pairs of consecutive dates, ie.
// (date, date+step), which is convenient for dividing a time range into
// consecutive, non-overlapping, periods. The second member of each pair
// is the first member of the next. If the second member of a pair cannot
// be computed because of an overflow that pair is omitted, iteration ends
// and Err returns the overflow error.
func (o *OpenEnded) Pairwise() iter.Seq2[time.Time, time.Time] {
	return pairwise(o, o.step)
}

// Closed iterates over the dates start, start+step, start+step+step etc
// up to and including end. The direction of iteration is determined by
// applying step to start, so a step that moves dates backwards will
// iterate down to end. Iteration stops at the first date that is past
// end, that date is not returned.
//
// A step that does not change start, such as the zero Duration, returns
// start once if it is equal to end and otherwise nothing. Similarly,
// iteration stops if a subsequent step fails to make progress, which is
// possible for Durations whose components have differing signs.
//
// A Closed iterator is not safe for concurrent use and cannot be
// restarted, create a new one instead.
type Closed struct {
	cursor, end time.Time
	step        Duration
	direction   int // +1 forwards, -1 backwards, 0 no movement.
	done        bool
	err         error
}

// NewClosed returns a Closed iterator from start to end, inclusive.
func NewClosed(start, end time.Time, step Duration) *Closed {
	return &Closed{
		cursor:    start,
		end:       end,
		step:      step,
		direction: direction(start, step),
	}
}

// direction returns the direction in which step moves start. If
// that cannot be determined because of an overflow then the sign of
// the largest non-zero component is used.
func direction(start time.Time, step Duration) int {
	next, err := step.CheckedAdd(start)
	if err != nil {
		switch {
		case step.years != 0:
			return sign(step.years)
		case step.months != 0:
			return sign(step.months)
		}
		return sign(step.fixed)
	}
	return next.Compare(start)
}

func sign[T int | time.Duration](n T) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}

func (c *Closed) past(t time.Time) bool {
	switch c.direction {
	case 1:
		return t.After(c.end)
	case -1:
		return t.Before(c.end)
	}
	return !t.Equal(c.end)
}

// Next implements Iterator.
func (c *Closed) Next() (time.Time, bool) {
	if c.done {
		return time.Time{}, false
	}
	current := c.cursor
	if c.past(current) {
		c.done = true
		return time.Time{}, false
	}
	if c.direction == 0 {
		c.done = true
		return current, true
	}
	next, err := c.step.CheckedAdd(current)
	if err != nil {
		c.err = err
		c.done = true
		return current, true
	}
	if next.Compare(current) != c.direction {
		c.done = true
		return current, true
	}
	c.cursor = next
	return current, true
}

// Exhausted returns true once Next has returned its last date.
func (c *Closed) Exhausted() bool {
	return c.done
}

// Err returns any error encountered whilst iterating.
func (c *Closed) Err() error {
	return c.err
}

// All returns an iterator over the remaining dates. Dates consumed by
// All are no longer available to Next.
func (c *Closed) All() iter.Seq[time.Time] {
	return all(c)
}

// Pairwise returns an iterator over pairs of consecutive dates, ie.
// (date, date+step), for every date that would be returned by Next. The
// second member of the final pair may be past end. As for OpenEnded, a
// pair whose second member overflows is omitted, iteration ends and Err
// returns the overflow error.
func (c *Closed) Pairwise() iter.Seq2[time.Time, time.Time] {
	return pairwise(c, c.step)
}

func all(it Iterator) iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		for {
			t, ok := it.Next()
			if !ok || !yield(t) {
				return
			}
		}
	}
}

func pairwise(it Iterator, step Duration) iter.Seq2[time.Time, time.Time] {
	return func(yield func(time.Time, time.Time) bool) {
		for {
			from, ok := it.Next()
			if !ok {
				return
			}
			to, err := step.CheckedAdd(from)
			if err != nil || !yield(from, to) {
				return
			}
		}
	}
}
