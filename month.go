// Copyright 2026 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package calendar

import (
	"time"

	"cloudeng.io/datetime"
)

// clampDay returns day, or the last day of the month if day exceeds it.
func clampDay(year int, month time.Month, day int) int {
	return min(day, int(datetime.DaysInMonth(year, datetime.Month(month))))
}

// floorDivMod returns the floored quotient and non-negative remainder of
// n / d for d > 0.
func floorDivMod(n, d int) (int, int) {
	q, r := n/d, n%d
	if r < 0 {
		q--
		r += d
	}
	return q, r
}
