// Copyright 2026 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package schedule

import (
	"encoding/binary"
	"iter"
	"time"

	"cloudeng.io/algo/container/heap"
	"cloudeng.io/calendar"
)

type heapEntry struct {
	when time.Time
	src  int
}

// sortKey returns a key whose lexical order is the chronological order
// of t, to nanosecond resolution, over the full range of time.Time.
func sortKey(t time.Time) string {
	var buf [12]byte
	binary.BigEndian.PutUint64(buf[:8], uint64(t.Unix())^(1<<63))
	binary.BigEndian.PutUint32(buf[8:], uint32(t.Nanosecond()))
	return string(buf[:])
}

// Merge returns an iterator that yields the dates from all of the supplied
// iterators in ascending order. Each iterator must itself yield dates
// in ascending order, ie. be an OpenEnded or Closed iterator with a
// Duration that moves dates forward. Duplicate dates are not removed.
//
// The iterators are consumed by Merge; with open ended iterators the
// merged sequence is infinite and the caller must stop iterating.
func Merge(iterators ...calendar.Iterator) iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		// MinMax reserves the first slot of its slices as a dummy root.
		h := heap.NewMinMax(heap.WithSliceCap[string, heapEntry](len(iterators) + 1))
		for i, it := range iterators {
			if t, ok := it.Next(); ok {
				h.Push(sortKey(t), heapEntry{when: t, src: i})
			}
		}
		for h.Len() > 0 {
			_, he := h.PopMin()
			if !yield(he.when) {
				return
			}
			if t, ok := iterators[he.src].Next(); ok {
				h.Push(sortKey(t), heapEntry{when: t, src: he.src})
			}
		}
	}
}
