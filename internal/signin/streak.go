// Package signin keeps daily attendance records and derives streak
// statistics from them. The streak functions are pure: they work on any
// date slice and never touch storage.
package signin

import (
	"sort"
	"time"
)

// DayOrdinal converts the civil date of t to a day number. Two instants on
// the same calendar day map to the same ordinal regardless of clock time.
func DayOrdinal(t time.Time) int {
	year, month, day := t.Date()
	return int(time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}

// OrdinalDate converts a day number back to midnight of that calendar day
// in loc. A nil loc means local time.
func OrdinalDate(ordinal int, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	utc := time.Unix(int64(ordinal)*86400, 0).UTC()
	year, month, day := utc.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

// descendingOrdinals collapses dates to unique day ordinals sorted most
// recent first. ContinuousStreak and LastMissedDay both run over this one
// representation so their answers can never drift apart.
func descendingOrdinals(dates []time.Time) []int {
	seen := make(map[int]struct{}, len(dates))
	ordinals := make([]int, 0, len(dates))
	for _, d := range dates {
		ordinal := DayOrdinal(d)
		if _, ok := seen[ordinal]; ok {
			continue
		}
		seen[ordinal] = struct{}{}
		ordinals = append(ordinals, ordinal)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ordinals)))
	return ordinals
}

// ContinuousStreak returns the length of the unbroken run of daily sign-ins
// ending on today. A day without a sign-in today yields 0 even when a long
// run ended yesterday; reward logic depends on exactly this metric.
func ContinuousStreak(dates []time.Time, today time.Time) int {
	ordinals := descendingOrdinals(dates)
	if len(ordinals) == 0 {
		return 0
	}

	todayOrdinal := DayOrdinal(today)
	if ordinals[0] != todayOrdinal {
		return 0
	}

	// Walking backward from today, the run is unbroken while each entry is
	// exactly index days before today. The first index that falls behind is
	// the break, and it equals the count of consecutive days found.
	for index, value := range ordinals {
		if index != todayOrdinal-value {
			return index
		}
	}
	return len(ordinals)
}

// LastMissedDay returns the most recent day without a sign-in. With no
// history, or with no sign-in today, that is today itself. Otherwise it is
// the day immediately before the current unbroken run began.
func LastMissedDay(dates []time.Time, today time.Time) time.Time {
	todayOrdinal := DayOrdinal(today)
	loc := today.Location()

	ordinals := descendingOrdinals(dates)
	if len(ordinals) == 0 || ordinals[0] != todayOrdinal {
		return OrdinalDate(todayOrdinal, loc)
	}

	for index, value := range ordinals {
		if index != todayOrdinal-value {
			return OrdinalDate(ordinals[index-1]-1, loc)
		}
	}
	return OrdinalDate(todayOrdinal-len(ordinals), loc)
}
