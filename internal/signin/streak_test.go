package signin

import (
	"testing"
	"time"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func days(values ...string) []time.Time {
	out := make([]time.Time, 0, len(values))
	for _, v := range values {
		out = append(out, day(v))
	}
	return out
}

func TestContinuousStreak(t *testing.T) {
	today := day("2024-03-10")

	cases := []struct {
		name  string
		dates []time.Time
		want  int
	}{
		{name: "empty history", dates: nil, want: 0},
		{name: "no sign-in today", dates: days("2024-03-09", "2024-03-08", "2024-03-07"), want: 0},
		{name: "single day today", dates: days("2024-03-10"), want: 1},
		{name: "unbroken run", dates: days("2024-03-10", "2024-03-09", "2024-03-08"), want: 3},
		{name: "gap two days back", dates: days("2024-03-10", "2024-03-09", "2024-03-07"), want: 2},
		{name: "gap then more history", dates: days("2024-03-10", "2024-03-09", "2024-03-08", "2024-03-05"), want: 3},
		{name: "long run before gap ignored", dates: days("2024-03-10", "2024-03-08", "2024-03-07", "2024-03-06"), want: 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ContinuousStreak(tc.dates, today); got != tc.want {
				t.Fatalf("ContinuousStreak = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestContinuousStreakUnsortedWithDuplicates(t *testing.T) {
	today := day("2024-03-10")
	dates := days("2024-03-08", "2024-03-10", "2024-03-09", "2024-03-10", "2024-03-08")
	if got := ContinuousStreak(dates, today); got != 3 {
		t.Fatalf("ContinuousStreak = %d, want 3", got)
	}
}

func TestLastMissedDay(t *testing.T) {
	today := day("2024-03-10")

	cases := []struct {
		name  string
		dates []time.Time
		want  string
	}{
		{name: "empty history", dates: nil, want: "2024-03-10"},
		{name: "no sign-in today", dates: days("2024-03-09", "2024-03-08"), want: "2024-03-10"},
		{name: "unbroken run of three", dates: days("2024-03-10", "2024-03-09", "2024-03-08"), want: "2024-03-07"},
		{name: "gap two days back", dates: days("2024-03-10", "2024-03-09", "2024-03-07"), want: "2024-03-08"},
		{name: "single day today", dates: days("2024-03-10"), want: "2024-03-09"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := LastMissedDay(tc.dates, today)
			if want := day(tc.want); !got.Equal(want) {
				t.Fatalf("LastMissedDay = %s, want %s", got.Format("2006-01-02"), tc.want)
			}
		})
	}
}

// The two metrics are derived from the same sorted-ordinal walk; the break
// the streak stops at must be the day after the last missed day.
func TestStreakAndMissedDayAgree(t *testing.T) {
	today := day("2024-03-10")
	dates := days("2024-03-10", "2024-03-09", "2024-03-08", "2024-03-05")

	streak := ContinuousStreak(dates, today)
	if streak != 3 {
		t.Fatalf("ContinuousStreak = %d, want 3", streak)
	}

	missed := LastMissedDay(dates, today)
	if want := day("2024-03-07"); !missed.Equal(want) {
		t.Fatalf("LastMissedDay = %s, want 2024-03-07", missed.Format("2006-01-02"))
	}

	runStart := today.AddDate(0, 0, -(streak - 1))
	if !missed.Equal(runStart.AddDate(0, 0, -1)) {
		t.Fatalf("missed day %s is not the day before run start %s",
			missed.Format("2006-01-02"), runStart.Format("2006-01-02"))
	}
}

func TestDayOrdinalRoundTrip(t *testing.T) {
	d := day("2024-03-10")
	ordinal := DayOrdinal(d)
	if back := OrdinalDate(ordinal, time.UTC); !back.Equal(d) {
		t.Fatalf("round trip = %s, want %s", back, d)
	}
	if next := DayOrdinal(day("2024-03-11")); next != ordinal+1 {
		t.Fatalf("next day ordinal = %d, want %d", next, ordinal+1)
	}
}
