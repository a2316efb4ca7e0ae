package daykey

import (
	"strconv"
	"testing"
	"time"
)

func TestDay(t *testing.T) {
	n := New(time.UTC)

	// 2024-01-01T00:00:00Z
	day, ok := n.Day("1704067200000")
	if !ok {
		t.Fatal("expected valid day")
	}
	if day != "2024-01-01" {
		t.Errorf("expected 2024-01-01, got %s", day)
	}
}

func TestDaySameCalendarDay(t *testing.T) {
	n := New(time.UTC)

	// Any epoch within the same calendar day must yield the same key.
	base := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	epochs := []int64{
		base.UnixMilli(),
		base.Add(6 * time.Hour).UnixMilli(),
		base.Add(23*time.Hour + 59*time.Minute + 59*time.Second).UnixMilli(),
	}

	for _, ms := range epochs {
		day, ok := n.Day(strconv.FormatInt(ms, 10))
		if !ok {
			t.Fatalf("epoch %d: expected valid day", ms)
		}
		if day != "2024-03-15" {
			t.Errorf("epoch %d: expected 2024-03-15, got %s", ms, day)
		}
	}
}

func TestDayRespectsLocation(t *testing.T) {
	// 2024-01-01T02:00:00Z is still 2023-12-31 in a UTC-5 zone.
	loc := time.FixedZone("UTC-5", -5*3600)
	n := New(loc)

	ms := time.Date(2024, 1, 1, 2, 0, 0, 0, time.UTC).UnixMilli()
	day, ok := n.Day(strconv.FormatInt(ms, 10))
	if !ok {
		t.Fatal("expected valid day")
	}
	if day != "2023-12-31" {
		t.Errorf("expected 2023-12-31, got %s", day)
	}
}

func TestDayMalformed(t *testing.T) {
	n := New(time.UTC)

	for _, input := range []string{"", "not-a-number", "12.5", "1704067200000x"} {
		if _, ok := n.Day(input); ok {
			t.Errorf("input %q: expected ok=false", input)
		}
	}
}

func TestMonthDay(t *testing.T) {
	n := New(time.UTC)

	md, ok := n.MonthDay("1704067200000")
	if !ok {
		t.Fatal("expected valid month-day")
	}
	if md != "01-01" {
		t.Errorf("expected 01-01, got %s", md)
	}
}

func TestISOWeekday(t *testing.T) {
	n := New(time.UTC)

	tests := []struct {
		date time.Time
		want int
	}{
		{time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), 0},  // Monday
		{time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC), 2},  // Wednesday
		{time.Date(2024, 1, 6, 12, 0, 0, 0, time.UTC), 5},  // Saturday
		{time.Date(2024, 1, 7, 12, 0, 0, 0, time.UTC), 6},  // Sunday
	}

	for _, tt := range tests {
		got, ok := n.ISOWeekday(strconv.FormatInt(tt.date.UnixMilli(), 10))
		if !ok {
			t.Fatalf("%s: expected valid weekday", tt.date)
		}
		if got != tt.want {
			t.Errorf("%s: expected %d, got %d", tt.date, tt.want, got)
		}
	}
}

func TestWeekdayNames(t *testing.T) {
	if WeekdayShort(0) != "Mon" || WeekdayFull(0) != "Monday" {
		t.Errorf("expected Monday at index 0, got %s/%s", WeekdayShort(0), WeekdayFull(0))
	}
	if WeekdayShort(6) != "Sun" || WeekdayFull(6) != "Sunday" {
		t.Errorf("expected Sunday at index 6, got %s/%s", WeekdayShort(6), WeekdayFull(6))
	}
}
