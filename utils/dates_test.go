package utils

import (
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-03-01")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if d.Year() != 2024 || d.Month() != time.March || d.Day() != 1 {
		t.Errorf("parsed = %v", d)
	}

	for _, bad := range []string{"", "03/01/2024", "2024-3-1", "2024-13-01", "not a date"} {
		if _, err := ParseDate(bad); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("ParseDate(%q): got %v, want ErrInvalidDate", bad, err)
		}
	}
}

func TestParseTimestamp(t *testing.T) {
	cases := []string{
		"2024-03-01T08:30:00Z",
		"2024-03-01T08:30:00+02:00",
		"2024-03-01T08:30:00",
		"2024-03-01",
	}
	for _, s := range cases {
		tt, err := ParseTimestamp(s)
		if err != nil {
			t.Errorf("ParseTimestamp(%q): %v", s, err)
			continue
		}
		if tt.Year() != 2024 || tt.Month() != time.March || tt.Day() != 1 {
			t.Errorf("ParseTimestamp(%q) = %v", s, tt)
		}
	}
	if _, err := ParseTimestamp("yesterday"); err == nil {
		t.Error("expected error for free-form input")
	}
}

func TestStartOfWeek(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"2024-03-04", "2024-03-04"}, // Monday maps to itself
		{"2024-03-06", "2024-03-04"}, // Wednesday
		{"2024-03-10", "2024-03-04"}, // Sunday belongs to the preceding Monday
		{"2024-03-11", "2024-03-11"}, // next Monday
	}
	for _, c := range cases {
		d, err := ParseDate(c.in)
		if err != nil {
			t.Fatalf("ParseDate: %v", err)
		}
		if got := FormatDate(StartOfWeek(d)); got != c.want {
			t.Errorf("StartOfWeek(%s) = %s, want %s", c.in, got, c.want)
		}
	}
}

func TestMonthRange(t *testing.T) {
	start, end, err := MonthRange(2024, 2)
	if err != nil {
		t.Fatalf("MonthRange: %v", err)
	}
	if FormatDate(start) != "2024-02-01" || FormatDate(end) != "2024-02-29" {
		t.Errorf("leap february = %s..%s", FormatDate(start), FormatDate(end))
	}

	start, end, err = MonthRange(2023, 2)
	if err != nil {
		t.Fatalf("MonthRange: %v", err)
	}
	if FormatDate(end) != "2023-02-28" {
		t.Errorf("plain february end = %s, want 2023-02-28", FormatDate(end))
	}

	if _, _, err := MonthRange(2024, 0); err == nil {
		t.Error("expected error for month 0")
	}
	if _, _, err := MonthRange(2024, 13); err == nil {
		t.Error("expected error for month 13")
	}
}

func TestDaysBetween(t *testing.T) {
	a, _ := ParseDate("2024-03-01")
	b, _ := ParseDate("2024-03-05")

	if got := DaysBetween(a, b); got != 5 {
		t.Errorf("DaysBetween = %d, want 5 (inclusive)", got)
	}
	if got := DaysBetween(a, a); got != 1 {
		t.Errorf("same day = %d, want 1", got)
	}
	if got := DaysBetween(b, a); got != 0 {
		t.Errorf("reversed = %d, want 0", got)
	}
}

func TestSuggestMealType(t *testing.T) {
	cases := []struct {
		hour int
		want string
	}{
		{7, "breakfast"},
		{12, "lunch"},
		{16, "snack"},
		{19, "dinner"},
		{2, "snack"},
	}
	for _, c := range cases {
		tt := time.Date(2024, 3, 1, c.hour, 0, 0, 0, time.UTC)
		if got := SuggestMealType(tt); got != c.want {
			t.Errorf("SuggestMealType(hour %d) = %s, want %s", c.hour, got, c.want)
		}
	}
}
