package dataset

import (
	"testing"
	"time"
)

func TestParseApprovedAtLayouts(t *testing.T) {
	want := time.Date(2017, 10, 2, 11, 7, 15, 0, time.UTC)
	for _, raw := range []string{
		"2017-10-02 11:07:15",
		"2017-10-02T11:07:15Z",
		"2017-10-02T13:07:15+02:00",
		"2017-10-02T11:07:15",
		" 2017-10-02 11:07:15 ",
	} {
		got, ok := ParseApprovedAt(raw)
		if !ok {
			t.Fatalf("expected %q to parse", raw)
		}
		if !got.Equal(want) || got.Location() != time.UTC {
			t.Fatalf("parse %q: expected %v UTC, got %v", raw, want, got)
		}
	}

	day, ok := ParseApprovedAt("2017-10-02")
	if !ok || !day.Equal(time.Date(2017, 10, 2, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected date-only value to parse to midnight, got %v (%v)", day, ok)
	}
}

func TestParseApprovedAtRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"", "   ", "02/10/2017", "NaT"} {
		if _, ok := ParseApprovedAt(raw); ok {
			t.Fatalf("expected %q to be rejected", raw)
		}
	}
}

func TestCalendarDay(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	ts := time.Date(2017, 10, 2, 23, 30, 0, 0, loc) // 02:30 UTC next day
	got := CalendarDay(ts)
	want := time.Date(2017, 10, 3, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
