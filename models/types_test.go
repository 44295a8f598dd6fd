// ABOUTME: Tests for model helpers
// ABOUTME: Covers channel validation and timestamp round-trips
package models

import (
	"testing"
	"time"
)

func TestValidChannel(t *testing.T) {
	for _, c := range []string{"note", "call", "text", "meet"} {
		if !ValidChannel(c) {
			t.Errorf("Expected %q to be valid", c)
		}
	}

	for _, c := range []string{"", "email", "NOTE", "fax"} {
		if ValidChannel(c) {
			t.Errorf("Expected %q to be invalid", c)
		}
	}
}

func TestFormatTimeSortable(t *testing.T) {
	t1 := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	t2 := time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)

	s1 := FormatTime(t1)
	s2 := FormatTime(t2)

	if s1 != "2024-01-01T10:00:00.000Z" {
		t.Errorf("Unexpected rendering: %s", s1)
	}
	if !(s1 < s2) {
		t.Errorf("Expected %s to sort before %s", s1, s2)
	}
}

func TestFormatTimeNormalizesZone(t *testing.T) {
	loc := time.FixedZone("CST", -6*3600)
	local := time.Date(2024, 1, 1, 4, 0, 0, 0, loc)

	if got := FormatTime(local); got != "2024-01-01T10:00:00.000Z" {
		t.Errorf("Expected UTC rendering, got %s", got)
	}
}

func TestParseTimeRoundTrip(t *testing.T) {
	orig := time.Date(2024, 3, 1, 10, 30, 15, 250*int(time.Millisecond), time.UTC)

	parsed, err := ParseTime(FormatTime(orig))
	if err != nil {
		t.Fatalf("ParseTime failed: %v", err)
	}
	if !parsed.Equal(orig) {
		t.Errorf("Round trip mismatch: %v != %v", parsed, orig)
	}
}

func TestParseTimeRejectsGarbage(t *testing.T) {
	if _, err := ParseTime("yesterday"); err == nil {
		t.Error("Expected error for unparseable timestamp")
	}
}
