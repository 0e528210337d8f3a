package week

import (
	"errors"
	"testing"
	"time"
)

func TestKey(t *testing.T) {
	tests := []struct {
		date time.Time
		want string
	}{
		{time.Date(2025, time.August, 27, 12, 0, 0, 0, time.UTC), "2025-W35"},
		{time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC), "2025-W2"},
		{time.Date(2024, time.December, 30, 0, 0, 0, 0, time.UTC), "2025-W1"},
		{time.Date(2021, time.January, 3, 0, 0, 0, 0, time.UTC), "2020-W53"},
	}

	for _, tt := range tests {
		got := Key(tt.date)
		if got != tt.want {
			t.Fatalf("Key(%s): expected %q, got %q", tt.date.Format("2006-01-02"), tt.want, got)
		}
	}
}

func TestParseRejectsMalformedKeys(t *testing.T) {
	for _, key := range []string{"", "2025", "2025-35", "25-W3", "2025-W0", "2025-W54", "2025-W53", "2025-Wx"} {
		_, _, err := Parse(key)
		if !errors.Is(err, ErrInvalidKey) {
			t.Fatalf("Parse(%q): expected ErrInvalidKey, got %v", key, err)
		}
	}

	year, wk, err := Parse("2020-W53")
	if err != nil {
		t.Fatalf("parse 2020-W53: %v", err)
	}
	if year != 2020 || wk != 53 {
		t.Fatalf("expected 2020/53, got %d/%d", year, wk)
	}
}

func TestStartIsMonday(t *testing.T) {
	start, err := Start("2025-W35")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	want := time.Date(2025, time.August, 25, 0, 0, 0, 0, time.UTC)
	if !start.Equal(want) {
		t.Fatalf("expected %s, got %s", want, start)
	}
}

func TestShiftCrossesYears(t *testing.T) {
	tests := []struct {
		key   string
		delta int
		want  string
	}{
		{"2025-W35", 1, "2025-W36"},
		{"2025-W35", -1, "2025-W34"},
		{"2025-W1", -1, "2024-W52"},
		{"2020-W53", 1, "2021-W1"},
		{"2025-W10", 0, "2025-W10"},
	}

	for _, tt := range tests {
		got, err := Shift(tt.key, tt.delta)
		if err != nil {
			t.Fatalf("shift %q by %d: %v", tt.key, tt.delta, err)
		}
		if got != tt.want {
			t.Fatalf("shift %q by %d: expected %q, got %q", tt.key, tt.delta, tt.want, got)
		}
	}
}

func TestLessOrdersChronologically(t *testing.T) {
	if !Less("2025-W9", "2025-W10") {
		t.Fatalf("expected 2025-W9 before 2025-W10")
	}
	if !Less("2024-W52", "2025-W1") {
		t.Fatalf("expected 2024-W52 before 2025-W1")
	}
	if Less("garbage", "2025-W1") {
		t.Fatalf("expected malformed keys to sort last")
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-08-25")
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	if !d.Equal(time.Date(2025, 8, 25, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date %v", d)
	}

	ts, err := ParseDate("2025-08-25T10:00:00+02:00")
	if err != nil {
		t.Fatalf("parse timestamp: %v", err)
	}
	if ts.Hour() != 8 || ts.Location() != time.UTC {
		t.Fatalf("expected 08:00 UTC, got %v", ts)
	}

	if _, err := ParseDate("next tuesday"); err == nil {
		t.Fatalf("expected error for unparsable date")
	}
}
