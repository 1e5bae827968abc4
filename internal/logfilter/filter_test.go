package logfilter

import (
	"testing"
	"time"
)

func mustBound(t *testing.T, value string) *time.Time {
	t.Helper()
	b, err := ParseBound(value, ChinaStandardTime)
	if err != nil {
		t.Fatalf("ParseBound(%q) error = %v", value, err)
	}
	return b
}

func TestParseBound(t *testing.T) {
	got, err := ParseBound("2023-05-01T12:00:00+08:00", ChinaStandardTime)
	if err != nil {
		t.Fatalf("ParseBound returned error: %v", err)
	}
	want := time.Date(2023, 5, 1, 12, 0, 0, 0, ChinaStandardTime)
	if !got.Equal(want) {
		t.Fatalf("ParseBound = %v, want %v", got, want)
	}
	if got.Location() != ChinaStandardTime {
		t.Fatalf("ParseBound location = %v, want CST", got.Location())
	}

	utc, err := ParseBound("2023-05-01T04:00:00Z", ChinaStandardTime)
	if err != nil {
		t.Fatalf("ParseBound returned error: %v", err)
	}
	if utc.Hour() != 12 {
		t.Fatalf("ParseBound normalized hour = %d, want 12", utc.Hour())
	}

	empty, err := ParseBound("", ChinaStandardTime)
	if err != nil || empty != nil {
		t.Fatalf("ParseBound(\"\") = %v, %v, want nil, nil", empty, err)
	}

	for _, bad := range []string{"not a date", "2023-05-01 12:00:00", "2023-05-01T12:00:00"} {
		if _, err := ParseBound(bad, ChinaStandardTime); err == nil {
			t.Errorf("ParseBound(%q) returned nil error, want error", bad)
		}
	}
}

func TestParseZone(t *testing.T) {
	tests := []struct {
		in      string
		offset  int
		wantErr bool
	}{
		{in: "", offset: 8 * 3600},
		{in: "+08:00", offset: 8 * 3600},
		{in: "Z", offset: 0},
		{in: "-05:30", offset: -(5*3600 + 30*60)},
		{in: "+0800", wantErr: true},
		{in: "eight", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			loc, err := ParseZone(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseZone(%q) returned nil error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseZone(%q) error = %v", tt.in, err)
			}
			_, offset := time.Date(2024, 1, 1, 0, 0, 0, 0, loc).Zone()
			if offset != tt.offset {
				t.Fatalf("ParseZone(%q) offset = %d, want %d", tt.in, offset, tt.offset)
			}
		})
	}
}

func TestCriteriaKeep(t *testing.T) {
	line := "2023-05-01 12:00:00 [Info] Test log message"

	dayStart := mustBound(t, "2023-05-01T00:00:00+08:00")
	dayEnd := mustBound(t, "2023-05-02T00:00:00+08:00")
	nextStart := mustBound(t, "2023-05-02T00:00:00+08:00")
	nextEnd := mustBound(t, "2023-05-03T00:00:00+08:00")

	tests := []struct {
		name     string
		line     string
		criteria Criteria
		want     bool
	}{
		{name: "zero criteria", line: line, want: true},
		{name: "text match", line: line, criteria: Criteria{Text: "Test", Level: LevelAll}, want: true},
		{name: "text miss", line: line, criteria: Criteria{Text: "NonExistent", Level: LevelAll}, want: false},
		{name: "text case sensitive", line: line, criteria: Criteria{Text: "test"}, want: false},
		{name: "text is literal", line: line, criteria: Criteria{Text: "T.st"}, want: false},
		{name: "level match", line: line, criteria: Criteria{Level: LevelInfo}, want: true},
		{name: "level miss", line: line, criteria: Criteria{Level: LevelDebug}, want: false},
		{name: "level missing token", line: "2023-05-01 12:00:00 Info plain", criteria: Criteria{Level: LevelInfo}, want: false},
		{name: "level outside enumeration", line: "2023-05-01 12:00:00 [Trace] x", criteria: Criteria{Level: "Trace"}, want: false},
		{name: "first level token wins", line: "2023-05-01 12:00:00 [Info] saw [Error]", criteria: Criteria{Level: LevelError}, want: false},
		{name: "in range", line: line, criteria: Criteria{Start: dayStart, End: dayEnd}, want: true},
		{name: "out of range", line: line, criteria: Criteria{Start: nextStart, End: nextEnd}, want: false},
		{name: "range without timestamp", line: "[Info] no time", criteria: Criteria{Start: dayStart, End: dayEnd}, want: false},
		{name: "range with invalid calendar date", line: "2023-02-30 12:00:00 [Info] x", criteria: Criteria{Start: dayStart, End: dayEnd}, want: false},
		{name: "only start ignores range", line: line, criteria: Criteria{Start: nextStart}, want: true},
		{name: "only end ignores range", line: line, criteria: Criteria{End: dayStart}, want: true},
		{name: "no timestamp without range", line: "garbage", criteria: Criteria{}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.criteria.Keep(tt.line); got != tt.want {
				t.Fatalf("Keep(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestCriteriaKeep_RangeEndpoints(t *testing.T) {
	start := mustBound(t, "2024-01-01T10:00:00+08:00")
	end := mustBound(t, "2024-01-01T10:10:00+08:00")

	tests := []struct {
		line      string
		halfOpen  bool
		inclusive bool
	}{
		{line: "2024-01-01 09:59:59 [Info] before", halfOpen: false, inclusive: false},
		{line: "2024-01-01 10:00:00 [Info] at start", halfOpen: true, inclusive: true},
		{line: "2024-01-01 10:05:00 [Info] inside", halfOpen: true, inclusive: true},
		{line: "2024-01-01 10:10:00 [Info] at end", halfOpen: false, inclusive: true},
		{line: "2024-01-01 10:10:01 [Info] after", halfOpen: false, inclusive: false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			c := Criteria{Start: start, End: end}
			if got := c.Keep(tt.line); got != tt.halfOpen {
				t.Errorf("half-open Keep = %v, want %v", got, tt.halfOpen)
			}
			c.EndInclusive = true
			if got := c.Keep(tt.line); got != tt.inclusive {
				t.Errorf("closed Keep = %v, want %v", got, tt.inclusive)
			}
		})
	}
}

func TestCriteriaKeep_OffsetAwareBounds(t *testing.T) {
	// 02:05 UTC is 10:05 in UTC+8.
	start := mustBound(t, "2024-01-01T02:00:00Z")
	end := mustBound(t, "2024-01-01T02:10:00Z")
	c := Criteria{Start: start, End: end}
	if !c.Keep("2024-01-01 10:05:00 [Info] x") {
		t.Fatalf("Keep returned false for a line inside the UTC-expressed range")
	}
	if c.Keep("2024-01-01 02:05:00 [Info] x") {
		t.Fatalf("Keep returned true for a line only matching if read as UTC")
	}
}

func TestCriteriaKeep_MillisFormat(t *testing.T) {
	start := mustBound(t, "2024-01-01T10:05:00+08:00")
	end := mustBound(t, "2024-01-01T10:05:00.500+08:00")
	c := Criteria{Level: LevelError, Start: start, End: end, Format: FormatMillis}

	if !c.Keep("2024-01-01 10:05:00 250:[Error]:failure") {
		t.Errorf("Keep dropped a line at .250 inside [.000, .500)")
	}
	if c.Keep("2024-01-01 10:05:00 750:[Error]:failure") {
		t.Errorf("Keep kept a line at .750 outside [.000, .500)")
	}
	if c.Keep("2024-01-01 10:05:00 250 [Error] failure") {
		t.Errorf("Keep kept a line whose level token lacks the millis-format colon")
	}
}
