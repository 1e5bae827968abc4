package logfilter

import (
	"fmt"
	"strings"
	"time"
)

// ChinaStandardTime is the fixed UTC+8 zone log timestamps are written in.
var ChinaStandardTime = time.FixedZone("CST", 8*60*60)

// ParseZone turns a "+08:00" style offset into a fixed zone.
func ParseZone(offset string) (*time.Location, error) {
	trimmed := strings.TrimSpace(offset)
	if trimmed == "" {
		return ChinaStandardTime, nil
	}
	if strings.EqualFold(trimmed, "Z") {
		return time.UTC, nil
	}
	// Offsets use the same syntax as the offset of an RFC 3339 bound.
	ref, err := time.Parse(time.RFC3339, "2000-01-01T00:00:00"+trimmed)
	if err != nil {
		return nil, fmt.Errorf("invalid utc offset %q", offset)
	}
	_, secs := ref.Zone()
	if secs == 8*60*60 {
		return ChinaStandardTime, nil
	}
	return time.FixedZone("UTC"+trimmed, secs), nil
}

// ParseBound parses an RFC 3339 bound and normalizes it into zone.
// An empty string means the bound is absent.
func ParseBound(value string, zone *time.Location) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, fmt.Errorf("invalid time %q: %w", value, err)
	}
	if zone == nil {
		zone = ChinaStandardTime
	}
	ts = ts.In(zone)
	return &ts, nil
}

// Criteria holds one query's filter inputs. The zero value keeps every line.
type Criteria struct {
	Text  string
	Level Level
	Start *time.Time
	End   *time.Time

	// EndInclusive switches the range from [Start, End) to [Start, End].
	EndInclusive bool

	Format Format
	Zone   *time.Location
}

// Keep reports whether line passes the text, level and range predicates, in
// that order. The range applies only when both Start and End are set.
func (c Criteria) Keep(line string) bool {
	if c.Text != "" && !strings.Contains(line, c.Text) {
		return false
	}

	if c.Level != "" && c.Level != LevelAll {
		level, ok := c.format().ExtractLevel(line)
		if !ok || level != c.Level {
			return false
		}
	}

	if c.Start == nil || c.End == nil {
		return true
	}
	ts, ok := c.format().ExtractTimestamp(line, c.Zone)
	if !ok {
		return false
	}
	return c.InRange(ts)
}

// InRange compares ts against the bounds. Both bounds must be set.
func (c Criteria) InRange(ts time.Time) bool {
	if ts.Before(*c.Start) {
		return false
	}
	if c.EndInclusive {
		return !ts.After(*c.End)
	}
	return ts.Before(*c.End)
}

// HasRange reports whether the range predicate is active.
func (c Criteria) HasRange() bool {
	return c.Start != nil && c.End != nil
}

func (c Criteria) format() Format {
	if c.Format.timestampRe == nil {
		return FormatStandard
	}
	return c.Format
}
