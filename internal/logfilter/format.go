package logfilter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const timestampLayout = "2006-01-02 15:04:05"

// Level is a severity token as it appears inside brackets in a log line.
type Level string

// Severity levels recognized in log lines. LevelAll is the match-any sentinel.
const (
	LevelAll     Level = "All"
	LevelDebug   Level = "Debug"
	LevelInfo    Level = "Info"
	LevelWarning Level = "Warning"
	LevelError   Level = "Error"
)

// Levels lists the concrete severities in ascending order.
var Levels = []Level{LevelDebug, LevelInfo, LevelWarning, LevelError}

// Format describes where the timestamp and level token live in a line.
type Format struct {
	Name        string
	timestampRe *regexp.Regexp
	levelRe     *regexp.Regexp
	millis      bool
}

var (
	// FormatStandard matches "2024-01-01 10:00:00 [Info] message".
	FormatStandard = Format{
		Name:        "standard",
		timestampRe: regexp.MustCompile(`^(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2})`),
		levelRe:     regexp.MustCompile(`\[(Debug|Info|Warning|Error)\]`),
	}

	// FormatMillis matches "2024-01-01 10:00:00 123:[Info]:message".
	FormatMillis = Format{
		Name:        "millis",
		timestampRe: regexp.MustCompile(`^(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}) (\d{3})`),
		levelRe:     regexp.MustCompile(`\[(Debug|Info|Warning|Error)\]:`),
		millis:      true,
	}
)

// FormatByName resolves a configured format name. Empty selects FormatStandard.
func FormatByName(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", FormatStandard.Name:
		return FormatStandard, nil
	case FormatMillis.Name:
		return FormatMillis, nil
	default:
		return Format{}, fmt.Errorf("unknown log format %q", name)
	}
}

// ExtractTimestamp parses the leading timestamp of line as wall time in zone.
// It reports false when the line does not start with a well-formed timestamp.
func (f Format) ExtractTimestamp(line string, zone *time.Location) (time.Time, bool) {
	if f.timestampRe == nil {
		return time.Time{}, false
	}
	m := f.timestampRe.FindStringSubmatch(line)
	if m == nil {
		return time.Time{}, false
	}
	if zone == nil {
		zone = ChinaStandardTime
	}
	ts, err := time.ParseInLocation(timestampLayout, m[1], zone)
	if err != nil {
		return time.Time{}, false
	}
	if f.millis && len(m) > 2 {
		ms, err := strconv.Atoi(m[2])
		if err != nil {
			return time.Time{}, false
		}
		ts = ts.Add(time.Duration(ms) * time.Millisecond)
	}
	return ts, true
}

// ExtractLevel returns the first bracketed level token in line.
func (f Format) ExtractLevel(line string) (Level, bool) {
	if f.levelRe == nil {
		return "", false
	}
	m := f.levelRe.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return Level(m[1]), true
}

// LevelSpan returns the byte offsets of the first level token, brackets included.
func (f Format) LevelSpan(line string) (start, end int, ok bool) {
	if f.levelRe == nil {
		return 0, 0, false
	}
	loc := f.levelRe.FindStringIndex(line)
	if loc == nil {
		return 0, 0, false
	}
	return loc[0], loc[1], true
}

// TimestampSpan returns the length in bytes of the leading timestamp, if any.
func (f Format) TimestampSpan(line string) (int, bool) {
	if f.timestampRe == nil {
		return 0, false
	}
	loc := f.timestampRe.FindStringIndex(line)
	if loc == nil {
		return 0, false
	}
	return loc[1], true
}
