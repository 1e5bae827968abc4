package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/five82/logsift/internal/logfilter"
)

type segKind int

const (
	segText segKind = iota
	segTimestamp
	segLevel
	segJSON
)

type segment struct {
	text  string
	kind  segKind
	level logfilter.Level
}

// splitLine cuts a log line into styled segments: the leading timestamp, the
// first level token, and balanced {...} fragments. Lines that do not match
// format come back as plain text apart from JSON fragments.
func splitLine(line string, format logfilter.Format) []segment {
	var segs []segment
	rest := line
	consumed := 0

	if end, ok := format.TimestampSpan(line); ok && end > 0 {
		segs = append(segs, segment{text: line[:end], kind: segTimestamp})
		rest = line[end:]
		consumed = end
	}

	if start, end, ok := format.LevelSpan(line); ok && start >= consumed {
		level, _ := format.ExtractLevel(line)
		if start > consumed {
			segs = append(segs, jsonSegments(line[consumed:start])...)
		}
		segs = append(segs, segment{text: line[start:end], kind: segLevel, level: level})
		rest = line[end:]
	}

	return append(segs, jsonSegments(rest)...)
}

// jsonSegments marks balanced brace groups, skipping braces inside quoted
// strings. An unbalanced group stays plain text.
func jsonSegments(s string) []segment {
	var segs []segment
	plainStart := 0
	for i := 0; i < len(s); i++ {
		if s[i] != '{' {
			continue
		}
		end := matchBrace(s, i)
		if end < 0 {
			break
		}
		if i > plainStart {
			segs = append(segs, segment{text: s[plainStart:i]})
		}
		segs = append(segs, segment{text: s[i : end+1], kind: segJSON})
		plainStart = end + 1
		i = end
	}
	if plainStart < len(s) {
		segs = append(segs, segment{text: s[plainStart:]})
	}
	return segs
}

func matchBrace(s string, open int) int {
	depth := 0
	inString := false
	for i := open; i < len(s); i++ {
		c := s[i]
		if inString {
			switch c {
			case '\\':
				i++
			case '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// layoutSegments fits segments into rows of at most width cells. Without
// wrap the line is cut and the final cell becomes an ellipsis.
func layoutSegments(segs []segment, width int, wrap bool) [][]segment {
	if width <= 0 {
		return [][]segment{segs}
	}
	if !wrap {
		return [][]segment{truncateSegments(segs, width)}
	}

	var rows [][]segment
	var row []segment
	used := 0
	for _, seg := range segs {
		var b strings.Builder
		for _, r := range seg.text {
			w := runewidth.RuneWidth(r)
			if used+w > width && used > 0 {
				if b.Len() > 0 {
					row = append(row, segment{text: b.String(), kind: seg.kind, level: seg.level})
					b.Reset()
				}
				rows = append(rows, row)
				row = nil
				used = 0
			}
			b.WriteRune(r)
			used += w
		}
		if b.Len() > 0 {
			row = append(row, segment{text: b.String(), kind: seg.kind, level: seg.level})
		}
	}
	if len(row) > 0 || len(rows) == 0 {
		rows = append(rows, row)
	}
	return rows
}

func truncateSegments(segs []segment, width int) []segment {
	total := 0
	for _, seg := range segs {
		total += runewidth.StringWidth(seg.text)
	}
	if total <= width {
		return segs
	}

	const tail = "…"
	budget := width - runewidth.StringWidth(tail)
	out := make([]segment, 0, len(segs))
	for _, seg := range segs {
		w := runewidth.StringWidth(seg.text)
		if w <= budget {
			out = append(out, seg)
			budget -= w
			continue
		}
		if budget > 0 {
			seg.text = runewidth.Truncate(seg.text, budget, "")
			out = append(out, seg)
		}
		break
	}
	return append(out, segment{text: tail})
}

// truncate shortens value to limit display cells, ending with an ellipsis.
func truncate(value string, limit int) string {
	if limit <= 0 {
		return ""
	}
	return runewidth.Truncate(value, limit, "…")
}
