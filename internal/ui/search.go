package ui

import (
	"fmt"
	"regexp"
	"strings"
)

// searchMode selects how the in-results search picks lines.
type searchMode int

const (
	searchLoose  searchMode = iota // substring, ignoring case
	searchStrict                   // substring, case-sensitive
	searchRegex                    // regular expression, ignoring case
	searchRange                    // every line from the first to the last strict match
	searchModeCount
)

func (s searchMode) String() string {
	switch s {
	case searchStrict:
		return "strict"
	case searchRegex:
		return "regex"
	case searchRange:
		return "range"
	default:
		return "loose"
	}
}

func (s searchMode) next() searchMode {
	return (s + 1) % searchModeCount
}

// matchLines returns the indices of lines selected by pattern, in order.
// An empty pattern selects nothing.
func matchLines(lines []string, pattern string, mode searchMode) ([]int, error) {
	if pattern == "" {
		return nil, nil
	}

	var out []int
	switch mode {
	case searchStrict:
		for i, line := range lines {
			if strings.Contains(line, pattern) {
				out = append(out, i)
			}
		}

	case searchRegex:
		re, err := regexp.Compile("(?i)" + pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid regex: %w", err)
		}
		for i, line := range lines {
			if re.MatchString(line) {
				out = append(out, i)
			}
		}

	case searchRange:
		first, last := -1, -1
		for i, line := range lines {
			if strings.Contains(line, pattern) {
				if first < 0 {
					first = i
				}
				last = i
			}
		}
		if first < 0 {
			return nil, nil
		}
		for i := first; i <= last; i++ {
			out = append(out, i)
		}

	default:
		needle := strings.ToLower(pattern)
		for i, line := range lines {
			if strings.Contains(strings.ToLower(line), needle) {
				out = append(out, i)
			}
		}
	}
	return out, nil
}
