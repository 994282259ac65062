package program

import (
	"fmt"
	"strings"
)

// ParseDuration converts an interval duration string to seconds. Accepted
// shapes are "<n> min", "<n> sec" and "<n> min <m> sec"; the numeric part is
// read as its leading integer, so "2.5 min" parses as 2 minutes, matching
// how the timer interprets template data. A string that does not yield a
// positive number of seconds is rejected loudly rather than treated as zero,
// since a silent zero would corrupt timer and distance math downstream.
func ParseDuration(s string) (int, error) {
	fields := strings.Fields(s)
	if len(fields) < 2 {
		return 0, fmt.Errorf("malformed duration %q", s)
	}

	value, err := leadingInt(fields[0])
	if err != nil {
		return 0, fmt.Errorf("malformed duration %q: %w", s, err)
	}

	var total int
	switch {
	case strings.Contains(fields[1], "min"):
		total = value * 60
	case strings.Contains(fields[1], "sec"):
		total = value
	default:
		return 0, fmt.Errorf("malformed duration %q: unknown unit %q", s, fields[1])
	}

	// Optional trailing "<m> sec" after a minutes part.
	if len(fields) >= 4 && strings.Contains(fields[1], "min") && strings.Contains(fields[3], "sec") {
		secs, err := leadingInt(fields[2])
		if err != nil {
			return 0, fmt.Errorf("malformed duration %q: %w", s, err)
		}
		total += secs
	}

	if total <= 0 {
		return 0, fmt.Errorf("duration %q is not positive", s)
	}
	return total, nil
}

// FormatSeconds renders seconds back into a duration string: minutes with a
// seconds remainder when at or above a minute, plain seconds below it.
func FormatSeconds(n int) string {
	if n >= 60 {
		if n%60 > 0 {
			return fmt.Sprintf("%d min %d sec", n/60, n%60)
		}
		return fmt.Sprintf("%d min", n/60)
	}
	return fmt.Sprintf("%d sec", n)
}

// leadingInt reads the decimal digits at the start of s.
func leadingInt(s string) (int, error) {
	var n, i int
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		n = n*10 + int(s[i]-'0')
		i++
	}
	if i == 0 {
		return 0, fmt.Errorf("no leading integer in %q", s)
	}
	return n, nil
}
