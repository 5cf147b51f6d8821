package util

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseDuration parses duration strings that additionally allow a "d"
// (day) suffix on top of the standard time.ParseDuration units, so
// config values like "7d" or "30m" both work.
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}

	if strings.HasSuffix(s, "d") {
		days, err := strconv.ParseFloat(strings.TrimSuffix(s, "d"), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid day duration %q: %w", s, err)
		}
		return time.Duration(days * 24 * float64(time.Hour)), nil
	}

	return time.ParseDuration(s)
}
