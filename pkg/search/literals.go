package search

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// parseSizeLiteral decodes a size literal into bytes. Units KB, MB and
// GB are 1024-based; a bare number is bytes.
func parseSizeLiteral(value string) (int64, error) {
	v := strings.TrimSpace(value)

	i := 0
	for i < len(v) && (isDigit(v[i]) || v[i] == '.') {
		i++
	}
	magnitude, unit := v[:i], strings.ToUpper(strings.TrimSpace(v[i:]))

	if magnitude == "" {
		return 0, fmt.Errorf("non-numeric size magnitude %q", value)
	}
	f, err := strconv.ParseFloat(magnitude, 64)
	if err != nil {
		return 0, fmt.Errorf("non-numeric size magnitude %q", value)
	}

	var mult int64
	switch unit {
	case "":
		mult = 1
	case "KB":
		mult = 1024
	case "MB":
		mult = 1024 * 1024
	case "GB":
		mult = 1024 * 1024 * 1024
	default:
		return 0, fmt.Errorf("unknown size unit %q", unit)
	}

	return int64(f * float64(mult)), nil
}

var dateFormats = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006/01/02",
}

// parseDateLiteral decodes a quoted ISO-like date literal.
func parseDateLiteral(value string) (time.Time, error) {
	v := strings.TrimSpace(value)
	for _, format := range dateFormats {
		if t, err := time.Parse(format, v); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("malformed date literal %q", value)
}
