package survey

import (
	"strconv"
	"strings"
)

// ParsePercent parses a self-reported percentage answer such as "40%". The
// trailing percent marker is required; anything malformed parses as 0 so a
// sloppy free-text answer never aborts report generation.
func ParsePercent(raw string) float64 {
	s := strings.TrimSpace(raw)
	if !strings.HasSuffix(s, "%") {
		return 0
	}
	s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// FormatPercent renders an accumulated total without a spurious fraction.
func FormatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
