package utils

import (
	"strconv"
	"strings"
	"time"

	"github.com/farxc/procurement-insights/internal/procurement/types"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"02/01/2006",
}

// ParseDate returns the zero time when dateStr is empty or matches none of the
// known layouts.
func ParseDate(dateStr string) time.Time {
	dateStr = strings.TrimSpace(dateStr)
	if IsNull(dateStr) {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, dateStr); err == nil {
			return t
		}
	}
	return time.Time{}
}

// ParseFloat coerces a textual measure. Anything that is not a finite number
// becomes types.Missing.
func ParseFloat(valStr string) types.Float {
	valStr = strings.TrimSpace(valStr)
	if IsNull(valStr) {
		return types.Missing
	}
	val, err := strconv.ParseFloat(valStr, 64)
	if err != nil {
		return types.Missing
	}
	return types.Some(val)
}

// IsNull reports whether s is one of the textual null markers written by
// dataframe libraries.
func IsNull(s string) bool {
	switch s {
	case "", "NaN", "nan", "NA", "NaT", "None", "null", "<nil>":
		return true
	}
	return false
}

// CleanString maps null markers to the empty string.
func CleanString(s string) string {
	s = strings.TrimSpace(s)
	if IsNull(s) {
		return ""
	}
	return s
}
