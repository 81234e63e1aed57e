package util

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reThousandDot   = regexp.MustCompile(`^\d{1,3}(?:\.\d{3})+$`)
	reThousandComma = regexp.MustCompile(`^\d{1,3}(?:,\d{3})+$`)
	reCurrency      = regexp.MustCompile(`^[$€£\s]+|[$€£\s]+$`)
)

// ParseNumber coerces a spreadsheet cell into a float. Handles thousand
// separators (space, dot, comma) and decimal commas. Returns nil when
// the cell is empty or not numeric; coercion failure is never fatal.
func ParseNumber(input string) *float64 {
	s := strings.TrimSpace(strings.ReplaceAll(input, "\u00A0", " "))
	if s == "" {
		return nil
	}
	s = reCurrency.ReplaceAllString(s, "")
	s = normalizeNumericToken(s)
	parsed, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return FloatPtr(parsed)
}

func normalizeNumericToken(token string) string {
	compact := strings.ReplaceAll(token, " ", "")
	if reThousandDot.MatchString(compact) {
		return strings.ReplaceAll(compact, ".", "")
	}
	if reThousandComma.MatchString(compact) {
		return strings.ReplaceAll(compact, ",", "")
	}
	if strings.Contains(compact, ",") && !strings.Contains(compact, ".") {
		return strings.ReplaceAll(compact, ",", ".")
	}
	if strings.Contains(compact, ",") && strings.Contains(compact, ".") {
		return strings.ReplaceAll(compact, ",", "")
	}
	return compact
}
