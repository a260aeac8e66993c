package ingest

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// CoerceFloat converts an arbitrary cell value to a float64. The value is
// rendered as text, every rune that is not a digit, minus sign or decimal
// point is stripped, and the remainder is parsed. Anything that still fails to
// parse (empty, sign-only, multiple points) becomes 0. The function is total:
// it never returns NaN or an infinity and never fails.
//
// Thousands separators and currency symbols are handled by the strip rule.
// A value using ',' as the decimal separator keeps only its digits and any
// '.' thousands separators, so "1.234,56" parses as 1.23456 — a known
// limitation inherited from the source exports.
func CoerceFloat(v any) float64 {
	var s string
	switch t := v.(type) {
	case nil:
		return 0
	case string:
		s = t
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return 0
		}
		return t
	case int:
		return float64(t)
	case int64:
		return float64(t)
	default:
		s = fmt.Sprint(t)
	}

	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '-' || r == '.' {
			return r
		}
		return -1
	}, s)
	if cleaned == "" {
		return 0
	}

	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// CoerceColumn coerces a column of raw cells into floats of equal length.
func CoerceColumn(cells []string) []float64 {
	out := make([]float64, len(cells))
	for i, c := range cells {
		out[i] = CoerceFloat(c)
	}
	return out
}
