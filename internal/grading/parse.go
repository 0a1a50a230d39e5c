package grading

import (
	"strconv"
	"strings"

	"github.com/denisok6893-rgb/warehouse-grading/internal/domain"
)

// ParseNumber reads the leading decimal number of a form field.
// Text with no numeric prefix, or that overflows, yields 0.
func ParseNumber(v domain.NumericText) float64 {
	prefix := numericPrefix(string(v), true)
	if prefix == "" {
		return 0
	}
	f, err := strconv.ParseFloat(prefix, 64)
	if err != nil {
		return 0
	}
	return f
}

// ParseInteger reads the leading integer of a form field ("12.9" is 12).
func ParseInteger(v domain.NumericText) int {
	prefix := numericPrefix(string(v), false)
	if prefix == "" {
		return 0
	}
	n, err := strconv.Atoi(prefix)
	if err != nil {
		return 0
	}
	return n
}

func numericPrefix(s string, fractional bool) string {
	s = strings.TrimSpace(s)
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if fractional && i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			frac++
		}
		if digits+frac > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
		return ""
	}
	if fractional && i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			i = k
		}
	}
	return s[:i]
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
