package blueprint

import (
	"strconv"
	"strings"
)

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

// trailingDigits returns the run of ASCII digits at the end of s.
func trailingDigits(s string) string {
	i := len(s)
	for i > 0 && isDigit(s[i-1]) {
		i--
	}
	return s[i:]
}

// cutDigitsFromEnd drops the trailing digit run of s.
func cutDigitsFromEnd(s string) string {
	return strings.TrimRightFunc(s, func(r rune) bool { return r >= '0' && r <= '9' })
}

// withNumber replaces the trailing digit run of s with the decimal form of n.
func withNumber(s string, n int) string {
	return cutDigitsFromEnd(s) + strconv.Itoa(n)
}

// numericSuffix parses the trailing digit run of value.
func numericSuffix(field, value string) (int, error) {
	digits := trailingDigits(value)
	if digits == "" {
		return 0, fieldError(ErrConsistency, field, value, "%s %q does not end in a number", field, value)
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, fieldError(ErrConsistency, field, value, "%s %q ends in a number that does not fit: %v", field, value, err)
	}
	return n, nil
}
