package notification

import (
	"regexp"
)

var nonDigits = regexp.MustCompile(`\D`)

// DigitsOnly strips every non-digit character from a phone number.
func DigitsOnly(phone string) string {
	return nonDigits.ReplaceAllString(phone, "")
}

// NormalizePhone converts a US phone number to E.164 (+1XXXXXXXXXX).
// Only 10-digit numbers and 11-digit numbers with a leading 1 are accepted.
func NormalizePhone(phone string) (string, bool) {
	digits := DigitsOnly(phone)
	switch {
	case len(digits) == 10:
		return "+1" + digits, true
	case len(digits) == 11 && digits[0] == '1':
		return "+" + digits, true
	default:
		return "", false
	}
}
