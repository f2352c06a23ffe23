package validators

import (
	"strings"
	"unicode"
)

// IsPhoneValid accepts an optional leading '+', digits and the separators
// space, '-', '(' and ')'; between 5 and 15 digits overall.
func IsPhoneValid(phone string) bool {
	phone = strings.TrimSpace(phone)
	if phone == "" || len(phone) > 20 {
		return false
	}

	digits := 0
	for i, r := range phone {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '+' && i == 0:
		case r == ' ' || r == '-' || r == '(' || r == ')':
		default:
			return false
		}
	}
	return digits >= 5 && digits <= 15
}
