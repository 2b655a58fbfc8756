package validators

import (
	"regexp"
	"strings"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]{2,}$`)

// IsValidEmail is the syntactic local@domain.tld check; deliverability is
// the provider's problem.
func IsValidEmail(email string) bool {
	return emailRe.MatchString(strings.TrimSpace(email))
}

// PhoneDigits strips everything that is not a digit.
func PhoneDigits(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func IsValidPhone(phone string) bool {
	n := len(PhoneDigits(phone))
	return n >= 10 && n <= 15
}
