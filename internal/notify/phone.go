package notify

import (
	"strings"
	"unicode/utf8"

	"github.com/reyescuts/booking-api/internal/validators"
)

const maxSMSLength = 320

// FormatSMSNumber turns whatever the form collected into something the
// provider accepts. 10-digit numbers are assumed US; an 11-digit number
// that already starts with 1 just gains the plus. Anything else is passed
// through with a naive "+" and left to the provider to reject.
func FormatSMSNumber(raw string) string {
	digits := validators.PhoneDigits(raw)

	switch {
	case len(digits) == 10:
		return "+1" + digits
	case len(digits) == 11 && strings.HasPrefix(digits, "1"):
		return "+" + digits
	default:
		return "+" + digits
	}
}

// TruncateSMS caps the message body at the provider's limit, cutting on
// a rune boundary so localized messages stay valid UTF-8.
func TruncateSMS(message string) string {
	if len(message) <= maxSMSLength {
		return message
	}
	cut := maxSMSLength
	for cut > 0 && !utf8.RuneStart(message[cut]) {
		cut--
	}
	return message[:cut]
}
