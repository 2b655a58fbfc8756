package notify

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestFormatSMSNumber(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"5551234567", "+15551234567"},
		{"(555) 123-4567", "+15551234567"},
		{"15551234567", "+15551234567"},
		{"1-555-123-4567", "+15551234567"},
		{"442071234567", "+442071234567"},
		{"+34 612 345 678", "+34612345678"},
	}

	for _, tt := range tests {
		if got := FormatSMSNumber(tt.in); got != tt.want {
			t.Errorf("FormatSMSNumber(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTruncateSMS(t *testing.T) {
	short := "see you soon"
	if got := TruncateSMS(short); got != short {
		t.Errorf("TruncateSMS should leave short messages alone, got %q", got)
	}

	long := strings.Repeat("x", 500)
	got := TruncateSMS(long)
	if len(got) != maxSMSLength {
		t.Errorf("TruncateSMS length = %d, want %d", len(got), maxSMSLength)
	}

	// A leading ASCII byte shifts the cap onto the middle of a rune; the
	// cut must back up instead of emitting a broken byte.
	spanish := "x" + strings.Repeat("é", 200)
	got = TruncateSMS(spanish)
	if !utf8.ValidString(got) {
		t.Errorf("TruncateSMS produced invalid UTF-8: %q", got)
	}
	if len(got) > maxSMSLength {
		t.Errorf("TruncateSMS length = %d, want <= %d", len(got), maxSMSLength)
	}
}
