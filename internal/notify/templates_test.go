package notify

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestBuildEmailEscapesInterpolatedValues(t *testing.T) {
	subject, body, err := BuildEmail(EmailRequest{
		Type: TypeShopNotification,
		Name: "<script>x</script>",
		Date: "2026-02-24",
	}, "Reyes Cuts Barbershop")
	if err != nil {
		t.Fatalf("BuildEmail: %v", err)
	}

	wantSubject := "New Appointment: &lt;script&gt;x&lt;/script&gt; - 2026-02-24"
	if subject != wantSubject {
		t.Errorf("subject = %q, want %q", subject, wantSubject)
	}

	if strings.Contains(body, "<script>") {
		t.Errorf("body contains raw script tag: %q", body)
	}
	if !strings.Contains(body, "&lt;script&gt;x&lt;/script&gt;") {
		t.Errorf("body missing escaped name: %q", body)
	}
}

func TestBuildEmailTruncatesLongFields(t *testing.T) {
	_, body, err := BuildEmail(EmailRequest{
		Type:  TypeShopNotification,
		Name:  strings.Repeat("a", 300),
		Notes: strings.Repeat("n", 5000),
	}, "Reyes Cuts Barbershop")
	if err != nil {
		t.Fatalf("BuildEmail: %v", err)
	}

	if strings.Contains(body, strings.Repeat("a", 101)) {
		t.Error("name was not capped at 100 chars")
	}
	if strings.Contains(body, strings.Repeat("n", 1001)) {
		t.Error("notes were not capped at 1000 chars")
	}
}

func TestEscNeverSplitsARune(t *testing.T) {
	// One leading ASCII byte puts the 100-byte cap mid-rune.
	in := "x" + strings.Repeat("é", 60)

	got := esc(in, 100)
	if !utf8.ValidString(got) {
		t.Errorf("esc produced invalid UTF-8: %q", got)
	}
	if len(got) > 100 {
		t.Errorf("esc result is %d bytes before escaping, want <= 100", len(got))
	}
}

func TestBuildEmailLocalizesBySource(t *testing.T) {
	subject, body, err := BuildEmail(EmailRequest{
		Type:   TypeCustomerConfirmation,
		Name:   "Ana",
		Source: "es",
	}, "Reyes Cuts Barbershop")
	if err != nil {
		t.Fatalf("BuildEmail: %v", err)
	}
	if !strings.HasPrefix(subject, "Cita confirmada") {
		t.Errorf("spanish subject = %q", subject)
	}
	if !strings.Contains(body, "Gracias, Ana") {
		t.Errorf("spanish body missing greeting: %q", body)
	}

	subject, _, err = BuildEmail(EmailRequest{
		Type: TypeCustomerConfirmation,
		Name: "Ana",
	}, "Reyes Cuts Barbershop")
	if err != nil {
		t.Fatalf("BuildEmail: %v", err)
	}
	if !strings.HasPrefix(subject, "Appointment Confirmed") {
		t.Errorf("english subject = %q", subject)
	}
}

func TestBuildEmailRejectsUnknownType(t *testing.T) {
	if _, _, err := BuildEmail(EmailRequest{Type: "marketing_blast", Name: "x"}, "shop"); err == nil {
		t.Error("expected error for unknown type")
	}
}

func TestIsKnownType(t *testing.T) {
	for _, typ := range []string{
		TypeShopNotification, TypeCustomerConfirmation, TypeReminder,
		TypeContactNotification, TypeContactReply,
	} {
		if !IsKnownType(typ) {
			t.Errorf("IsKnownType(%q) = false", typ)
		}
	}
	if IsKnownType("spam") {
		t.Error(`IsKnownType("spam") = true`)
	}
}
