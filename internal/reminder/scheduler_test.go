package reminder

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	domain "github.com/reyescuts/booking-api/internal/domain/booking"
	"github.com/reyescuts/booking-api/internal/models"
	"github.com/reyescuts/booking-api/internal/notify"
	"github.com/reyescuts/booking-api/internal/timezone"
)

type fakeRepo struct {
	domain.Repository

	appointments []models.Appointment
	claimed      map[string]bool
	released     []string
}

func (f *fakeRepo) AppointmentsByDate(ctx context.Context, date string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.Date == date {
			if f.claimed[ap.ID] {
				at := time.Now()
				ap.ReminderSentAt = &at
			}
			out = append(out, ap)
		}
	}
	return out, nil
}

func (f *fakeRepo) ClaimReminder(ctx context.Context, id string, at time.Time) (bool, error) {
	if f.claimed == nil {
		f.claimed = make(map[string]bool)
	}
	if f.claimed[id] {
		return false, nil
	}
	f.claimed[id] = true
	return true, nil
}

func (f *fakeRepo) ReleaseReminder(ctx context.Context, id string) error {
	delete(f.claimed, id)
	f.released = append(f.released, id)
	return nil
}

type fakeSender struct {
	emails []notify.EmailRequest
	err    error
}

func (f *fakeSender) SendEmail(ctx context.Context, req notify.EmailRequest) error {
	if f.err != nil {
		return f.err
	}
	f.emails = append(f.emails, req)
	return nil
}

func (f *fakeSender) SendSMS(ctx context.Context, phone, message string) error {
	return nil
}

const testTZ = "America/New_York"

func testScheduler(repo *fakeRepo, sender *fakeSender, now time.Time) *Scheduler {
	s := NewScheduler(repo, sender, testTZ, zap.NewNop())
	s.now = func() time.Time { return now }
	return s
}

func TestRunOnceSendsForImminentAppointments(t *testing.T) {
	loc := timezone.Location(testTZ)
	now := time.Date(2026, 3, 10, 13, 0, 0, 0, loc)

	repo := &fakeRepo{appointments: []models.Appointment{
		{ID: "in-59", Date: "2026-03-10", Time: "1:59 PM", Email: "a@example.com", Name: "A"},
		{ID: "in-61", Date: "2026-03-10", Time: "2:01 PM", Email: "b@example.com", Name: "B"},
		{ID: "started", Date: "2026-03-10", Time: "1:00 PM", Email: "c@example.com", Name: "C"},
		{ID: "no-email", Date: "2026-03-10", Time: "1:30 PM", Name: "D"},
		{ID: "tomorrow", Date: "2026-03-11", Time: "1:30 PM", Email: "e@example.com", Name: "E"},
	}}
	sender := &fakeSender{}

	sent := testScheduler(repo, sender, now).RunOnce(context.Background())

	if sent != 1 {
		t.Fatalf("sent = %d, want 1", sent)
	}
	if len(sender.emails) != 1 || sender.emails[0].Email != "a@example.com" {
		t.Fatalf("unexpected reminder emails: %+v", sender.emails)
	}
	if sender.emails[0].Type != notify.TypeReminder {
		t.Errorf("email type = %q, want %q", sender.emails[0].Type, notify.TypeReminder)
	}
}

func TestRunOnceIsIdempotent(t *testing.T) {
	loc := timezone.Location(testTZ)
	now := time.Date(2026, 3, 10, 13, 0, 0, 0, loc)

	repo := &fakeRepo{appointments: []models.Appointment{
		{ID: "ap-1", Date: "2026-03-10", Time: "1:30 PM", Email: "a@example.com", Name: "A"},
	}}
	sender := &fakeSender{}
	s := testScheduler(repo, sender, now)

	first := s.RunOnce(context.Background())
	second := s.RunOnce(context.Background())

	if first != 1 || second != 0 {
		t.Errorf("runs = (%d, %d), want (1, 0)", first, second)
	}
	if len(sender.emails) != 1 {
		t.Errorf("emails sent = %d, want 1", len(sender.emails))
	}
}

func TestRunOnceSkipsAlreadyReminded(t *testing.T) {
	loc := timezone.Location(testTZ)
	now := time.Date(2026, 3, 10, 13, 0, 0, 0, loc)
	already := now.Add(-10 * time.Minute)

	repo := &fakeRepo{appointments: []models.Appointment{
		{ID: "ap-1", Date: "2026-03-10", Time: "1:30 PM", Email: "a@example.com", Name: "A", ReminderSentAt: &already},
	}}
	sender := &fakeSender{}

	if sent := testScheduler(repo, sender, now).RunOnce(context.Background()); sent != 0 {
		t.Errorf("sent = %d, want 0", sent)
	}
}

func TestRunOnceReleasesClaimOnSendFailure(t *testing.T) {
	loc := timezone.Location(testTZ)
	now := time.Date(2026, 3, 10, 13, 0, 0, 0, loc)

	repo := &fakeRepo{appointments: []models.Appointment{
		{ID: "ap-1", Date: "2026-03-10", Time: "1:30 PM", Email: "a@example.com", Name: "A"},
	}}
	sender := &fakeSender{err: errors.New("provider down")}
	s := testScheduler(repo, sender, now)

	if sent := s.RunOnce(context.Background()); sent != 0 {
		t.Fatalf("sent = %d, want 0", sent)
	}
	if len(repo.released) != 1 || repo.released[0] != "ap-1" {
		t.Fatalf("released = %v, want [ap-1]", repo.released)
	}

	// Provider recovers; the next tick retries.
	sender.err = nil
	if sent := s.RunOnce(context.Background()); sent != 1 {
		t.Errorf("retry sent = %d, want 1", sent)
	}
}

func TestRunOnceUsesShopLocalDate(t *testing.T) {
	loc := timezone.Location(testTZ)
	// 11:30 PM local on March 10: UTC is already March 11.
	now := time.Date(2026, 3, 10, 23, 30, 0, 0, loc)

	repo := &fakeRepo{appointments: []models.Appointment{
		{ID: "late", Date: "2026-03-10", Time: "11:45 PM", Email: "a@example.com", Name: "A"},
	}}
	sender := &fakeSender{}

	if sent := testScheduler(repo, sender, now).RunOnce(context.Background()); sent != 1 {
		t.Errorf("sent = %d, want 1", sent)
	}
}
