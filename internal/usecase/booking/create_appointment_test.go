package booking

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	domain "github.com/reyescuts/booking-api/internal/domain/booking"
	"github.com/reyescuts/booking-api/internal/httperr"
	"github.com/reyescuts/booking-api/internal/models"
	"github.com/reyescuts/booking-api/internal/notify"
)

type fakeRepo struct {
	domain.Repository

	appointments []models.Appointment
	blocked      []models.BlockedTime
	barbers      map[string]*models.Barber

	readErr error
	created []*models.Appointment
}

func (f *fakeRepo) AppointmentsByDate(ctx context.Context, date string) ([]models.Appointment, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.Date == date {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (f *fakeRepo) BlockedTimesByDate(ctx context.Context, date, barberID string) ([]models.BlockedTime, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	var out []models.BlockedTime
	for _, bt := range f.blocked {
		if bt.Date == date && (barberID == "" || bt.BarberID == barberID) {
			out = append(out, bt)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetBarber(ctx context.Context, id string) (*models.Barber, error) {
	if b, ok := f.barbers[id]; ok {
		return b, nil
	}
	return nil, errors.New("not found")
}

func (f *fakeRepo) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	for _, existing := range f.appointments {
		sameBarber := existing.BarberID != nil && ap.BarberID != nil &&
			*existing.BarberID == *ap.BarberID
		if existing.Date == ap.Date && existing.Time == ap.Time && sameBarber {
			return httperr.ErrBusiness("slot_taken")
		}
	}
	f.created = append(f.created, ap)
	f.appointments = append(f.appointments, *ap)
	return nil
}

type nopSender struct{}

func (nopSender) SendEmail(ctx context.Context, req notify.EmailRequest) error { return nil }
func (nopSender) SendSMS(ctx context.Context, phone, message string) error     { return nil }

func newCreateUC(repo *fakeRepo) *CreateAppointment {
	logger := zap.NewNop()
	return NewCreateAppointment(
		repo,
		NewCheckAvailability(repo, logger),
		nopSender{},
		notify.NewOutbox(logger),
		nil,
		"Reyes Cuts Barbershop",
		logger,
	)
}

func validInput() CreateAppointmentInput {
	return CreateAppointmentInput{
		Name:     "Carlos Vega",
		Email:    "carlos@example.com",
		Phone:    "555-123-4567",
		BarberID: "b1",
		Service:  "Fade",
		Date:     "2026-03-10",
		Time:     "2:00 PM",
		Source:   "es",
	}
}

func repoWithBarber() *fakeRepo {
	return &fakeRepo{
		barbers: map[string]*models.Barber{
			"b1": {ID: "b1", Name: "Luis", Phone: "5559990000"},
		},
	}
}

func TestCreateAppointmentPersistsFreeSlot(t *testing.T) {
	repo := repoWithBarber()

	ap, err := newCreateUC(repo).Execute(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if len(repo.created) != 1 {
		t.Fatalf("created = %d appointments, want 1", len(repo.created))
	}
	if ap.BarberID == nil || *ap.BarberID != "b1" {
		t.Errorf("barber id not persisted: %+v", ap)
	}
	if ap.Source != "es" {
		t.Errorf("source = %q, want es", ap.Source)
	}
}

func TestCreateAppointmentRejectsTakenSlot(t *testing.T) {
	repo := repoWithBarber()
	barberID := "b1"
	repo.appointments = []models.Appointment{
		{Date: "2026-03-10", Time: "2:00 PM", BarberID: &barberID},
	}

	_, err := newCreateUC(repo).Execute(context.Background(), validInput())
	if !httperr.IsBusiness(err, "slot_taken") {
		t.Fatalf("err = %v, want slot_taken", err)
	}
	if len(repo.created) != 0 {
		t.Errorf("a conflicting booking was written: %+v", repo.created)
	}
}

func TestCreateAppointmentRejectsBlockedSlot(t *testing.T) {
	repo := repoWithBarber()
	repo.blocked = []models.BlockedTime{
		{Date: "2026-03-10", Time: "2:00 PM", BarberID: "b1"},
	}

	_, err := newCreateUC(repo).Execute(context.Background(), validInput())
	if !httperr.IsBusiness(err, "slot_taken") {
		t.Fatalf("err = %v, want slot_taken", err)
	}
}

func TestCreateAppointmentFailsOpenOnReadError(t *testing.T) {
	repo := repoWithBarber()
	repo.readErr = errors.New("store unavailable")

	// The availability check cannot run, but the booking must still go
	// through; the storage-level unique index is the real guard.
	if _, err := newCreateUC(repo).Execute(context.Background(), validInput()); err != nil {
		t.Fatalf("Execute should fail open, got %v", err)
	}
}

func TestCreateAppointmentValidation(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*CreateAppointmentInput)
		wantCode string
	}{
		{"short name", func(in *CreateAppointmentInput) { in.Name = "C" }, "invalid_name"},
		{"short phone", func(in *CreateAppointmentInput) { in.Phone = "12345" }, "invalid_phone"},
		{"bad email", func(in *CreateAppointmentInput) { in.Email = "not-an-email" }, "invalid_email"},
		{"long notes", func(in *CreateAppointmentInput) { in.Notes = string(make([]byte, 501)) }, "notes_too_long"},
		{"bad date", func(in *CreateAppointmentInput) { in.Date = "03/10/2026" }, "invalid_date"},
		{"bad time", func(in *CreateAppointmentInput) { in.Time = "14:00" }, "invalid_time"},
		{"no service", func(in *CreateAppointmentInput) { in.Service = "" }, "missing_service"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := repoWithBarber()
			in := validInput()
			tt.mutate(&in)

			_, err := newCreateUC(repo).Execute(context.Background(), in)
			if !httperr.IsBusiness(err, tt.wantCode) {
				t.Errorf("err = %v, want %s", err, tt.wantCode)
			}
			if len(repo.created) != 0 {
				t.Error("invalid input still produced a write")
			}
		})
	}
}

func TestCreateAppointmentWithoutBarberSkipsCheck(t *testing.T) {
	repo := repoWithBarber()
	repo.appointments = []models.Appointment{
		{Date: "2026-03-10", Time: "2:00 PM"},
	}

	in := validInput()
	in.BarberID = ""

	// No barber chosen: the form flow books without a per-barber check.
	if _, err := newCreateUC(repo).Execute(context.Background(), in); err != nil {
		t.Fatalf("Execute: %v", err)
	}
}
