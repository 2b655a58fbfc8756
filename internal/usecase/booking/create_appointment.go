package booking

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	domain "github.com/reyescuts/booking-api/internal/domain/booking"
	"github.com/reyescuts/booking-api/internal/httperr"
	"github.com/reyescuts/booking-api/internal/models"
	"github.com/reyescuts/booking-api/internal/notify"
	"github.com/reyescuts/booking-api/internal/validators"
)

// Publisher pushes fresh booked-times snapshots to live subscribers.
type Publisher interface {
	SlotChanged(ctx context.Context, date, barberID string)
}

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	Name     string
	Email    string
	Phone    string
	BarberID string
	Service  string
	Date     string // "2006-01-02"
	Time     string // "3:04 PM"
	Notes    string
	Source   string // "en" | "es"
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo         domain.Repository
	availability *CheckAvailability
	sender       notify.Sender
	outbox       *notify.Outbox
	publisher    Publisher
	shopName     string
	logger       *zap.Logger
}

func NewCreateAppointment(
	repo domain.Repository,
	availability *CheckAvailability,
	sender notify.Sender,
	outbox *notify.Outbox,
	publisher Publisher,
	shopName string,
	logger *zap.Logger,
) *CreateAppointment {
	return &CreateAppointment{
		repo:         repo,
		availability: availability,
		sender:       sender,
		outbox:       outbox,
		publisher:    publisher,
		shopName:     shopName,
		logger:       logger,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute runs the booking pipeline: validate, check the slot, persist,
// then queue best-effort notifications. Only the persist step decides
// whether the booking succeeded.
func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	if err := validate(in); err != nil {
		return nil, err
	}

	source := in.Source
	if source != "es" {
		source = "en"
	}

	// Barber is optional; when chosen it must exist, and the slot check
	// runs per-barber. Without a barber the check is skipped entirely
	// (the walk-in flow books shop-wide).
	var barber *models.Barber
	if in.BarberID != "" {
		b, err := uc.repo.GetBarber(ctx, in.BarberID)
		if err != nil {
			return nil, httperr.ErrBusiness("barber_not_found")
		}
		barber = b

		slot := domain.Slot{Date: in.Date, Time: in.Time, BarberID: in.BarberID}
		if !uc.availability.Execute(ctx, slot) {
			return nil, httperr.ErrBusiness("slot_taken")
		}
	}

	ap := &models.Appointment{
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Service: in.Service,
		Date:    in.Date,
		Time:    in.Time,
		Notes:   in.Notes,
		Source:  source,
	}
	if in.BarberID != "" {
		ap.BarberID = &in.BarberID
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.queueNotifications(ap, barber)

	if uc.publisher != nil {
		uc.publisher.SlotChanged(ctx, ap.Date, in.BarberID)
	}

	return ap, nil
}

// queueNotifications fires the side-channel sends. All of them are
// best-effort: the appointment is already persisted and stays valid no
// matter what the provider does.
func (uc *CreateAppointment) queueNotifications(ap *models.Appointment, barber *models.Barber) {
	barberLabel := ""
	if barber != nil {
		barberLabel = barber.Label()
	}

	base := notify.EmailRequest{
		Name:    ap.Name,
		Email:   ap.Email,
		Phone:   ap.Phone,
		Barber:  barberLabel,
		Service: ap.Service,
		Date:    ap.Date,
		Time:    ap.Time,
		Notes:   ap.Notes,
		Source:  ap.Source,
	}

	shopReq := base
	shopReq.Type = notify.TypeShopNotification
	uc.outbox.Dispatch(notify.Job{
		Description: "shop notification " + ap.ID,
		Run: func(ctx context.Context) error {
			return uc.sender.SendEmail(ctx, shopReq)
		},
	})

	if ap.Email != "" {
		confirmReq := base
		confirmReq.Type = notify.TypeCustomerConfirmation
		uc.outbox.Dispatch(notify.Job{
			Description: "customer confirmation " + ap.ID,
			Run: func(ctx context.Context) error {
				return uc.sender.SendEmail(ctx, confirmReq)
			},
		})
	}

	if ap.Phone != "" {
		text := confirmationSMS(ap, uc.shopName)
		phone := ap.Phone
		uc.outbox.Dispatch(notify.Job{
			Description: "sms confirmation " + ap.ID,
			Run: func(ctx context.Context) error {
				return uc.sender.SendSMS(ctx, phone, text)
			},
		})
	}
}

func confirmationSMS(ap *models.Appointment, shopName string) string {
	if ap.Source == "es" {
		return fmt.Sprintf(
			"Hola %s, tu cita esta confirmada para el %s a las %s. %s.",
			ap.Name, ap.Date, ap.Time, shopName,
		)
	}
	return fmt.Sprintf(
		"Hi %s, your appointment is confirmed for %s at %s. %s.",
		ap.Name, ap.Date, ap.Time, shopName,
	)
}

// ======================================================
// VALIDATION
// ======================================================

func validate(in CreateAppointmentInput) error {
	nameLen := len(in.Name)
	if nameLen < 2 || nameLen > 100 {
		return httperr.ErrBusiness("invalid_name")
	}
	if len(validators.PhoneDigits(in.Phone)) < 10 {
		return httperr.ErrBusiness("invalid_phone")
	}
	if in.Email != "" && !validators.IsValidEmail(in.Email) {
		return httperr.ErrBusiness("invalid_email")
	}
	if len(in.Notes) > 500 {
		return httperr.ErrBusiness("notes_too_long")
	}
	if in.Service == "" {
		return httperr.ErrBusiness("missing_service")
	}
	if _, err := time.Parse("2006-01-02", in.Date); err != nil {
		return httperr.ErrBusiness("invalid_date")
	}
	if _, err := time.Parse("3:04 PM", in.Time); err != nil {
		return httperr.ErrBusiness("invalid_time")
	}
	return nil
}
