package booking

import (
	"context"
	"time"

	"github.com/reyescuts/booking-api/internal/models"
)

type Repository interface {
	// -------- Appointments --------
	// CreateAppointment is create-if-absent: a second appointment for the
	// same (date, time, barber) fails with ErrBusiness("slot_taken").
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	AppointmentsByDate(
		ctx context.Context,
		date string,
	) ([]models.Appointment, error)

	GetAppointment(
		ctx context.Context,
		id string,
	) (*models.Appointment, error)

	DeleteAppointment(
		ctx context.Context,
		id string,
	) error

	// -------- Reminder marking --------
	// ClaimReminder sets reminder_sent_at only if it is still unset and
	// reports whether this caller won the claim.
	ClaimReminder(
		ctx context.Context,
		id string,
		at time.Time,
	) (bool, error)

	ReleaseReminder(
		ctx context.Context,
		id string,
	) error

	// -------- Blocked times --------
	// BlockedTimesByDate filters by barber when barberID is non-empty.
	BlockedTimesByDate(
		ctx context.Context,
		date string,
		barberID string,
	) ([]models.BlockedTime, error)

	CreateBlockedTime(
		ctx context.Context,
		bt *models.BlockedTime,
	) error

	DeleteBlockedTime(
		ctx context.Context,
		id string,
	) error

	// -------- Barbers --------
	GetBarber(
		ctx context.Context,
		id string,
	) (*models.Barber, error)

	ListBarbers(
		ctx context.Context,
	) ([]models.Barber, error)
}
