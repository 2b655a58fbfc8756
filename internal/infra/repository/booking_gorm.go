package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domain "github.com/reyescuts/booking-api/internal/domain/booking"
	"github.com/reyescuts/booking-api/internal/httperr"
	"github.com/reyescuts/booking-api/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

var _ domain.Repository = (*BookingGormRepository)(nil)

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Appointments
// --------------------------------------------------

func (r *BookingGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	if err := r.db.WithContext(ctx).Create(ap).Error; err != nil {
		if isUniqueViolation(err) {
			return httperr.ErrBusiness("slot_taken")
		}
		return err
	}
	return nil
}

// isUniqueViolation catches the duplicate-slot insert both through
// gorm's translated error and through the raw driver error, which is
// what surfaces when the statement runs via a prepared-statement cache.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *BookingGormRepository) AppointmentsByDate(
	ctx context.Context,
	date string,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Barber").
		Where("date = ?", date).
		Order("created_at ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

func (r *BookingGormRepository) GetAppointment(
	ctx context.Context,
	id string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Barber").
		First(&ap, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *BookingGormRepository) DeleteAppointment(
	ctx context.Context,
	id string,
) error {
	return r.db.WithContext(ctx).
		Delete(&models.Appointment{}, "id = ?", id).Error
}

// --------------------------------------------------
// Reminder marking (claim before send)
// --------------------------------------------------

func (r *BookingGormRepository) ClaimReminder(
	ctx context.Context,
	id string,
	at time.Time,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ? AND reminder_sent_at IS NULL", id).
		Update("reminder_sent_at", at)

	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *BookingGormRepository) ReleaseReminder(
	ctx context.Context,
	id string,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", id).
		Update("reminder_sent_at", nil).Error
}

// --------------------------------------------------
// Blocked times
// --------------------------------------------------

func (r *BookingGormRepository) BlockedTimesByDate(
	ctx context.Context,
	date string,
	barberID string,
) ([]models.BlockedTime, error) {

	q := r.db.WithContext(ctx).Where("date = ?", date)
	if barberID != "" {
		q = q.Where("barber_id = ?", barberID)
	}

	var blocked []models.BlockedTime
	if err := q.Order("time ASC").Find(&blocked).Error; err != nil {
		return nil, err
	}
	return blocked, nil
}

func (r *BookingGormRepository) CreateBlockedTime(
	ctx context.Context,
	bt *models.BlockedTime,
) error {
	return r.db.WithContext(ctx).Create(bt).Error
}

func (r *BookingGormRepository) DeleteBlockedTime(
	ctx context.Context,
	id string,
) error {
	return r.db.WithContext(ctx).
		Delete(&models.BlockedTime{}, "id = ?", id).Error
}

// --------------------------------------------------
// Barbers
// --------------------------------------------------

func (r *BookingGormRepository) GetBarber(
	ctx context.Context,
	id string,
) (*models.Barber, error) {

	var barber models.Barber
	if err := r.db.WithContext(ctx).
		First(&barber, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &barber, nil
}

func (r *BookingGormRepository) ListBarbers(
	ctx context.Context,
) ([]models.Barber, error) {

	var barbers []models.Barber
	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&barbers).Error; err != nil {
		return nil, err
	}
	return barbers, nil
}
