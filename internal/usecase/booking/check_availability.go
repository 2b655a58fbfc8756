package booking

import (
	"context"

	"go.uber.org/zap"

	domain "github.com/reyescuts/booking-api/internal/domain/booking"
)

type CheckAvailability struct {
	repo   domain.Repository
	logger *zap.Logger
}

func NewCheckAvailability(repo domain.Repository, logger *zap.Logger) *CheckAvailability {
	return &CheckAvailability{repo: repo, logger: logger}
}

// Execute reports whether the slot is free. A failed read is logged and
// treated as available: the availability check is advisory and must not
// block booking, and the unique index on the appointments table is what
// actually prevents a double booking.
func (uc *CheckAvailability) Execute(ctx context.Context, slot domain.Slot) bool {
	appointments, err := uc.repo.AppointmentsByDate(ctx, slot.Date)
	if err != nil {
		uc.logger.Warn("availability read failed, proceeding as available",
			zap.String("date", slot.Date),
			zap.Error(err),
		)
		return true
	}

	blocked, err := uc.repo.BlockedTimesByDate(ctx, slot.Date, slot.BarberID)
	if err != nil {
		uc.logger.Warn("blocked-times read failed, proceeding as available",
			zap.String("date", slot.Date),
			zap.Error(err),
		)
		return true
	}

	return !domain.Taken(slot, appointments, blocked)
}
