package booking

import (
	"context"

	domain "github.com/reyescuts/booking-api/internal/domain/booking"
)

type BookedTimes struct {
	repo domain.Repository
}

func NewBookedTimes(repo domain.Repository) *BookedTimes {
	return &BookedTimes{repo: repo}
}

// Execute returns the occupied time strings for one (date, barber) view;
// empty barberID means the shop-wide view.
func (uc *BookedTimes) Execute(ctx context.Context, date, barberID string) ([]string, error) {
	appointments, err := uc.repo.AppointmentsByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	blocked, err := uc.repo.BlockedTimesByDate(ctx, date, barberID)
	if err != nil {
		return nil, err
	}

	slot := domain.Slot{Date: date, BarberID: barberID}
	return domain.BookedTimes(slot, appointments, blocked), nil
}
