package live

import (
	"context"

	"go.uber.org/zap"

	domain "github.com/reyescuts/booking-api/internal/domain/booking"
)

// Publisher recomputes booked-times snapshots when a slot changes and
// pushes them through the hub. A change to a barber's slot affects both
// that barber's view and the shop-wide (no barber) view.
type Publisher struct {
	repo   domain.Repository
	hub    *Hub
	logger *zap.Logger
}

func NewPublisher(repo domain.Repository, hub *Hub, logger *zap.Logger) *Publisher {
	return &Publisher{repo: repo, hub: hub, logger: logger}
}

func (p *Publisher) SlotChanged(ctx context.Context, date, barberID string) {
	views := []string{""}
	if barberID != "" {
		views = append(views, barberID)
	}

	for _, view := range views {
		if !p.hub.HasSubscribers(date, view) {
			continue
		}

		times, err := p.bookedTimes(ctx, date, view)
		if err != nil {
			p.logger.Warn("slot snapshot failed",
				zap.String("date", date),
				zap.String("barber_id", view),
				zap.Error(err),
			)
			continue
		}

		p.hub.Broadcast(SlotUpdate{
			Date:        date,
			BarberID:    view,
			BookedTimes: times,
		})
	}
}

func (p *Publisher) bookedTimes(ctx context.Context, date, barberID string) ([]string, error) {
	appointments, err := p.repo.AppointmentsByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	blocked, err := p.repo.BlockedTimesByDate(ctx, date, barberID)
	if err != nil {
		return nil, err
	}

	slot := domain.Slot{Date: date, BarberID: barberID}
	return domain.BookedTimes(slot, appointments, blocked), nil
}
