package reminder

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	domain "github.com/reyescuts/booking-api/internal/domain/booking"
	"github.com/reyescuts/booking-api/internal/models"
	"github.com/reyescuts/booking-api/internal/notify"
	"github.com/reyescuts/booking-api/internal/timezone"
)

// How far ahead an appointment must start to get its reminder. An
// appointment that already started is never reminded.
const window = time.Hour

const slotLayout = "2006-01-02 3:04 PM"

// Scheduler periodically scans today's appointments and emails a
// reminder for the ones starting within the next hour, at most once per
// appointment.
type Scheduler struct {
	repo   domain.Repository
	sender notify.Sender
	shopTZ string
	logger *zap.Logger
	cron   *cron.Cron
	now    func() time.Time
}

func NewScheduler(
	repo domain.Repository,
	sender notify.Sender,
	shopTZ string,
	logger *zap.Logger,
) *Scheduler {
	return &Scheduler{
		repo:   repo,
		sender: sender,
		shopTZ: shopTZ,
		logger: logger,
		now:    time.Now,
	}
}

func (s *Scheduler) Start() {
	s.cron = cron.New()
	s.cron.AddFunc("@every 15m", s.run)
	s.cron.Start()
	s.logger.Info("reminder scheduler started")
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	s.RunOnce(ctx)
}

// RunOnce is one scheduler tick. It returns the number of reminders
// sent. Per-appointment failures are logged and never abort the batch.
func (s *Scheduler) RunOnce(ctx context.Context) int {
	loc := timezone.Location(s.shopTZ)
	now := s.now().In(loc)
	today := now.Format("2006-01-02")

	appointments, err := s.repo.AppointmentsByDate(ctx, today)
	if err != nil {
		s.logger.Error("reminder scan failed",
			zap.String("date", today),
			zap.Error(err),
		)
		return 0
	}

	sent := 0
	for _, ap := range appointments {
		if ap.ReminderSentAt != nil || ap.Email == "" {
			continue
		}

		start, err := time.ParseInLocation(slotLayout, ap.Date+" "+ap.Time, loc)
		if err != nil {
			s.logger.Warn("unparseable appointment time, skipping",
				zap.String("appointment_id", ap.ID),
				zap.String("time", ap.Time),
			)
			continue
		}

		if !start.After(now) || start.After(now.Add(window)) {
			continue
		}

		// Claim before sending: the conditional update is the only
		// thing standing between us and a duplicate reminder, and it
		// also makes overlapping ticks safe. A failed send releases
		// the claim so a later tick retries.
		claimed, err := s.repo.ClaimReminder(ctx, ap.ID, s.now())
		if err != nil {
			s.logger.Error("reminder claim failed",
				zap.String("appointment_id", ap.ID),
				zap.Error(err),
			)
			continue
		}
		if !claimed {
			continue
		}

		if err := s.sendReminder(ctx, ap); err != nil {
			s.logger.Error("reminder send failed",
				zap.String("appointment_id", ap.ID),
				zap.Error(err),
			)
			if rerr := s.repo.ReleaseReminder(ctx, ap.ID); rerr != nil {
				s.logger.Error("reminder release failed",
					zap.String("appointment_id", ap.ID),
					zap.Error(rerr),
				)
			}
			continue
		}

		sent++
	}

	s.logger.Info("reminder run complete",
		zap.String("date", today),
		zap.Int("sent", sent),
	)
	return sent
}

func (s *Scheduler) sendReminder(ctx context.Context, ap models.Appointment) error {
	barberLabel := ""
	if ap.Barber != nil {
		barberLabel = ap.Barber.Label()
	}

	return s.sender.SendEmail(ctx, notify.EmailRequest{
		Type:    notify.TypeReminder,
		Name:    ap.Name,
		Email:   ap.Email,
		Barber:  barberLabel,
		Service: ap.Service,
		Date:    ap.Date,
		Time:    ap.Time,
		Source:  ap.Source,
	})
}
