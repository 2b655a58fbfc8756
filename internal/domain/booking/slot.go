package booking

import "github.com/reyescuts/booking-api/internal/models"

// Slot identifies one bookable position on the calendar. BarberID may be
// empty when the customer has not picked a barber; in that case occupancy
// is shop-wide rather than per-barber.
type Slot struct {
	Date     string // "2006-01-02"
	Time     string // "3:04 PM"
	BarberID string
}

// Taken decides occupancy from rows already fetched for the slot's date.
// An appointment occupies the slot when its time matches and either no
// barber was requested or the appointment is for the same barber. A
// blocked time occupies the slot whenever its time matches; callers fetch
// blocked rows pre-filtered by barber.
func Taken(slot Slot, appointments []models.Appointment, blocked []models.BlockedTime) bool {
	for _, ap := range appointments {
		if ap.Time != slot.Time {
			continue
		}
		if slot.BarberID == "" {
			return true
		}
		if ap.BarberID != nil && *ap.BarberID == slot.BarberID {
			return true
		}
	}

	for _, bt := range blocked {
		if bt.Time == slot.Time {
			return true
		}
	}

	return false
}

// BookedTimes collapses the day's rows into the set of occupied time
// strings the live slot view pushes to clients.
func BookedTimes(slot Slot, appointments []models.Appointment, blocked []models.BlockedTime) []string {
	seen := make(map[string]bool)
	var times []string

	add := func(t string) {
		if !seen[t] {
			seen[t] = true
			times = append(times, t)
		}
	}

	for _, ap := range appointments {
		if slot.BarberID == "" || (ap.BarberID != nil && *ap.BarberID == slot.BarberID) {
			add(ap.Time)
		}
	}
	for _, bt := range blocked {
		add(bt.Time)
	}

	return times
}
