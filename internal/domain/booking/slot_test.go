package booking

import (
	"reflect"
	"testing"

	"github.com/reyescuts/booking-api/internal/models"
)

func strPtr(s string) *string { return &s }

func TestTaken(t *testing.T) {
	appointments := []models.Appointment{
		{Date: "2026-03-10", Time: "2:00 PM", BarberID: strPtr("b1")},
		{Date: "2026-03-10", Time: "3:00 PM", BarberID: strPtr("b2")},
		{Date: "2026-03-10", Time: "4:00 PM"}, // walk-in, no barber
	}
	blocked := []models.BlockedTime{
		{Date: "2026-03-10", Time: "5:00 PM", BarberID: "b1"},
	}

	tests := []struct {
		name  string
		slot  Slot
		want  bool
		block []models.BlockedTime
	}{
		{
			name: "same time same barber is taken",
			slot: Slot{Date: "2026-03-10", Time: "2:00 PM", BarberID: "b1"},
			want: true,
		},
		{
			name: "same time different barber is free",
			slot: Slot{Date: "2026-03-10", Time: "2:00 PM", BarberID: "b2"},
			want: false,
		},
		{
			name: "free time is free",
			slot: Slot{Date: "2026-03-10", Time: "9:00 AM", BarberID: "b1"},
			want: false,
		},
		{
			name: "no barber chosen means shop-wide occupancy",
			slot: Slot{Date: "2026-03-10", Time: "2:00 PM"},
			want: true,
		},
		{
			name: "walk-in appointment does not block a specific barber",
			slot: Slot{Date: "2026-03-10", Time: "4:00 PM", BarberID: "b1"},
			want: false,
		},
		{
			name:  "blocked time occupies the slot",
			slot:  Slot{Date: "2026-03-10", Time: "5:00 PM", BarberID: "b1"},
			want:  true,
			block: blocked,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Taken(tt.slot, appointments, tt.block); got != tt.want {
				t.Errorf("Taken(%+v) = %v, want %v", tt.slot, got, tt.want)
			}
		})
	}
}

func TestBookedTimes(t *testing.T) {
	appointments := []models.Appointment{
		{Time: "2:00 PM", BarberID: strPtr("b1")},
		{Time: "3:00 PM", BarberID: strPtr("b2")},
		{Time: "3:00 PM", BarberID: strPtr("b1")},
	}
	blocked := []models.BlockedTime{
		{Time: "5:00 PM", BarberID: "b1"},
		{Time: "2:00 PM", BarberID: "b1"},
	}

	got := BookedTimes(Slot{Date: "2026-03-10", BarberID: "b1"}, appointments, blocked)
	want := []string{"2:00 PM", "3:00 PM", "5:00 PM"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("BookedTimes barber view = %v, want %v", got, want)
	}

	got = BookedTimes(Slot{Date: "2026-03-10"}, appointments, nil)
	want = []string{"2:00 PM", "3:00 PM"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("BookedTimes shop-wide view = %v, want %v", got, want)
	}
}
