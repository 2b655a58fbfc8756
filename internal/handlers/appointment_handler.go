package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/reyescuts/booking-api/internal/domain/booking"
	"github.com/reyescuts/booking-api/internal/httperr"
	"github.com/reyescuts/booking-api/internal/httpresp"
	ucbooking "github.com/reyescuts/booking-api/internal/usecase/booking"
)

// AppointmentHandler is the admin view over bookings.
type AppointmentHandler struct {
	repo      domain.Repository
	publisher ucbooking.Publisher
	logger    *zap.Logger
}

func NewAppointmentHandler(
	repo domain.Repository,
	publisher ucbooking.Publisher,
	logger *zap.Logger,
) *AppointmentHandler {
	return &AppointmentHandler{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_params", "date is required")
		return
	}

	appointments, err := h.repo.AppointmentsByDate(c.Request.Context(), date)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Could not load appointments.")
		return
	}

	httpresp.List(c, appointments)
}

// Delete frees the slot; subscribers watching that day get the update.
func (h *AppointmentHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	ap, err := h.repo.GetAppointment(c.Request.Context(), id)
	if err != nil {
		httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
		return
	}

	if err := h.repo.DeleteAppointment(c.Request.Context(), id); err != nil {
		httperr.Internal(c, "failed_to_delete_appointment", "Could not delete the appointment.")
		return
	}

	h.logger.Info("appointment deleted", zap.String("appointment_id", id))

	barberID := ""
	if ap.BarberID != nil {
		barberID = *ap.BarberID
	}
	h.publisher.SlotChanged(c.Request.Context(), ap.Date, barberID)

	httpresp.OK(c, gin.H{"deleted": true})
}
