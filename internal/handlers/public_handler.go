package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	domain "github.com/reyescuts/booking-api/internal/domain/booking"
	"github.com/reyescuts/booking-api/internal/httperr"
	"github.com/reyescuts/booking-api/internal/httpresp"
	"github.com/reyescuts/booking-api/internal/models"
	"github.com/reyescuts/booking-api/internal/notify"
	ucbooking "github.com/reyescuts/booking-api/internal/usecase/booking"
	"github.com/reyescuts/booking-api/internal/validators"
)

type PublicHandler struct {
	db          *gorm.DB
	createUC    *ucbooking.CreateAppointment
	checkUC     *ucbooking.CheckAvailability
	bookedUC    *ucbooking.BookedTimes
	bookingRepo domain.Repository
	sender      notify.Sender
	outbox      *notify.Outbox
	logger      *zap.Logger
}

func NewPublicHandler(
	db *gorm.DB,
	createUC *ucbooking.CreateAppointment,
	checkUC *ucbooking.CheckAvailability,
	bookedUC *ucbooking.BookedTimes,
	bookingRepo domain.Repository,
	sender notify.Sender,
	outbox *notify.Outbox,
	logger *zap.Logger,
) *PublicHandler {
	return &PublicHandler{
		db:          db,
		createUC:    createUC,
		checkUC:     checkUC,
		bookedUC:    bookedUC,
		bookingRepo: bookingRepo,
		sender:      sender,
		outbox:      outbox,
		logger:      logger,
	}
}

// --------- Requests ---------

type CreateAppointmentRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email"`
	Phone    string `json:"phone" binding:"required"`
	BarberID string `json:"barber_id"`
	Service  string `json:"service" binding:"required"`
	Date     string `json:"date" binding:"required"` // YYYY-MM-DD
	Time     string `json:"time" binding:"required"` // H:MM AM/PM
	Notes    string `json:"notes"`
	Source   string `json:"source"`
}

type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Phone   string `json:"phone"`
	Message string `json:"message" binding:"required"`
	Source  string `json:"source"`
}

// --------- Booking ---------

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucbooking.CreateAppointmentInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		BarberID: req.BarberID,
		Service:  req.Service,
		Date:     req.Date,
		Time:     req.Time,
		Notes:    req.Notes,
		Source:   req.Source,
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}

func writeBookingError(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "slot_taken"):
		httperr.Conflict(c, "slot_taken", "That time slot was just booked. Please pick another.")
	case httperr.IsBusiness(err, "barber_not_found"):
		httperr.BadRequest(c, "barber_not_found", "Unknown barber.")
	case httperr.IsBusiness(err, "invalid_name"),
		httperr.IsBusiness(err, "invalid_phone"),
		httperr.IsBusiness(err, "invalid_email"),
		httperr.IsBusiness(err, "invalid_date"),
		httperr.IsBusiness(err, "invalid_time"),
		httperr.IsBusiness(err, "missing_service"),
		httperr.IsBusiness(err, "notes_too_long"):
		httperr.BadRequest(c, errCode(err), "Please check the form and try again.")
	default:
		httperr.Internal(c, "booking_failed", "Could not save the appointment. Please call the shop.")
	}
}

func errCode(err error) string {
	var be httperr.BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return "invalid_request"
}

// --------- Availability ---------

func (h *PublicHandler) Availability(c *gin.Context) {
	date := c.Query("date")
	timeStr := c.Query("time")
	barberID := c.Query("barber_id")

	if date == "" || timeStr == "" {
		httperr.BadRequest(c, "missing_params", "date and time are required")
		return
	}

	slot := domain.Slot{Date: date, Time: timeStr, BarberID: barberID}
	available := h.checkUC.Execute(c.Request.Context(), slot)

	httpresp.OK(c, gin.H{
		"date":      date,
		"time":      timeStr,
		"available": available,
	})
}

func (h *PublicHandler) BookedTimes(c *gin.Context) {
	date := c.Query("date")
	barberID := c.Query("barber_id")

	if date == "" {
		httperr.BadRequest(c, "missing_params", "date is required")
		return
	}

	times, err := h.bookedUC.Execute(c.Request.Context(), date, barberID)
	if err != nil {
		httperr.Internal(c, "booked_times_failed", "Could not load booked times.")
		return
	}

	httpresp.OK(c, gin.H{
		"date":         date,
		"barber_id":    barberID,
		"booked_times": times,
	})
}

// --------- Barbers (picker + team section) ---------

func (h *PublicHandler) ListBarbers(c *gin.Context) {
	barbers, err := h.bookingRepo.ListBarbers(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_list_barbers", "Could not load barbers.")
		return
	}

	httpresp.List(c, barbers)
}

// --------- Contact form ---------

func (h *PublicHandler) Contact(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if len(req.Name) < 2 || len(req.Name) > 100 {
		httperr.BadRequest(c, "invalid_name", "Name must be 2-100 characters.")
		return
	}
	if !validators.IsValidEmail(req.Email) {
		httperr.BadRequest(c, "invalid_email", "Please provide a valid email.")
		return
	}
	if len(req.Message) == 0 || len(req.Message) > 2000 {
		httperr.BadRequest(c, "invalid_message", "Message must be 1-2000 characters.")
		return
	}

	source := req.Source
	if source != "es" {
		source = "en"
	}

	msg := models.Message{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
		Source:  source,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&msg).Error; err != nil {
		httperr.Internal(c, "contact_failed", "Could not save your message.")
		return
	}

	// Owner gets a heads-up; failure never bounces the submission.
	notifyReq := notify.EmailRequest{
		Type:    notify.TypeContactNotification,
		Name:    msg.Name,
		Email:   msg.Email,
		Phone:   msg.Phone,
		Message: msg.Message,
		Source:  msg.Source,
	}
	h.outbox.Dispatch(notify.Job{
		Description: "contact notification " + msg.ID,
		Run: func(ctx context.Context) error {
			return h.sender.SendEmail(ctx, notifyReq)
		},
	})

	c.JSON(http.StatusCreated, msg)
}
