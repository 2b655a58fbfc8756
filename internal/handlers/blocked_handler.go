package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	domain "github.com/reyescuts/booking-api/internal/domain/booking"
	"github.com/reyescuts/booking-api/internal/httperr"
	"github.com/reyescuts/booking-api/internal/httpresp"
	"github.com/reyescuts/booking-api/internal/models"
	ucbooking "github.com/reyescuts/booking-api/internal/usecase/booking"
)

// BlockedTimeHandler manages shop-initiated holds. Creating or removing
// one changes slot availability, so both paths push a live update.
type BlockedTimeHandler struct {
	db        *gorm.DB
	repo      domain.Repository
	publisher ucbooking.Publisher
	logger    *zap.Logger
}

func NewBlockedTimeHandler(
	db *gorm.DB,
	repo domain.Repository,
	publisher ucbooking.Publisher,
	logger *zap.Logger,
) *BlockedTimeHandler {
	return &BlockedTimeHandler{
		db:        db,
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

type CreateBlockedTimeRequest struct {
	BarberID string `json:"barber_id" binding:"required"`
	Date     string `json:"date" binding:"required"`
	Time     string `json:"time" binding:"required"`
	Reason   string `json:"reason"`
}

func (h *BlockedTimeHandler) Create(c *gin.Context) {
	var req CreateBlockedTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		httperr.BadRequest(c, "invalid_date", "date must be YYYY-MM-DD")
		return
	}
	if _, err := time.Parse("3:04 PM", req.Time); err != nil {
		httperr.BadRequest(c, "invalid_time", "time must be H:MM AM/PM")
		return
	}
	if _, err := h.repo.GetBarber(c.Request.Context(), req.BarberID); err != nil {
		httperr.BadRequest(c, "barber_not_found", "Unknown barber.")
		return
	}

	bt := models.BlockedTime{
		BarberID: req.BarberID,
		Date:     req.Date,
		Time:     req.Time,
		Reason:   req.Reason,
	}

	if err := h.repo.CreateBlockedTime(c.Request.Context(), &bt); err != nil {
		httperr.Internal(c, "failed_to_create_blocked_time", "Could not block the slot.")
		return
	}

	h.publisher.SlotChanged(c.Request.Context(), bt.Date, bt.BarberID)

	c.JSON(http.StatusCreated, bt)
}

func (h *BlockedTimeHandler) List(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_params", "date is required")
		return
	}

	blocked, err := h.repo.BlockedTimesByDate(c.Request.Context(), date, c.Query("barber_id"))
	if err != nil {
		httperr.Internal(c, "failed_to_list_blocked_times", "Could not load blocked times.")
		return
	}

	httpresp.List(c, blocked)
}

func (h *BlockedTimeHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	var bt models.BlockedTime
	if err := h.db.WithContext(c.Request.Context()).
		First(&bt, "id = ?", id).Error; err != nil {
		httperr.NotFound(c, "blocked_time_not_found", "Blocked time not found.")
		return
	}

	if err := h.repo.DeleteBlockedTime(c.Request.Context(), id); err != nil {
		httperr.Internal(c, "failed_to_delete_blocked_time", "Could not unblock the slot.")
		return
	}

	h.logger.Info("blocked time removed",
		zap.String("blocked_time_id", id),
		zap.String("date", bt.Date),
	)
	h.publisher.SlotChanged(c.Request.Context(), bt.Date, bt.BarberID)

	httpresp.OK(c, gin.H{"deleted": true})
}
