package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/reyescuts/booking-api/internal/httperr"
	"github.com/reyescuts/booking-api/internal/middleware"
	"github.com/reyescuts/booking-api/internal/notify"
	"github.com/reyescuts/booking-api/internal/ratelimit"
	"github.com/reyescuts/booking-api/internal/validators"
)

// NotifyHandler exposes the send operations the site calls directly.
// Email and SMS are rate limited as separate families so a burst of one
// cannot starve the other.
type NotifyHandler struct {
	sender  notify.Sender
	limiter ratelimit.Limiter
	logger  *zap.Logger
}

func NewNotifyHandler(sender notify.Sender, limiter ratelimit.Limiter, logger *zap.Logger) *NotifyHandler {
	return &NotifyHandler{
		sender:  sender,
		limiter: limiter,
		logger:  logger,
	}
}

type SendSMSRequest struct {
	Phone   string `json:"phone" binding:"required"`
	Message string `json:"message" binding:"required"`
}

func (h *NotifyHandler) SendEmail(c *gin.Context) {
	identity := middleware.CallerIdentity(c)
	if !h.limiter.Allow(c.Request.Context(), "email:"+identity) {
		h.logger.Warn("email rate limit exceeded", zap.String("identity", identity))
		httperr.TooManyRequests(c, "resource_exhausted", "Too many requests. Try again later.")
		return
	}

	var req notify.EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_argument", err.Error())
		return
	}

	if err := h.sender.SendEmail(c.Request.Context(), req); err != nil {
		switch {
		case httperr.IsBusiness(err, "unknown_email_type"),
			httperr.IsBusiness(err, "missing_name"),
			httperr.IsBusiness(err, "invalid_email"):
			httperr.BadRequest(c, "invalid_argument", err.Error())
		default:
			httperr.BadGateway(c, "internal", "send failed")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *NotifyHandler) SendSMS(c *gin.Context) {
	identity := middleware.CallerIdentity(c)
	if !h.limiter.Allow(c.Request.Context(), "sms:"+identity) {
		h.logger.Warn("sms rate limit exceeded", zap.String("identity", identity))
		httperr.TooManyRequests(c, "resource_exhausted", "Too many requests. Try again later.")
		return
	}

	var req SendSMSRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_argument", err.Error())
		return
	}

	if !validators.IsValidPhone(req.Phone) {
		httperr.BadRequest(c, "invalid_argument", "phone must have 10-15 digits")
		return
	}

	if err := h.sender.SendSMS(c.Request.Context(), req.Phone, req.Message); err != nil {
		switch {
		case httperr.IsBusiness(err, "invalid_phone"),
			httperr.IsBusiness(err, "missing_message"):
			httperr.BadRequest(c, "invalid_argument", err.Error())
		default:
			httperr.BadGateway(c, "internal", "send failed")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
