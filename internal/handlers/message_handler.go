package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/reyescuts/booking-api/internal/httperr"
	"github.com/reyescuts/booking-api/internal/httpresp"
	"github.com/reyescuts/booking-api/internal/models"
	"github.com/reyescuts/booking-api/internal/notify"
)

// MessageHandler is the admin side of the contact inbox.
type MessageHandler struct {
	db     *gorm.DB
	sender notify.Sender
	logger *zap.Logger
}

func NewMessageHandler(db *gorm.DB, sender notify.Sender, logger *zap.Logger) *MessageHandler {
	return &MessageHandler{db: db, sender: sender, logger: logger}
}

func (h *MessageHandler) List(c *gin.Context) {
	var messages []models.Message
	if err := h.db.WithContext(c.Request.Context()).
		Order("created_at DESC").
		Find(&messages).Error; err != nil {
		httperr.Internal(c, "failed_to_list_messages", "Could not load messages.")
		return
	}

	httpresp.List(c, messages)
}

func (h *MessageHandler) Delete(c *gin.Context) {
	if err := h.db.WithContext(c.Request.Context()).
		Delete(&models.Message{}, "id = ?", c.Param("id")).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_message", "Could not delete the message.")
		return
	}

	httpresp.OK(c, gin.H{"deleted": true})
}

type ReplyRequest struct {
	Reply string `json:"reply" binding:"required"`
}

// Reply sends a contact_reply email to the original sender. Unlike the
// booking side-channel this one is synchronous: the admin is waiting to
// see whether it went out.
func (h *MessageHandler) Reply(c *gin.Context) {
	var msg models.Message
	if err := h.db.WithContext(c.Request.Context()).
		First(&msg, "id = ?", c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "message_not_found", "Message not found.")
		return
	}

	var req ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	err := h.sender.SendEmail(c.Request.Context(), notify.EmailRequest{
		Type:    notify.TypeContactReply,
		Name:    msg.Name,
		Email:   msg.Email,
		Message: req.Reply,
		Source:  msg.Source,
	})
	if err != nil {
		h.logger.Error("contact reply failed",
			zap.String("message_id", msg.ID),
			zap.Error(err),
		)
		httperr.BadGateway(c, "send_failed", "Could not send the reply.")
		return
	}

	httpresp.OK(c, gin.H{"success": true})
}
