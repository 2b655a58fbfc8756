package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/reyescuts/booking-api/internal/httperr"
	"github.com/reyescuts/booking-api/internal/httpresp"
	"github.com/reyescuts/booking-api/internal/models"
	"github.com/reyescuts/booking-api/internal/storage"
	"github.com/reyescuts/booking-api/internal/validators"
)

const maxPhotoUploadBytes = 8 << 20

type BarberHandler struct {
	db       *gorm.DB
	uploader *storage.Uploader
	logger   *zap.Logger
}

func NewBarberHandler(db *gorm.DB, uploader *storage.Uploader, logger *zap.Logger) *BarberHandler {
	return &BarberHandler{db: db, uploader: uploader, logger: logger}
}

type BarberRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
	Email string `json:"email"`
}

func (h *BarberHandler) Create(c *gin.Context) {
	var req BarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if !validators.IsValidPhone(req.Phone) {
		httperr.BadRequest(c, "invalid_phone", "Phone must have 10-15 digits.")
		return
	}
	if req.Email != "" && !validators.IsValidEmail(req.Email) {
		httperr.BadRequest(c, "invalid_email", "Please provide a valid email.")
		return
	}

	barber := models.Barber{
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&barber).Error; err != nil {
		httperr.Internal(c, "failed_to_create_barber", "Could not create the barber.")
		return
	}

	c.JSON(http.StatusCreated, barber)
}

func (h *BarberHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var barber models.Barber
	if err := h.db.WithContext(c.Request.Context()).
		First(&barber, "id = ?", id).Error; err != nil {
		httperr.NotFound(c, "barber_not_found", "Barber not found.")
		return
	}

	var req BarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	barber.Name = req.Name
	barber.Phone = req.Phone
	barber.Email = req.Email

	if err := h.db.WithContext(c.Request.Context()).Save(&barber).Error; err != nil {
		httperr.Internal(c, "failed_to_update_barber", "Could not update the barber.")
		return
	}

	httpresp.OK(c, barber)
}

func (h *BarberHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.db.WithContext(c.Request.Context()).
		Delete(&models.Barber{}, "id = ?", id).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_barber", "Could not delete the barber.")
		return
	}

	httpresp.OK(c, gin.H{"deleted": true})
}

// UploadPhoto accepts a multipart JPEG/PNG, converts it to WebP and
// stores it in S3; the resulting URL goes on the barber record.
func (h *BarberHandler) UploadPhoto(c *gin.Context) {
	id := c.Param("id")

	var barber models.Barber
	if err := h.db.WithContext(c.Request.Context()).
		First(&barber, "id = ?", id).Error; err != nil {
		httperr.NotFound(c, "barber_not_found", "Barber not found.")
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		httperr.BadRequest(c, "missing_photo", "A photo file is required.")
		return
	}
	if fileHeader.Size > maxPhotoUploadBytes {
		httperr.BadRequest(c, "photo_too_large", "Photo must be under 8MB.")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httperr.Internal(c, "photo_read_failed", "Could not read the upload.")
		return
	}
	defer file.Close()

	encoded, err := storage.EncodePhoto(file)
	if err != nil {
		httperr.BadRequest(c, "invalid_photo", "Photo must be a valid JPEG or PNG.")
		return
	}

	key := fmt.Sprintf("barbers/%s.webp", barber.ID)
	url, err := h.uploader.Upload(c.Request.Context(), key, encoded, "image/webp")
	if err != nil {
		h.logger.Error("photo upload failed",
			zap.String("barber_id", barber.ID),
			zap.Error(err),
		)
		httperr.Internal(c, "photo_upload_failed", "Could not store the photo.")
		return
	}

	if err := h.db.WithContext(c.Request.Context()).
		Model(&barber).Update("image_url", url).Error; err != nil {
		httperr.Internal(c, "failed_to_update_barber", "Could not save the photo URL.")
		return
	}

	httpresp.OK(c, gin.H{"image_url": url})
}
