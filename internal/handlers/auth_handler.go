package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/reyescuts/booking-api/internal/config"
	"github.com/reyescuts/booking-api/internal/models"
)

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
	logger *zap.Logger
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{db: db, config: cfg, logger: logger}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var admin models.AdminUser
	if err := h.db.Where("email = ?", email).First(&admin).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword(
		[]byte(admin.PasswordHash),
		[]byte(req.Password),
	); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
		return
	}

	token, err := h.generateToken(&admin)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"admin": gin.H{
			"id":    admin.ID,
			"name":  admin.Name,
			"email": admin.Email,
		},
		"token": token,
	})
}

func (h *AuthHandler) generateToken(admin *models.AdminUser) (string, error) {
	claims := jwt.MapClaims{
		"sub":   admin.ID,
		"email": admin.Email,
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
		"iat":   time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}

// SeedAdmin creates or refreshes the dashboard account from config at
// boot. No open registration exists for this service.
func SeedAdmin(db *gorm.DB, cfg *config.Config, logger *zap.Logger) {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		logger.Warn("no admin credentials configured, dashboard login disabled")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("failed to hash admin password", zap.Error(err))
		return
	}

	email := strings.ToLower(strings.TrimSpace(cfg.AdminEmail))

	var admin models.AdminUser
	err = db.Where("email = ?", email).First(&admin).Error
	switch {
	case err == nil:
		if err := db.Model(&admin).Update("password_hash", string(hashed)).Error; err != nil {
			logger.Error("failed to update admin password", zap.Error(err))
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		admin = models.AdminUser{
			Name:         "Owner",
			Email:        email,
			PasswordHash: string(hashed),
		}
		if err := db.Create(&admin).Error; err != nil {
			logger.Error("failed to create admin user", zap.Error(err))
		}
	default:
		logger.Error("failed to look up admin user", zap.Error(err))
	}
}
