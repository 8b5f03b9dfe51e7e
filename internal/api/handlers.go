package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"alowais/internal/config"
	"alowais/internal/domain"
	"alowais/internal/services"
	apperrors "alowais/pkg/errors"
)

// Handlers bundles the HTTP handlers and their collaborators
type Handlers struct {
	cfg        *config.Config
	db         *gorm.DB
	inquiries  *services.InquiryService
	properties *services.PropertyService
	auth       *services.AuthService
}

// NewHandlers creates the handler set
func NewHandlers(cfg *config.Config, db *gorm.DB, inquiries *services.InquiryService, properties *services.PropertyService, auth *services.AuthService) *Handlers {
	return &Handlers{
		cfg:        cfg,
		db:         db,
		inquiries:  inquiries,
		properties: properties,
		auth:       auth,
	}
}

// Health reports service and database health
func (h *Handlers) Health(c *gin.Context) {
	status := "healthy"
	if sqlDB, err := h.db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
		status = "degraded"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  status,
		"service": h.cfg.App.Name,
	})
}

// respondError translates application errors into HTTP responses. Internal
// detail never reaches the client; it is logged where the error occurred.
func respondError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case apperrors.ErrCodeValidation:
			c.JSON(http.StatusBadRequest, gin.H{"error": appErr.Message})
			return
		case apperrors.ErrCodeUnauthorized:
			c.JSON(http.StatusUnauthorized, gin.H{"error": appErr.Message})
			return
		case apperrors.ErrCodeForbidden:
			c.JSON(http.StatusForbidden, gin.H{"error": appErr.Message})
			return
		case apperrors.ErrCodeNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": appErr.Message})
			return
		case apperrors.ErrCodePersistence:
			c.JSON(http.StatusInternalServerError, gin.H{"error": appErr.Message})
			return
		}
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

// respondData wraps a successful payload
func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

// loginRequest is the login payload
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login authenticates a back-office account and returns a JWT
func (h *Handlers) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	token, user, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
		"user":         user,
	})
}

// Me returns the authenticated account
func (h *Handlers) Me(c *gin.Context) {
	value, ok := c.Get(userContextKey)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	respondData(c, http.StatusOK, value.(*domain.User))
}
