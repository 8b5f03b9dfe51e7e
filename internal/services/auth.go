package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"alowais/internal/domain"
	"alowais/internal/metrics"
	"alowais/internal/util"
	apperrors "alowais/pkg/errors"
)

// AuthService authenticates back-office accounts
type AuthService struct {
	db *gorm.DB
}

// NewAuthService creates a new auth service
func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

// Login verifies credentials and returns a signed JWT
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)

	log.Printf("[AUTH] Login attempt for user: %s", username)

	var user domain.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[AUTH] Login failed: user '%s' not found", username)
			metrics.RecordAuthAttempt(false)
			return "", nil, apperrors.New(apperrors.ErrCodeUnauthorized, "Incorrect username or password")
		}
		log.Printf("[AUTH] Login failed: database error for user '%s': %v", username, err)
		metrics.RecordAuthAttempt(false)
		return "", nil, err
	}

	if !util.CheckPasswordHash(password, user.HashedPassword) {
		log.Printf("[AUTH] Login failed: invalid password for user '%s'", username)
		metrics.RecordAuthAttempt(false)
		return "", nil, apperrors.New(apperrors.ErrCodeUnauthorized, "Incorrect username or password")
	}

	if !user.IsActive {
		log.Printf("[AUTH] Login failed: user '%s' is inactive", username)
		metrics.RecordAuthAttempt(false)
		return "", nil, apperrors.New(apperrors.ErrCodeUnauthorized, "User account is inactive")
	}

	now := time.Now()
	user.LastLogin = &now
	s.db.WithContext(ctx).Save(&user)

	token, err := util.GenerateToken(&user)
	if err != nil {
		log.Printf("[AUTH] Login failed: token generation error for user '%s': %v", username, err)
		metrics.RecordAuthAttempt(false)
		return "", nil, err
	}

	log.Printf("[AUTH] Login successful for user: %s", username)
	metrics.RecordAuthAttempt(true)
	return token, &user, nil
}
