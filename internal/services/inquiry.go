package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"alowais/internal/domain"
	"alowais/internal/metrics"
	"alowais/internal/validation"
	apperrors "alowais/pkg/errors"
)

// InquiryService captures leads and drives their notification
type InquiryService struct {
	db       *gorm.DB
	notifier Notifier
}

// NewInquiryService creates a new inquiry service
func NewInquiryService(db *gorm.DB, notifier Notifier) *InquiryService {
	return &InquiryService{
		db:       db,
		notifier: notifier,
	}
}

// Submit persists a validated inquiry, resolves the optional property title
// and fires the notification channels. Only the insert can fail the
// operation; lookup misses and notification failures are absorbed.
func (s *InquiryService) Submit(ctx context.Context, in *validation.InquiryInput) (*domain.Inquiry, error) {
	log.Printf("[INQUIRY] Submit request: name=%s, email=%s", in.Name, in.Email)

	inquiry := &domain.Inquiry{
		Name:       in.Name,
		Email:      in.Email,
		Phone:      in.Phone,
		Message:    in.Message,
		PropertyID: in.PropertyID,
		Status:     domain.InquiryStatusNew,
	}

	if err := s.db.WithContext(ctx).Create(inquiry).Error; err != nil {
		log.Printf("[INQUIRY] Submit failed: database error: %v", err)
		return nil, apperrors.Wrap(apperrors.ErrCodePersistence, "Failed to save inquiry", err)
	}

	log.Printf("[INQUIRY] Submit successful: id=%s, email=%s", inquiry.ID, inquiry.Email)
	metrics.RecordInquiry()

	alert := &InquiryAlert{
		InquiryID:     inquiry.ID,
		Name:          inquiry.Name,
		Email:         inquiry.Email,
		Phone:         inquiry.Phone,
		Message:       inquiry.Message,
		PropertyTitle: s.lookupPropertyTitle(ctx, inquiry.PropertyID),
		SubmittedAt:   inquiry.CreatedAt,
	}

	// Outcomes are observed for logging and metrics inside the dispatcher;
	// they never fail the already-persisted inquiry.
	s.notifier.Dispatch(ctx, alert)

	return inquiry, nil
}

// lookupPropertyTitle resolves the referenced property's title for alert
// context. A missing or deleted property degrades to no title.
func (s *InquiryService) lookupPropertyTitle(ctx context.Context, propertyID *string) *string {
	if propertyID == nil {
		return nil
	}

	var property domain.Property
	err := s.db.WithContext(ctx).Select("title").Where("id = ?", *propertyID).First(&property).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[INQUIRY] Property %s not found, alert will omit the title", *propertyID)
			metrics.RecordPropertyLookupMiss()
		} else {
			log.Printf("[INQUIRY] Property lookup failed for %s: %v", *propertyID, err)
		}
		return nil
	}

	return &property.Title
}

// List returns inquiries newest first (Staff/Admin only)
func (s *InquiryService) List(ctx context.Context, skip, limit int) ([]domain.Inquiry, error) {
	log.Printf("[INQUIRY] List request: skip=%d, limit=%d", skip, limit)

	if limit <= 0 {
		limit = 100
	}
	if limit > 500 {
		limit = 500
	}

	var inquiries []domain.Inquiry
	query := s.db.WithContext(ctx).Order("created_at DESC").Limit(limit)
	if skip > 0 {
		query = query.Offset(skip)
	}

	if err := query.Find(&inquiries).Error; err != nil {
		log.Printf("[INQUIRY] List failed: database error: %v", err)
		return nil, fmt.Errorf("failed to list inquiries: %w", err)
	}

	log.Printf("[INQUIRY] List successful: returned %d inquiries", len(inquiries))
	return inquiries, nil
}

// UpdateStatus moves an inquiry through its triage lifecycle (Staff/Admin only)
func (s *InquiryService) UpdateStatus(ctx context.Context, id, status string) (*domain.Inquiry, error) {
	log.Printf("[INQUIRY] UpdateStatus request: id=%s, status=%s", id, status)

	if !domain.ValidStatus(status) {
		return nil, apperrors.Validation("status", "Status must be one of: new, contacted, closed")
	}

	var inquiry domain.Inquiry
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&inquiry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.ErrCodeNotFound, "Inquiry not found")
		}
		log.Printf("[INQUIRY] UpdateStatus failed: database error: %v", err)
		return nil, fmt.Errorf("failed to find inquiry: %w", err)
	}

	inquiry.Status = status
	if err := s.db.WithContext(ctx).Save(&inquiry).Error; err != nil {
		log.Printf("[INQUIRY] UpdateStatus failed: save error: %v", err)
		return nil, fmt.Errorf("failed to update inquiry: %w", err)
	}

	log.Printf("[INQUIRY] UpdateStatus successful: id=%s, status=%s", inquiry.ID, inquiry.Status)
	return &inquiry, nil
}
