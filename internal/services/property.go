package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"alowais/internal/domain"
	"alowais/internal/validation"
	apperrors "alowais/pkg/errors"
)

// PropertyFilters narrows the public catalog listing
type PropertyFilters struct {
	Type     string
	MinPrice *float64
	MaxPrice *float64
	Bedrooms *int
	Location string
	Search   string
}

// PropertyService manages the property catalog
type PropertyService struct {
	db *gorm.DB
}

// NewPropertyService creates a new property service
func NewPropertyService(db *gorm.DB) *PropertyService {
	return &PropertyService{db: db}
}

// List returns available properties matching the filters, newest first
func (s *PropertyService) List(ctx context.Context, f PropertyFilters) ([]domain.Property, error) {
	log.Printf("[PROPERTY] List request: type=%s, location=%s, search=%s", f.Type, f.Location, f.Search)

	query := s.db.WithContext(ctx).
		Where("status = ?", domain.PropertyStatusAvailable).
		Order("created_at DESC")

	switch f.Type {
	case domain.PropertyTypeBuy, domain.PropertyTypeRent, domain.PropertyTypeManage:
		query = query.Where("type = ?", f.Type)
	}

	if f.MinPrice != nil {
		query = query.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		query = query.Where("price <= ?", *f.MaxPrice)
	}
	if f.Bedrooms != nil {
		query = query.Where("bedrooms = ?", *f.Bedrooms)
	}
	if f.Location != "" {
		query = query.Where("lower(location) LIKE ?", like(f.Location))
	}
	if f.Search != "" {
		pattern := like(f.Search)
		query = query.Where("lower(title) LIKE ? OR lower(description) LIKE ? OR lower(location) LIKE ?",
			pattern, pattern, pattern)
	}

	var properties []domain.Property
	if err := query.Find(&properties).Error; err != nil {
		log.Printf("[PROPERTY] List failed: database error: %v", err)
		return nil, fmt.Errorf("failed to fetch properties: %w", err)
	}

	log.Printf("[PROPERTY] List successful: returned %d properties", len(properties))
	return properties, nil
}

// Get returns a property by id
func (s *PropertyService) Get(ctx context.Context, id string) (*domain.Property, error) {
	var property domain.Property
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&property).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.ErrCodeNotFound, "Property not found")
		}
		log.Printf("[PROPERTY] Get failed: database error: %v", err)
		return nil, fmt.Errorf("failed to fetch property: %w", err)
	}
	return &property, nil
}

// Create adds a listing (Admin only)
func (s *PropertyService) Create(ctx context.Context, in *validation.PropertyInput) (*domain.Property, error) {
	log.Printf("[PROPERTY] Create request: title=%s, type=%s", in.Title, in.Type)

	property := &domain.Property{
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Location:    in.Location,
		Type:        in.Type,
		Bedrooms:    in.Bedrooms,
		Bathrooms:   in.Bathrooms,
		Area:        in.Area,
		Images:      in.Images,
		Amenities:   in.Amenities,
		Status:      in.Status,
	}

	if err := s.db.WithContext(ctx).Create(property).Error; err != nil {
		log.Printf("[PROPERTY] Create failed: database error: %v", err)
		return nil, apperrors.Wrap(apperrors.ErrCodePersistence, "Failed to save property", err)
	}

	log.Printf("[PROPERTY] Create successful: id=%s, title=%s", property.ID, property.Title)
	return property, nil
}

// Update replaces a listing's fields (Admin only)
func (s *PropertyService) Update(ctx context.Context, id string, in *validation.PropertyInput) (*domain.Property, error) {
	log.Printf("[PROPERTY] Update request: id=%s", id)

	var property domain.Property
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&property).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.ErrCodeNotFound, "Property not found")
		}
		log.Printf("[PROPERTY] Update failed: database error: %v", err)
		return nil, fmt.Errorf("failed to find property: %w", err)
	}

	property.Title = in.Title
	property.Description = in.Description
	property.Price = in.Price
	property.Location = in.Location
	property.Type = in.Type
	property.Bedrooms = in.Bedrooms
	property.Bathrooms = in.Bathrooms
	property.Area = in.Area
	property.Images = in.Images
	property.Amenities = in.Amenities
	if in.Status != "" {
		property.Status = in.Status
	}

	if err := s.db.WithContext(ctx).Save(&property).Error; err != nil {
		log.Printf("[PROPERTY] Update failed: save error: %v", err)
		return nil, apperrors.Wrap(apperrors.ErrCodePersistence, "Failed to save property", err)
	}

	log.Printf("[PROPERTY] Update successful: id=%s", property.ID)
	return &property, nil
}

// Delete removes a listing (Admin only)
func (s *PropertyService) Delete(ctx context.Context, id string) error {
	log.Printf("[PROPERTY] Delete request: id=%s", id)

	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Property{})
	if result.Error != nil {
		log.Printf("[PROPERTY] Delete failed: database error: %v", result.Error)
		return fmt.Errorf("failed to delete property: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.New(apperrors.ErrCodeNotFound, "Property not found")
	}

	log.Printf("[PROPERTY] Delete successful: id=%s", id)
	return nil
}

// DeleteAll wipes the catalog (Admin only)
func (s *PropertyService) DeleteAll(ctx context.Context) (int64, error) {
	log.Printf("[PROPERTY] DeleteAll request")

	result := s.db.WithContext(ctx).Where("1 = 1").Delete(&domain.Property{})
	if result.Error != nil {
		log.Printf("[PROPERTY] DeleteAll failed: database error: %v", result.Error)
		return 0, fmt.Errorf("failed to delete properties: %w", result.Error)
	}

	log.Printf("[PROPERTY] DeleteAll successful: removed %d properties", result.RowsAffected)
	return result.RowsAffected, nil
}

// like builds a case-insensitive substring pattern
func like(s string) string {
	return "%" + strings.ToLower(strings.TrimSpace(s)) + "%"
}
