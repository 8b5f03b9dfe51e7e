package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"alowais/internal/domain"
	"alowais/internal/validation"
	apperrors "alowais/pkg/errors"
)

func seedCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()
	listings := []domain.Property{
		{
			Title:       "Marina View Tower 2BR",
			Description: "Spacious two bedroom apartment overlooking the marina.",
			Price:       1200000,
			Location:    "Al Khan, Sharjah",
			Type:        domain.PropertyTypeBuy,
			Bedrooms:    2,
			Area:        1400,
			Images:      domain.StringList{"https://example.com/a.jpg"},
		},
		{
			Title:       "Garden Villa",
			Description: "Four bedroom villa with a private garden and maid room.",
			Price:       180000,
			Location:    "Al Rahmaniya, Sharjah",
			Type:        domain.PropertyTypeRent,
			Bedrooms:    4,
			Area:        3200,
			Images:      domain.StringList{"https://example.com/b.jpg"},
		},
		{
			Title:       "Downtown Studio",
			Description: "Compact studio close to the corniche.",
			Price:       35000,
			Location:    "Al Majaz, Sharjah",
			Type:        domain.PropertyTypeRent,
			Bedrooms:    0,
			Area:        450,
			Images:      domain.StringList{"https://example.com/c.jpg"},
			Status:      domain.PropertyStatusRented,
		},
	}
	for i := range listings {
		require.NoError(t, db.Create(&listings[i]).Error)
	}
}

func titles(properties []domain.Property) []string {
	out := make([]string, 0, len(properties))
	for _, p := range properties {
		out = append(out, p.Title)
	}
	return out
}

func TestPropertyList(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	svc := NewPropertyService(db)
	ctx := context.Background()

	t.Run("should only return available listings", func(t *testing.T) {
		properties, err := svc.List(ctx, PropertyFilters{})
		require.NoError(t, err)
		require.Len(t, properties, 2)
		require.NotContains(t, titles(properties), "Downtown Studio")
	})

	t.Run("should filter by type", func(t *testing.T) {
		properties, err := svc.List(ctx, PropertyFilters{Type: domain.PropertyTypeRent})
		require.NoError(t, err)
		require.Equal(t, []string{"Garden Villa"}, titles(properties))
	})

	t.Run("should ignore an unknown type", func(t *testing.T) {
		properties, err := svc.List(ctx, PropertyFilters{Type: "castle"})
		require.NoError(t, err)
		require.Len(t, properties, 2)
	})

	t.Run("should filter by price range", func(t *testing.T) {
		min, max := 100000.0, 500000.0
		properties, err := svc.List(ctx, PropertyFilters{MinPrice: &min, MaxPrice: &max})
		require.NoError(t, err)
		require.Equal(t, []string{"Garden Villa"}, titles(properties))
	})

	t.Run("should filter by bedrooms", func(t *testing.T) {
		bedrooms := 2
		properties, err := svc.List(ctx, PropertyFilters{Bedrooms: &bedrooms})
		require.NoError(t, err)
		require.Equal(t, []string{"Marina View Tower 2BR"}, titles(properties))
	})

	t.Run("should match location case-insensitively", func(t *testing.T) {
		properties, err := svc.List(ctx, PropertyFilters{Location: "al khan"})
		require.NoError(t, err)
		require.Equal(t, []string{"Marina View Tower 2BR"}, titles(properties))
	})

	t.Run("should search across title and description", func(t *testing.T) {
		properties, err := svc.List(ctx, PropertyFilters{Search: "GARDEN"})
		require.NoError(t, err)
		require.Equal(t, []string{"Garden Villa"}, titles(properties))
	})

	t.Run("should return empty for no matches", func(t *testing.T) {
		properties, err := svc.List(ctx, PropertyFilters{Search: "penthouse"})
		require.NoError(t, err)
		require.Empty(t, properties)
	})
}

func TestPropertyCRUD(t *testing.T) {
	newInput := func() *validation.PropertyInput {
		return &validation.PropertyInput{
			Title:       "Two bedroom apartment in Al Majaz",
			Description: "Bright corner unit with a view over the lagoon and covered parking.",
			Price:       85000,
			Location:    "Al Majaz, Sharjah",
			Type:        domain.PropertyTypeRent,
			Bedrooms:    2,
			Bathrooms:   2,
			Area:        1200,
			Images:      []string{"https://example.com/1.jpg"},
			Amenities:   []string{"parking", "gym"},
		}
	}

	t.Run("should create with generated id and default status", func(t *testing.T) {
		req := require.New(t)
		db := newTestDB(t)
		svc := NewPropertyService(db)

		property, err := svc.Create(context.Background(), newInput())
		req.NoError(err)
		req.NotEmpty(property.ID)
		req.Equal(domain.PropertyStatusAvailable, property.Status)

		stored, err := svc.Get(context.Background(), property.ID)
		req.NoError(err)
		req.Equal("Two bedroom apartment in Al Majaz", stored.Title)
		req.Equal(domain.StringList{"parking", "gym"}, stored.Amenities)
	})

	t.Run("should report a missing listing on get", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewPropertyService(db)

		_, err := svc.Get(context.Background(), "does-not-exist")
		require.True(t, apperrors.IsNotFound(err))
	})

	t.Run("should update fields and keep status when omitted", func(t *testing.T) {
		req := require.New(t)
		db := newTestDB(t)
		svc := NewPropertyService(db)

		property, err := svc.Create(context.Background(), newInput())
		req.NoError(err)

		sold := newInput()
		sold.Status = domain.PropertyStatusSold
		property, err = svc.Update(context.Background(), property.ID, sold)
		req.NoError(err)
		req.Equal(domain.PropertyStatusSold, property.Status)

		repriced := newInput()
		repriced.Price = 90000
		property, err = svc.Update(context.Background(), property.ID, repriced)
		req.NoError(err)
		req.Equal(90000.0, property.Price)
		req.Equal(domain.PropertyStatusSold, property.Status)
	})

	t.Run("should report a missing listing on update", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewPropertyService(db)

		_, err := svc.Update(context.Background(), "does-not-exist", newInput())
		require.True(t, apperrors.IsNotFound(err))
	})

	t.Run("should delete a listing", func(t *testing.T) {
		req := require.New(t)
		db := newTestDB(t)
		svc := NewPropertyService(db)

		property, err := svc.Create(context.Background(), newInput())
		req.NoError(err)

		req.NoError(svc.Delete(context.Background(), property.ID))

		_, err = svc.Get(context.Background(), property.ID)
		req.True(apperrors.IsNotFound(err))

		req.True(apperrors.IsNotFound(svc.Delete(context.Background(), property.ID)))
	})

	t.Run("should wipe the catalog", func(t *testing.T) {
		req := require.New(t)
		db := newTestDB(t)
		seedCatalog(t, db)
		svc := NewPropertyService(db)

		deleted, err := svc.DeleteAll(context.Background())
		req.NoError(err)
		req.Equal(int64(3), deleted)

		properties, err := svc.List(context.Background(), PropertyFilters{})
		req.NoError(err)
		req.Empty(properties)
	})
}
