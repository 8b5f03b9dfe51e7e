package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"alowais/internal/domain"
	"alowais/internal/validation"
	apperrors "alowais/pkg/errors"
)

// newTestDB opens an isolated in-memory store with the full schema. A single
// connection keeps every query on the same in-memory database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	sqlDB, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(sqlite.Dialector{DriverName: "sqlite", Conn: sqlDB}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Property{}, &domain.Inquiry{}))
	return db
}

// recordingNotifier captures dispatched alerts for assertions
type recordingNotifier struct {
	alerts []*InquiryAlert
}

func (n *recordingNotifier) Dispatch(ctx context.Context, alert *InquiryAlert) []Outcome {
	n.alerts = append(n.alerts, alert)
	return []Outcome{{Channel: "stub", Success: true}}
}

func validInput() *validation.InquiryInput {
	return &validation.InquiryInput{
		Name:    "Jo",
		Email:   "jo@x.com",
		Phone:   "12345678",
		Message: "I am interested",
	}
}

func seedProperty(t *testing.T, db *gorm.DB, title string) *domain.Property {
	t.Helper()
	property := &domain.Property{
		Title:       title,
		Description: "Bright corner unit with a view over the lagoon and covered parking.",
		Price:       85000,
		Location:    "Al Majaz, Sharjah",
		Type:        domain.PropertyTypeRent,
		Bedrooms:    2,
		Bathrooms:   2,
		Area:        1200,
		Images:      domain.StringList{"https://example.com/1.jpg"},
	}
	require.NoError(t, db.Create(property).Error)
	return property
}

func TestInquirySubmit(t *testing.T) {
	t.Run("should persist the inquiry and notify", func(t *testing.T) {
		req := require.New(t)
		db := newTestDB(t)
		notifier := &recordingNotifier{}
		svc := NewInquiryService(db, notifier)

		inquiry, err := svc.Submit(context.Background(), validInput())
		req.NoError(err)
		req.NotEmpty(inquiry.ID)
		req.Equal(domain.InquiryStatusNew, inquiry.Status)
		req.False(inquiry.CreatedAt.IsZero())

		var stored domain.Inquiry
		req.NoError(db.Where("id = ?", inquiry.ID).First(&stored).Error)
		req.Equal("Jo", stored.Name)
		req.Equal("jo@x.com", stored.Email)
		req.Equal("12345678", stored.Phone)
		req.Equal("I am interested", stored.Message)
		req.Nil(stored.PropertyID)

		req.Len(notifier.alerts, 1)
		alert := notifier.alerts[0]
		req.Equal(inquiry.ID, alert.InquiryID)
		req.Equal("Jo", alert.Name)
		req.Nil(alert.PropertyTitle)
	})

	t.Run("should resolve the property title for the alert", func(t *testing.T) {
		req := require.New(t)
		db := newTestDB(t)
		notifier := &recordingNotifier{}
		svc := NewInquiryService(db, notifier)

		property := seedProperty(t, db, "Marina View Tower 2BR")
		in := validInput()
		in.PropertyID = &property.ID

		inquiry, err := svc.Submit(context.Background(), in)
		req.NoError(err)
		req.NotNil(inquiry.PropertyID)

		req.Len(notifier.alerts, 1)
		req.NotNil(notifier.alerts[0].PropertyTitle)
		req.Equal("Marina View Tower 2BR", *notifier.alerts[0].PropertyTitle)
	})

	t.Run("should accept an inquiry whose property no longer exists", func(t *testing.T) {
		req := require.New(t)
		db := newTestDB(t)
		notifier := &recordingNotifier{}
		svc := NewInquiryService(db, notifier)

		missing := "does-not-exist"
		in := validInput()
		in.PropertyID = &missing

		inquiry, err := svc.Submit(context.Background(), in)
		req.NoError(err)
		req.NotEmpty(inquiry.ID)

		req.Len(notifier.alerts, 1)
		req.Nil(notifier.alerts[0].PropertyTitle)
	})

	t.Run("should not notify when the insert fails", func(t *testing.T) {
		req := require.New(t)
		db := newTestDB(t)
		notifier := &recordingNotifier{}
		svc := NewInquiryService(db, notifier)

		// Simulate a store outage
		req.NoError(db.Migrator().DropTable(&domain.Inquiry{}))

		_, err := svc.Submit(context.Background(), validInput())
		req.Error(err)

		var appErr *apperrors.AppError
		req.ErrorAs(err, &appErr)
		req.Equal(apperrors.ErrCodePersistence, appErr.Code)
		req.Equal("Failed to save inquiry", appErr.Message)

		req.Empty(notifier.alerts)
	})
}

func TestInquiryList(t *testing.T) {
	req := require.New(t)
	db := newTestDB(t)
	svc := NewInquiryService(db, &recordingNotifier{})

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, name := range []string{"First", "Second", "Third"} {
		in := validInput()
		in.Name = name
		inquiry, err := svc.Submit(context.Background(), in)
		req.NoError(err)
		req.NoError(db.Model(&domain.Inquiry{}).Where("id = ?", inquiry.ID).
			UpdateColumn("created_at", base.Add(time.Duration(i)*time.Hour)).Error)
	}

	t.Run("should return inquiries newest first", func(t *testing.T) {
		inquiries, err := svc.List(context.Background(), 0, 0)
		require.NoError(t, err)
		require.Len(t, inquiries, 3)
		require.Equal(t, "Third", inquiries[0].Name)
		require.Equal(t, "First", inquiries[2].Name)
	})

	t.Run("should honor skip and limit", func(t *testing.T) {
		inquiries, err := svc.List(context.Background(), 1, 1)
		require.NoError(t, err)
		require.Len(t, inquiries, 1)
		require.Equal(t, "Second", inquiries[0].Name)
	})
}

func TestInquiryUpdateStatus(t *testing.T) {
	t.Run("should move an inquiry through triage", func(t *testing.T) {
		req := require.New(t)
		db := newTestDB(t)
		svc := NewInquiryService(db, &recordingNotifier{})

		inquiry, err := svc.Submit(context.Background(), validInput())
		req.NoError(err)

		updated, err := svc.UpdateStatus(context.Background(), inquiry.ID, domain.InquiryStatusContacted)
		req.NoError(err)
		req.Equal(domain.InquiryStatusContacted, updated.Status)
		req.NotNil(updated.UpdatedAt)

		var stored domain.Inquiry
		req.NoError(db.Where("id = ?", inquiry.ID).First(&stored).Error)
		req.Equal(domain.InquiryStatusContacted, stored.Status)
	})

	t.Run("should reject an unknown status", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewInquiryService(db, &recordingNotifier{})

		_, err := svc.UpdateStatus(context.Background(), "any", "archived")
		require.True(t, apperrors.IsValidation(err))
	})

	t.Run("should report a missing inquiry", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewInquiryService(db, &recordingNotifier{})

		_, err := svc.UpdateStatus(context.Background(), "does-not-exist", domain.InquiryStatusClosed)
		require.True(t, apperrors.IsNotFound(err))
	})
}
