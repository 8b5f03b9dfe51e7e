package validation

import (
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "alowais/pkg/errors"
)

func validInquiry() InquiryInput {
	return InquiryInput{
		Name:    "Jo",
		Email:   "jo@x.com",
		Phone:   "12345678",
		Message: "I am interested",
	}
}

func TestValidateInquiry(t *testing.T) {
	t.Run("should accept a minimal valid inquiry", func(t *testing.T) {
		req := require.New(t)
		in := validInquiry()

		req.NoError(ValidateInquiry(&in))
		req.Equal("Jo", in.Name)
		req.Nil(in.PropertyID)
	})

	t.Run("should reject a one-character name and identify the field", func(t *testing.T) {
		req := require.New(t)
		in := validInquiry()
		in.Name = "J"

		err := ValidateInquiry(&in)
		req.Error(err)
		req.True(apperrors.IsValidation(err))

		var appErr *apperrors.AppError
		req.ErrorAs(err, &appErr)
		req.Equal("name", appErr.Field)
		req.Equal("Name must be at least 2 characters", appErr.Message)
	})

	t.Run("should reject whitespace-only values", func(t *testing.T) {
		req := require.New(t)
		in := validInquiry()
		in.Message = "           "

		err := ValidateInquiry(&in)
		req.Error(err)
		req.True(apperrors.IsValidation(err))

		var appErr *apperrors.AppError
		req.ErrorAs(err, &appErr)
		req.Equal("message", appErr.Field)
	})

	t.Run("should reject a malformed email address", func(t *testing.T) {
		req := require.New(t)
		in := validInquiry()
		in.Email = "not-an-email"

		err := ValidateInquiry(&in)
		req.Error(err)

		var appErr *apperrors.AppError
		req.ErrorAs(err, &appErr)
		req.Equal("Invalid email address", appErr.Message)
	})

	t.Run("should reject a short phone number", func(t *testing.T) {
		req := require.New(t)
		in := validInquiry()
		in.Phone = "1234567"

		err := ValidateInquiry(&in)
		req.Error(err)

		var appErr *apperrors.AppError
		req.ErrorAs(err, &appErr)
		req.Equal("Phone number must be at least 8 digits", appErr.Message)
	})

	t.Run("should reject a short message", func(t *testing.T) {
		req := require.New(t)
		in := validInquiry()
		in.Message = "too short"

		err := ValidateInquiry(&in)
		req.Error(err)

		var appErr *apperrors.AppError
		req.ErrorAs(err, &appErr)
		req.Equal("Message must be at least 10 characters", appErr.Message)
	})

	t.Run("should report only the first violation", func(t *testing.T) {
		req := require.New(t)
		in := InquiryInput{Name: "J", Email: "bad", Phone: "1", Message: "x"}

		err := ValidateInquiry(&in)
		req.Error(err)

		var appErr *apperrors.AppError
		req.ErrorAs(err, &appErr)
		req.Equal("name", appErr.Field)
	})

	t.Run("should normalize the optional property reference", func(t *testing.T) {
		req := require.New(t)

		in := validInquiry()
		blank := "   "
		in.PropertyID = &blank
		req.NoError(ValidateInquiry(&in))
		req.Nil(in.PropertyID)

		in = validInquiry()
		ref := "  prop-123  "
		in.PropertyID = &ref
		req.NoError(ValidateInquiry(&in))
		req.NotNil(in.PropertyID)
		req.Equal("prop-123", *in.PropertyID)
	})

	t.Run("should trim and lowercase the email", func(t *testing.T) {
		req := require.New(t)
		in := validInquiry()
		in.Email = "  Jo@X.Com  "

		req.NoError(ValidateInquiry(&in))
		req.Equal("jo@x.com", in.Email)
	})
}

func validProperty() PropertyInput {
	return PropertyInput{
		Title:       "Two bedroom apartment in Al Majaz",
		Description: "Bright corner unit with a view over the lagoon and covered parking.",
		Price:       85000,
		Location:    "Al Majaz, Sharjah",
		Type:        "rent",
		Bedrooms:    2,
		Bathrooms:   2,
		Area:        1200,
		Images:      []string{"https://example.com/1.jpg"},
	}
}

func TestValidateProperty(t *testing.T) {
	t.Run("should accept a valid property", func(t *testing.T) {
		in := validProperty()
		require.NoError(t, ValidateProperty(&in))
	})

	t.Run("should reject a short title", func(t *testing.T) {
		req := require.New(t)
		in := validProperty()
		in.Title = "Flat"

		err := ValidateProperty(&in)
		req.Error(err)

		var appErr *apperrors.AppError
		req.ErrorAs(err, &appErr)
		req.Equal("Title must be at least 5 characters", appErr.Message)
	})

	t.Run("should reject an unknown type", func(t *testing.T) {
		req := require.New(t)
		in := validProperty()
		in.Type = "lease"

		err := ValidateProperty(&in)
		req.Error(err)

		var appErr *apperrors.AppError
		req.ErrorAs(err, &appErr)
		req.Equal("Invalid property type", appErr.Message)
	})

	t.Run("should require at least one image", func(t *testing.T) {
		req := require.New(t)
		in := validProperty()
		in.Images = nil

		err := ValidateProperty(&in)
		req.Error(err)

		var appErr *apperrors.AppError
		req.ErrorAs(err, &appErr)
		req.Equal("At least one image is required", appErr.Message)
	})

	t.Run("should reject a non-positive price", func(t *testing.T) {
		req := require.New(t)
		in := validProperty()
		in.Price = 0

		err := ValidateProperty(&in)
		req.Error(err)

		var appErr *apperrors.AppError
		req.ErrorAs(err, &appErr)
		req.Equal("Price must be positive", appErr.Message)
	})
}
