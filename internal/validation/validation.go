package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "alowais/pkg/errors"
)

var validate = validator.New()

// InquiryInput is the inbound inquiry payload. Fields are normalized in place
// before the rules run, so whitespace-only values fail the length checks.
type InquiryInput struct {
	Name       string  `json:"name" validate:"required,min=2"`
	Email      string  `json:"email" validate:"required,email"`
	Phone      string  `json:"phone" validate:"required,min=8"`
	Message    string  `json:"message" validate:"required,min=10"`
	PropertyID *string `json:"property_id,omitempty"`
}

// PropertyInput is the inbound property payload for admin create/update
type PropertyInput struct {
	Title       string   `json:"title" validate:"required,min=5"`
	Description string   `json:"description" validate:"required,min=20"`
	Price       float64  `json:"price" validate:"required,gt=0"`
	Location    string   `json:"location" validate:"required,min=3"`
	Type        string   `json:"type" validate:"required,oneof=buy rent manage"`
	Bedrooms    int      `json:"bedrooms" validate:"min=0"`
	Bathrooms   int      `json:"bathrooms" validate:"min=0"`
	Area        float64  `json:"area" validate:"required,gt=0"`
	Images      []string `json:"images" validate:"required,min=1"`
	Amenities   []string `json:"amenities"`
	Status      string   `json:"status" validate:"omitempty,oneof=available sold rented"`
}

// inquiryMessages maps struct field names to client-facing messages. The
// same message covers required/min/format since the first violation wins.
var inquiryMessages = map[string]string{
	"Name":    "Name must be at least 2 characters",
	"Email":   "Invalid email address",
	"Phone":   "Phone number must be at least 8 digits",
	"Message": "Message must be at least 10 characters",
}

var propertyMessages = map[string]string{
	"Title":       "Title must be at least 5 characters",
	"Description": "Description must be at least 20 characters",
	"Price":       "Price must be positive",
	"Location":    "Location is required",
	"Type":        "Invalid property type",
	"Bedrooms":    "Bedrooms must not be negative",
	"Bathrooms":   "Bathrooms must not be negative",
	"Area":        "Area must be positive",
	"Images":      "At least one image is required",
	"Status":      "Invalid status",
}

// ValidateInquiry normalizes and validates an inquiry payload. It stops on
// the first violated rule and returns a validation error naming the field.
func ValidateInquiry(in *InquiryInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
	in.Message = strings.TrimSpace(in.Message)

	// The property reference is opaque here; existence is not checked
	if in.PropertyID != nil {
		trimmed := strings.TrimSpace(*in.PropertyID)
		if trimmed == "" {
			in.PropertyID = nil
		} else {
			in.PropertyID = &trimmed
		}
	}

	return firstViolation(validate.Struct(in), inquiryMessages)
}

// ValidateProperty normalizes and validates a property payload
func ValidateProperty(in *PropertyInput) error {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Location = strings.TrimSpace(in.Location)
	in.Type = strings.TrimSpace(in.Type)
	in.Status = strings.TrimSpace(in.Status)

	return firstViolation(validate.Struct(in), propertyMessages)
}

// firstViolation converts the first field error into an AppError
func firstViolation(err error, messages map[string]string) error {
	if err == nil {
		return nil
	}

	violations, ok := err.(validator.ValidationErrors)
	if !ok || len(violations) == 0 {
		return apperrors.Wrap(apperrors.ErrCodeValidation, "Invalid request", err)
	}

	first := violations[0]
	field := strings.ToLower(first.Field())
	message, ok := messages[first.Field()]
	if !ok {
		message = fmt.Sprintf("%s is invalid", first.Field())
	}

	return apperrors.Validation(field, message)
}
