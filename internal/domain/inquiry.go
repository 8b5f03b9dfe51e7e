package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Inquiry statuses
const (
	InquiryStatusNew       = "new"
	InquiryStatusContacted = "contacted"
	InquiryStatusClosed    = "closed"
)

// Inquiry represents a lead captured from a visitor, optionally tied to a
// property. The ID and CreatedAt are assigned by the store on insert.
type Inquiry struct {
	ID         string     `gorm:"primaryKey;size:36" json:"id"`
	Name       string     `gorm:"not null" json:"name"`
	Email      string     `gorm:"not null;index" json:"email"`
	Phone      string     `gorm:"not null" json:"phone"`
	Message    string     `gorm:"type:text;not null" json:"message"`
	PropertyID *string    `gorm:"size:36;index" json:"property_id,omitempty"`
	Status     string     `gorm:"default:'new'" json:"status"` // new, contacted, closed
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

// TableName specifies the table name for Inquiry
func (Inquiry) TableName() string {
	return "inquiries"
}

// BeforeCreate hook
func (i *Inquiry) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	i.CreatedAt = time.Now()
	if i.Status == "" {
		i.Status = InquiryStatusNew
	}
	return nil
}

// BeforeUpdate hook
func (i *Inquiry) BeforeUpdate(tx *gorm.DB) error {
	now := time.Now()
	i.UpdatedAt = &now
	return nil
}

// ValidStatus reports whether s is a known inquiry status
func ValidStatus(s string) bool {
	switch s {
	case InquiryStatusNew, InquiryStatusContacted, InquiryStatusClosed:
		return true
	}
	return false
}
