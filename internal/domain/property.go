package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Property types and statuses
const (
	PropertyTypeBuy    = "buy"
	PropertyTypeRent   = "rent"
	PropertyTypeManage = "manage"

	PropertyStatusAvailable = "available"
	PropertyStatusSold      = "sold"
	PropertyStatusRented    = "rented"
)

// StringList is a []string stored as a JSON text column
type StringList []string

// Value implements driver.Valuer
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type for StringList: %T", value)
	}
}

// Property represents a listing in the catalog
type Property struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `gorm:"type:text;not null" json:"description"`
	Price       float64    `gorm:"not null;index" json:"price"`
	Location    string     `gorm:"not null;index" json:"location"`
	Type        string     `gorm:"not null;index" json:"type"` // buy, rent, manage
	Bedrooms    int        `json:"bedrooms"`
	Bathrooms   int        `json:"bathrooms"`
	Area        float64    `json:"area"`
	Images      StringList `gorm:"type:text" json:"images"`
	Amenities   StringList `gorm:"type:text" json:"amenities"`
	Status      string     `gorm:"default:'available';index" json:"status"` // available, sold, rented
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// TableName specifies the table name for Property
func (Property) TableName() string {
	return "properties"
}

// BeforeCreate hook
func (p *Property) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.CreatedAt = time.Now()
	if p.Status == "" {
		p.Status = PropertyStatusAvailable
	}
	return nil
}

// BeforeUpdate hook
func (p *Property) BeforeUpdate(tx *gorm.DB) error {
	now := time.Now()
	p.UpdatedAt = &now
	return nil
}
