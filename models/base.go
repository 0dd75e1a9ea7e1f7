package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base carries the backend-assigned identifier and timestamps shared by
// every table.
type Base struct {
	ID        string    `gorm:"primaryKey;type:uuid;column:id" json:"id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// BeforeCreate assigns the identifier. Callers never choose it.
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	b.ID = uuid.New().String()
	return nil
}

// Columns maps column names to the values a create or update writes.
type Columns map[string]interface{}

// Names returns the column names in the map.
func (c Columns) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	return names
}

// DateLayout encodes calendar days such as date_of_birth.
const DateLayout = "2006-01-02"
