package admin

import (
	"time"

	"github.com/google/uuid"
)

// Admin represents an administrator credential record.
type Admin struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email     string    `gorm:"uniqueIndex;not null;size:255"`
	Password  string    `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for the Admin model.
func (Admin) TableName() string {
	return "admins"
}
