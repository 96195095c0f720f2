package user

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User represents a user record in the database.
type User struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email      string    `gorm:"uniqueIndex;not null;size:255"`
	Password   string    `gorm:"not null"`
	Name       string    `gorm:"not null;size:255"`
	Graduation int       `gorm:"index;not null"`
	Dorm       string    `gorm:"size:255"`
	Balances   []Balance `gorm:"foreignKey:UserID"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}

// Balance is one (account, bucket) row of a user's balance mapping.
type Balance struct {
	ID      uint            `gorm:"primaryKey"`
	UserID  uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_balances_user_account_bucket"`
	Account string          `gorm:"size:32;not null;uniqueIndex:idx_balances_user_account_bucket"`
	Bucket  string          `gorm:"size:32;not null;uniqueIndex:idx_balances_user_account_bucket"`
	Amount  decimal.Decimal `gorm:"type:decimal(20,8);not null"`
}

// TableName specifies the table name for the Balance model.
func (Balance) TableName() string {
	return "balances"
}
