package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction is one append-only ledger record. Seq preserves insertion
// order across identical timestamps.
type Transaction struct {
	Seq         uint64          `gorm:"primaryKey;autoIncrement"`
	ID          uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null"`
	UserID      uuid.UUID       `gorm:"type:uuid;index;not null"`
	Executer    string          `gorm:"size:255;not null"`
	Reason      string          `gorm:"size:255"`
	Pelicoins   decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	AccountFrom string          `gorm:"size:32;not null"`
	TypeFrom    string          `gorm:"size:32;not null"`
	AccountTo   string          `gorm:"size:32;not null"`
	TypeTo      string          `gorm:"size:32;not null"`
	CreatedAt   time.Time
}

// TableName specifies the table name for the Transaction model.
func (Transaction) TableName() string {
	return "transactions"
}
