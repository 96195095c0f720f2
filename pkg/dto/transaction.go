package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/unknownhumanoid/pelicoin/pkg/domain/ledger"
)

// TransactionRead is the public view of one ledger record.
type TransactionRead struct {
	ID          uuid.UUID       `json:"id"`
	Executer    string          `json:"executer"`
	Reason      string          `json:"reason,omitempty"`
	Pelicoins   decimal.Decimal `json:"pelicoins"`
	AccountFrom string          `json:"accountFrom"`
	TypeFrom    string          `json:"typeFrom"`
	AccountTo   string          `json:"accountTo"`
	TypeTo      string          `json:"typeTo"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// NewTransactionRead maps a ledger transaction to its public view.
func NewTransactionRead(tx ledger.Transaction) TransactionRead {
	return TransactionRead{
		ID:          tx.ID,
		Executer:    tx.Executer,
		Reason:      tx.Reason,
		Pelicoins:   tx.Pelicoins,
		AccountFrom: tx.AccountFrom,
		TypeFrom:    tx.TypeFrom,
		AccountTo:   tx.AccountTo,
		TypeTo:      tx.TypeTo,
		CreatedAt:   tx.CreatedAt,
	}
}

// NewTransactionReads maps a transaction history preserving order.
func NewTransactionReads(txs []ledger.Transaction) []TransactionRead {
	reads := make([]TransactionRead, 0, len(txs))
	for _, tx := range txs {
		reads = append(reads, NewTransactionRead(tx))
	}
	return reads
}
