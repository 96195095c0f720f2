package transaction

import (
	"context"

	"github.com/google/uuid"
	"github.com/unknownhumanoid/pelicoin/pkg/domain/ledger"
	"github.com/unknownhumanoid/pelicoin/pkg/repository"
	"gorm.io/gorm"
)

type transactionRepository struct {
	db *gorm.DB
}

// New returns a gorm-backed transaction repository.
func New(db *gorm.DB) repository.TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(
	ctx context.Context,
	userID uuid.UUID,
	tx *ledger.Transaction,
) error {
	model := Transaction{
		ID:          tx.ID,
		UserID:      userID,
		Executer:    tx.Executer,
		Reason:      tx.Reason,
		Pelicoins:   tx.Pelicoins,
		AccountFrom: tx.AccountFrom,
		TypeFrom:    tx.TypeFrom,
		AccountTo:   tx.AccountTo,
		TypeTo:      tx.TypeTo,
		CreatedAt:   tx.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(&model).Error
}

func (r *transactionRepository) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]ledger.Transaction, error) {
	var models []Transaction
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("seq asc").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	txs := make([]ledger.Transaction, 0, len(models))
	for _, model := range models {
		txs = append(txs, ledger.Transaction{
			ID:          model.ID,
			Executer:    model.Executer,
			Reason:      model.Reason,
			Pelicoins:   model.Pelicoins,
			AccountFrom: model.AccountFrom,
			TypeFrom:    model.TypeFrom,
			AccountTo:   model.AccountTo,
			TypeTo:      model.TypeTo,
			CreatedAt:   model.CreatedAt,
		})
	}
	return txs, nil
}
