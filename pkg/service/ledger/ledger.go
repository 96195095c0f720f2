// Package ledger provides the application service that applies balance
// mutations and maintains the audit trail. Every mutation loads the
// user, applies the domain operation, and persists the changed buckets
// together with the new transaction record in one UnitOfWork.
package ledger

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"
	"github.com/unknownhumanoid/pelicoin/pkg/domain/ledger"
	"github.com/unknownhumanoid/pelicoin/pkg/domain/user"
	"github.com/unknownhumanoid/pelicoin/pkg/repository"
)

// Service provides balance mutation and query operations.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a Service with a UnitOfWork and logger.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// mutate loads the user's balances, applies one domain mutation, and
// persists both the balances and the appended transaction atomically.
func (s *Service) mutate(
	ctx context.Context,
	email string,
	apply func(b ledger.Balances) (ledger.Transaction, error),
) (tx *ledger.Transaction, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err := users.GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		applied, err := apply(u.Balances)
		if err != nil {
			return err
		}
		if err := users.SaveBalances(ctx, u.ID, u.Balances); err != nil {
			return err
		}
		txs, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		if err := txs.Create(ctx, u.ID, &applied); err != nil {
			return err
		}
		tx = &applied
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// Deposit adds amount to one of the user's buckets; a negative amount
// subtracts.
func (s *Service) Deposit(
	ctx context.Context,
	email string,
	amount decimal.Decimal,
	account ledger.Account,
	bucket ledger.Bucket,
	executer, reason string,
) (*ledger.Transaction, error) {
	log := s.logger.With("email", email, "account", account, "bucket", bucket)
	tx, err := s.mutate(ctx, email, func(b ledger.Balances) (ledger.Transaction, error) {
		return b.Deposit(amount, account, bucket, executer, reason)
	})
	if err != nil {
		log.Error("Deposit failed", "error", err)
		return nil, err
	}
	log.Info("Deposit applied", "pelicoins", amount)
	return tx, nil
}

// SetBalance overwrites one of the user's buckets with an absolute
// amount.
func (s *Service) SetBalance(
	ctx context.Context,
	email string,
	amount decimal.Decimal,
	account ledger.Account,
	bucket ledger.Bucket,
	executer, reason string,
) (*ledger.Transaction, error) {
	log := s.logger.With("email", email, "account", account, "bucket", bucket)
	tx, err := s.mutate(ctx, email, func(b ledger.Balances) (ledger.Transaction, error) {
		return b.Set(amount, account, bucket, executer, reason)
	})
	if err != nil {
		log.Error("SetBalance failed", "error", err)
		return nil, err
	}
	log.Info("Balance set", "pelicoins", amount)
	return tx, nil
}

// YieldToBalance grows one of the user's buckets by percent of its
// current value.
func (s *Service) YieldToBalance(
	ctx context.Context,
	email string,
	percent decimal.Decimal,
	account ledger.Account,
	bucket ledger.Bucket,
	executer, reason string,
) (*ledger.Transaction, error) {
	log := s.logger.With("email", email, "account", account, "bucket", bucket)
	tx, err := s.mutate(ctx, email, func(b ledger.Balances) (ledger.Transaction, error) {
		return b.Yield(percent, account, bucket, executer, reason)
	})
	if err != nil {
		log.Error("YieldToBalance failed", "error", err)
		return nil, err
	}
	log.Info("Yield applied", "percent", percent)
	return tx, nil
}

// YieldAll applies the same yield to every user's bucket, the way the
// admin rates panel does. Each user still gets their own transaction
// entry; all of them commit together.
func (s *Service) YieldAll(
	ctx context.Context,
	percent decimal.Decimal,
	account ledger.Account,
	bucket ledger.Bucket,
	executer, reason string,
) (applied int, err error) {
	log := s.logger.With("account", account, "bucket", bucket, "percent", percent)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		txs, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		all, err := users.List(ctx)
		if err != nil {
			return err
		}
		for _, u := range all {
			tx, err := u.Balances.Yield(percent, account, bucket, executer, reason)
			if err != nil {
				return err
			}
			if err := users.SaveBalances(ctx, u.ID, u.Balances); err != nil {
				return err
			}
			if err := txs.Create(ctx, u.ID, &tx); err != nil {
				return err
			}
			applied++
		}
		return nil
	})
	if err != nil {
		log.Error("YieldAll failed", "error", err)
		return 0, err
	}
	log.Info("Yield applied to all users", "applied", applied)
	return applied, nil
}

// Transfer moves amount between two of the user's buckets.
func (s *Service) Transfer(
	ctx context.Context,
	email string,
	amount decimal.Decimal,
	fromAccount ledger.Account, fromBucket ledger.Bucket,
	toAccount ledger.Account, toBucket ledger.Bucket,
	executer string,
) (*ledger.Transaction, error) {
	log := s.logger.With(
		"email", email,
		"from", string(fromAccount)+"/"+string(fromBucket),
		"to", string(toAccount)+"/"+string(toBucket),
	)
	tx, err := s.mutate(ctx, email, func(b ledger.Balances) (ledger.Transaction, error) {
		return b.Transfer(amount, fromAccount, fromBucket, toAccount, toBucket, executer)
	})
	if err != nil {
		log.Error("Transfer failed", "error", err)
		return nil, err
	}
	log.Info("Transfer applied", "pelicoins", amount)
	return tx, nil
}

// Balances returns the user with their current balance mapping.
func (s *Service) Balances(
	ctx context.Context,
	email string,
) (u *user.User, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err = users.GetByEmail(ctx, email)
		return err
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Transactions returns the user's history in insertion order.
func (s *Service) Transactions(
	ctx context.Context,
	email string,
) (txs []ledger.Transaction, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err := users.GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		repo, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		txs, err = repo.ListByUser(ctx, u.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return txs, nil
}
