package repository

import "context"

// UnitOfWork scopes repository access to one database transaction so a
// balance mutation and its log entry commit atomically.
//
// Do runs fn inside a transaction boundary; the UnitOfWork passed to fn
// hands out repositories bound to that transaction. An error from fn
// rolls the transaction back.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	UserRepository() (UserRepository, error)
	AdminRepository() (AdminRepository, error)
	TransactionRepository() (TransactionRepository, error)
}
