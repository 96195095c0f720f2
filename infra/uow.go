package infra

import (
	"context"

	adminrepo "github.com/unknownhumanoid/pelicoin/infra/repository/admin"
	txrepo "github.com/unknownhumanoid/pelicoin/infra/repository/transaction"
	userrepo "github.com/unknownhumanoid/pelicoin/infra/repository/user"
	"github.com/unknownhumanoid/pelicoin/pkg/repository"
	"gorm.io/gorm"
)

// UoW implements repository.UnitOfWork over a gorm session.
type UoW struct {
	db *gorm.DB
}

// NewUoW wraps a database connection in a UnitOfWork.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db}
}

// Do runs fn inside one gorm transaction; the UnitOfWork handed to fn
// is bound to that transaction, so every repository it returns shares
// the same session.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: tx})
	})
}

func (u *UoW) UserRepository() (repository.UserRepository, error) {
	return userrepo.New(u.db), nil
}

func (u *UoW) AdminRepository() (repository.AdminRepository, error) {
	return adminrepo.New(u.db), nil
}

func (u *UoW) TransactionRepository() (repository.TransactionRepository, error) {
	return txrepo.New(u.db), nil
}
