package infra_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/unknownhumanoid/pelicoin/infra"
	"github.com/unknownhumanoid/pelicoin/pkg/domain/ledger"
	"github.com/unknownhumanoid/pelicoin/pkg/domain/user"
	"github.com/unknownhumanoid/pelicoin/pkg/repository"
)

func newTestUoW(t *testing.T) *infra.UoW {
	t.Helper()
	db, err := gorm.Open(
		sqlite.Open(filepath.Join(t.TempDir(), "test.db")),
		&gorm.Config{
			Logger:                 logger.Default.LogMode(logger.Silent),
			SkipDefaultTransaction: true,
			TranslateError:         true,
		})
	require.NoError(t, err)
	require.NoError(t, infra.Migrate(db))
	return infra.NewUoW(db)
}

func createTestUser(t *testing.T, uow *infra.UoW, email string, year int) *user.User {
	t.Helper()
	u, err := user.New(email, "password", "Alice", year, "Batchelder")
	require.NoError(t, err)
	require.NoError(t, uow.Do(context.Background(), func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		return repo.Create(context.Background(), u)
	}))
	return u
}

func TestUserRepository_CreateAndGetByEmail(t *testing.T) {
	uow := newTestUoW(t)
	ctx := context.Background()
	u := createTestUser(t, uow, "alice@loomis.org", 2026)

	repo, err := uow.UserRepository()
	require.NoError(t, err)
	got, err := repo.GetByEmail(ctx, u.Email)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "Alice", got.Name)
	assert.Equal(t, 2026, got.Graduation)
	assert.True(t, got.Balances.Total().IsZero())
}

func TestUserRepository_GetByEmail_NotFound(t *testing.T) {
	uow := newTestUoW(t)
	repo, err := uow.UserRepository()
	require.NoError(t, err)

	_, err = repo.GetByEmail(context.Background(), "ghost@loomis.org")
	require.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	uow := newTestUoW(t)
	ctx := context.Background()
	createTestUser(t, uow, "alice@loomis.org", 2026)

	dup, err := user.New("alice@loomis.org", "other", "Impostor", 2027, "")
	require.NoError(t, err)
	repo, err := uow.UserRepository()
	require.NoError(t, err)
	require.ErrorIs(t, repo.Create(ctx, dup), user.ErrEmailTaken)
}

func TestUserRepository_SaveBalances_Upserts(t *testing.T) {
	uow := newTestUoW(t)
	ctx := context.Background()
	u := createTestUser(t, uow, "alice@loomis.org", 2026)
	repo, err := uow.UserRepository()
	require.NoError(t, err)

	u.Balances[ledger.AccountCurrent][ledger.BucketCash] = decimal.NewFromInt(42)
	require.NoError(t, repo.SaveBalances(ctx, u.ID, u.Balances))

	u.Balances[ledger.AccountCurrent][ledger.BucketCash] = decimal.NewFromInt(7)
	require.NoError(t, repo.SaveBalances(ctx, u.ID, u.Balances))

	got, err := repo.GetByEmail(ctx, u.Email)
	require.NoError(t, err)
	assert.True(t, got.Balances.Get(ledger.AccountCurrent, ledger.BucketCash).
		Equal(decimal.NewFromInt(7)))
}

func TestTransactionRepository_InsertionOrderPreserved(t *testing.T) {
	uow := newTestUoW(t)
	ctx := context.Background()
	u := createTestUser(t, uow, "alice@loomis.org", 2026)
	repo, err := uow.TransactionRepository()
	require.NoError(t, err)

	// identical timestamps must not disturb the order
	var created []ledger.Transaction
	for i := 0; i < 5; i++ {
		tx, err := u.Balances.Deposit(
			decimal.NewFromInt(int64(i+1)),
			ledger.AccountCurrent, ledger.BucketCash,
			ledger.ExecuterAdmin, "")
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, u.ID, &tx))
		created = append(created, tx)
	}

	got, err := repo.ListByUser(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, got, 5)
	for i := range created {
		assert.Equal(t, created[i].ID, got[i].ID)
	}
}

func TestUserRepository_DeleteByGraduationYear(t *testing.T) {
	uow := newTestUoW(t)
	ctx := context.Background()
	alice := createTestUser(t, uow, "alice@loomis.org", 2026)
	bob := createTestUser(t, uow, "bob@loomis.org", 2024)

	repo, err := uow.UserRepository()
	require.NoError(t, err)
	require.NoError(t, repo.DeleteByGraduationYear(ctx, 2024))

	_, err = repo.GetByEmail(ctx, bob.Email)
	require.ErrorIs(t, err, user.ErrUserNotFound)
	_, err = repo.GetByEmail(ctx, alice.Email)
	require.NoError(t, err)
}

func TestUserRepository_DeleteByEmail_RemovesDependents(t *testing.T) {
	uow := newTestUoW(t)
	ctx := context.Background()
	u := createTestUser(t, uow, "alice@loomis.org", 2026)

	txRepo, err := uow.TransactionRepository()
	require.NoError(t, err)
	tx, err := u.Balances.Deposit(
		decimal.NewFromInt(10), ledger.AccountCurrent, ledger.BucketCash,
		ledger.ExecuterAdmin, "")
	require.NoError(t, err)
	require.NoError(t, txRepo.Create(ctx, u.ID, &tx))

	repo, err := uow.UserRepository()
	require.NoError(t, err)
	require.NoError(t, repo.DeleteByEmail(ctx, u.Email))

	txs, err := txRepo.ListByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestAdminRepository_CreateAndGet(t *testing.T) {
	uow := newTestUoW(t)
	ctx := context.Background()
	adm, err := user.NewAdmin("admin@loomis.org", "hunter2")
	require.NoError(t, err)

	repo, err := uow.AdminRepository()
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, adm))

	got, err := repo.GetByEmail(ctx, adm.Email)
	require.NoError(t, err)
	assert.Equal(t, adm.ID, got.ID)

	_, err = repo.GetByEmail(ctx, "nobody@loomis.org")
	require.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestUoW_RollsBackOnError(t *testing.T) {
	uow := newTestUoW(t)
	ctx := context.Background()
	boom := errors.New("boom")

	u, err := user.New("alice@loomis.org", "password", "Alice", 2026, "")
	require.NoError(t, err)
	err = uow.Do(ctx, func(txUow repository.UnitOfWork) error {
		repo, err := txUow.UserRepository()
		if err != nil {
			return err
		}
		if err := repo.Create(ctx, u); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	repo, err := uow.UserRepository()
	require.NoError(t, err)
	_, err = repo.GetByEmail(ctx, u.Email)
	require.ErrorIs(t, err, user.ErrUserNotFound)
}
