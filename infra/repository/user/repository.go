package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/unknownhumanoid/pelicoin/infra/repository/transaction"
	"github.com/unknownhumanoid/pelicoin/pkg/domain/ledger"
	domain "github.com/unknownhumanoid/pelicoin/pkg/domain/user"
	"github.com/unknownhumanoid/pelicoin/pkg/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type userRepository struct {
	db *gorm.DB
}

// New returns a gorm-backed user repository.
func New(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByEmail(
	ctx context.Context,
	email string,
) (*domain.User, error) {
	var model User
	err := r.db.WithContext(ctx).
		Preload("Balances").
		Where("email = ?", email).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return mapModelToDomain(&model), nil
}

func (r *userRepository) List(ctx context.Context) ([]*domain.User, error) {
	var models []User
	if err := r.db.WithContext(ctx).
		Preload("Balances").
		Find(&models).Error; err != nil {
		return nil, err
	}

	users := make([]*domain.User, 0, len(models))
	for i := range models {
		users = append(users, mapModelToDomain(&models[i]))
	}
	return users, nil
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	model := User{
		ID:         u.ID,
		Email:      u.Email,
		Password:   u.Password,
		Name:       u.Name,
		Graduation: u.Graduation,
		Dorm:       u.Dorm,
		Balances:   mapBalancesToModels(u.ID, u.Balances),
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *userRepository) SaveBalances(
	ctx context.Context,
	userID uuid.UUID,
	b ledger.Balances,
) error {
	rows := mapBalancesToModels(userID, b)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"}, {Name: "account"}, {Name: "bucket"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"amount"}),
	}).Create(&rows).Error
}

func (r *userRepository) DeleteByEmail(ctx context.Context, email string) error {
	var model User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}
	return r.deleteUsers(ctx, []uuid.UUID{model.ID})
}

func (r *userRepository) DeleteByGraduationYear(ctx context.Context, year int) error {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&User{}).
		Where("graduation = ?", year).
		Pluck("id", &ids).Error
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}
	return r.deleteUsers(ctx, ids)
}

// deleteUsers removes the users and their dependent rows. The sqlite
// driver does not enforce foreign keys by default, so dependents are
// deleted explicitly.
func (r *userRepository) deleteUsers(ctx context.Context, ids []uuid.UUID) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("user_id IN ?", ids).Delete(&Balance{}).Error; err != nil {
		return err
	}
	if err := db.Where("user_id IN ?", ids).
		Delete(&transaction.Transaction{}).Error; err != nil {
		return err
	}
	return db.Where("id IN ?", ids).Delete(&User{}).Error
}

func mapModelToDomain(model *User) *domain.User {
	balances := ledger.NewBalances()
	for _, row := range model.Balances {
		account := ledger.Account(row.Account)
		bucket := ledger.Bucket(row.Bucket)
		if ledger.ValidPair(account, bucket) {
			balances[account][bucket] = row.Amount
		}
	}
	return &domain.User{
		ID:         model.ID,
		Email:      model.Email,
		Password:   model.Password,
		Name:       model.Name,
		Graduation: model.Graduation,
		Dorm:       model.Dorm,
		Balances:   balances,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}

func mapBalancesToModels(userID uuid.UUID, b ledger.Balances) []Balance {
	rows := make([]Balance, 0, 7)
	for _, account := range ledger.Accounts() {
		for _, bucket := range ledger.BucketsFor(account) {
			rows = append(rows, Balance{
				UserID:  userID,
				Account: string(account),
				Bucket:  string(bucket),
				Amount:  b.Get(account, bucket),
			})
		}
	}
	return rows
}
