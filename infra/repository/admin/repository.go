package admin

import (
	"context"
	"errors"

	domain "github.com/unknownhumanoid/pelicoin/pkg/domain/user"
	"github.com/unknownhumanoid/pelicoin/pkg/repository"
	"gorm.io/gorm"
)

type adminRepository struct {
	db *gorm.DB
}

// New returns a gorm-backed admin repository.
func New(db *gorm.DB) repository.AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) GetByEmail(
	ctx context.Context,
	email string,
) (*domain.Admin, error) {
	var model Admin
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &domain.Admin{
		ID:       model.ID,
		Email:    model.Email,
		Password: model.Password,
	}, nil
}

func (r *adminRepository) Create(ctx context.Context, a *domain.Admin) error {
	model := Admin{ID: a.ID, Email: a.Email, Password: a.Password}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrEmailTaken
		}
		return err
	}
	return nil
}
