package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mlazarev/book-library/internal/models"
)

// CreateUser inserts the user. The unique constraints on username and email are
// the authoritative duplicate guard; callers may pre-check for a friendlier
// error but must not rely on the pre-check for correctness.
func (r *GormRepo) CreateUser(ctx context.Context, u *models.User) error {
	if err := r.DB.WithContext(ctx).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUserAlreadyExist
		}
		return err
	}
	return nil
}

func (r *GormRepo) UsernameOrEmailTaken(ctx context.Context, username, email string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormRepo) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return &user, nil
}
