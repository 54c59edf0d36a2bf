package repo

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/mwalcott/motorlot/internal/models"
)

type AccountRepo struct {
	DB *gorm.DB
}

func (r *AccountRepo) Create(ctx context.Context, acct *models.Account) error {
	if err := r.DB.WithContext(ctx).Create(acct).Error; err != nil {
		return fmt.Errorf("creating account: %w", err)
	}
	return nil
}

func (r *AccountRepo) ByEmail(ctx context.Context, email string) (models.Account, error) {
	var acct models.Account
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&acct).Error; err != nil {
		return models.Account{}, translate(err)
	}
	return acct, nil
}

func (r *AccountRepo) ByID(ctx context.Context, id uint) (models.Account, error) {
	var acct models.Account
	if err := r.DB.WithContext(ctx).First(&acct, id).Error; err != nil {
		return models.Account{}, translate(err)
	}
	return acct, nil
}

func (r *AccountRepo) EmailTaken(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&models.Account{}).
		Where("email = ?", email).Count(&count).Error; err != nil {
		return false, fmt.Errorf("checking email: %w", err)
	}
	return count > 0, nil
}

func (r *AccountRepo) Update(ctx context.Context, id uint, firstName, lastName, email string) error {
	res := r.DB.WithContext(ctx).Model(&models.Account{}).Where("id = ?", id).
		Updates(map[string]any{
			"first_name": firstName,
			"last_name":  lastName,
			"email":      email,
		})
	if res.Error != nil {
		return fmt.Errorf("updating account: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *AccountRepo) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	res := r.DB.WithContext(ctx).Model(&models.Account{}).Where("id = ?", id).
		Update("password_hash", passwordHash)
	if res.Error != nil {
		return fmt.Errorf("updating password: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
