package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/premium_service/internal/models"
)

// ErrNoPremiumLeft means the conditional decrement matched no row: the user
// is absent or already at zero.
var ErrNoPremiumLeft = errors.New("premium is zero or user is absent")

// UpsertToken inserts the user on first login and only overwrites the
// cached token afterwards.
func (r *GormRepo) UpsertToken(ctx context.Context, id int64, token string) error {
	user := models.User{ID: id, Token: token}
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"token"}),
	}).Create(&user).Error
}

func (r *GormRepo) GetUser(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) ListUsers(ctx context.Context, offset, limit int) ([]models.User, error) {
	var users []models.User
	if err := r.DB.WithContext(ctx).Model(&models.User{}).Order("id ASC").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *GormRepo) CountUsers(ctx context.Context) (int64, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.User{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// SetPremium returns the row after the update, or gorm.ErrRecordNotFound.
func (r *GormRepo) SetPremium(ctx context.Context, id int64, premium int64) (*models.User, error) {
	var user models.User
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&user).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.User{}).Where("id = ?", id).UpdateColumn("premium", premium).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).First(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) DeleteUser(ctx context.Context, id int64) error {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ConsumePremium takes one credit with a single conditional UPDATE and
// returns the balance left.
func (r *GormRepo) ConsumePremium(ctx context.Context, id int64) (int64, error) {
	var left int64
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).
			Where("id = ? AND premium > ?", id, 0).
			UpdateColumn("premium", gorm.Expr("premium - ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNoPremiumLeft
		}

		var user models.User
		if err := tx.Select("premium").Where("id = ?", id).First(&user).Error; err != nil {
			return err
		}
		left = user.Premium
		return nil
	})
	if err != nil {
		return 0, err
	}
	return left, nil
}
