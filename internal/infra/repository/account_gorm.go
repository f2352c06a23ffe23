package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/master-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/master-scheduler/internal/httperr"
	"github.com/BruksfildServices01/master-scheduler/internal/models"
)

const maxSlugAttempts = 1000

type AccountGormRepository struct {
	db *gorm.DB
}

func NewAccountGormRepository(db *gorm.DB) *AccountGormRepository {
	return &AccountGormRepository{db: db}
}

func (r *AccountGormRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ?", email).
		Count(&count).Error
	return count > 0, err
}

func (r *AccountGormRepository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).
		Preload("Profile").
		Where("email = ?", email).
		First(&user).Error; err != nil {
		return nil, notFound(err, domain.ErrUserNotFound)
	}
	return &user, nil
}

func (r *AccountGormRepository) GetUser(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).
		Preload("Profile").
		First(&user, userID).Error; err != nil {
		return nil, notFound(err, domain.ErrUserNotFound)
	}
	return &user, nil
}

func (r *AccountGormRepository) CreateMaster(
	ctx context.Context,
	user *models.User,
	profile *models.MasterProfile,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Profile").Create(user).Error; err != nil {
			return err
		}

		slug, err := freeSlug(tx, profile.Slug)
		if err != nil {
			return err
		}

		profile.UserID = user.ID
		profile.Slug = slug
		return tx.Create(profile).Error
	})

	if err != nil && httperr.IsExclusionConflict(err) {
		return fmt.Errorf("%w: %v", domain.ErrAccountConflict, err)
	}
	return err
}

func (r *AccountGormRepository) UpdateProfile(ctx context.Context, profile *models.MasterProfile) error {
	return r.db.WithContext(ctx).
		Model(profile).
		Select("display_name", "phone", "bio", "timezone").
		Updates(profile).Error
}

func freeSlug(tx *gorm.DB, base string) (string, error) {
	for n := 0; n < maxSlugAttempts; n++ {
		candidate := domain.SlugCandidate(base, n)

		var existing models.MasterProfile
		err := tx.Select("id").Where("slug = ?", candidate).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", domain.ErrAccountConflict
}

var _ domain.Repository = (*AccountGormRepository)(nil)
