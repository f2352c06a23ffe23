package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/master-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/master-scheduler/internal/models"
)

type CatalogGormRepository struct {
	db *gorm.DB
}

func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

func (r *CatalogGormRepository) ListServices(
	ctx context.Context,
	masterID uint,
	onlyActive bool,
) ([]models.Service, error) {

	q := r.db.WithContext(ctx).Where("master_id = ?", masterID)
	if onlyActive {
		q = q.Where("active = ?", true)
	}

	var services []models.Service
	if err := q.Order("name ASC").Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *CatalogGormRepository) GetService(
	ctx context.Context,
	masterID uint,
	serviceID uint,
) (*models.Service, error) {

	var s models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND master_id = ?", serviceID, masterID).
		First(&s).Error; err != nil {
		return nil, notFound(err, domain.ErrServiceNotFound)
	}
	return &s, nil
}

func (r *CatalogGormRepository) CreateService(ctx context.Context, s *models.Service) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		active := s.Active
		if err := tx.Create(s).Error; err != nil {
			return err
		}

		// the column default would turn a zero value into true
		if !active {
			s.Active = false
			return tx.Model(s).Update("active", false).Error
		}
		return nil
	})
}

// SaveService writes every column so that Active=false is persisted.
func (r *CatalogGormRepository) SaveService(ctx context.Context, s *models.Service) error {
	return r.db.WithContext(ctx).Save(s).Error
}

var _ domain.Repository = (*CatalogGormRepository)(nil)
