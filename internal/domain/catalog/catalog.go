package catalog

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/master-scheduler/internal/httperr"
	"github.com/BruksfildServices01/master-scheduler/internal/models"
)

var (
	ErrServiceNotFound = httperr.ErrBusiness("service_not_found")
	ErrInvalidName     = httperr.ErrBusiness("invalid_name")
	ErrInvalidDuration = httperr.ErrBusiness("invalid_duration")
	ErrInvalidPrice    = httperr.ErrBusiness("invalid_price")
)

type Repository interface {
	ListServices(ctx context.Context, masterID uint, onlyActive bool) ([]models.Service, error)
	GetService(ctx context.Context, masterID uint, serviceID uint) (*models.Service, error)
	CreateService(ctx context.Context, s *models.Service) error
	SaveService(ctx context.Context, s *models.Service) error
}

func Validate(s *models.Service) error {
	s.Name = strings.TrimSpace(s.Name)
	if s.Name == "" || len(s.Name) > 200 {
		return ErrInvalidName
	}
	if s.DurationMin < 1 {
		return ErrInvalidDuration
	}
	if s.Price < 0 {
		return ErrInvalidPrice
	}
	return nil
}
