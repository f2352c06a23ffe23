package catalog

import (
	"context"

	"github.com/BruksfildServices01/master-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/master-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/master-scheduler/internal/models"
)

type ServiceInput struct {
	Name        string
	Description string
	DurationMin int
	Price       float64
	Active      *bool
}

// ServicePatch carries only the fields being changed.
type ServicePatch struct {
	Name        *string
	Description *string
	DurationMin *int
	Price       *float64
	Active      *bool
}

type Catalog struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCatalog(repo domain.Repository, audit *audit.Dispatcher) *Catalog {
	return &Catalog{repo: repo, audit: audit}
}

// List returns every service of the master, or only active ones for the
// public storefront.
func (uc *Catalog) List(ctx context.Context, masterID uint, onlyActive bool) ([]models.Service, error) {
	return uc.repo.ListServices(ctx, masterID, onlyActive)
}

func (uc *Catalog) Create(ctx context.Context, masterID, userID uint, in ServiceInput) (*models.Service, error) {
	s := &models.Service{
		MasterID:    masterID,
		Name:        in.Name,
		Description: in.Description,
		DurationMin: in.DurationMin,
		Price:       in.Price,
		Active:      true,
	}
	if in.Active != nil {
		s.Active = *in.Active
	}

	if err := domain.Validate(s); err != nil {
		return nil, err
	}
	if err := uc.repo.CreateService(ctx, s); err != nil {
		return nil, err
	}

	uc.dispatch(masterID, userID, s.ID, "service_created")
	return s, nil
}

func (uc *Catalog) Update(
	ctx context.Context,
	masterID, userID, serviceID uint,
	patch ServicePatch,
) (*models.Service, error) {

	s, err := uc.repo.GetService(ctx, masterID, serviceID)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		s.Name = *patch.Name
	}
	if patch.Description != nil {
		s.Description = *patch.Description
	}
	if patch.DurationMin != nil {
		s.DurationMin = *patch.DurationMin
	}
	if patch.Price != nil {
		s.Price = *patch.Price
	}
	if patch.Active != nil {
		s.Active = *patch.Active
	}

	if err := domain.Validate(s); err != nil {
		return nil, err
	}
	if err := uc.repo.SaveService(ctx, s); err != nil {
		return nil, err
	}

	uc.dispatch(masterID, userID, s.ID, "service_updated")
	return s, nil
}

// Deactivate hides a service from the storefront. The row is kept.
func (uc *Catalog) Deactivate(ctx context.Context, masterID, userID, serviceID uint) error {
	s, err := uc.repo.GetService(ctx, masterID, serviceID)
	if err != nil {
		return err
	}
	if !s.Active {
		return nil
	}

	s.Active = false
	if err := uc.repo.SaveService(ctx, s); err != nil {
		return err
	}

	uc.dispatch(masterID, userID, s.ID, "service_deactivated")
	return nil
}

func (uc *Catalog) dispatch(masterID, userID, serviceID uint, action string) {
	uc.audit.Dispatch(audit.Event{
		MasterID: masterID,
		UserID:   &userID,
		Action:   action,
		Entity:   "service",
		EntityID: &serviceID,
	})
}
