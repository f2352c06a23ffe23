package booking

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/master-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/master-scheduler/internal/httperr"
	"github.com/BruksfildServices01/master-scheduler/internal/models"
)

type ListBookings struct {
	repo domain.Repository
}

func NewListBookings(repo domain.Repository) *ListBookings {
	return &ListBookings{repo: repo}
}

// Execute lists the master's bookings, newest first. An empty status
// lists all of them.
func (uc *ListBookings) Execute(
	ctx context.Context,
	masterID uint,
	status string,
) ([]models.Booking, error) {

	st := domain.Status(status)
	if st != "" && !st.Valid() {
		return nil, httperr.ErrBusiness("invalid_status")
	}
	return uc.repo.ListBookings(ctx, masterID, st)
}

type GetBooking struct {
	repo domain.Repository
}

func NewGetBooking(repo domain.Repository) *GetBooking {
	return &GetBooking{repo: repo}
}

func (uc *GetBooking) Execute(ctx context.Context, masterID, bookingID uint) (*models.Booking, error) {
	return uc.repo.GetBooking(ctx, masterID, bookingID)
}

func (uc *GetBooking) ByReference(ctx context.Context, reference string) (*models.Booking, error) {
	return uc.repo.GetBookingByReference(ctx, reference)
}

type GetMaster struct {
	repo domain.Repository
}

func NewGetMaster(repo domain.Repository) *GetMaster {
	return &GetMaster{repo: repo}
}

func (uc *GetMaster) Execute(ctx context.Context, slug string) (*models.MasterProfile, error) {
	return uc.repo.GetProfileBySlug(ctx, slug)
}

// MastersCatalog is the public directory: masters with a bookable slot
// ahead, and everyone.
type MastersCatalog struct {
	Available []models.MasterProfile
	All       []models.MasterProfile
}

type ListMasters struct {
	repo domain.Repository
}

func NewListMasters(repo domain.Repository) *ListMasters {
	return &ListMasters{repo: repo}
}

// Execute lists masters with an AVAILABLE slot starting at or after now.
// Past slots do not count.
func (uc *ListMasters) Execute(ctx context.Context, now time.Time) (*MastersCatalog, error) {
	available, err := uc.repo.ListMasters(ctx, &now)
	if err != nil {
		return nil, err
	}

	all, err := uc.repo.ListMasters(ctx, nil)
	if err != nil {
		return nil, err
	}

	return &MastersCatalog{Available: available, All: all}, nil
}
