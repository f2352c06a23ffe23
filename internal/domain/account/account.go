package account

import (
	"context"
	"fmt"
	"strings"

	"github.com/gosimple/slug"

	"github.com/BruksfildServices01/master-scheduler/internal/httperr"
	"github.com/BruksfildServices01/master-scheduler/internal/models"
)

const maxSlugLength = 90

var (
	ErrEmailTaken         = httperr.ErrBusiness("email_already_exists")
	ErrInvalidEmail       = httperr.ErrBusiness("invalid_email_domain")
	ErrInvalidCredentials = httperr.ErrBusiness("invalid_credentials")
	ErrInvalidTimezone    = httperr.ErrBusiness("invalid_timezone")
	ErrInvalidPhone       = httperr.ErrBusiness("invalid_phone")
	ErrUserNotFound       = httperr.ErrBusiness("user_not_found")
	ErrAccountConflict    = httperr.ErrBusiness("account_conflict")
	ErrInvalidDisplayName = httperr.ErrBusiness("invalid_display_name")
)

type Repository interface {
	EmailExists(ctx context.Context, email string) (bool, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUser loads the user with its master profile.
	GetUser(ctx context.Context, userID uint) (*models.User, error)

	// CreateMaster stores the user and its profile in one transaction. The
	// profile gets the first free slug among SlugCandidate(base, 0..).
	CreateMaster(ctx context.Context, user *models.User, profile *models.MasterProfile) error

	UpdateProfile(ctx context.Context, profile *models.MasterProfile) error
}

// BaseSlug derives the URL slug root of a display name.
func BaseSlug(displayName string) string {
	s := slug.Make(displayName)
	if len(s) > maxSlugLength {
		s = strings.TrimRight(s[:maxSlugLength], "-")
	}
	if s == "" {
		return "master"
	}
	return s
}

// SlugCandidate returns base for n == 0 and base-n afterwards.
func SlugCandidate(base string, n int) string {
	if n == 0 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, n)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
