package account

import (
	"context"
	"log"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/master-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/master-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/master-scheduler/internal/models"
	"github.com/BruksfildServices01/master-scheduler/internal/timezone"
	"github.com/BruksfildServices01/master-scheduler/internal/validators"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type RegisterInput struct {
	Name        string
	Email       string
	Password    string
	DisplayName string
	Phone       string
	Timezone    string
}

type ProfileInput struct {
	DisplayName *string
	Phone       *string
	Bio         *string
	Timezone    *string
}

type Session struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// ======================================================
// USE CASE
// ======================================================

type Accounts struct {
	repo   domain.Repository
	tokens *TokenIssuer
	audit  *audit.Dispatcher

	emailValid func(email string) bool
}

func NewAccounts(repo domain.Repository, tokens *TokenIssuer, audit *audit.Dispatcher) *Accounts {
	return &Accounts{
		repo:       repo,
		tokens:     tokens,
		audit:      audit,
		emailValid: validators.IsEmailDomainValid,
	}
}

// Register creates a master user together with its public profile.
func (uc *Accounts) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	email := domain.NormalizeEmail(in.Email)
	if !uc.emailValid(email) {
		return nil, domain.ErrInvalidEmail
	}

	displayName := strings.TrimSpace(in.DisplayName)
	if displayName == "" {
		displayName = strings.TrimSpace(in.Name)
	}
	if displayName == "" {
		displayName = strings.Split(email, "@")[0]
	}
	if len(displayName) > 100 {
		return nil, domain.ErrInvalidDisplayName
	}

	if in.Phone != "" && !validators.IsPhoneValid(in.Phone) {
		return nil, domain.ErrInvalidPhone
	}

	tz := in.Timezone
	if tz == "" {
		tz = timezone.Default()
	}
	if !timezone.IsValid(tz) {
		return nil, domain.ErrInvalidTimezone
	}

	exists, err := uc.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: string(hashed),
		Role:         models.RoleMaster,
	}
	profile := &models.MasterProfile{
		DisplayName: displayName,
		Slug:        domain.BaseSlug(displayName),
		Phone:       strings.TrimSpace(in.Phone),
		Timezone:    tz,
	}

	if err := uc.repo.CreateMaster(ctx, user, profile); err != nil {
		return nil, err
	}
	user.Profile = profile

	token, err := uc.tokens.Issue(user)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		MasterID: user.ID,
		UserID:   &user.ID,
		Action:   "master_registered",
		Entity:   "user",
		EntityID: &user.ID,
		Metadata: map[string]any{"slug": profile.Slug},
	})

	log.Printf("[ACCOUNT] registered user_id=%d slug=%s", user.ID, profile.Slug)

	return &Session{User: user, Token: token}, nil
}

func (uc *Accounts) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := uc.repo.FindUserByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if err == domain.ErrUserNotFound {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := uc.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &Session{User: user, Token: token}, nil
}

func (uc *Accounts) Me(ctx context.Context, userID uint) (*models.User, error) {
	return uc.repo.GetUser(ctx, userID)
}

// UpdateProfile changes the public card. The slug stays fixed so shared
// links keep working.
func (uc *Accounts) UpdateProfile(ctx context.Context, userID uint, in ProfileInput) (*models.MasterProfile, error) {
	user, err := uc.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Profile == nil {
		return nil, domain.ErrUserNotFound
	}
	p := user.Profile

	if in.DisplayName != nil {
		name := strings.TrimSpace(*in.DisplayName)
		if name == "" || len(name) > 100 {
			return nil, domain.ErrInvalidDisplayName
		}
		p.DisplayName = name
	}
	if in.Phone != nil {
		phone := strings.TrimSpace(*in.Phone)
		if phone != "" && !validators.IsPhoneValid(phone) {
			return nil, domain.ErrInvalidPhone
		}
		p.Phone = phone
	}
	if in.Bio != nil {
		p.Bio = *in.Bio
	}
	if in.Timezone != nil {
		if !timezone.IsValid(*in.Timezone) {
			return nil, domain.ErrInvalidTimezone
		}
		p.Timezone = *in.Timezone
	}

	if err := uc.repo.UpdateProfile(ctx, p); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		MasterID: userID,
		UserID:   &userID,
		Action:   "profile_updated",
		Entity:   "master_profile",
		EntityID: &p.ID,
	})
	return p, nil
}
