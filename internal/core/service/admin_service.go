package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/firstapp/accounts/internal/core/domain"
	"github.com/firstapp/accounts/internal/core/ports"
)

const (
	DefaultPageLimit = 50
	MaxPageLimit     = 200
)

// AdminService implements staff login and the user listing.
type AdminService struct {
	repo      ports.UserRepository
	creds     ports.CredentialStore
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
	now       func() time.Time
}

func NewAdminService(repo ports.UserRepository, creds ports.CredentialStore, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AdminService {
	if tokenTTL <= 0 {
		tokenTTL = 8 * time.Hour
	}
	return &AdminService{
		repo:      repo,
		creds:     creds,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Login verifies a staff member's credentials and returns a signed session
// token. Unknown emails and wrong passwords both yield ErrInvalidCredentials;
// inactive or non-staff accounts yield ErrForbidden.
func (s *AdminService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !s.creds.Verify(user.PasswordHash, password) {
		return "", nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive || !user.IsStaff {
		return "", nil, domain.ErrForbidden
	}

	now := s.now()
	if err := s.repo.TouchLastLogin(ctx, user.ID, now); err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("last login not recorded")
	} else {
		user.LastLogin = &now
		user.UpdatedAt = now
	}

	token, err := s.generateToken(user, now)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return token, user, nil
}

// ListUsers returns one page of users, clamping the page window to sane bounds.
func (s *AdminService) ListUsers(ctx context.Context, page ports.Page) (*ports.UserPage, error) {
	if page.Number < 1 {
		page.Number = 1
	}
	if page.Limit <= 0 {
		page.Limit = DefaultPageLimit
	}
	if page.Limit > MaxPageLimit {
		page.Limit = MaxPageLimit
	}

	users, total, err := s.repo.List(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	totalPages := int((total + int64(page.Limit) - 1) / int64(page.Limit))
	return &ports.UserPage{
		Users:      users,
		Total:      total,
		Page:       page.Number,
		Limit:      page.Limit,
		TotalPages: totalPages,
	}, nil
}

func (s *AdminService) generateToken(user *domain.User, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"email":    user.Email,
		"role":     string(user.Role),
		"is_staff": user.IsStaff,
		"iat":      now.Unix(),
		"exp":      now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
