package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/firstapp/accounts/internal/core/domain"
	"github.com/firstapp/accounts/internal/core/ports"
)

// UnusablePassword is stored for accounts created without a password. It is
// never a valid bcrypt hash, so Verify always fails against it.
const UnusablePassword = "!"

// UserFields are the optional attributes of a new record. The flags are
// pointers so an explicit false can be told apart from "not given".
type UserFields struct {
	FirstName   string
	LastName    string
	Role        domain.Role
	IsActive    *bool
	IsStaff     *bool
	IsSuperuser *bool
}

// UserManager is the single creation path for user records.
type UserManager struct {
	repo  ports.UserRepository
	creds ports.CredentialStore
	log   zerolog.Logger
	now   func() time.Time
}

func NewUserManager(repo ports.UserRepository, creds ports.CredentialStore, log zerolog.Logger) *UserManager {
	if repo == nil || creds == nil {
		panic("service: NewUserManager requires a repository and a credential store")
	}
	return &UserManager{
		repo:  repo,
		creds: creds,
		log:   log,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// CreateUser normalizes the email, hashes the password and persists a new
// record. Role defaults to user and the account starts active.
func (m *UserManager) CreateUser(ctx context.Context, email, password string, f UserFields) (*domain.User, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, domain.ErrEmailRequired
	}

	role := f.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !role.Valid() {
		return nil, fmt.Errorf("create user: unknown role %q", role)
	}

	hash := UnusablePassword
	if password != "" {
		var err error
		if hash, err = m.creds.Hash(password); err != nil {
			return nil, fmt.Errorf("create user: hash password: %w", err)
		}
	}

	now := m.now()
	user := &domain.User{
		Email:        email,
		FirstName:    f.FirstName,
		LastName:     f.LastName,
		Role:         role,
		PasswordHash: hash,
		IsActive:     boolOr(f.IsActive, true),
		IsStaff:      boolOr(f.IsStaff, false),
		IsSuperuser:  boolOr(f.IsSuperuser, false),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := m.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	m.log.Info().
		Str("user_id", created.ID).
		Str("role", string(created.Role)).
		Bool("is_staff", created.IsStaff).
		Msg("user created")
	return created, nil
}

// CreateSuperuser creates a staff superuser with the admin role. Passing an
// explicit false for IsStaff or IsSuperuser is rejected.
func (m *UserManager) CreateSuperuser(ctx context.Context, email, password string, f UserFields) (*domain.User, error) {
	if f.IsStaff != nil && !*f.IsStaff {
		return nil, domain.ErrSuperuserFlags
	}
	if f.IsSuperuser != nil && !*f.IsSuperuser {
		return nil, domain.ErrSuperuserFlags
	}

	yes := true
	f.IsStaff = &yes
	f.IsSuperuser = &yes
	f.Role = domain.RoleAdmin
	return m.CreateUser(ctx, email, password, f)
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}
