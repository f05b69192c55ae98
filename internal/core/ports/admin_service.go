package ports

import (
	"context"

	"github.com/firstapp/accounts/internal/core/domain"
)

// UserPage is one page of the administrative user listing.
type UserPage struct {
	Users      []*domain.User
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// AdminService backs the staff-only area: login and the user listing.
type AdminService interface {
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	ListUsers(ctx context.Context, page Page) (*UserPage, error)
}
