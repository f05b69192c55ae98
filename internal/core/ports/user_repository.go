package ports

import (
	"context"
	"time"

	"github.com/firstapp/accounts/internal/core/domain"
)

// UserRepository defines persistence for user records. Implementations must
// enforce email uniqueness at the storage level and report violations as
// domain.ErrUserExists.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, page Page) ([]*domain.User, int64, error)
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
}

// Page selects a window of an ordered listing. Page is 1-based.
type Page struct {
	Number int
	Limit  int
}

// Offset returns the number of records skipped before this page.
func (p Page) Offset() int {
	if p.Number <= 1 {
		return 0
	}
	return (p.Number - 1) * p.Limit
}
