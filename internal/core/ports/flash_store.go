package ports

import (
	"context"

	"github.com/firstapp/accounts/internal/core/domain"
)

// FlashStore keeps one-shot messages for a browser session until the next
// page render consumes them.
type FlashStore interface {
	Push(ctx context.Context, sessionID string, flash domain.Flash) error
	Pop(ctx context.Context, sessionID string) ([]domain.Flash, error)
}
