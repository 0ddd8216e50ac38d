package ports

import (
	"context"

	"github.com/fixflow/maintenance-system/internal/core/domain"
)

// UserRepository defines lookups over the seeded user set.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id int) (*domain.User, error)
	// ListWorkers returns every user with the worker role, in seed order.
	ListWorkers(ctx context.Context) ([]*domain.User, error)
}
