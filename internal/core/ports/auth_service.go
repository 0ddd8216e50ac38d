package ports

import (
	"context"

	"github.com/fixflow/maintenance-system/internal/core/domain"
)

// AuthService implements login and token verification.
type AuthService interface {
	// Login verifies credentials and returns a signed session token plus the
	// user profile. Unknown username and wrong password both fail with
	// domain.ErrInvalidCredentials so the error shape never reveals which.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	// Verify decodes a bearer token and resolves the embedded user id. A token
	// whose user no longer exists fails with domain.ErrInvalidToken.
	Verify(ctx context.Context, token string) (*domain.User, error)
}
