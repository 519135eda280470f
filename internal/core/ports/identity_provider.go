package ports

import (
	"context"

	"github.com/cognitodo/todo-system/internal/core/domain"
)

// IdentityProvider wraps the external user-pool service. All credential
// verification and token issuance happens there; implementations map the
// provider's "not authorized" failures to domain.ErrInvalidCredentials and
// duplicate-account failures to domain.ErrEmailExists.
type IdentityProvider interface {
	SignUp(ctx context.Context, username, password, email string) error
	Authenticate(ctx context.Context, username, password string) (*domain.Session, error)
	RefreshSession(ctx context.Context, username, refreshToken string) (*domain.Session, error)
	UpdateEmail(ctx context.Context, accessToken, email string) error
	ChangePassword(ctx context.Context, accessToken, currentPassword, newPassword string) error
	DeleteUser(ctx context.Context, accessToken string) error
}
