package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cognitodo/todo-system/internal/api/metrics"
	"github.com/cognitodo/todo-system/internal/core/domain"
	"github.com/cognitodo/todo-system/internal/core/ports"
)

// expirationMargin is subtracted from the provider-reported token lifetime so
// clients schedule a refresh before the token actually lapses.
const expirationMargin = 5 * time.Minute

// AuthService implements registration, login and session refresh. Credential
// verification is delegated to the identity provider; the local store only
// holds the user row.
type AuthService struct {
	users ports.UserRepository
	idp   ports.IdentityProvider
	log   zerolog.Logger
}

func NewAuthService(users ports.UserRepository, idp ports.IdentityProvider, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, idp: idp, log: log}
}

// Register validates the form, creates the user row and the identity-provider
// account as one logical unit, then logs the new user in. Validation failures
// are returned as a field-error map before any write happens. If account
// creation at the provider fails, the row insert is rolled back.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	fieldErrs := domain.FieldErrors{}

	if in.Password != in.ConfirmPassword {
		fieldErrs.Add("confirmPassword", "Confirm password doesn't match password.")
	}

	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		fieldErrs.Add("email", "Email already exists.")
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register: validate email: %w", err)
	}

	if len(fieldErrs) > 0 {
		return nil, fieldErrs
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Email:     in.Email,
		Role:      domain.RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.users.WithTx(ctx, func(ctx context.Context, repo ports.UserRepository) error {
		if _, err := repo.Create(ctx, user); err != nil {
			return fmt.Errorf("create user row: %w", err)
		}
		// Provider failure aborts the transaction, removing the staged row.
		if err := s.idp.SignUp(ctx, user.ID, in.Password, in.Email); err != nil {
			return fmt.Errorf("identity provider sign up: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailExists) {
			fieldErrs.Add("email", "Email already exists.")
			return nil, fieldErrs
		}
		s.log.Error().Err(err).Str("email", in.Email).Msg("registration failed")
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("user registered")

	return s.Login(ctx, in.Email, in.Password)
}

// Login looks the user up by email and delegates password verification to the
// identity provider. Provider rejections surface as the same generic
// invalid-credentials error the registration path uses.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, err
	}

	session, err := s.idp.Authenticate(ctx, user.ID, password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()

	return &ports.AuthResult{
		User:         user,
		Token:        session.Token,
		RefreshToken: session.RefreshToken,
		Expiration:   expiration(session.ExpiresIn),
	}, nil
}

// Refresh exchanges the long-lived refresh credential for a fresh bearer
// token. The persisted store is not touched.
func (s *AuthService) Refresh(ctx context.Context, refreshToken, userID string) (*ports.TokenResult, error) {
	session, err := s.idp.RefreshSession(ctx, userID, refreshToken)
	if err != nil {
		metrics.TokenRefreshTotal.WithLabelValues("failure").Inc()
		return nil, err
	}

	metrics.TokenRefreshTotal.WithLabelValues("success").Inc()

	return &ports.TokenResult{
		Token:      session.Token,
		Expiration: expiration(session.ExpiresIn),
	}, nil
}

// expiration converts a provider-reported lifetime into a client-relative
// countdown in seconds, keeping a margin so rotation happens before expiry.
func expiration(expiresIn time.Duration) int64 {
	remaining := expiresIn - expirationMargin
	if remaining <= 0 {
		remaining = expiresIn
	}
	return int64(remaining.Seconds())
}
