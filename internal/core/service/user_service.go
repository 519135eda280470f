package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/cognitodo/todo-system/internal/core/domain"
	"github.com/cognitodo/todo-system/internal/core/ports"
)

// UserService implements account maintenance. Operations that change state on
// both sides run the identity-provider step inside the store transaction, so
// a provider failure aborts the persisted write and vice versa.
type UserService struct {
	users ports.UserRepository
	idp   ports.IdentityProvider
	log   zerolog.Logger
}

func NewUserService(users ports.UserRepository, idp ports.IdentityProvider, log zerolog.Logger) *UserService {
	return &UserService{users: users, idp: idp, log: log}
}

func (s *UserService) GetMe(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *UserService) UpdateName(ctx context.Context, userID, name string) (*domain.User, error) {
	user, err := s.users.UpdateName(ctx, userID, name)
	if err != nil {
		return nil, fmt.Errorf("update name: %w", err)
	}
	return user, nil
}

// UpdateEmail re-authenticates the caller, then updates the row and the
// provider's email attribute atomically with respect to the store.
func (s *UserService) UpdateEmail(ctx context.Context, userID, email, password string) error {
	if err := s.ValidateEmail(ctx, email); err != nil {
		return err
	}

	err := s.users.WithTx(ctx, func(ctx context.Context, repo ports.UserRepository) error {
		session, err := s.idp.Authenticate(ctx, userID, password)
		if err != nil {
			return err
		}
		if err := repo.UpdateEmail(ctx, userID, email); err != nil {
			return fmt.Errorf("update email row: %w", err)
		}
		return s.idp.UpdateEmail(ctx, session.AccessToken, email)
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return domain.ErrNotAuthorized
		}
		s.log.Error().Err(err).Str("user_id", userID).Msg("email update failed")
		return err
	}
	return nil
}

// UpdatePassword never touches the store: passwords live only at the
// identity provider.
func (s *UserService) UpdatePassword(ctx context.Context, userID, currentPassword, newPassword, confirmPassword string) error {
	fieldErrs := domain.FieldErrors{}
	if currentPassword == newPassword {
		fieldErrs.Add("newPassword", "New password can't be the same as the current password.")
	}
	if newPassword != confirmPassword {
		fieldErrs.Add("confirmPassword", "Confirm password doesn't match new password.")
	}
	if len(fieldErrs) > 0 {
		return fieldErrs
	}

	session, err := s.idp.Authenticate(ctx, userID, currentPassword)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return domain.ErrNotAuthorized
		}
		return err
	}

	if err := s.idp.ChangePassword(ctx, session.AccessToken, currentPassword, newPassword); err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("password change failed")
		return err
	}
	return nil
}

// DeleteMe removes the row and the provider account together.
func (s *UserService) DeleteMe(ctx context.Context, userID, password string) error {
	err := s.users.WithTx(ctx, func(ctx context.Context, repo ports.UserRepository) error {
		session, err := s.idp.Authenticate(ctx, userID, password)
		if err != nil {
			return err
		}
		if err := repo.Delete(ctx, userID); err != nil {
			return fmt.Errorf("delete user row: %w", err)
		}
		return s.idp.DeleteUser(ctx, session.AccessToken)
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return domain.ErrNotAuthorized
		}
		s.log.Error().Err(err).Str("user_id", userID).Msg("account deletion failed")
		return err
	}

	s.log.Info().Str("user_id", userID).Msg("account deleted")
	return nil
}

// ValidateEmail reports ErrEmailExists when a row with the email is present.
// Uniqueness is enforced here, before any write, not just by the store index.
func (s *UserService) ValidateEmail(ctx context.Context, email string) error {
	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return domain.ErrEmailExists
	}
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil
	}
	return fmt.Errorf("validate email: %w", err)
}
