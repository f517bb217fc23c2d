package service

import (
	"context"
	"fmt"
	"net/mail"
	"net/url"

	"github.com/google/uuid"

	"github.com/tournest/tournest/internal/logger"
	"github.com/tournest/tournest/internal/store"
	"github.com/tournest/tournest/models"
)

// userService covers account administration and the self-service
// operations. Credential changes never pass through here; they belong to
// the AuthService.
type userService struct {
	userRepository store.UserRepository
	logger         *logger.Logger
}

// NewUserService constructs a UserService.
func NewUserService(userRepository store.UserRepository, logger *logger.Logger) UserService {
	return &userService{
		userRepository: userRepository,
		logger:         logger,
	}
}

func (s *userService) List(ctx context.Context, params url.Values) ([]models.User, error) {
	return s.userRepository.ListUsers(ctx, params)
}

func (s *userService) Get(ctx context.Context, userID uuid.UUID) (models.User, error) {
	return s.userRepository.FindUserByID(ctx, userID)
}

// UpdateProfile changes display name and email only. Role and credential
// fields are deliberately not reachable from here.
func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, name, email string) (models.User, error) {
	name = normalizeName(name)
	email = normalizeEmail(email)

	if name == "" {
		return models.User{}, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return models.User{}, fmt.Errorf("%w: email is not valid", ErrValidation)
	}

	return s.userRepository.UpdateProfile(ctx, userID, name, email)
}

// Deactivate soft-deletes the account; the row survives for bookkeeping.
func (s *userService) Deactivate(ctx context.Context, userID uuid.UUID) error {
	return s.userRepository.Deactivate(ctx, userID)
}

// Delete hard-deletes an account. Only reachable through admin routes.
func (s *userService) Delete(ctx context.Context, userID uuid.UUID) error {
	return s.userRepository.DeleteUser(ctx, userID)
}
