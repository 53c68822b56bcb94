package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maresdigital/brandhub-backend/pkg/db/models"
	pkgerrors "github.com/maresdigital/brandhub-backend/pkg/errors"
)

// Service defines the behavior needed by the user controllers.
type Service interface {
	Get(ctx context.Context, id uuid.UUID) (*UserDTO, error)
	Update(ctx context.Context, id uuid.UUID, dto UpdateUserDTO) (*UserDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type userRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Update(ctx context.Context, id uuid.UUID, dto UpdateUserDTO) (*models.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo userRepository
}

// NewService constructs a user service with the provided dependencies.
func NewService(repo userRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, asUserError(err, "fetch user")
	}
	return FromModel(user), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, dto UpdateUserDTO) (*UserDTO, error) {
	user, err := s.repo.Update(ctx, id, dto)
	if err != nil {
		return nil, asUserError(err, "update user")
	}
	return FromModel(user), nil
}

// Delete removes the account. Profiles, brands and everything hanging off
// them go with it through the foreign keys.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return asUserError(err, "delete user")
	}
	return nil
}

func asUserError(err error, action string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, action)
}
