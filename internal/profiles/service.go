package profiles

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgdb "github.com/maresdigital/brandhub-backend/pkg/db"
	"github.com/maresdigital/brandhub-backend/pkg/db/models"
	pkgerrors "github.com/maresdigital/brandhub-backend/pkg/errors"
)

const profileExistsMessage = "profile already exists"

// Service defines the behavior needed by the profile controllers.
type Service interface {
	AttachCustomer(ctx context.Context, userID uuid.UUID, dto CreateCustomerProfileDTO) (*CustomerProfileDTO, error)
	AttachAdmin(ctx context.Context, userID uuid.UUID, dto CreateAdminProfileDTO) (*AdminProfileDTO, error)
	GetCustomer(ctx context.Context, userID uuid.UUID) (*CustomerProfileDTO, error)
	GetAdmin(ctx context.Context, userID uuid.UUID) (*AdminProfileDTO, error)
}

type userFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type profileRepository interface {
	CreateCustomer(ctx context.Context, userID uuid.UUID, dto CreateCustomerProfileDTO) (*models.CustomerProfile, error)
	CreateAdmin(ctx context.Context, userID uuid.UUID, dto CreateAdminProfileDTO) (*models.AdminProfile, error)
	FindCustomerByUserID(ctx context.Context, userID uuid.UUID) (*models.CustomerProfile, error)
	FindAdminByUserID(ctx context.Context, userID uuid.UUID) (*models.AdminProfile, error)
}

type service struct {
	users    userFinder
	profiles profileRepository
}

// ServiceParams bundles the dependencies required to build a profile service.
type ServiceParams struct {
	UserRepo    userFinder
	ProfileRepo profileRepository
}

// NewService constructs a profile service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.ProfileRepo == nil {
		return nil, fmt.Errorf("profile repository is required")
	}
	return &service{users: params.UserRepo, profiles: params.ProfileRepo}, nil
}

func (s *service) AttachCustomer(ctx context.Context, userID uuid.UUID, dto CreateCustomerProfileDTO) (*CustomerProfileDTO, error) {
	if err := s.ensureUserExists(ctx, userID); err != nil {
		return nil, err
	}

	if _, err := s.profiles.FindCustomerByUserID(ctx, userID); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, profileExistsMessage)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check customer profile")
	}

	profile, err := s.profiles.CreateCustomer(ctx, userID, dto)
	if err != nil {
		return nil, classifyCreateError(err, "create customer profile")
	}
	return customerFromModel(profile), nil
}

func (s *service) AttachAdmin(ctx context.Context, userID uuid.UUID, dto CreateAdminProfileDTO) (*AdminProfileDTO, error) {
	if err := s.ensureUserExists(ctx, userID); err != nil {
		return nil, err
	}

	if _, err := s.profiles.FindAdminByUserID(ctx, userID); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, profileExistsMessage)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check admin profile")
	}

	profile, err := s.profiles.CreateAdmin(ctx, userID, dto)
	if err != nil {
		return nil, classifyCreateError(err, "create admin profile")
	}
	return adminFromModel(profile), nil
}

func (s *service) GetCustomer(ctx context.Context, userID uuid.UUID) (*CustomerProfileDTO, error) {
	profile, err := s.profiles.FindCustomerByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch customer profile")
	}
	return customerFromModel(profile), nil
}

func (s *service) GetAdmin(ctx context.Context, userID uuid.UUID) (*AdminProfileDTO, error) {
	profile, err := s.profiles.FindAdminByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "admin profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch admin profile")
	}
	return adminFromModel(profile), nil
}

func (s *service) ensureUserExists(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup user")
	}
	return nil
}

func classifyCreateError(err error, message string) error {
	if pkgdb.IsUniqueViolation(err, "") {
		return pkgerrors.New(pkgerrors.CodeConflict, profileExistsMessage)
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, message)
}
