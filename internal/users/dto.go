package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/maresdigital/brandhub-backend/pkg/db/models"
	"github.com/maresdigital/brandhub-backend/pkg/enums"
)

// UserDTO is the transport shape that omits sensitive credentials.
type UserDTO struct {
	ID          uuid.UUID      `json:"id"`
	Email       string         `json:"email"`
	Role        enums.UserRole `json:"role"`
	Name        *string        `json:"name,omitempty"`
	Age         *int           `json:"age,omitempty"`
	Gender      *string        `json:"gender,omitempty"`
	Phone       *string        `json:"phone,omitempty"`
	AvatarURL   *string        `json:"avatar_url,omitempty"`
	LastLoginAt *time.Time     `json:"last_login_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	Email        string
	PasswordHash string
	Role         enums.UserRole
	Name         *string
	Age          *int
	Gender       *string
	Phone        *string
	AvatarURL    *string
}

// UpdateUserDTO carries optional profile fields; nil fields are left untouched.
type UpdateUserDTO struct {
	Name      *string
	Age       *int
	Gender    *string
	Phone     *string
	AvatarURL *string
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		ID:          u.ID,
		Email:       u.Email,
		Role:        u.Role,
		Name:        u.Name,
		Age:         u.Age,
		Gender:      u.Gender,
		Phone:       u.Phone,
		AvatarURL:   u.AvatarURL,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func (c CreateUserDTO) ToModel() *models.User {
	role := c.Role
	if !role.IsValid() {
		role = enums.UserRoleCustomer
	}

	return &models.User{
		ID:           uuid.New(),
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		Role:         role,
		Name:         c.Name,
		Age:          c.Age,
		Gender:       c.Gender,
		Phone:        c.Phone,
		AvatarURL:    c.AvatarURL,
	}
}
