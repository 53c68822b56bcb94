package auth

import (
	"github.com/maresdigital/brandhub-backend/internal/users"
)

// RegisterRequest captures the payload required to create an account.
type RegisterRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	Role     *string `json:"role,omitempty" validate:"omitempty,oneof=admin brand customer"`
	Name     *string `json:"name,omitempty"`
	Age      *int    `json:"age,omitempty" validate:"omitempty,gte=13,lte=120"`
	Gender   *string `json:"gender,omitempty"`
	Phone    *string `json:"phone,omitempty"`
}

// LoginRequest captures the user credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest carries the prior token pair for rotation.
type RefreshRequest struct {
	AccessToken  string `json:"access_token" validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// LoginResponse contains the tokens and user produced by a successful login.
type LoginResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	User         *users.UserDTO `json:"user"`
}

// TokenPairResponse carries a freshly rotated token pair.
type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
