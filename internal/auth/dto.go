package auth

import (
	"time"

	"github.com/doevida/doevida-backend/internal/users"
	"github.com/doevida/doevida-backend/pkg/enums"
)

// LoginRequest captures the donor credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse contains the tokens and user produced by a successful login.
type LoginResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	User         *users.UserDTO `json:"user"`
}

// RegisterRequest carries the donor profile collected at signup.
type RegisterRequest struct {
	Name          string          `json:"name" validate:"required"`
	Email         string          `json:"email" validate:"required,email"`
	Password      string          `json:"password" validate:"required,min=8"`
	Phone         *string         `json:"phone,omitempty"`
	BloodType     enums.BloodType `json:"blood_type" validate:"required"`
	BirthDate     *time.Time      `json:"birth_date,omitempty"`
	Gender        *string         `json:"gender,omitempty"`
	CEP           *string         `json:"cep,omitempty"`
	Address       *string         `json:"address,omitempty"`
	DonatedBefore bool            `json:"donated_before"`
	FirstTime     bool            `json:"first_time"`
	Interest      *string         `json:"interest,omitempty"`
	AllowMessages bool            `json:"allow_messages"`
	AllowDataUse  bool            `json:"allow_data_use"`
}

// RefreshRequest rotates a refresh token pair.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshResponse returns the rotated token pair.
type RefreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// RecoverRequest starts the password recovery flow.
type RecoverRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetRequest completes the password recovery flow.
type ResetRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}
