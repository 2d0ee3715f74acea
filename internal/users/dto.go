package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/doevida/doevida-backend/pkg/db/models"
	"github.com/doevida/doevida-backend/pkg/enums"
)

// UserDTO is the transport shape that omits sensitive credentials.
type UserDTO struct {
	ID            uuid.UUID       `json:"id"`
	Email         string          `json:"email"`
	Name          string          `json:"name"`
	Phone         *string         `json:"phone,omitempty"`
	BloodType     enums.BloodType `json:"blood_type"`
	BirthDate     *time.Time      `json:"birth_date,omitempty"`
	Gender        *string         `json:"gender,omitempty"`
	CEP           *string         `json:"cep,omitempty"`
	Address       *string         `json:"address,omitempty"`
	DonatedBefore bool            `json:"donated_before"`
	Role          enums.UserRole  `json:"role"`
	IsActive      bool            `json:"is_active"`
	LastLoginAt   *time.Time      `json:"last_login_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// CreateUserDTO holds the data required by the repo to persist a new donor.
type CreateUserDTO struct {
	Email         string
	PasswordHash  string
	Name          string
	Phone         *string
	BloodType     enums.BloodType
	BirthDate     *time.Time
	Gender        *string
	CEP           *string
	Address       *string
	DonatedBefore bool
	FirstTime     bool
	Interest      *string
	AllowMessages bool
	AllowDataUse  bool
	Role          enums.UserRole
	IsActive      *bool
}

// ProfileDTO decorates the base user with gamification stats derived from
// participation history.
type ProfileDTO struct {
	User               *UserDTO `json:"user"`
	ParticipationCount int      `json:"participation_count"`
	Points             int      `json:"points"`
	Level              string   `json:"level"`
	Badges             []string `json:"badges"`
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		ID:            u.ID,
		Email:         u.Email,
		Name:          u.Name,
		Phone:         u.Phone,
		BloodType:     u.BloodType,
		BirthDate:     u.BirthDate,
		Gender:        u.Gender,
		CEP:           u.CEP,
		Address:       u.Address,
		DonatedBefore: u.DonatedBefore,
		Role:          u.Role,
		IsActive:      u.IsActive,
		LastLoginAt:   u.LastLoginAt,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func (c CreateUserDTO) ToModel() *models.User {
	isActive := true
	if c.IsActive != nil {
		isActive = *c.IsActive
	}

	role := c.Role
	if role == "" {
		role = enums.UserRoleDonor
	}

	return &models.User{
		Email:         c.Email,
		PasswordHash:  c.PasswordHash,
		Name:          c.Name,
		Phone:         c.Phone,
		BloodType:     c.BloodType,
		BirthDate:     c.BirthDate,
		Gender:        c.Gender,
		CEP:           c.CEP,
		Address:       c.Address,
		DonatedBefore: c.DonatedBefore,
		FirstTime:     c.FirstTime,
		Interest:      c.Interest,
		AllowMessages: c.AllowMessages,
		AllowDataUse:  c.AllowDataUse,
		Role:          role,
		IsActive:      isActive,
	}
}
