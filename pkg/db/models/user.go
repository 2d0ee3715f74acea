package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/doevida/doevida-backend/pkg/enums"
)

// User represents the canonical donor identity entity.
type User struct {
	ID            uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Email         string          `gorm:"type:text;not null;uniqueIndex:users_email_key"`
	PasswordHash  string          `gorm:"column:password_hash;not null"`
	Name          string          `gorm:"column:name;not null"`
	Phone         *string         `gorm:"column:phone"`
	BloodType     enums.BloodType `gorm:"column:blood_type;type:text;not null"`
	BirthDate     *time.Time      `gorm:"column:birth_date"`
	Gender        *string         `gorm:"column:gender;type:text"`
	CEP           *string         `gorm:"column:cep;type:text"`
	Address       *string         `gorm:"column:address;type:text"`
	DonatedBefore bool            `gorm:"column:donated_before;not null;default:false"`
	FirstTime     bool            `gorm:"column:first_time;not null;default:false"`
	Interest      *string         `gorm:"column:interest;type:text"`
	AllowMessages bool            `gorm:"column:allow_messages;not null;default:false"`
	AllowDataUse  bool            `gorm:"column:allow_data_use;not null;default:false"`
	Role          enums.UserRole  `gorm:"column:role;type:text;not null;default:'donor'"`
	IsActive      bool            `gorm:"column:is_active;not null;default:true"`
	LastLoginAt   *time.Time      `gorm:"column:last_login_at"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
