package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/doevida/doevida-backend/pkg/enums"
)

// Campaign represents a blood donation drive run at a collection site.
type Campaign struct {
	ID          uuid.UUID            `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Title       string               `gorm:"column:title;type:text;not null"`
	Description *string              `gorm:"column:description;type:text"`
	BloodType   enums.BloodType      `gorm:"column:blood_type;type:text;not null;default:'Todos'"`
	Location    string               `gorm:"column:location;type:text;not null"`
	StartsAt    time.Time            `gorm:"column:starts_at;not null"`
	EndsAt      *time.Time           `gorm:"column:ends_at"`
	Status      enums.CampaignStatus `gorm:"column:status;type:text;not null;default:'Ativa';index:campaigns_status_idx"`
	GoalDonors  int                  `gorm:"column:goal_donors;not null;default:0"`
	CreatedBy   *uuid.UUID           `gorm:"column:created_by;type:uuid"`
	CreatedAt   time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
