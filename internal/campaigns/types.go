package campaigns

import (
	"time"

	"github.com/google/uuid"

	"github.com/doevida/doevida-backend/pkg/db/models"
	"github.com/doevida/doevida-backend/pkg/enums"
)

// CampaignDTO is the public campaign row including the live participant count.
type CampaignDTO struct {
	ID           uuid.UUID            `json:"id"`
	Title        string               `json:"title"`
	Description  *string              `json:"description,omitempty"`
	BloodType    enums.BloodType      `json:"blood_type"`
	Location     string               `json:"location"`
	StartsAt     time.Time            `json:"starts_at"`
	EndsAt       *time.Time           `json:"ends_at,omitempty"`
	Status       enums.CampaignStatus `json:"status"`
	GoalDonors   int                  `json:"goal_donors"`
	Participants int                  `json:"participants"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

// StatsDTO aggregates campaign-wide totals for the landing view.
type StatsDTO struct {
	TotalCampaigns    int `json:"total_campaigns"`
	ActiveCampaigns   int `json:"active_campaigns"`
	TotalParticipants int `json:"total_participants"`
	TotalGoalDonors   int `json:"total_goal_donors"`
	RemainingSlots    int `json:"remaining_slots"`
}

// ListResultDTO is the campaigns list endpoint payload.
type ListResultDTO struct {
	Campaigns []CampaignDTO `json:"campaigns"`
	Stats     StatsDTO      `json:"stats"`
}

// CreateCampaignDTO carries the admin create payload.
type CreateCampaignDTO struct {
	Title       string               `json:"title" validate:"required"`
	Description *string              `json:"description,omitempty"`
	BloodType   enums.BloodType      `json:"blood_type" validate:"required"`
	Location    string               `json:"location" validate:"required"`
	StartsAt    time.Time            `json:"starts_at" validate:"required"`
	EndsAt      *time.Time           `json:"ends_at,omitempty"`
	Status      enums.CampaignStatus `json:"status,omitempty"`
	GoalDonors  int                  `json:"goal_donors" validate:"gte=0"`
	CreatedBy   *uuid.UUID           `json:"-"`
}

// UpdateCampaignDTO carries the admin update payload; nil fields are untouched.
type UpdateCampaignDTO struct {
	Title       *string               `json:"title,omitempty"`
	Description *string               `json:"description,omitempty"`
	BloodType   *enums.BloodType      `json:"blood_type,omitempty"`
	Location    *string               `json:"location,omitempty"`
	StartsAt    *time.Time            `json:"starts_at,omitempty"`
	EndsAt      *time.Time            `json:"ends_at,omitempty"`
	Status      *enums.CampaignStatus `json:"status,omitempty"`
	GoalDonors  *int                  `json:"goal_donors,omitempty" validate:"omitempty,gte=0"`
}

func fromModel(c *models.Campaign, participants int) CampaignDTO {
	return CampaignDTO{
		ID:           c.ID,
		Title:        c.Title,
		Description:  c.Description,
		BloodType:    c.BloodType,
		Location:     c.Location,
		StartsAt:     c.StartsAt,
		EndsAt:       c.EndsAt,
		Status:       c.Status,
		GoalDonors:   c.GoalDonors,
		Participants: participants,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}
