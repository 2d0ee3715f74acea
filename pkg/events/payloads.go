package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/doevida/doevida-backend/pkg/enums"
)

// ParticipationJoinedEvent is emitted when a donor signs up for a campaign.
type ParticipationJoinedEvent struct {
	ParticipationID uuid.UUID       `json:"participation_id"`
	UserID          uuid.UUID       `json:"user_id"`
	UserEmail       string          `json:"user_email"`
	UserName        string          `json:"user_name"`
	CampaignID      uuid.UUID       `json:"campaign_id"`
	CampaignTitle   string          `json:"campaign_title"`
	Location        string          `json:"location"`
	BloodType       enums.BloodType `json:"blood_type"`
	JoinedAt        time.Time       `json:"joined_at"`
}
