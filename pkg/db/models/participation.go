package models

import (
	"time"

	"github.com/google/uuid"
)

// Participation links a donor to a campaign they signed up for. The composite
// unique index backs the duplicate-join conflict surfaced as HTTP 409.
type Participation struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID     uuid.UUID `gorm:"column:user_id;type:uuid;not null;index:participations_user_id_idx;uniqueIndex:participations_user_campaign_key"`
	CampaignID uuid.UUID `gorm:"column:campaign_id;type:uuid;not null;index:participations_campaign_id_idx;uniqueIndex:participations_user_campaign_key"`
	JoinedAt   time.Time `gorm:"column:joined_at;autoCreateTime"`
}
