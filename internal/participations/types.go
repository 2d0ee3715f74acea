package participations

import (
	"time"

	"github.com/google/uuid"

	"github.com/doevida/doevida-backend/pkg/db/models"
)

// ParticipationDTO is the transport shape for a single signup.
type ParticipationDTO struct {
	ID         uuid.UUID `json:"id"`
	CampaignID uuid.UUID `json:"campaign_id"`
	JoinedAt   time.Time `json:"joined_at"`
}

// MineDTO lists the caller's signups; clients key membership off campaign_id.
type MineDTO struct {
	Participations []ParticipationDTO `json:"participations"`
}

// JoinResultDTO is returned by a successful (or duplicate) join.
type JoinResultDTO struct {
	Participation ParticipationDTO `json:"participation"`
	AlreadyJoined bool             `json:"already_joined"`
}

func fromModel(p *models.Participation) ParticipationDTO {
	return ParticipationDTO{
		ID:         p.ID,
		CampaignID: p.CampaignID,
		JoinedAt:   p.JoinedAt,
	}
}
