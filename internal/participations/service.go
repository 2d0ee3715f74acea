package participations

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	gcppubsub "cloud.google.com/go/pubsub/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/doevida/doevida-backend/pkg/db"
	"github.com/doevida/doevida-backend/pkg/db/models"
	"github.com/doevida/doevida-backend/pkg/enums"
	pkgerrors "github.com/doevida/doevida-backend/pkg/errors"
	"github.com/doevida/doevida-backend/pkg/events"
	"github.com/doevida/doevida-backend/pkg/logger"
)

const (
	duplicateJoinMessage  = "already participating in this campaign"
	defaultPublishTimeout = 15 * time.Second
)

// Service exposes business rules for campaign signups.
type Service interface {
	Join(ctx context.Context, userID, campaignID uuid.UUID) (*JoinResultDTO, error)
	ListMine(ctx context.Context, userID uuid.UUID) (MineDTO, error)
}

type campaignFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Campaign, error)
}

type userFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Publisher is the event emission surface; *pubsub.Publisher satisfies it.
type Publisher interface {
	Publish(ctx context.Context, msg *gcppubsub.Message) *gcppubsub.PublishResult
}

type service struct {
	repo      *Repository
	campaigns campaignFinder
	users     userFinder
	publisher Publisher
	logg      *logger.Logger
}

// ServiceParams groups dependencies for the participations service.
type ServiceParams struct {
	Repo      *Repository
	Campaigns campaignFinder
	Users     userFinder
	Publisher Publisher
	Logger    *logger.Logger
}

// NewService builds a participations service. Publisher is optional; joins
// succeed without eventing.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "participations repository required")
	}
	if params.Campaigns == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "campaigns repository required")
	}
	if params.Users == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "users repository required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "logger required")
	}
	return &service{
		repo:      params.Repo,
		campaigns: params.Campaigns,
		users:     params.Users,
		publisher: params.Publisher,
		logg:      params.Logger,
	}, nil
}

// Join signs the user up for a campaign. A duplicate signup returns
// CodeConflict with the existing participation attached.
func (s *service) Join(ctx context.Context, userID, campaignID uuid.UUID) (*JoinResultDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	if campaignID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "campaign id is required")
	}

	campaign, err := s.campaigns.FindByID(ctx, campaignID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "campaign not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load campaign")
	}
	if !campaign.Status.IsActive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "campaign is not accepting participants")
	}

	participation, err := s.repo.Create(ctx, userID, campaignID)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			existing, findErr := s.repo.FindByUserAndCampaign(ctx, userID, campaignID)
			if findErr != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, findErr, "load existing participation")
			}
			return nil, pkgerrors.New(pkgerrors.CodeConflict, duplicateJoinMessage).
				WithDetails(fromModel(existing))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create participation")
	}

	s.publishJoined(ctx, participation, campaign)

	return &JoinResultDTO{Participation: fromModel(participation)}, nil
}

// ListMine returns the caller's signups.
func (s *service) ListMine(ctx context.Context, userID uuid.UUID) (MineDTO, error) {
	if userID == uuid.Nil {
		return MineDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return MineDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list participations")
	}
	dtos := make([]ParticipationDTO, 0, len(items))
	for i := range items {
		dtos = append(dtos, fromModel(&items[i]))
	}
	return MineDTO{Participations: dtos}, nil
}

// publishJoined emits participation.joined best-effort. Failures are logged
// and never fail the join.
func (s *service) publishJoined(ctx context.Context, participation *models.Participation, campaign *models.Campaign) {
	if s.publisher == nil {
		return
	}

	logCtx := s.logg.WithFields(ctx, map[string]any{
		"participation_id": participation.ID.String(),
		"campaign_id":      campaign.ID.String(),
	})

	user, err := s.users.FindByID(ctx, participation.UserID)
	if err != nil {
		s.logg.Error(logCtx, "load user for join event", err)
		return
	}

	payload := events.ParticipationJoinedEvent{
		ParticipationID: participation.ID,
		UserID:          user.ID,
		UserEmail:       user.Email,
		UserName:        user.Name,
		CampaignID:      campaign.ID,
		CampaignTitle:   campaign.Title,
		Location:        campaign.Location,
		BloodType:       campaign.BloodType,
		JoinedAt:        participation.JoinedAt,
	}
	envelope, err := events.NewEnvelope(&events.ActorRef{UserID: user.ID, Role: string(user.Role)}, payload)
	if err != nil {
		s.logg.Error(logCtx, "build join event envelope", err)
		return
	}
	data, err := json.Marshal(envelope)
	if err != nil {
		s.logg.Error(logCtx, "marshal join event", err)
		return
	}

	msg := &gcppubsub.Message{
		Data: data,
		Attributes: map[string]string{
			"event_id":   envelope.EventID,
			"event_type": string(enums.EventParticipationJoined),
			"created_at": envelope.OccurredAt.Format(time.RFC3339Nano),
		},
	}

	publishCtx, cancel := context.WithTimeout(ctx, defaultPublishTimeout)
	defer cancel()
	result := s.publisher.Publish(publishCtx, msg)
	if result == nil {
		s.logg.Warn(logCtx, "publisher returned nil result")
		return
	}
	if _, err := result.Get(publishCtx); err != nil {
		s.logg.Error(logCtx, "publish join event", err)
		return
	}
	s.logg.Info(logCtx, "participation.joined published")
}
