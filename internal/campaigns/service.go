package campaigns

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgerrors "github.com/doevida/doevida-backend/pkg/errors"
)

// Service exposes business rules for campaign listing and administration.
type Service interface {
	List(ctx context.Context) (ListResultDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*CampaignDTO, error)
	Create(ctx context.Context, dto CreateCampaignDTO) (*CampaignDTO, error)
	Update(ctx context.Context, id uuid.UUID, dto UpdateCampaignDTO) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo *Repository
}

// NewService builds a campaigns service around the repository.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "campaigns repository required")
	}
	return &service{repo: repo}, nil
}

// List returns all campaigns with their participant counts plus the
// aggregated stats block.
func (s *service) List(ctx context.Context) (ListResultDTO, error) {
	items, err := s.repo.ListWithCounts(ctx)
	if err != nil {
		return ListResultDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list campaigns")
	}
	return ListResultDTO{
		Campaigns: items,
		Stats:     deriveStats(items),
	}, nil
}

// Get loads a single campaign with its participant count.
func (s *service) Get(ctx context.Context, id uuid.UUID) (*CampaignDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "campaign id is required")
	}
	campaign, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "campaign not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load campaign")
	}
	count, err := s.repo.CountParticipants(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count participants")
	}
	dto := fromModel(campaign, int(count))
	return &dto, nil
}

// Create validates and persists a new campaign.
func (s *service) Create(ctx context.Context, dto CreateCampaignDTO) (*CampaignDTO, error) {
	if strings.TrimSpace(dto.Title) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if strings.TrimSpace(dto.Location) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "location is required")
	}
	if !dto.BloodType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid blood type")
	}
	if dto.Status != "" && !dto.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid campaign status")
	}
	if dto.GoalDonors < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "goal_donors must be non-negative")
	}
	if dto.EndsAt != nil && dto.EndsAt.Before(dto.StartsAt) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "ends_at must be after starts_at")
	}

	campaign, err := s.repo.Create(ctx, dto)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create campaign")
	}
	result := fromModel(campaign, 0)
	return &result, nil
}

// Update validates and applies a partial campaign update.
func (s *service) Update(ctx context.Context, id uuid.UUID, dto UpdateCampaignDTO) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "campaign id is required")
	}
	if dto.BloodType != nil && !dto.BloodType.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid blood type")
	}
	if dto.Status != nil && !dto.Status.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid campaign status")
	}
	if dto.GoalDonors != nil && *dto.GoalDonors < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "goal_donors must be non-negative")
	}

	if err := s.repo.Update(ctx, id, dto); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "campaign not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update campaign")
	}
	return nil
}

// Delete removes a campaign and its participations.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "campaign id is required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "campaign not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete campaign")
	}
	return nil
}

func deriveStats(items []CampaignDTO) StatsDTO {
	stats := StatsDTO{TotalCampaigns: len(items)}
	for _, c := range items {
		if c.Status.IsActive() {
			stats.ActiveCampaigns++
		}
		stats.TotalParticipants += c.Participants
		stats.TotalGoalDonors += c.GoalDonors
		if remaining := c.GoalDonors - c.Participants; remaining > 0 {
			stats.RemainingSlots += remaining
		}
	}
	return stats
}
