package campaigns

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/doevida/doevida-backend/pkg/db/models"
	"github.com/doevida/doevida-backend/pkg/enums"
)

// Repository encapsulates campaign persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a campaigns repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type campaignCountRecord struct {
	models.Campaign
	Participants int `gorm:"column:participants"`
}

// ListWithCounts returns all campaigns newest-first with their participant counts.
func (r *Repository) ListWithCounts(ctx context.Context) ([]CampaignDTO, error) {
	var records []campaignCountRecord
	err := r.db.WithContext(ctx).
		Table("campaigns c").
		Select("c.*, (SELECT COUNT(*) FROM participations p WHERE p.campaign_id = c.id) AS participants").
		Order("c.created_at DESC").
		Scan(&records).Error
	if err != nil {
		return nil, err
	}

	items := make([]CampaignDTO, 0, len(records))
	for i := range records {
		items = append(items, fromModel(&records[i].Campaign, records[i].Participants))
	}
	return items, nil
}

// FindByID loads a campaign by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Campaign, error) {
	var campaign models.Campaign
	if err := r.db.WithContext(ctx).First(&campaign, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &campaign, nil
}

// Create inserts a new campaign and returns the persisted model.
func (r *Repository) Create(ctx context.Context, dto CreateCampaignDTO) (*models.Campaign, error) {
	status := dto.Status
	if status == "" {
		status = enums.CampaignStatusActive
	}
	campaign := &models.Campaign{
		ID:          uuid.New(),
		Title:       dto.Title,
		Description: dto.Description,
		BloodType:   dto.BloodType,
		Location:    dto.Location,
		StartsAt:    dto.StartsAt,
		EndsAt:      dto.EndsAt,
		Status:      status,
		GoalDonors:  dto.GoalDonors,
		CreatedBy:   dto.CreatedBy,
	}
	if err := r.db.WithContext(ctx).Create(campaign).Error; err != nil {
		return nil, err
	}
	return campaign, nil
}

// Update applies the non-nil fields of the patch and bumps updated_at.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, dto UpdateCampaignDTO) error {
	updates := map[string]any{}
	if dto.Title != nil {
		updates["title"] = *dto.Title
	}
	if dto.Description != nil {
		updates["description"] = *dto.Description
	}
	if dto.BloodType != nil {
		updates["blood_type"] = *dto.BloodType
	}
	if dto.Location != nil {
		updates["location"] = *dto.Location
	}
	if dto.StartsAt != nil {
		updates["starts_at"] = *dto.StartsAt
	}
	if dto.EndsAt != nil {
		updates["ends_at"] = *dto.EndsAt
	}
	if dto.Status != nil {
		updates["status"] = *dto.Status
	}
	if dto.GoalDonors != nil {
		updates["goal_donors"] = *dto.GoalDonors
	}
	if len(updates) == 0 {
		return nil
	}
	updates["updated_at"] = time.Now().UTC()

	result := r.db.WithContext(ctx).
		Model(&models.Campaign{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the campaign; participations cascade at the schema level.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Campaign{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountParticipants returns the number of donors signed up for a campaign.
func (r *Repository) CountParticipants(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Participation{}).
		Where("campaign_id = ?", id).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
