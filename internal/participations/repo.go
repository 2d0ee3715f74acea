package participations

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/doevida/doevida-backend/pkg/db/models"
)

// Repository encapsulates participation persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a participations repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a signup. The unique (user_id, campaign_id) index surfaces
// duplicates as a constraint error for the service to map.
func (r *Repository) Create(ctx context.Context, userID, campaignID uuid.UUID) (*models.Participation, error) {
	participation := &models.Participation{
		ID:         uuid.New(),
		UserID:     userID,
		CampaignID: campaignID,
	}
	if err := r.db.WithContext(ctx).Create(participation).Error; err != nil {
		return nil, err
	}
	return participation, nil
}

// FindByUserAndCampaign loads an existing signup if present.
func (r *Repository) FindByUserAndCampaign(ctx context.Context, userID, campaignID uuid.UUID) (*models.Participation, error) {
	var participation models.Participation
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND campaign_id = ?", userID, campaignID).
		First(&participation).Error
	if err != nil {
		return nil, err
	}
	return &participation, nil
}

// ListByUser returns the user's signups newest-first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Participation, error) {
	var items []models.Participation
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("joined_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
