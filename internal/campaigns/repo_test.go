package campaigns

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/doevida/doevida-backend/pkg/db/models"
	"github.com/doevida/doevida-backend/pkg/enums"
)

func setupCampaignsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	campaigns := `
CREATE TABLE IF NOT EXISTS campaigns (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  description TEXT,
  blood_type TEXT NOT NULL DEFAULT 'Todos',
  location TEXT NOT NULL,
  starts_at DATETIME NOT NULL,
  ends_at DATETIME,
  status TEXT NOT NULL DEFAULT 'Ativa',
  goal_donors INTEGER NOT NULL DEFAULT 0,
  created_by TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	participations := `
CREATE TABLE IF NOT EXISTS participations (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  campaign_id TEXT NOT NULL,
  joined_at DATETIME,
  UNIQUE (user_id, campaign_id)
);`

	require.NoError(t, db.Exec(campaigns).Error)
	require.NoError(t, db.Exec(participations).Error)
	return db
}

func seedCampaign(t *testing.T, db *gorm.DB, status enums.CampaignStatus, goal int) *models.Campaign {
	t.Helper()
	campaign := &models.Campaign{
		ID:         uuid.New(),
		Title:      "Estoque Crítico A-",
		BloodType:  enums.BloodTypeANegative,
		Location:   "Hemocentro Central",
		StartsAt:   time.Now().UTC(),
		Status:     status,
		GoalDonors: goal,
	}
	require.NoError(t, db.Create(campaign).Error)
	return campaign
}

func seedParticipation(t *testing.T, db *gorm.DB, campaignID uuid.UUID) {
	t.Helper()
	p := &models.Participation{
		ID:         uuid.New(),
		UserID:     uuid.New(),
		CampaignID: campaignID,
		JoinedAt:   time.Now().UTC(),
	}
	require.NoError(t, db.Create(p).Error)
}

func TestListWithCounts(t *testing.T) {
	db := setupCampaignsTestDB(t)
	repo := NewRepository(db)

	active := seedCampaign(t, db, enums.CampaignStatusActive, 20)
	closed := seedCampaign(t, db, enums.CampaignStatusClosed, 10)
	seedParticipation(t, db, active.ID)
	seedParticipation(t, db, active.ID)

	items, err := repo.ListWithCounts(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)

	byID := map[uuid.UUID]CampaignDTO{}
	for _, item := range items {
		byID[item.ID] = item
	}
	assert.Equal(t, 2, byID[active.ID].Participants)
	assert.Equal(t, 0, byID[closed.ID].Participants)
	assert.Equal(t, enums.CampaignStatusClosed, byID[closed.ID].Status)
}

func TestCreateAndGet(t *testing.T) {
	db := setupCampaignsTestDB(t)
	repo := NewRepository(db)

	created, err := repo.Create(context.Background(), CreateCampaignDTO{
		Title:      "Urgência O-",
		BloodType:  enums.BloodTypeONegative,
		Location:   "Hemocentro Norte",
		StartsAt:   time.Now().UTC(),
		GoalDonors: 20,
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, enums.CampaignStatusActive, created.Status)

	found, err := repo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Urgência O-", found.Title)
}

func TestUpdateCampaign(t *testing.T) {
	db := setupCampaignsTestDB(t)
	repo := NewRepository(db)
	campaign := seedCampaign(t, db, enums.CampaignStatusActive, 20)

	closed := enums.CampaignStatusClosed
	err := repo.Update(context.Background(), campaign.ID, UpdateCampaignDTO{Status: &closed})
	require.NoError(t, err)

	found, err := repo.FindByID(context.Background(), campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.CampaignStatusClosed, found.Status)
}

func TestUpdateMissingCampaign(t *testing.T) {
	db := setupCampaignsTestDB(t)
	repo := NewRepository(db)

	closed := enums.CampaignStatusClosed
	err := repo.Update(context.Background(), uuid.New(), UpdateCampaignDTO{Status: &closed})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeleteCampaign(t *testing.T) {
	db := setupCampaignsTestDB(t)
	repo := NewRepository(db)
	campaign := seedCampaign(t, db, enums.CampaignStatusActive, 20)

	require.NoError(t, repo.Delete(context.Background(), campaign.ID))

	_, err := repo.FindByID(context.Background(), campaign.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	err = repo.Delete(context.Background(), campaign.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
