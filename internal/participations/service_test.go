package participations

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/doevida/doevida-backend/internal/campaigns"
	"github.com/doevida/doevida-backend/internal/users"
	"github.com/doevida/doevida-backend/pkg/db/models"
	"github.com/doevida/doevida-backend/pkg/enums"
	pkgerrors "github.com/doevida/doevida-backend/pkg/errors"
	"github.com/doevida/doevida-backend/pkg/logger"
)

func setupParticipationsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	usersTable := `
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  name TEXT NOT NULL,
  phone TEXT,
  blood_type TEXT NOT NULL,
  birth_date DATETIME,
  gender TEXT,
  cep TEXT,
  address TEXT,
  donated_before INTEGER NOT NULL DEFAULT 0,
  first_time INTEGER NOT NULL DEFAULT 0,
  interest TEXT,
  allow_messages INTEGER NOT NULL DEFAULT 0,
  allow_data_use INTEGER NOT NULL DEFAULT 0,
  role TEXT NOT NULL DEFAULT 'donor',
  is_active INTEGER NOT NULL DEFAULT 1,
  last_login_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	campaignsTable := `
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
	participationsTable := `
CREATE TABLE IF NOT EXISTS participations (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  campaign_id TEXT NOT NULL,
  joined_at DATETIME,
  UNIQUE (user_id, campaign_id)
);`

	require.NoError(t, db.Exec(usersTable).Error)
	require.NoError(t, db.Exec(campaignsTable).Error)
	require.NoError(t, db.Exec(participationsTable).Error)
	return db
}

func newTestService(t *testing.T, db *gorm.DB) Service {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	svc, err := NewService(ServiceParams{
		Repo:      NewRepository(db),
		Campaigns: campaigns.NewRepository(db),
		Users:     users.NewRepository(db),
		Logger:    logg,
	})
	require.NoError(t, err)
	return svc
}

func seedUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	user := &models.User{
		ID:           uuid.New(),
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "x",
		Name:         "Maria",
		BloodType:    enums.BloodTypeONegative,
		Role:         enums.UserRoleDonor,
		IsActive:     true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedActiveCampaign(t *testing.T, db *gorm.DB, status enums.CampaignStatus) *models.Campaign {
	t.Helper()
	campaign := &models.Campaign{
		ID:        uuid.New(),
		Title:     "Urgência O-",
		BloodType: enums.BloodTypeONegative,
		Location:  "Hemocentro Central",
		StartsAt:  time.Now().UTC(),
		Status:    status,
	}
	require.NoError(t, db.Create(campaign).Error)
	return campaign
}

func TestJoinSucceeds(t *testing.T) {
	db := setupParticipationsTestDB(t)
	svc := newTestService(t, db)
	user := seedUser(t, db)
	campaign := seedActiveCampaign(t, db, enums.CampaignStatusActive)

	result, err := svc.Join(context.Background(), user.ID, campaign.ID)
	require.NoError(t, err)
	assert.False(t, result.AlreadyJoined)
	assert.Equal(t, campaign.ID, result.Participation.CampaignID)
	assert.NotEqual(t, uuid.Nil, result.Participation.ID)
}

func TestJoinDuplicateMapsToConflict(t *testing.T) {
	db := setupParticipationsTestDB(t)
	svc := newTestService(t, db)
	user := seedUser(t, db)
	campaign := seedActiveCampaign(t, db, enums.CampaignStatusActive)

	_, err := svc.Join(context.Background(), user.ID, campaign.ID)
	require.NoError(t, err)

	_, err = svc.Join(context.Background(), user.ID, campaign.ID)
	var appErr *pkgerrors.Error
	require.True(t, errors.As(err, &appErr), "expected coded error, got %v", err)
	assert.Equal(t, pkgerrors.CodeConflict, appErr.Code())

	// the existing signup rides along for clients that treat 409 as success
	existing, ok := appErr.Details().(ParticipationDTO)
	require.True(t, ok, "expected participation details, got %T", appErr.Details())
	assert.Equal(t, campaign.ID, existing.CampaignID)
}

func TestJoinClosedCampaignRejected(t *testing.T) {
	db := setupParticipationsTestDB(t)
	svc := newTestService(t, db)
	user := seedUser(t, db)
	campaign := seedActiveCampaign(t, db, enums.CampaignStatusClosed)

	_, err := svc.Join(context.Background(), user.ID, campaign.ID)
	var appErr *pkgerrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestJoinMissingCampaign(t *testing.T) {
	db := setupParticipationsTestDB(t)
	svc := newTestService(t, db)
	user := seedUser(t, db)

	_, err := svc.Join(context.Background(), user.ID, uuid.New())
	var appErr *pkgerrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}

func TestJoinRequiresAuth(t *testing.T) {
	db := setupParticipationsTestDB(t)
	svc := newTestService(t, db)

	_, err := svc.Join(context.Background(), uuid.Nil, uuid.New())
	var appErr *pkgerrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, pkgerrors.CodeUnauthorized, appErr.Code())
}

func TestListMine(t *testing.T) {
	db := setupParticipationsTestDB(t)
	svc := newTestService(t, db)
	user := seedUser(t, db)
	first := seedActiveCampaign(t, db, enums.CampaignStatusActive)
	second := seedActiveCampaign(t, db, enums.CampaignStatusActive)

	_, err := svc.Join(context.Background(), user.ID, first.ID)
	require.NoError(t, err)
	_, err = svc.Join(context.Background(), user.ID, second.ID)
	require.NoError(t, err)

	mine, err := svc.ListMine(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Len(t, mine.Participations, 2)

	other, err := svc.ListMine(context.Background(), seedUser(t, db).ID)
	require.NoError(t, err)
	assert.Empty(t, other.Participations)
}
