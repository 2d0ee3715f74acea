package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/doevida/doevida-backend/api/middleware"
	"github.com/doevida/doevida-backend/internal/participations"
	pkgerrors "github.com/doevida/doevida-backend/pkg/errors"
)

type stubParticipationService struct {
	join    *participations.JoinResultDTO
	joinErr error
	mine    participations.MineDTO
	mineErr error

	joinCalls int
}

func (s *stubParticipationService) Join(ctx context.Context, userID, campaignID uuid.UUID) (*participations.JoinResultDTO, error) {
	s.joinCalls++
	return s.join, s.joinErr
}

func (s *stubParticipationService) ListMine(ctx context.Context, userID uuid.UUID) (participations.MineDTO, error) {
	return s.mine, s.mineErr
}

func TestParticipationJoinSuccess(t *testing.T) {
	userID := uuid.New()
	campaignID := uuid.New()
	svc := &stubParticipationService{
		join: &participations.JoinResultDTO{
			Participation: participations.ParticipationDTO{
				ID:         uuid.New(),
				CampaignID: campaignID,
				JoinedAt:   time.Now().UTC(),
			},
		},
	}
	handler := ParticipationJoin(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/campaigns/"+campaignID.String()+"/participate", nil)
	req = withURLParam(req, "campaignID", campaignID.String())
	req = req.WithContext(middleware.WithUserID(req.Context(), userID.String()))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
	if svc.joinCalls != 1 {
		t.Fatalf("expected 1 join call got %d", svc.joinCalls)
	}

	var envelope struct {
		Data participations.JoinResultDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Participation.CampaignID != campaignID {
		t.Fatalf("unexpected campaign id: %s", envelope.Data.Participation.CampaignID)
	}
}

func TestParticipationJoinDuplicateConflict(t *testing.T) {
	userID := uuid.New()
	campaignID := uuid.New()
	existing := participations.ParticipationDTO{
		ID:         uuid.New(),
		CampaignID: campaignID,
		JoinedAt:   time.Now().UTC(),
	}
	svc := &stubParticipationService{
		joinErr: pkgerrors.New(pkgerrors.CodeConflict, "already participating in this campaign").
			WithDetails(existing),
	}
	handler := ParticipationJoin(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/campaigns/"+campaignID.String()+"/participate", nil)
	req = withURLParam(req, "campaignID", campaignID.String())
	req = req.WithContext(middleware.WithUserID(req.Context(), userID.String()))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", resp.Code)
	}

	var envelope struct {
		Error struct {
			Code    string                          `json:"code"`
			Details participations.ParticipationDTO `json:"details"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Error.Code != string(pkgerrors.CodeConflict) {
		t.Fatalf("unexpected code: %s", envelope.Error.Code)
	}
	if envelope.Error.Details.CampaignID != campaignID {
		t.Fatalf("expected existing participation in details")
	}
}

func TestParticipationJoinMissingUserContext(t *testing.T) {
	campaignID := uuid.New()
	svc := &stubParticipationService{}
	handler := ParticipationJoin(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/campaigns/"+campaignID.String()+"/participate", nil)
	req = withURLParam(req, "campaignID", campaignID.String())

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
	if svc.joinCalls != 0 {
		t.Fatalf("join should not run without a user")
	}
}

func TestParticipationMineSuccess(t *testing.T) {
	userID := uuid.New()
	campaignID := uuid.New()
	svc := &stubParticipationService{
		mine: participations.MineDTO{
			Participations: []participations.ParticipationDTO{
				{ID: uuid.New(), CampaignID: campaignID, JoinedAt: time.Now().UTC()},
			},
		},
	}
	handler := ParticipationMine(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/participations/mine", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), userID.String()))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data participations.MineDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data.Participations) != 1 {
		t.Fatalf("expected 1 participation got %d", len(envelope.Data.Participations))
	}
	if envelope.Data.Participations[0].CampaignID != campaignID {
		t.Fatalf("unexpected campaign id")
	}
}
