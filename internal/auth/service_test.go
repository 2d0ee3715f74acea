package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgAuth "github.com/doevida/doevida-backend/pkg/auth"
	"github.com/doevida/doevida-backend/pkg/auth/session"
	"github.com/doevida/doevida-backend/pkg/config"
	"github.com/doevida/doevida-backend/pkg/db/models"
	"github.com/doevida/doevida-backend/pkg/enums"
	pkgerrors "github.com/doevida/doevida-backend/pkg/errors"
	"github.com/doevida/doevida-backend/pkg/security"
)

type fakeAuthUserRepo struct {
	findByEmail     func(ctx context.Context, email string) (*models.User, error)
	findByID        func(ctx context.Context, id uuid.UUID) (*models.User, error)
	updateLastLogin func(ctx context.Context, id uuid.UUID, at time.Time) error
}

func (f *fakeAuthUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return f.findByEmail(ctx, email)
}

func (f *fakeAuthUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return f.findByID(ctx, id)
}

func (f *fakeAuthUserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	if f.updateLastLogin == nil {
		return nil
	}
	return f.updateLastLogin(ctx, id, at)
}

type fakeSessionManager struct {
	generate func(ctx context.Context, accessID string) (string, error)
	rotate   func(ctx context.Context, oldAccessID, provided string) (string, string, error)
	revoke   func(ctx context.Context, accessID string) error
}

func (f *fakeSessionManager) Generate(ctx context.Context, accessID string) (string, error) {
	return f.generate(ctx, accessID)
}

func (f *fakeSessionManager) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	return f.rotate(ctx, oldAccessID, provided)
}

func (f *fakeSessionManager) Revoke(ctx context.Context, accessID string) error {
	return f.revoke(ctx, accessID)
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "doevida-test",
		ExpirationMinutes: 15,
	}
}

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8192,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := security.HashPassword(password, testPasswordConfig())
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return hash
}

func newTestService(t *testing.T, repo *fakeAuthUserRepo, sessions *fakeSessionManager) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		UserRepo:       repo,
		SessionManager: sessions,
		JWTConfig:      testJWTConfig(),
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestLoginSucceeds(t *testing.T) {
	userID := uuid.New()
	repo := &fakeAuthUserRepo{
		findByEmail: func(ctx context.Context, email string) (*models.User, error) {
			if email != "maria@example.com" {
				t.Fatalf("unexpected email %q", email)
			}
			return &models.User{
				ID:           userID,
				Email:        "maria@example.com",
				Name:         "Maria",
				PasswordHash: mustHash(t, "super-secret"),
				Role:         enums.UserRoleDonor,
				IsActive:     true,
			}, nil
		},
	}
	var generatedFor string
	sessions := &fakeSessionManager{
		generate: func(ctx context.Context, accessID string) (string, error) {
			generatedFor = accessID
			return "refresh-token", nil
		},
	}
	svc := newTestService(t, repo, sessions)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "  Maria@Example.com ",
		Password: "super-secret",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.RefreshToken != "refresh-token" {
		t.Fatalf("unexpected refresh token %q", resp.RefreshToken)
	}
	if resp.User == nil || resp.User.ID != userID {
		t.Fatalf("unexpected user in response: %+v", resp.User)
	}

	claims, err := pkgAuth.ParseAccessToken(testJWTConfig(), resp.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("claims user id = %s, want %s", claims.UserID, userID)
	}
	if claims.ID != generatedFor {
		t.Fatalf("jti %q does not match session key %q", claims.ID, generatedFor)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	repo := &fakeAuthUserRepo{
		findByEmail: func(ctx context.Context, email string) (*models.User, error) {
			return &models.User{
				ID:           uuid.New(),
				PasswordHash: mustHash(t, "super-secret"),
				Role:         enums.UserRoleDonor,
				IsActive:     true,
			}, nil
		},
	}
	svc := newTestService(t, repo, &fakeSessionManager{})

	_, err := svc.Login(context.Background(), LoginRequest{Email: "maria@example.com", Password: "wrong"})
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	repo := &fakeAuthUserRepo{
		findByEmail: func(ctx context.Context, email string) (*models.User, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := newTestService(t, repo, &fakeSessionManager{})

	_, err := svc.Login(context.Background(), LoginRequest{Email: "nobody@example.com", Password: "x"})
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLoginInactiveUser(t *testing.T) {
	repo := &fakeAuthUserRepo{
		findByEmail: func(ctx context.Context, email string) (*models.User, error) {
			return &models.User{
				ID:           uuid.New(),
				PasswordHash: mustHash(t, "super-secret"),
				Role:         enums.UserRoleDonor,
				IsActive:     false,
			}, nil
		},
	}
	svc := newTestService(t, repo, &fakeSessionManager{})

	_, err := svc.Login(context.Background(), LoginRequest{Email: "maria@example.com", Password: "super-secret"})
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestRefreshRotatesSession(t *testing.T) {
	userID := uuid.New()
	issuedAt := time.Now().UTC().Add(-2 * time.Hour)
	expiredToken, err := pkgAuth.MintAccessToken(testJWTConfig(), issuedAt, pkgAuth.AccessTokenPayload{
		UserID: userID,
		Name:   "Maria",
		Role:   enums.UserRoleDonor,
		JTI:    "old-access",
	})
	if err != nil {
		t.Fatalf("mint expired token: %v", err)
	}

	repo := &fakeAuthUserRepo{
		findByID: func(ctx context.Context, id uuid.UUID) (*models.User, error) {
			if id != userID {
				t.Fatalf("unexpected user id %s", id)
			}
			return &models.User{ID: userID, Name: "Maria", Role: enums.UserRoleDonor, IsActive: true}, nil
		},
	}
	sessions := &fakeSessionManager{
		rotate: func(ctx context.Context, oldAccessID, provided string) (string, string, error) {
			if oldAccessID != "old-access" {
				t.Fatalf("unexpected old access id %q", oldAccessID)
			}
			if provided != "refresh-token" {
				t.Fatalf("unexpected refresh token %q", provided)
			}
			return "new-access", "new-refresh-token", nil
		},
	}
	svc := newTestService(t, repo, sessions)

	resp, err := svc.Refresh(context.Background(), expiredToken, RefreshRequest{RefreshToken: "refresh-token"})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if resp.RefreshToken != "new-refresh-token" {
		t.Fatalf("unexpected refresh token %q", resp.RefreshToken)
	}

	claims, err := pkgAuth.ParseAccessToken(testJWTConfig(), resp.AccessToken)
	if err != nil {
		t.Fatalf("parse rotated token: %v", err)
	}
	if claims.ID != "new-access" {
		t.Fatalf("rotated jti = %q, want new-access", claims.ID)
	}
}

func TestRefreshRejectsWrongRefreshToken(t *testing.T) {
	userID := uuid.New()
	expiredToken, err := pkgAuth.MintAccessToken(testJWTConfig(), time.Now().UTC().Add(-2*time.Hour), pkgAuth.AccessTokenPayload{
		UserID: userID,
		Name:   "Maria",
		Role:   enums.UserRoleDonor,
		JTI:    "old-access",
	})
	if err != nil {
		t.Fatalf("mint expired token: %v", err)
	}

	sessions := &fakeSessionManager{
		rotate: func(ctx context.Context, oldAccessID, provided string) (string, string, error) {
			return "", "", session.ErrInvalidRefreshToken
		},
	}
	svc := newTestService(t, &fakeAuthUserRepo{}, sessions)

	_, err = svc.Refresh(context.Background(), expiredToken, RefreshRequest{RefreshToken: "stolen"})
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestRefreshRejectsGarbageToken(t *testing.T) {
	svc := newTestService(t, &fakeAuthUserRepo{}, &fakeSessionManager{})

	_, err := svc.Refresh(context.Background(), "not-a-jwt", RefreshRequest{RefreshToken: "refresh-token"})
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLogout(t *testing.T) {
	var revoked string
	sessions := &fakeSessionManager{
		revoke: func(ctx context.Context, accessID string) error {
			revoked = accessID
			return nil
		},
	}
	svc := newTestService(t, &fakeAuthUserRepo{}, sessions)

	if err := svc.Logout(context.Background(), "access-123"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if revoked != "access-123" {
		t.Fatalf("revoked %q, want access-123", revoked)
	}

	err := svc.Logout(context.Background(), "  ")
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for blank access id, got %v", err)
	}
}
