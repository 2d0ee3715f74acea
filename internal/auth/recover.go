package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/doevida/doevida-backend/pkg/config"
	"github.com/doevida/doevida-backend/pkg/db/models"
	pkgerrors "github.com/doevida/doevida-backend/pkg/errors"
	"github.com/doevida/doevida-backend/pkg/logger"
	"github.com/doevida/doevida-backend/pkg/security"
)

const (
	recoveryTokenTTL    = 30 * time.Minute
	recoveryTokenLength = 48
)

// RecoverService drives the password recovery flow.
type RecoverService interface {
	Recover(ctx context.Context, req RecoverRequest) error
	Reset(ctx context.Context, req ResetRequest) error
}

type recoveryTokenStore interface {
	StoreRecoveryToken(ctx context.Context, token, userID string, ttl time.Duration) error
	ConsumeRecoveryToken(ctx context.Context, token string) (string, error)
}

type recoveryUserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

type recoveryMailer interface {
	SendPasswordRecovery(ctx context.Context, to, name, resetLink string) error
}

type recoverService struct {
	users       recoveryUserRepository
	tokens      recoveryTokenStore
	mailer      recoveryMailer
	passwordCfg config.PasswordConfig
	baseURL     string
	logg        *logger.Logger
}

// RecoverServiceParams groups the recovery flow dependencies.
type RecoverServiceParams struct {
	UserRepo       recoveryUserRepository
	TokenStore     recoveryTokenStore
	Mailer         recoveryMailer
	PasswordConfig config.PasswordConfig
	AppBaseURL     string
	Logger         *logger.Logger
}

// NewRecoverService builds the password recovery service.
func NewRecoverService(params RecoverServiceParams) (RecoverService, error) {
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.TokenStore == nil {
		return nil, fmt.Errorf("token store is required")
	}
	if params.Mailer == nil {
		return nil, fmt.Errorf("mailer is required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &recoverService{
		users:       params.UserRepo,
		tokens:      params.TokenStore,
		mailer:      params.Mailer,
		passwordCfg: params.PasswordConfig,
		baseURL:     strings.TrimRight(params.AppBaseURL, "/"),
		logg:        params.Logger,
	}, nil
}

// Recover issues a one-time reset token and mails the reset link. Unknown
// emails return success so the endpoint does not leak account existence.
func (s *recoverService) Recover(ctx context.Context, req RecoverRequest) error {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logg.Info(ctx, "recovery requested for unknown email")
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	token, err := security.GenerateResetToken(recoveryTokenLength)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate reset token")
	}
	if err := s.tokens.StoreRecoveryToken(ctx, token, user.ID.String(), recoveryTokenTTL); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store reset token")
	}

	resetLink := fmt.Sprintf("%s/reset-password?token=%s", s.baseURL, token)
	if err := s.mailer.SendPasswordRecovery(ctx, user.Email, user.Name, resetLink); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "send recovery email")
	}

	s.logg.Info(s.logg.WithUserID(ctx, user.ID.String()), "recovery email sent")
	return nil
}

// Reset consumes the token and replaces the stored password hash.
func (s *recoverService) Reset(ctx context.Context, req ResetRequest) error {
	token := strings.TrimSpace(req.Token)
	if token == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "token is required")
	}

	userIDRaw, err := s.tokens.ConsumeRecoveryToken(ctx, token)
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid or expired reset token")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "consume reset token")
	}
	userID, err := uuid.Parse(userIDRaw)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "parse token owner")
	}

	passwordHash, err := security.HashPassword(req.NewPassword, s.passwordCfg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}
	if err := s.users.UpdatePassword(ctx, userID, passwordHash); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update password")
	}

	s.logg.Info(s.logg.WithUserID(ctx, userID.String()), "password reset completed")
	return nil
}
