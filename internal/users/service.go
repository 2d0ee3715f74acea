package users

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/doevida/doevida-backend/pkg/db/models"
	pkgerrors "github.com/doevida/doevida-backend/pkg/errors"
)

const pointsPerParticipation = 10

// Service exposes profile reads for the donor-facing endpoints.
type Service interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*ProfileDTO, error)
}

type userRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	CountParticipations(ctx context.Context, id uuid.UUID) (int64, error)
}

type service struct {
	users userRepository
}

// NewService builds a users service with the provided repository.
func NewService(repo userRepository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "users repository required")
	}
	return &service{users: repo}, nil
}

// GetProfile loads the donor and derives points, level, and badges from their
// participation history.
func (s *service) GetProfile(ctx context.Context, userID uuid.UUID) (*ProfileDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user")
	}

	count, err := s.users.CountParticipations(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count participations")
	}

	participations := int(count)
	points := participations * pointsPerParticipation

	return &ProfileDTO{
		User:               FromModel(user),
		ParticipationCount: participations,
		Points:             points,
		Level:              levelForPoints(points),
		Badges:             badgesForCount(participations),
	}, nil
}

func levelForPoints(points int) string {
	switch {
	case points >= 100:
		return "Doador Ouro"
	case points >= 50:
		return "Doador Prata"
	case points >= 20:
		return "Doador Bronze"
	default:
		return "Doador Iniciante"
	}
}

func badgesForCount(participations int) []string {
	badges := []string{}
	if participations >= 1 {
		badges = append(badges, "Primeira Doação!")
	}
	if participations >= 5 {
		badges = append(badges, "Doador Frequente")
	}
	if participations >= 10 {
		badges = append(badges, "Herói da Comunidade")
	}
	return badges
}
