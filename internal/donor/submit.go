package donor

import (
	"context"
	"errors"
	"fmt"

	"github.com/doevida/doevida-backend/pkg/logger"
)

// Outcome is the result of one participation submission.
type Outcome int

const (
	OutcomeJoined Outcome = iota
	OutcomeAlreadyJoined
	OutcomeUnauthenticated
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeJoined:
		return "joined"
	case OutcomeAlreadyJoined:
		return "already joined"
	case OutcomeUnauthenticated:
		return "unauthenticated"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

type joinAPI interface {
	ProbeSession(ctx context.Context) error
	Join(ctx context.Context, campaignID string) error
}

// Submitter performs the join request and folds the server's verdict back
// into the participation state.
type Submitter struct {
	api          joinAPI
	state        *State
	notifier     Notifier
	probeSession bool
	logg         *logger.Logger
}

// SubmitterParams bundles the submitter dependencies.
type SubmitterParams struct {
	API          joinAPI
	State        *State
	Notifier     Notifier
	ProbeSession bool
	Logger       *logger.Logger
}

// NewSubmitter builds a participation submitter.
func NewSubmitter(params SubmitterParams) (*Submitter, error) {
	if params.API == nil {
		return nil, fmt.Errorf("join api is required")
	}
	if params.State == nil {
		return nil, fmt.Errorf("participation state is required")
	}
	notifier := params.Notifier
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Submitter{
		api:          params.API,
		state:        params.State,
		notifier:     notifier,
		probeSession: params.ProbeSession,
		logg:         params.Logger,
	}, nil
}

// Submit issues exactly one join request for the campaign. A conflict from
// the server means membership already holds, so it is folded into success
// and never surfaced as an error. The returned error is non-nil only for
// OutcomeFailed and names the reason.
func (s *Submitter) Submit(ctx context.Context, campaignID string) (Outcome, error) {
	id := CanonicalID(campaignID)
	if id == "" {
		return OutcomeFailed, &ProgrammingError{Op: "submit", Reason: "empty campaign id"}
	}

	if !s.state.beginSubmit(id) {
		return OutcomeFailed, fmt.Errorf("submission for campaign %s already in flight", id)
	}
	defer s.state.endSubmit(id)

	if s.probeSession {
		if err := s.api.ProbeSession(ctx); errors.Is(err, ErrUnauthenticated) {
			s.notifier.RedirectToLogin()
			return OutcomeUnauthenticated, nil
		}
		// Probe transport failures fall through; the join call decides.
	}

	err := s.api.Join(ctx, id)
	switch {
	case err == nil:
		s.state.MarkJoined(id)
		s.refresh(ctx)
		s.notifier.Success("Participação confirmada! Obrigado por doar.")
		return OutcomeJoined, nil

	case errors.Is(err, ErrAlreadyJoined):
		s.state.MarkJoined(id)
		s.notifier.Success("Você já está participando desta campanha.")
		return OutcomeAlreadyJoined, nil

	case errors.Is(err, ErrUnauthenticated):
		s.notifier.RedirectToLogin()
		return OutcomeUnauthenticated, nil

	default:
		s.notifier.Error("Não foi possível confirmar sua participação. Tente novamente.")
		return OutcomeFailed, err
	}
}

func (s *Submitter) refresh(ctx context.Context) {
	if err := s.state.Load(ctx); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithField(ctx, "cause", err.Error()), "post-join refresh failed")
	}
}
