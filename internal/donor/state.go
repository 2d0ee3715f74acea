package donor

import (
	"context"
	"sync"
)

// Status classifies a campaign row for the current donor.
type Status int

const (
	StatusJoinable Status = iota
	StatusPending
	StatusJoined
	StatusClosed
)

func (s Status) String() string {
	switch s {
	case StatusJoinable:
		return "joinable"
	case StatusPending:
		return "pending"
	case StatusJoined:
		return "joined"
	case StatusClosed:
		return "closed"
	default:
		return "unknown"
	}
}

type campaignSource interface {
	FetchCampaigns(ctx context.Context) ([]Campaign, error)
	FetchMyParticipations(ctx context.Context) []string
}

// State is the single authoritative projection of campaigns and membership.
// The snapshot and the membership set are always replaced together so a
// render never pairs campaigns with an older membership snapshot.
type State struct {
	source campaignSource

	mu         sync.Mutex
	campaigns  []Campaign
	membership map[string]struct{}
	inflight   map[string]struct{}
	generation uint64
}

// NewState builds an empty participation state over the given source.
func NewState(source campaignSource) *State {
	return &State{
		source:     source,
		membership: map[string]struct{}{},
		inflight:   map[string]struct{}{},
	}
}

// Load refetches campaigns and membership and commits them as one snapshot
// pair. A campaign fetch failure aborts the whole reconciliation; a
// membership fetch failure has already degraded to an empty set inside the
// source. Stale loads, overtaken by a newer Load, are discarded.
func (s *State) Load(ctx context.Context) error {
	s.mu.Lock()
	s.generation++
	generation := s.generation
	s.mu.Unlock()

	campaigns, err := s.source.FetchCampaigns(ctx)
	if err != nil {
		return err
	}
	joined := s.source.FetchMyParticipations(ctx)

	membership := make(map[string]struct{}, len(joined))
	for _, id := range joined {
		membership[CanonicalID(id)] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if generation != s.generation {
		return nil
	}
	s.campaigns = campaigns
	s.membership = membership
	return nil
}

// DeriveStatus computes the row status for a campaign id.
func (s *State) DeriveStatus(campaignID string) Status {
	id := CanonicalID(campaignID)

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deriveStatusLocked(id)
}

func (s *State) deriveStatusLocked(id string) Status {
	for _, c := range s.campaigns {
		if c.ID != id {
			continue
		}
		if !c.Active() {
			return StatusClosed
		}
		if _, ok := s.membership[id]; ok {
			return StatusJoined
		}
		if _, ok := s.inflight[id]; ok {
			return StatusPending
		}
		return StatusJoinable
	}
	if _, ok := s.membership[id]; ok {
		return StatusJoined
	}
	return StatusClosed
}

// MarkJoined adds the campaign to the membership set. Marking an already
// joined id is a no-op.
func (s *State) MarkJoined(campaignID string) {
	id := CanonicalID(campaignID)
	if id == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.membership[id] = struct{}{}
}

// Campaigns returns the current snapshot in server order.
func (s *State) Campaigns() []Campaign {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Campaign, len(s.campaigns))
	copy(out, s.campaigns)
	return out
}

// beginSubmit reserves the in-flight slot for a campaign. It reports false
// when a submission for the same id is already outstanding.
func (s *State) beginSubmit(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.inflight[id]; ok {
		return false
	}
	s.inflight[id] = struct{}{}
	return true
}

func (s *State) endSubmit(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, id)
}
