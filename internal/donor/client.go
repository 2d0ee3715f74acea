package donor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/doevida/doevida-backend/pkg/config"
	"github.com/doevida/doevida-backend/pkg/logger"
)

// Campaign is the client-side snapshot of a donation drive. It is read-only
// and replaced wholesale on every refetch, never mutated in place.
type Campaign struct {
	ID           string
	Title        string
	BloodType    string
	Location     string
	Status       string
	GoalDonors   int
	Participants int
}

// Active reports whether the campaign accepts new participants.
func (c Campaign) Active() bool {
	return c.Status == "Ativa"
}

// TokenProvider yields the current access token, or "" when logged out.
type TokenProvider func() string

// Client talks to the platform API on behalf of one donor.
type Client struct {
	baseURL string
	httpc   *http.Client
	token   TokenProvider
	logg    *logger.Logger
}

// NewClient builds an API client from the donor configuration.
func NewClient(cfg config.DonorConfig, token TokenProvider, logg *logger.Logger) *Client {
	if token == nil {
		token = func() string { return "" }
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpc:   &http.Client{Timeout: cfg.RequestTimeout},
		token:   token,
		logg:    logg,
	}
}

type campaignWire struct {
	ID           any    `json:"id"`
	Title        string `json:"title"`
	BloodType    string `json:"blood_type"`
	Location     string `json:"location"`
	Status       string `json:"status"`
	GoalDonors   int    `json:"goal_donors"`
	Participants int    `json:"participants"`
}

type campaignListWire struct {
	Data struct {
		Campaigns []campaignWire `json:"campaigns"`
	} `json:"data"`
}

// FetchCampaigns loads the current campaign list. Transport failures and
// malformed bodies fail hard so the caller can render an unavailable state.
func (c *Client) FetchCampaigns(ctx context.Context) ([]Campaign, error) {
	const op = "fetch campaigns"

	resp, err := c.get(ctx, "/api/v1/campaigns", false)
	if err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &NetworkError{Op: op, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var wire campaignListWire
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, &DecodeError{Op: op, Err: err}
	}

	campaigns := make([]Campaign, 0, len(wire.Data.Campaigns))
	for _, w := range wire.Data.Campaigns {
		campaigns = append(campaigns, Campaign{
			ID:           CanonicalID(w.ID),
			Title:        w.Title,
			BloodType:    w.BloodType,
			Location:     w.Location,
			Status:       w.Status,
			GoalDonors:   w.GoalDonors,
			Participants: w.Participants,
		})
	}
	return campaigns, nil
}

type participationListWire struct {
	Data struct {
		Participations []struct {
			CampaignID any `json:"campaign_id"`
		} `json:"participations"`
	} `json:"data"`
}

// FetchMyParticipations loads the campaign ids the donor has joined. It
// fails soft: membership is an enhancement, so any error degrades to an
// empty set instead of blocking the campaign view.
func (c *Client) FetchMyParticipations(ctx context.Context) []string {
	resp, err := c.get(ctx, "/api/v1/participations/mine", true)
	if err != nil {
		c.warn(ctx, "participation fetch failed, treating membership as empty", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.warn(ctx, "participation fetch degraded", fmt.Errorf("status %d", resp.StatusCode))
		return nil
	}

	var wire participationListWire
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		c.warn(ctx, "participation fetch returned malformed body", err)
		return nil
	}

	ids := make([]string, 0, len(wire.Data.Participations))
	for _, p := range wire.Data.Participations {
		if id := CanonicalID(p.CampaignID); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// ProbeSession checks whether the current token still names a live session.
func (c *Client) ProbeSession(ctx context.Context) error {
	const op = "probe session"

	resp, err := c.get(ctx, "/api/v1/auth/me", true)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusUnauthorized:
		return ErrUnauthenticated
	default:
		return &NetworkError{Op: op, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}
}

// Join submits a participation request. The conflict outcome surfaces as
// ErrAlreadyJoined so callers can treat it as success.
func (c *Client) Join(ctx context.Context, campaignID string) error {
	const op = "join campaign"

	path := fmt.Sprintf("/api/v1/campaigns/%s/participate", campaignID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(nil))
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	c.authorize(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		return nil
	case http.StatusConflict:
		return ErrAlreadyJoined
	case http.StatusUnauthorized:
		return ErrUnauthenticated
	default:
		return &ServerRejectedError{StatusCode: resp.StatusCode, Reason: readErrorMessage(resp.Body)}
	}
}

func (c *Client) get(ctx context.Context, path string, authorized bool) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	if authorized {
		c.authorize(req)
	}
	return c.httpc.Do(req)
}

func (c *Client) authorize(req *http.Request) {
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func (c *Client) warn(ctx context.Context, msg string, err error) {
	if c.logg != nil {
		c.logg.Warn(c.logg.WithField(ctx, "cause", err.Error()), msg)
	}
}

func readErrorMessage(body io.Reader) string {
	var wire struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(body, 64<<10)).Decode(&wire); err != nil {
		return ""
	}
	return wire.Error.Message
}
