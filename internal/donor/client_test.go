package donor

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/doevida/doevida-backend/pkg/config"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(config.DonorConfig{
		BaseURL:        server.URL,
		RequestTimeout: 5 * time.Second,
	}, func() string { return "token-123" }, nil)
}

func TestFetchCampaignsCanonicalizesIDs(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/campaigns" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"campaigns":[
			{"id":7,"title":"Sangue pela Vida","blood_type":"O+","status":"Ativa","goal_donors":50,"participants":0},
			{"id":"9","title":"Inverno Solidário","blood_type":"Todos","status":"Encerrada","goal_donors":30,"participants":12}
		]}}`))
	}))

	campaigns, err := client.FetchCampaigns(context.Background())
	if err != nil {
		t.Fatalf("fetch campaigns: %v", err)
	}
	if len(campaigns) != 2 {
		t.Fatalf("expected 2 campaigns, got %d", len(campaigns))
	}
	if campaigns[0].ID != "7" {
		t.Fatalf("numeric id canonicalized to %q, want \"7\"", campaigns[0].ID)
	}
	if campaigns[1].ID != "9" {
		t.Fatalf("string id canonicalized to %q, want \"9\"", campaigns[1].ID)
	}
	if !campaigns[0].Active() || campaigns[1].Active() {
		t.Fatalf("active flags wrong: %v %v", campaigns[0].Active(), campaigns[1].Active())
	}
}

func TestFetchCampaignsFailsHard(t *testing.T) {
	t.Run("server error", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		_, err := client.FetchCampaigns(context.Background())
		var netErr *NetworkError
		if !errors.As(err, &netErr) {
			t.Fatalf("expected NetworkError, got %v", err)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>nope</html>"))
		}))
		_, err := client.FetchCampaigns(context.Background())
		var decErr *DecodeError
		if !errors.As(err, &decErr) {
			t.Fatalf("expected DecodeError, got %v", err)
		}
	})
}

func TestFetchMyParticipationsFailsSoft(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got := r.Header.Get("Authorization"); got != "Bearer token-123" {
				t.Fatalf("missing bearer token, got %q", got)
			}
			w.Write([]byte(`{"data":{"participations":[{"campaign_id":7},{"campaign_id":"9"}]}}`))
		}))
		ids := client.FetchMyParticipations(context.Background())
		if len(ids) != 2 || ids[0] != "7" || ids[1] != "9" {
			t.Fatalf("unexpected ids %v", ids)
		}
	})

	t.Run("expired session degrades to empty", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		if ids := client.FetchMyParticipations(context.Background()); len(ids) != 0 {
			t.Fatalf("expected empty membership, got %v", ids)
		}
	})

	t.Run("garbage body degrades to empty", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}))
		if ids := client.FetchMyParticipations(context.Background()); len(ids) != 0 {
			t.Fatalf("expected empty membership, got %v", ids)
		}
	})
}

func TestProbeSession(t *testing.T) {
	t.Run("authenticated", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data":{"id":"u1"}}`))
		}))
		if err := client.ProbeSession(context.Background()); err != nil {
			t.Fatalf("probe: %v", err)
		}
	})

	t.Run("unauthenticated", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		if err := client.ProbeSession(context.Background()); !errors.Is(err, ErrUnauthenticated) {
			t.Fatalf("expected ErrUnauthenticated, got %v", err)
		}
	})
}

func TestJoinMapsStatuses(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "created",
			status: http.StatusCreated,
			body:   `{"data":{"participation":{"id":"p1"}}}`,
			check: func(t *testing.T, err error) {
				if err != nil {
					t.Fatalf("expected success, got %v", err)
				}
			},
		},
		{
			name:   "conflict",
			status: http.StatusConflict,
			body:   `{"error":{"code":"CONFLICT","message":"already participating in this campaign"}}`,
			check: func(t *testing.T, err error) {
				if !errors.Is(err, ErrAlreadyJoined) {
					t.Fatalf("expected ErrAlreadyJoined, got %v", err)
				}
			},
		},
		{
			name:   "unauthorized",
			status: http.StatusUnauthorized,
			body:   `{"error":{"code":"UNAUTHORIZED","message":"authentication required"}}`,
			check: func(t *testing.T, err error) {
				if !errors.Is(err, ErrUnauthenticated) {
					t.Fatalf("expected ErrUnauthenticated, got %v", err)
				}
			},
		},
		{
			name:   "rejected",
			status: http.StatusUnprocessableEntity,
			body:   `{"error":{"code":"VALIDATION_ERROR","message":"campaign is not accepting participants"}}`,
			check: func(t *testing.T, err error) {
				var rejected *ServerRejectedError
				if !errors.As(err, &rejected) {
					t.Fatalf("expected ServerRejectedError, got %v", err)
				}
				if rejected.Reason != "campaign is not accepting participants" {
					t.Fatalf("unexpected reason %q", rejected.Reason)
				}
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost || r.URL.Path != "/api/v1/campaigns/7/participate" {
					t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
				}
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			tc.check(t, client.Join(context.Background(), "7"))
		})
	}
}
