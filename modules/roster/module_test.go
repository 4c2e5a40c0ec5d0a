package roster_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rosterkit/modules/roster"
	"github.com/dmitrymomot/rosterkit/pkg/email"
	"github.com/dmitrymomot/rosterkit/pkg/session"
	"github.com/dmitrymomot/rosterkit/pkg/tenant"
	authsvc "github.com/dmitrymomot/rosterkit/svc/auth"
	rostersvc "github.com/dmitrymomot/rosterkit/svc/roster"
	tenantsvc "github.com/dmitrymomot/rosterkit/svc/tenant"
)

// newTestServer wires the full stack the way the server binary does:
// session middleware, then tenant resolution from the X-Tenant-ID header,
// then the module routes.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	tenants := tenantsvc.NewService(tenantsvc.NewMemoryStorage())
	auth := authsvc.NewService(authsvc.NewMemoryStorage())
	rosterSvc := rostersvc.NewService(rostersvc.MemoryStores())

	cfg := session.DefaultConfig()
	cfg.SecureCookies = false // plain HTTP test server
	sessions := session.New(session.WithConfig(cfg))

	mod := roster.New(tenants, auth, rosterSvc, sessions)

	r := chi.NewRouter()
	r.Use(sessions.Middleware)
	r.Use(tenant.Middleware(tenant.NewHeaderResolver(""), tenants))
	r.Mount("/api", mod.Router())

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

type apiClient struct {
	t      *testing.T
	base   string
	client *http.Client
	tenant string
}

func newAPIClient(t *testing.T, srv *httptest.Server, tenantID string) *apiClient {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &apiClient{
		t:      t,
		base:   srv.URL,
		client: &http.Client{Jar: jar},
		tenant: tenantID,
	}
}

func (c *apiClient) do(method, path string, body any) (*http.Response, map[string]any) {
	c.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, c.base+path, &buf)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")
	if c.tenant != "" {
		req.Header.Set("X-Tenant-ID", c.tenant)
	}

	resp, err := c.client.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	var envelope map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&envelope)
	return resp, envelope
}

func data(envelope map[string]any) map[string]any {
	d, _ := envelope["data"].(map[string]any)
	return d
}

func registerTenant(t *testing.T, srv *httptest.Server, name, subdomain string) string {
	t.Helper()
	c := newAPIClient(t, srv, "")
	resp, body := c.do(http.MethodPost, "/api/tenants/register", map[string]any{
		"name":      name,
		"subdomain": subdomain,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	slug, _ := data(body)["slug"].(string)
	require.NotEmpty(t, slug)
	return slug
}

func loginUser(t *testing.T, c *apiClient, email, password string) {
	t.Helper()
	resp, _ := c.do(http.MethodPost, "/api/auth/register", map[string]any{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = c.do(http.MethodPost, "/api/auth/login", map[string]any{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestTenantOnboarding(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	slug := registerTenant(t, srv, "Riverside Hockey", "riverside")
	assert.Equal(t, "riverside-hockey", slug)

	c := newAPIClient(t, srv, "")
	resp, body := c.do(http.MethodGet, "/api/tenants/availability?name=Riverside+Hockey&subdomain=riverside", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, data(body)["name_available"])
	assert.Equal(t, false, data(body)["subdomain_available"])

	resp, _ = c.do(http.MethodPost, "/api/tenants/register", map[string]any{"name": "Riverside Hockey"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestAuthFlow(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	slug := registerTenant(t, srv, "Riverside Hockey", "")

	c := newAPIClient(t, srv, slug)
	loginUser(t, c, "captain@example.com", "supersecret")

	resp, body := c.do(http.MethodGet, "/api/auth/me", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "captain@example.com", data(body)["email"])

	resp, _ = c.do(http.MethodPost, "/api/auth/logout", nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = c.do(http.MethodGet, "/api/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	t.Run("wrong password", func(t *testing.T) {
		c := newAPIClient(t, srv, slug)
		resp, _ := c.do(http.MethodPost, "/api/auth/login", map[string]any{
			"email": "captain@example.com", "password": "wrong-password",
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("unauthenticated requests are rejected", func(t *testing.T) {
		c := newAPIClient(t, srv, slug)
		resp, _ := c.do(http.MethodGet, "/api/players", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestSessionTenantBinding(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	riverside := registerTenant(t, srv, "Riverside Hockey", "")
	lakeside := registerTenant(t, srv, "Lakeside Pickup", "")

	c := newAPIClient(t, srv, riverside)
	loginUser(t, c, "captain@example.com", "supersecret")

	// Replaying the riverside session against lakeside kills it.
	c.tenant = lakeside
	resp, _ := c.do(http.MethodGet, "/api/players", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// The session is gone for the home tenant too.
	c.tenant = riverside
	resp, _ = c.do(http.MethodGet, "/api/players", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRosterFlow(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	slug := registerTenant(t, srv, "Riverside Hockey", "")

	c := newAPIClient(t, srv, slug)
	loginUser(t, c, "captain@example.com", "supersecret")

	var playerIDs []string
	for i, p := range []map[string]any{
		{"name": "Goalie One", "email": "g1@example.com", "position": "goaltender", "skill_rating": 4},
		{"name": "Goalie Two", "email": "g2@example.com", "position": "goaltender", "skill_rating": 3},
		{"name": "Fast Forward", "email": "f1@example.com", "position": "forward", "skill_rating": 5},
		{"name": "Steady Defence", "email": "d1@example.com", "position": "defence", "skill_rating": 3},
	} {
		resp, body := c.do(http.MethodPost, "/api/players", p)
		require.Equal(t, http.StatusCreated, resp.StatusCode, "player %d", i)
		id, _ := data(body)["id"].(string)
		require.NotEmpty(t, id)
		playerIDs = append(playerIDs, id)
	}

	resp, body := c.do(http.MethodGet, "/api/players", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	meta, _ := body["meta"].(map[string]any)
	assert.EqualValues(t, 4, meta["count"])

	resp, _ = c.do(http.MethodPost, "/api/players", map[string]any{
		"name": "Dup", "email": "g1@example.com", "position": "forward",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, body = c.do(http.MethodPost, "/api/games", map[string]any{
		"starts_at": time.Date(2026, 9, 12, 20, 30, 0, 0, time.UTC),
		"venue":     "Main Rink",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	gameID, _ := data(body)["id"].(string)
	require.NotEmpty(t, gameID)
	// Tenant defaults fill the requirement counts.
	assert.EqualValues(t, 2, data(body)["goaltenders_needed"])

	resp, body = c.do(http.MethodPost, fmt.Sprintf("/api/games/%s/assign", gameID), map[string]any{
		"player_ids": playerIDs,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	team1, _ := data(body)["team_1"].(map[string]any)
	team2, _ := data(body)["team_2"].(map[string]any)
	count1, _ := team1["count"].(float64)
	count2, _ := team2["count"].(float64)
	assert.EqualValues(t, 4, count1+count2)

	resp, _ = c.do(http.MethodPost, fmt.Sprintf("/api/games/%s/invitations", gameID), map[string]any{
		"player_ids": playerIDs[:2],
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body = c.do(http.MethodPost, fmt.Sprintf("/api/games/%s/statistics", gameID), map[string]any{
		"player_id":      playerIDs[2],
		"statistic_type": "goal",
		"period":         1,
		"team_number":    1,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body = c.do(http.MethodGet, fmt.Sprintf("/api/players/%s/statistics", playerIDs[2]), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, data(body)["goals"])

	t.Run("another tenant sees nothing", func(t *testing.T) {
		other := registerTenant(t, srv, "Lakeside Pickup", "")
		oc := newAPIClient(t, srv, other)
		loginUser(t, oc, "other@example.com", "supersecret")

		resp, body := oc.do(http.MethodGet, "/api/players", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		meta, _ := body["meta"].(map[string]any)
		assert.EqualValues(t, 0, meta["count"])

		resp, _ = oc.do(http.MethodGet, "/api/games/"+gameID, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestUserAdministration(t *testing.T) {
	t.Parallel()

	mailer := &capturingSender{}

	tenants := tenantsvc.NewService(tenantsvc.NewMemoryStorage())
	auth := authsvc.NewService(authsvc.NewMemoryStorage(), authsvc.WithEmailSender(mailer))
	rosterSvc := rostersvc.NewService(rostersvc.MemoryStores())

	cfg := session.DefaultConfig()
	cfg.SecureCookies = false
	sessions := session.New(session.WithConfig(cfg))

	mod := roster.New(tenants, auth, rosterSvc, sessions)

	r := chi.NewRouter()
	r.Use(sessions.Middleware)
	r.Use(tenant.Middleware(tenant.NewHeaderResolver(""), tenants))
	r.Mount("/api", mod.Router())

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	slug := registerTenant(t, srv, "Riverside Hockey", "")

	// The first account of the tenant is its admin.
	admin := newAPIClient(t, srv, slug)
	loginUser(t, admin, "captain@example.com", "supersecret")

	member := newAPIClient(t, srv, slug)
	loginUser(t, member, "member@example.com", "supersecret")

	resp, body := admin.do(http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	meta, _ := body["meta"].(map[string]any)
	assert.EqualValues(t, 2, meta["count"])

	resp, _ = member.do(http.MethodGet, "/api/users", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body = admin.do(http.MethodPost, "/api/users/invite", map[string]any{
		"email": "manager@example.com",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "pending", data(body)["status"])

	resp, _ = admin.do(http.MethodPost, "/api/users/invite", map[string]any{
		"email": "manager@example.com",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// The token travels by email only, never in the API response.
	_, hasToken := data(body)["token"]
	assert.False(t, hasToken)
	token := mailer.lastToken(t)

	guest := newAPIClient(t, srv, slug)
	resp, body = guest.do(http.MethodPost, "/api/auth/invitations/accept", map[string]any{
		"token": token, "password": "supersecret",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "manager@example.com", data(body)["email"])
	assert.Equal(t, true, data(body)["is_admin"])

	resp, _ = guest.do(http.MethodPost, "/api/auth/login", map[string]any{
		"email": "manager@example.com", "password": "supersecret",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var memberID string
	resp, body = member.do(http.MethodGet, "/api/auth/me", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	memberID, _ = data(body)["id"].(string)
	require.NotEmpty(t, memberID)

	resp, body = admin.do(http.MethodPut, "/api/users/"+memberID+"/role", map[string]any{
		"is_admin": true,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, data(body)["is_admin"])

	resp, body = admin.do(http.MethodPost, "/api/users/"+memberID+"/deactivate", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, data(body)["is_active"])

	resp, _ = admin.do(http.MethodDelete, "/api/users/"+memberID, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
}

// capturingSender records outbound emails so tests can read the tokens
// they carry.
type capturingSender struct {
	mu   sync.Mutex
	sent []email.SendParams
}

func (c *capturingSender) Send(_ context.Context, params email.SendParams) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, params)
	return nil
}

func (c *capturingSender) lastToken(t *testing.T) string {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	require.NotEmpty(t, c.sent, "no email was sent")
	b := c.sent[len(c.sent)-1].BodyHTML
	_, rest, ok := strings.Cut(b, "<strong>")
	require.True(t, ok, "email body carries no token")
	token, _, ok := strings.Cut(rest, "</strong>")
	require.True(t, ok, "email body carries no token")
	return token
}
