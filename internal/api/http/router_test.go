package http

import (
	"bytes"
	"encoding/json"
	"io"
	nethttp "net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/nexus-care/complaint-service/internal/api/http/handlers"
	"github.com/nexus-care/complaint-service/internal/auth"
	"github.com/nexus-care/complaint-service/internal/config"
	"github.com/nexus-care/complaint-service/internal/events"
	"github.com/nexus-care/complaint-service/internal/observability"
	"github.com/nexus-care/complaint-service/internal/repository/repotest"
	"github.com/nexus-care/complaint-service/internal/service"
)

const cookieName = "nexus_session"

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	users := repotest.NewUserRepo()
	complaints := repotest.NewComplaintRepo()
	sessions := repotest.NewSessionRepo()

	authCfg := config.AuthConfig{
		SessionTTLMinutes: 60,
		SessionCookieName: cookieName,
		BcryptCost:        bcrypt.MinCost,
	}
	authService := service.NewAuthService(authCfg, service.AuthDependencies{
		UserRepo:    users,
		SessionRepo: sessions,
	})
	complaintService := service.NewComplaintService(service.ComplaintDependencies{
		ComplaintRepo: complaints,
		Dispatcher:    events.NewInMemoryDispatcher(),
	})

	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)
	RegisterRoutes(app, RouteConfig{
		Health:     handlers.NewHealthHandler("complaint-service-test", "test", nil, nil),
		Auth:       handlers.NewAuthHandler(authService, authCfg),
		Complaints: handlers.NewComplaintsHandler(complaintService),
		Sessions:   auth.NewSessionMiddleware(cookieName, sessions, users),
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, sessionToken string, body any) (*nethttp.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req, err := nethttp.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if sessionToken != "" {
		req.AddCookie(&nethttp.Cookie{Name: cookieName, Value: sessionToken})
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var decoded map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func doJSONList(t *testing.T, app *fiber.App, path, sessionToken string) (*nethttp.Response, []map[string]any) {
	t.Helper()

	req, err := nethttp.NewRequest(nethttp.MethodGet, path, nil)
	require.NoError(t, err)
	req.AddCookie(&nethttp.Cookie{Name: cookieName, Value: sessionToken})

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)

	var decoded []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func sessionCookie(t *testing.T, resp *nethttp.Response) string {
	t.Helper()
	for _, cookie := range resp.Cookies() {
		if cookie.Name == cookieName && cookie.Value != "" {
			return cookie.Value
		}
	}
	t.Fatal("no session cookie set")
	return ""
}

func login(t *testing.T, app *fiber.App, email, password string) string {
	t.Helper()
	resp, _ := doJSON(t, app, nethttp.MethodPost, "/login", "", map[string]string{
		"email": email, "password": password,
	})
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	return sessionCookie(t, resp)
}

func registerUser(t *testing.T, app *fiber.App, username, email, password, role string) {
	t.Helper()
	resp, _ := doJSON(t, app, nethttp.MethodPost, "/register", "", map[string]string{
		"username": username, "email": email, "password": password, "role": role,
	})
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, nethttp.MethodPost, "/register", "", map[string]string{
		"username": "alice", "email": "alice@x.com", "password": "pw",
	})
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, "alice", body["username"])
	assert.Equal(t, "Resident", body["role"])
	assert.NotContains(t, body, "password_hash")

	resp, body = doJSON(t, app, nethttp.MethodPost, "/register", "", map[string]string{
		"username": "alice2", "email": "alice@x.com", "password": "pw",
	})
	assert.Equal(t, nethttp.StatusConflict, resp.StatusCode)
	assert.Equal(t, "email already registered", body["message"])
}

func TestLogin_BadCredentials(t *testing.T) {
	app := newTestApp(t)
	registerUser(t, app, "alice", "alice@x.com", "pw", "")

	resp, body := doJSON(t, app, nethttp.MethodPost, "/login", "", map[string]string{
		"email": "alice@x.com", "password": "wrong",
	})
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "invalid credentials", body["message"])

	resp, body = doJSON(t, app, nethttp.MethodPost, "/login", "", map[string]string{
		"email": "ghost@x.com", "password": "pw",
	})
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "invalid credentials", body["message"])
}

func TestComplaints_RequireSession(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, nethttp.MethodGet, "/complaints", "", nil)
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "authentication required", body["message"])

	resp, body = doJSON(t, app, nethttp.MethodGet, "/complaints", "garbage-token", nil)
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "authentication required", body["message"], "invalid token must look like a missing one")
}

func TestSessionEndpoint(t *testing.T) {
	app := newTestApp(t)
	registerUser(t, app, "alice", "alice@x.com", "pw", "")
	token := login(t, app, "alice@x.com", "pw")

	resp, body := doJSON(t, app, nethttp.MethodGet, "/session", token, nil)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, "alice", body["username"])
	assert.Equal(t, "Resident", body["role"])

	resp, _ = doJSON(t, app, nethttp.MethodGet, "/session", "", nil)
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
}

func TestLogout_InvalidatesSessionAndIsIdempotent(t *testing.T) {
	app := newTestApp(t)
	registerUser(t, app, "alice", "alice@x.com", "pw", "")
	token := login(t, app, "alice@x.com", "pw")

	resp, _ := doJSON(t, app, nethttp.MethodPost, "/logout", token, nil)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, nethttp.MethodGet, "/session", token, nil)
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, app, nethttp.MethodPost, "/logout", token, nil)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode, "repeat logout must succeed")
	resp, _ = doJSON(t, app, nethttp.MethodPost, "/logout", "", nil)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode, "logout without session must succeed")
}

func TestResetPassword(t *testing.T) {
	app := newTestApp(t)
	registerUser(t, app, "alice", "alice@x.com", "old", "")

	resp, _ := doJSON(t, app, nethttp.MethodPost, "/reset-password", "", map[string]string{
		"email": "ghost@x.com", "new_password": "new",
	})
	assert.Equal(t, nethttp.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, app, nethttp.MethodPost, "/reset-password", "", map[string]string{
		"email": "alice@x.com", "new_password": "new",
	})
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)

	login(t, app, "alice@x.com", "new")
}

// TestComplaintLifecycle follows a resident filing a ticket and an admin
// resolving it, end to end over the wire.
func TestComplaintLifecycle(t *testing.T) {
	app := newTestApp(t)

	registerUser(t, app, "alice", "alice@x.com", "pw", "")
	registerUser(t, app, "root", "root@x.com", "pw", "Admin")
	alice := login(t, app, "alice@x.com", "pw")
	admin := login(t, app, "root@x.com", "pw")

	// Validation happens before anything is stored.
	resp, _ := doJSON(t, app, nethttp.MethodPost, "/complaints", alice, map[string]string{
		"title": "", "description": "Kitchen tap leaking",
	})
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)

	resp, created := doJSON(t, app, nethttp.MethodPost, "/complaints", alice, map[string]string{
		"title": "Leak", "description": "Kitchen tap leaking",
	})
	require.Equal(t, nethttp.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Pending", created["status"])
	assert.Equal(t, "alice", created["username"])
	id, ok := created["id"].(string)
	require.True(t, ok)

	_, listed := doJSONList(t, app, "/complaints", alice)
	require.Len(t, listed, 1)
	assert.Equal(t, "Leak", listed[0]["title"])
	assert.Equal(t, "Pending", listed[0]["status"])

	// Alice owns the ticket but is not an Admin.
	resp, body := doJSON(t, app, nethttp.MethodPut, "/complaints/"+id+"/status", alice, map[string]string{
		"status": "Resolved",
	})
	assert.Equal(t, nethttp.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "admins only", body["message"])

	resp, body = doJSON(t, app, nethttp.MethodPut, "/complaints/"+id+"/status", admin, map[string]string{
		"status": "Bogus",
	})
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)

	resp, body = doJSON(t, app, nethttp.MethodPut, "/complaints/missing/status", admin, map[string]string{
		"status": "Resolved",
	})
	assert.Equal(t, nethttp.StatusNotFound, resp.StatusCode)

	resp, body = doJSON(t, app, nethttp.MethodPut, "/complaints/"+id+"/status", admin, map[string]string{
		"status": "Resolved",
	})
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, "Resolved", body["status"])

	_, listed = doJSONList(t, app, "/complaints", alice)
	require.Len(t, listed, 1)
	assert.Equal(t, "Resolved", listed[0]["status"])

	resp, _ = doJSON(t, app, nethttp.MethodDelete, "/complaints/"+id, alice, nil)
	assert.Equal(t, nethttp.StatusForbidden, resp.StatusCode)

	resp, _ = doJSON(t, app, nethttp.MethodDelete, "/complaints/"+id, admin, nil)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)

	_, listed = doJSONList(t, app, "/complaints", admin)
	assert.Empty(t, listed)
}
