package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-accounts/internal/config"
	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/internal/service"
	"github.com/MKhiriev/go-accounts/internal/store"
	"github.com/MKhiriev/go-accounts/internal/utils"
	"github.com/MKhiriev/go-accounts/models"
)

const (
	testSignKey    = "test-sign-key"
	testIssuer     = "go-accounts-test"
	testAdminEmail = "root@example.com"
	testAdminPass  = "root-password"
)

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// testAPI is a router over real services and a fresh memory repository.
type testAPI struct {
	t      *testing.T
	router *chi.Mux
}

func newTestAPI(t *testing.T, serverCfg config.Server) *testAPI {
	t.Helper()
	ctx := context.Background()

	cfg := &config.StructuredConfig{
		App: config.App{
			TokenSignKey:     testSignKey,
			TokenIssuer:      testIssuer,
			TokenDuration:    time.Hour,
			PasswordHashCost: bcrypt.MinCost,
			Version:          "test",
		},
		Storage: config.Storage{Driver: config.StorageDriverMemory},
		Server:  serverCfg,
	}

	storages, err := store.NewStorages(ctx, cfg.Storage, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = storages.Close() })

	services, err := service.NewServices(storages, cfg, models.NewAppBuildInfo("v0.0.1", "", ""), logger.Nop())
	require.NoError(t, err)
	require.NoError(t, services.AccountService.EnsureAdmin(ctx, testAdminEmail, testAdminPass, "root"))

	return &testAPI{t: t, router: NewHandler(services, cfg.Server, logger.Nop()).Init()}
}

func (a *testAPI) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	a.t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func (a *testAPI) register(email, password, name string) models.PublicUser {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/users", map[string]any{"email": email, "password": password, "name": name}, "")
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())

	var user models.PublicUser
	require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &user))
	return user
}

func (a *testAPI) login(email, password string) string {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/login", models.Credentials{Email: email, Password: password}, "")
	require.Equal(a.t, http.StatusOK, rec.Code, rec.Body.String())

	var resp models.TokenResponse
	require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Token
}

func (a *testAPI) listUsers(token string) []models.PublicUser {
	a.t.Helper()
	rec := a.do(http.MethodGet, "/users", nil, token)
	require.Equal(a.t, http.StatusOK, rec.Code, rec.Body.String())

	var users []models.PublicUser
	require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &users))
	return users
}

// ─────────────────────────────────────────────
// Init: route registration
// ─────────────────────────────────────────────

func TestInit_RegistersAllRoutes(t *testing.T) {
	api := newTestAPI(t, config.Server{})

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/health"},
		{http.MethodPost, "/login"},
		{http.MethodPost, "/users"},
		{http.MethodGet, "/users"},
		{http.MethodGet, "/users/profile"},
		{http.MethodPatch, "/users/some-id"},
		{http.MethodDelete, "/users/some-id"},
	}

	for _, tc := range routes {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rec := api.do(tc.method, tc.path, "{}", "")

			assert.NotEqual(t, http.StatusNotFound, rec.Code)
			assert.NotEqual(t, http.StatusMethodNotAllowed, rec.Code)
		})
	}
}

func TestInit_UnknownRouteAndWrongMethodReturn404(t *testing.T) {
	api := newTestAPI(t, config.Server{})

	assert.Equal(t, http.StatusNotFound, api.do(http.MethodGet, "/nope", nil, "").Code)
	assert.Equal(t, http.StatusNotFound, api.do(http.MethodPut, "/users", nil, "").Code)
	assert.Equal(t, http.StatusNotFound, api.do(http.MethodGet, "/login", nil, "").Code)
}

func TestInit_ProtectedRoutesRequireToken(t *testing.T) {
	api := newTestAPI(t, config.Server{})

	for _, path := range []string{"/users", "/users/profile"} {
		rec := api.do(http.MethodGet, path, nil, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Missing authorization headers", decodeMessage(t, rec))
	}

	rec := api.do(http.MethodGet, "/users/profile", nil, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Missing authorization headers", decodeMessage(t, rec))
}

func TestInit_TraceIDHeader(t *testing.T) {
	api := newTestAPI(t, config.Server{})

	rec := api.do(http.MethodGet, "/health", nil, "")
	assert.NotEmpty(t, rec.Header().Get(traceIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(traceIDHeader, "trace-123")
	rec = httptest.NewRecorder()
	api.router.ServeHTTP(rec, req)
	assert.Equal(t, "trace-123", rec.Header().Get(traceIDHeader))
}

func TestInit_CORS(t *testing.T) {
	api := newTestAPI(t, config.Server{CORSOrigins: []string{"http://app.example.com"}})

	req := httptest.NewRequest(http.MethodOptions, "/users", nil)
	req.Header.Set("Origin", "http://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	api.router.ServeHTTP(rec, req)

	assert.Equal(t, "http://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestInit_CompressesJSONResponses(t *testing.T) {
	api := newTestAPI(t, config.Server{})
	token := api.login(testAdminEmail, testAdminPass)

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	api.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
}

func TestInit_Health(t *testing.T) {
	api := newTestAPI(t, config.Server{})

	rec := api.do(http.MethodGet, "/health", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "test", resp.Version)
}

// ─────────────────────────────────────────────
// Account lifecycle over HTTP
// ─────────────────────────────────────────────

func TestAPI_DuplicateEmailKeepsFirstAccount(t *testing.T) {
	api := newTestAPI(t, config.Server{})
	first := api.register("dup@example.com", "pw-1", "First")

	rec := api.do(http.MethodPost, "/users", map[string]any{"email": "dup@example.com", "password": "pw-2", "name": "Second"}, "")
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "E-mail already registered", decodeMessage(t, rec))

	var matches []models.PublicUser
	for _, u := range api.listUsers(api.login(testAdminEmail, testAdminPass)) {
		if u.Email == "dup@example.com" {
			matches = append(matches, u)
		}
	}
	require.Len(t, matches, 1)
	assert.Equal(t, first.ID, matches[0].ID)
	assert.Equal(t, "First", matches[0].Name)
}

func TestAPI_RegisterNeverExposesPassword(t *testing.T) {
	api := newTestAPI(t, config.Server{})

	rec := api.do(http.MethodPost, "/users", map[string]any{
		"email": "a@example.com", "password": "pw", "name": "A", "isAdm": true, "uuid": "forged", "team": "blue",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotContains(t, body, "password")
	assert.Equal(t, false, body["isAdm"], "registration never grants admin")
	assert.NotEqual(t, "forged", body["uuid"])
	assert.Equal(t, "blue", body["team"])
	assert.Contains(t, body, "createdOn")
	assert.Contains(t, body, "updatedOn")
}

func TestAPI_RegisterMissingFields(t *testing.T) {
	api := newTestAPI(t, config.Server{})

	rec := api.do(http.MethodPost, "/users", map[string]any{"email": "a@example.com"}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(http.MethodPost, "/users", "{not json", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPI_LoginTokenCarriesSubjectAndAdminFlag(t *testing.T) {
	api := newTestAPI(t, config.Server{})
	user := api.register("sub@example.com", "pw", "Sub")

	claims, err := utils.ValidateAndParseJWTToken(api.login("sub@example.com", "pw"), testSignKey, testIssuer)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.Subject)
	assert.False(t, claims.IsAdm)

	adminClaims, err := utils.ValidateAndParseJWTToken(api.login(testAdminEmail, testAdminPass), testSignKey, testIssuer)
	require.NoError(t, err)
	assert.True(t, adminClaims.IsAdm)
}

func TestAPI_LoginFailuresAreIndistinguishable(t *testing.T) {
	api := newTestAPI(t, config.Server{})
	api.register("known@example.com", "right", "Known")

	wrongPassword := api.do(http.MethodPost, "/login", models.Credentials{Email: "known@example.com", Password: "wrong"}, "")
	unknownEmail := api.do(http.MethodPost, "/login", models.Credentials{Email: "ghost@example.com", Password: "right"}, "")

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
	assert.Equal(t, "Wrong email/password", decodeMessage(t, wrongPassword))
}

func TestAPI_ListUsersRequiresAdmin(t *testing.T) {
	api := newTestAPI(t, config.Server{})
	api.register("plain@example.com", "pw", "Plain")
	api.register("other@example.com", "pw", "Other")

	rec := api.do(http.MethodGet, "/users", nil, api.login("plain@example.com", "pw"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "missing admin permissions", decodeMessage(t, rec))

	adminToken := api.login(testAdminEmail, testAdminPass)
	assert.Len(t, api.listUsers(adminToken), 3)

	rec = api.do(http.MethodGet, "/users?name=Other", nil, adminToken)
	require.Equal(t, http.StatusOK, rec.Code)
	var filtered []models.PublicUser
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &filtered))
	require.Len(t, filtered, 1)
	assert.Equal(t, "other@example.com", filtered[0].Email)
}

func TestAPI_Profile(t *testing.T) {
	api := newTestAPI(t, config.Server{})
	user := api.register("me@example.com", "pw", "Me")
	token := api.login("me@example.com", "pw")

	rec := api.do(http.MethodGet, "/users/profile", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	var profile models.PublicUser
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	assert.Equal(t, user.ID, profile.ID)

	require.Equal(t, http.StatusNoContent, api.do(http.MethodDelete, "/users/"+user.ID, nil, token).Code)

	rec = api.do(http.MethodGet, "/users/profile", nil, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User not found!", decodeMessage(t, rec))
}

func TestAPI_UpdateUser(t *testing.T) {
	api := newTestAPI(t, config.Server{})
	owner := api.register("owner@example.com", "pw", "Owner")
	api.register("stranger@example.com", "pw", "Stranger")
	ownerToken := api.login("owner@example.com", "pw")
	strangerToken := api.login("stranger@example.com", "pw")

	rec := api.do(http.MethodPatch, "/users/"+owner.ID, map[string]any{"name": "Renamed", "city": "Baku"}, ownerToken)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated models.PublicUser
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, "Baku", updated.Extra["city"])
	assert.Equal(t, owner.ID, updated.ID)
	assert.True(t, owner.CreatedOn.Equal(updated.CreatedOn))
	assert.False(t, updated.UpdatedOn.Before(owner.UpdatedOn))

	rec = api.do(http.MethodPatch, "/users/"+owner.ID, map[string]any{"name": nil, "team": "core"}, ownerToken)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Renamed", updated.Name, "null name leaves the name untouched")
	assert.Equal(t, "core", updated.Extra["team"])

	rec = api.do(http.MethodPatch, "/users/"+owner.ID, map[string]any{"name": "Hijacked"}, strangerToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = api.do(http.MethodPatch, "/users/does-not-exist", map[string]any{"name": "x"}, ownerToken)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(http.MethodPatch, "/users/"+owner.ID, map[string]any{"email": "stranger@example.com"}, ownerToken)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = api.do(http.MethodPatch, "/users/"+owner.ID, map[string]any{"isAdm": true}, ownerToken)
	assert.Equal(t, http.StatusForbidden, rec.Code, "self-promotion is not allowed")

	rec = api.do(http.MethodPatch, "/users/"+owner.ID, map[string]any{"isAdm": true}, api.login(testAdminEmail, testAdminPass))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.True(t, updated.IsAdm)
}

func TestAPI_DeleteUser(t *testing.T) {
	api := newTestAPI(t, config.Server{})
	victim := api.register("victim@example.com", "pw", "Victim")
	api.register("bystander@example.com", "pw", "Bystander")

	rec := api.do(http.MethodDelete, "/users/"+victim.ID, nil, api.login("bystander@example.com", "pw"))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	adminToken := api.login(testAdminEmail, testAdminPass)
	rec = api.do(http.MethodDelete, "/users/"+victim.ID, nil, adminToken)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = api.do(http.MethodDelete, "/users/"+victim.ID, nil, adminToken)
	assert.Equal(t, http.StatusNoContent, rec.Code, "repeat delete")

	rec = api.do(http.MethodDelete, "/users/no-such-id", nil, adminToken)
	assert.Equal(t, http.StatusNoContent, rec.Code, "unknown id")
	assert.Empty(t, rec.Body.String())

	self := api.register("self@example.com", "pw", "Self")
	selfToken := api.login("self@example.com", "pw")
	rec = api.do(http.MethodDelete, "/users/"+self.ID, nil, selfToken)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = api.do(http.MethodDelete, "/users/"+self.ID, nil, selfToken)
	assert.Equal(t, http.StatusNoContent, rec.Code, "self delete repeated")
}

func TestAPI_PasswordChangeRoundTrip(t *testing.T) {
	api := newTestAPI(t, config.Server{})
	user := api.register("rotate@example.com", "old-password", "Rotate")
	token := api.login("rotate@example.com", "old-password")

	rec := api.do(http.MethodPatch, "/users/"+user.ID, map[string]any{"password": "new-password"}, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")

	api.login("rotate@example.com", "new-password")

	rec = api.do(http.MethodPost, "/login", models.Credentials{Email: "rotate@example.com", Password: "old-password"}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
