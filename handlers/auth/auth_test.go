package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/paulaveiga/doceria-api/database"
	"github.com/paulaveiga/doceria-api/model"
	authutil "github.com/paulaveiga/doceria-api/utils/auth"
	"github.com/paulaveiga/doceria-api/utils/middleware"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	return db
}

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	jwtManager := authutil.NewJWTManager(authutil.JWTConfig{
		Secret: "test-secret",
		Expiry: time.Hour,
		Issuer: "test",
	})
	handler := NewAuthHandler(db, jwtManager, nil)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, db)

	app := fiber.New()
	app.Post("/api/auth/register", handler.Register)
	app.Post("/api/auth/login", handler.Login)
	app.Get("/api/auth/me", authMiddleware.Required(), handler.Me)

	return app, db
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) *http.Response {
	t.Helper()

	encoded, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(encoded))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeData(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()

	var env struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	require.True(t, env.Success)
	require.NoError(t, json.Unmarshal(env.Data, out))
}

func TestRegister(t *testing.T) {
	app, db := newTestApp(t)

	resp := postJSON(t, app, "/api/auth/register", map[string]string{
		"email":    "paula@example.com",
		"password": "supersecret1",
		"name":     "Paula",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var token TokenResponse
	decodeData(t, resp, &token)
	require.NotEmpty(t, token.AccessToken)
	require.Equal(t, "bearer", token.TokenType)
	require.Equal(t, "Paula", token.Name)

	var user model.User
	require.NoError(t, db.Where("email = ?", "paula@example.com").First(&user).Error)
	require.NotEqual(t, "supersecret1", user.PasswordHash)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app, _ := newTestApp(t)

	body := map[string]string{
		"email":    "paula@example.com",
		"password": "supersecret1",
		"name":     "Paula",
	}

	resp := postJSON(t, app, "/api/auth/register", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = postJSON(t, app, "/api/auth/register", body)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	app, _ := newTestApp(t)

	resp := postJSON(t, app, "/api/auth/register", map[string]string{
		"email":    "paula@example.com",
		"password": "short",
		"name":     "Paula",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLogin(t *testing.T) {
	app, _ := newTestApp(t)

	resp := postJSON(t, app, "/api/auth/register", map[string]string{
		"email":    "paula@example.com",
		"password": "supersecret1",
		"name":     "Paula",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = postJSON(t, app, "/api/auth/login", map[string]string{
		"email":    "paula@example.com",
		"password": "supersecret1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var token TokenResponse
	decodeData(t, resp, &token)
	require.NotEmpty(t, token.AccessToken)
	require.Equal(t, "Paula", token.Name)
}

func TestLoginWrongPassword(t *testing.T) {
	app, _ := newTestApp(t)

	resp := postJSON(t, app, "/api/auth/register", map[string]string{
		"email":    "paula@example.com",
		"password": "supersecret1",
		"name":     "Paula",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = postJSON(t, app, "/api/auth/login", map[string]string{
		"email":    "paula@example.com",
		"password": "wrong-password",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLoginUnknownAccount(t *testing.T) {
	app, _ := newTestApp(t)

	resp := postJSON(t, app, "/api/auth/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "whatever123",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMe(t *testing.T) {
	app, _ := newTestApp(t)

	resp := postJSON(t, app, "/api/auth/register", map[string]string{
		"email":    "paula@example.com",
		"password": "supersecret1",
		"name":     "Paula",
	})
	var token TokenResponse
	decodeData(t, resp, &token)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var identity IdentityResponse
	decodeData(t, resp, &identity)
	require.Equal(t, "paula@example.com", identity.Email)
	require.Equal(t, "Paula", identity.Name)
	require.NotEmpty(t, identity.ID)
}

func TestMeRejectsMissingAndInvalidTokens(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
