package instagram

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/paulaveiga/doceria-api/database"
	"github.com/paulaveiga/doceria-api/model"
	instagramsvc "github.com/paulaveiga/doceria-api/services/instagram"
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

func newTestApp(service *instagramsvc.SyncService) *fiber.App {
	handler := NewSyncHandler(service)
	app := fiber.New()
	app.Post("/api/instagram/sync", handler.TriggerSync)
	return app
}

func decodeErrorBody(t *testing.T, resp *http.Response) (code, message string) {
	t.Helper()
	var env struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env.Error.Code, env.Error.Message
}

func TestTriggerSyncNotConfigured(t *testing.T) {
	db := newTestDB(t)
	app := newTestApp(instagramsvc.NewSyncService(db, instagramsvc.NewClient()))

	req := httptest.NewRequest(http.MethodPost, "/api/instagram/sync", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadGateway, resp.StatusCode)

	code, message := decodeErrorBody(t, resp)
	require.Equal(t, "INTEGRATION_ERROR", code)
	require.Contains(t, message, "not configured")
}

func TestTriggerSyncRejectedToken(t *testing.T) {
	graph := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"Invalid OAuth access token","type":"OAuthException","code":190}}`))
	}))
	t.Cleanup(graph.Close)

	db := newTestDB(t)
	require.NoError(t, db.Create(&model.SiteSetting{
		ID:                   model.SiteSettingID,
		InstagramAccessToken: "revoked-token",
		InstagramUserID:      "12345",
	}).Error)

	app := newTestApp(instagramsvc.NewSyncService(db, instagramsvc.NewClientWithBaseURL(graph.URL)))

	req := httptest.NewRequest(http.MethodPost, "/api/instagram/sync", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadGateway, resp.StatusCode)

	code, message := decodeErrorBody(t, resp)
	require.Equal(t, "INTEGRATION_ERROR", code)
	require.Contains(t, message, "rejected the access token")
}
