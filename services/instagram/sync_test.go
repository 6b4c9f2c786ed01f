package instagram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/paulaveiga/doceria-api/database"
	"github.com/paulaveiga/doceria-api/model"
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

func configureInstagram(t *testing.T, db *gorm.DB) {
	t.Helper()

	require.NoError(t, db.Create(&model.SiteSetting{
		ID:                   model.SiteSettingID,
		InstagramAccessToken: "token",
		InstagramUserID:      "12345",
	}).Error)
}

func fakeGraphAPI(t *testing.T, media []Media) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/12345/media", r.URL.Path)
		require.Equal(t, "token", r.URL.Query().Get("access_token"))

		json.NewEncoder(w).Encode(mediaResponse{Data: media})
	}))
	t.Cleanup(server.Close)

	return server
}

func TestSyncNotConfigured(t *testing.T) {
	db := newTestDB(t)
	service := NewSyncService(db, NewClient())

	_, err := service.Sync(context.Background(), "manual")
	require.ErrorIs(t, err, ErrNotConfigured)

	var logEntry model.SyncLog
	require.NoError(t, db.First(&logEntry).Error)
	require.Equal(t, "failed", logEntry.Status)
}

func TestSyncImportsImages(t *testing.T) {
	db := newTestDB(t)
	configureInstagram(t, db)

	category := model.Category{Name: "Aniversário", Slug: "aniversario"}
	require.NoError(t, db.Create(&category).Error)

	server := fakeGraphAPI(t, []Media{
		{
			ID:        "1",
			Caption:   "Bolo de festa",
			MediaType: MediaTypeImage,
			MediaURL:  "https://cdn.instagram.com/1.jpg",
			Permalink: "https://instagram.com/p/1",
		},
		{
			ID:        "2",
			MediaType: "VIDEO",
			MediaURL:  "https://cdn.instagram.com/2.mp4",
			Permalink: "https://instagram.com/p/2",
		},
		{
			ID:           "3",
			MediaType:    MediaTypeCarousel,
			ThumbnailURL: "https://cdn.instagram.com/3.jpg",
			Permalink:    "https://instagram.com/p/3",
		},
	})

	service := NewSyncService(db, NewClientWithBaseURL(server.URL))
	result, err := service.Sync(context.Background(), "manual")
	require.NoError(t, err)
	require.Equal(t, 2, result.Imported)
	require.Equal(t, 1, result.Skipped)

	var cakes []model.Cake
	require.NoError(t, db.Order("instagram_url ASC").Find(&cakes).Error)
	require.Len(t, cakes, 2)

	first := cakes[0]
	require.Equal(t, "Bolo de festa", first.Name)
	require.Equal(t, category.ID, first.CategoryID)
	require.Zero(t, first.Price)
	require.False(t, first.Featured)

	// Entries without a caption fall back to a default name
	second := cakes[1]
	require.Equal(t, "Criação Paula Veiga", second.Name)

	var logEntry model.SyncLog
	require.NoError(t, db.Where("status = ?", "completed").First(&logEntry).Error)
	require.Equal(t, 2, logEntry.Imported)
	require.Equal(t, "manual", logEntry.Trigger)
}

func TestSyncDeduplicatesOnPermalink(t *testing.T) {
	db := newTestDB(t)
	configureInstagram(t, db)

	media := []Media{{
		ID:        "1",
		Caption:   "Bolo de festa",
		MediaType: MediaTypeImage,
		MediaURL:  "https://cdn.instagram.com/1.jpg",
		Permalink: "https://instagram.com/p/1",
	}}
	server := fakeGraphAPI(t, media)

	service := NewSyncService(db, NewClientWithBaseURL(server.URL))

	result, err := service.Sync(context.Background(), "manual")
	require.NoError(t, err)
	require.Equal(t, 1, result.Imported)

	// A second run sees the same permalink and imports nothing
	result, err = service.Sync(context.Background(), "manual")
	require.NoError(t, err)
	require.Zero(t, result.Imported)
	require.Equal(t, 1, result.Skipped)

	var count int64
	db.Model(&model.Cake{}).Count(&count)
	require.EqualValues(t, 1, count)
}

func TestSyncRejectedToken(t *testing.T) {
	db := newTestDB(t)
	configureInstagram(t, db)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]interface{}{"message": "Invalid OAuth access token", "code": 190},
		})
	}))
	t.Cleanup(server.Close)

	service := NewSyncService(db, NewClientWithBaseURL(server.URL))
	_, err := service.Sync(context.Background(), "manual")
	require.ErrorIs(t, err, ErrRejected)
}

func TestSyncTruncatesLongCaptions(t *testing.T) {
	db := newTestDB(t)
	configureInstagram(t, db)

	longCaption := "Um bolo maravilhoso decorado com muito carinho para uma festa inesquecível de aniversário"
	server := fakeGraphAPI(t, []Media{{
		ID:        "1",
		Caption:   longCaption,
		MediaType: MediaTypeImage,
		MediaURL:  "https://cdn.instagram.com/1.jpg",
		Permalink: "https://instagram.com/p/1",
	}})

	service := NewSyncService(db, NewClientWithBaseURL(server.URL))
	_, err := service.Sync(context.Background(), "manual")
	require.NoError(t, err)

	var cake model.Cake
	require.NoError(t, db.First(&cake).Error)
	require.Len(t, []rune(cake.Name), 50)
	require.Equal(t, longCaption, cake.Description)
}
