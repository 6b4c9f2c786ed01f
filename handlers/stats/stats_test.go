package stats

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/paulaveiga/doceria-api/database"
	"github.com/paulaveiga/doceria-api/model"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGetStats(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	require.NoError(t, db.Create(&model.Category{Name: "Casamento", Slug: "casamento"}).Error)
	require.NoError(t, db.Create(&model.Cake{Name: "A", Description: "a", Price: 10}).Error)
	require.NoError(t, db.Create(&model.Cake{Name: "B", Description: "b", Price: 20}).Error)
	require.NoError(t, db.Create(&model.Testimonial{AuthorName: "Maria", Content: "Ótimo!", Rating: 5}).Error)

	handler := NewStatsHandler(db)
	app := fiber.New()
	app.Get("/api/stats", handler.GetStats)

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var env struct {
		Data StatsResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	require.EqualValues(t, 2, env.Data.Cakes)
	require.EqualValues(t, 1, env.Data.Categories)
	require.EqualValues(t, 1, env.Data.Testimonials)
}
