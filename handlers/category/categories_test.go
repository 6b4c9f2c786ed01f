package category

import (
	"bytes"
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

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	handler := NewCategoryHandler(db)

	app := fiber.New()
	app.Get("/api/categories", handler.ListCategories)
	app.Post("/api/categories", handler.CreateCategory)
	app.Delete("/api/categories/:id", handler.DeleteCategory)

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

func TestCreateCategoryDerivesSlug(t *testing.T) {
	app, _ := newTestApp(t)

	resp := postJSON(t, app, "/api/categories", map[string]string{
		"name": "Bolos de Aniversário",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var category model.Category
	decodeData(t, resp, &category)
	require.Equal(t, "bolos-de-aniversario", category.Slug)
	require.NotEmpty(t, category.ID)
}

func TestCreateCategoryKeepsExplicitSlug(t *testing.T) {
	app, _ := newTestApp(t)

	resp := postJSON(t, app, "/api/categories", map[string]string{
		"name": "Bolos de Aniversário",
		"slug": "festas",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var category model.Category
	decodeData(t, resp, &category)
	require.Equal(t, "festas", category.Slug)
}

func TestCreateCategoryRejectsBadSlug(t *testing.T) {
	app, _ := newTestApp(t)

	resp := postJSON(t, app, "/api/categories", map[string]string{
		"name": "Festas",
		"slug": "Not A Slug!",
	})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestCreateCategoryDuplicateSlug(t *testing.T) {
	app, _ := newTestApp(t)

	resp := postJSON(t, app, "/api/categories", map[string]string{"name": "Festas"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = postJSON(t, app, "/api/categories", map[string]string{"name": "Festas"})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestListCategories(t *testing.T) {
	app, db := newTestApp(t)

	require.NoError(t, db.Create(&model.Category{Name: "Casamento", Slug: "casamento"}).Error)
	require.NoError(t, db.Create(&model.Category{Name: "Aniversário", Slug: "aniversario"}).Error)

	req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var categories []model.Category
	decodeData(t, resp, &categories)
	require.Len(t, categories, 2)
}

func TestDeleteCategoryClearsCakeReferences(t *testing.T) {
	app, db := newTestApp(t)

	category := model.Category{Name: "Casamento", Slug: "casamento"}
	require.NoError(t, db.Create(&category).Error)

	cake := model.Cake{Name: "Naked Cake", Description: "Rústico", Price: 280, CategoryID: category.ID}
	require.NoError(t, db.Create(&cake).Error)

	req := httptest.NewRequest(http.MethodDelete, "/api/categories/"+category.ID, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var count int64
	db.Model(&model.Category{}).Count(&count)
	require.Zero(t, count)

	// The cake survives with its category reference cleared
	var survivor model.Cake
	require.NoError(t, db.Where("id = ?", cake.ID).First(&survivor).Error)
	require.Empty(t, survivor.CategoryID)
}

func TestDeleteCategoryNotFound(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodDelete, "/api/categories/missing-id", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}
