package companyController_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"revio/config"
	"revio/database"
	"revio/middleware"
	"revio/models"
	companyRoutes "revio/routers/companyRoutes"
	reviewRoutes "revio/routers/reviewRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{
		Port:      "0",
		AppEnv:    "development",
		JWTKey:    "test-secret",
		SaltRound: 4,
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Company{}, &models.Review{}))
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	api := app.Group("/api")
	companyRoutes.SetupCompanyRoutes(api)
	reviewRoutes.SetupReviewRoutes(api)
	return app
}

func createUser(t *testing.T, email, role string) (models.User, string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), 4)
	require.NoError(t, err)

	user := models.User{Name: "Test User", Email: email, Role: role, Password: string(hash)}
	require.NoError(t, database.Database.Db.Create(&user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.Role)
	require.NoError(t, err)
	return user, token
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var payload map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&payload)
	return resp, payload
}

func TestCreateCompanyRequiresAdmin(t *testing.T) {
	app := setupApp(t)
	_, userToken := createUser(t, "user@example.com", models.RoleUser)
	_, adminToken := createUser(t, "admin@example.com", models.RoleAdmin)

	body := fiber.Map{"name": "Acme", "description": "Anvils", "industry": "Manufacturing", "location": "Phoenix"}

	resp, _ := doJSON(t, app, "POST", "/api/companies", "", body)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, app, "POST", "/api/companies", userToken, body)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, payload := doJSON(t, app, "POST", "/api/companies", adminToken, body)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Acme", payload["data"].(map[string]interface{})["name"])

	// Name is unique
	resp, _ = doJSON(t, app, "POST", "/api/companies", adminToken, body)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestUpdateCompany(t *testing.T) {
	app := setupApp(t)
	_, adminToken := createUser(t, "admin@example.com", models.RoleAdmin)

	company := models.Company{Name: "Acme", Description: "Anvils"}
	require.NoError(t, database.Database.Db.Create(&company).Error)

	resp, payload := doJSON(t, app, "PUT", fmt.Sprintf("/api/companies/%d", company.ID), adminToken, fiber.Map{
		"description": "Anvils and rockets",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := payload["data"].(map[string]interface{})
	assert.Equal(t, "Acme", data["name"])
	assert.Equal(t, "Anvils and rockets", data["description"])

	resp, _ = doJSON(t, app, "PUT", "/api/companies/99999", adminToken, fiber.Map{"description": "x"})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestListCompaniesSelectAndPagination(t *testing.T) {
	app := setupApp(t)
	db := database.Database.Db

	for i := 1; i <= 3; i++ {
		company := models.Company{Name: fmt.Sprintf("Company %d", i), Description: "desc"}
		require.NoError(t, db.Create(&company).Error)
	}

	resp, payload := doJSON(t, app, "GET", "/api/companies?select=name&limit=2&page=1", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.Equal(t, float64(3), payload["count"])

	data := payload["data"].([]interface{})
	require.Len(t, data, 2)
	for _, item := range data {
		record := item.(map[string]interface{})
		assert.NotZero(t, record["ID"])
		assert.NotEmpty(t, record["name"])
		// Unselected columns come back zero-valued
		assert.Empty(t, record["description"])
	}

	pagination := payload["pagination"].(map[string]interface{})
	next := pagination["next"].(map[string]interface{})
	assert.Equal(t, float64(2), next["page"])
	_, hasPrev := pagination["prev"]
	assert.False(t, hasPrev)

	// Last page: prev but no next
	resp, payload = doJSON(t, app, "GET", "/api/companies?limit=2&page=2", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Len(t, payload["data"].([]interface{}), 1)
	pagination = payload["pagination"].(map[string]interface{})
	_, hasNext := pagination["next"]
	assert.False(t, hasNext)
	assert.NotNil(t, pagination["prev"])
}

func TestListCompaniesFilterOperators(t *testing.T) {
	app := setupApp(t)
	db := database.Database.Db

	ratings := map[string]float64{"Low": 2.0, "Mid": 3.5, "High": 4.5}
	for name, rating := range ratings {
		value := rating
		company := models.Company{Name: name, AverageRating: &value}
		require.NoError(t, db.Create(&company).Error)
	}

	resp, payload := doJSON(t, app, "GET", "/api/companies?average_rating[gte]=3.5&sort=-average_rating", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(2), payload["count"])

	data := payload["data"].([]interface{})
	require.Len(t, data, 2)
	assert.Equal(t, "High", data[0].(map[string]interface{})["name"])
	assert.Equal(t, "Mid", data[1].(map[string]interface{})["name"])

	// Count follows the filter, so a single full page has no next
	pagination := payload["pagination"].(map[string]interface{})
	_, hasNext := pagination["next"]
	assert.False(t, hasNext)
}

func TestGetCompanyWithReviews(t *testing.T) {
	app := setupApp(t)
	db := database.Database.Db

	user, _ := createUser(t, "user@example.com", models.RoleUser)

	company := models.Company{Name: "Acme"}
	require.NoError(t, db.Create(&company).Error)
	require.NoError(t, db.Create(&models.Review{CompanyID: company.ID, UserID: user.ID, Rating: 4, Comment: "Solid"}).Error)

	resp, payload := doJSON(t, app, "GET", fmt.Sprintf("/api/companies/%d", company.ID), "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := payload["data"].(map[string]interface{})
	assert.Equal(t, "Acme", data["company"].(map[string]interface{})["name"])
	assert.Len(t, data["reviews"].([]interface{}), 1)

	resp, _ = doJSON(t, app, "GET", "/api/companies/99999", "", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDeleteCompanyCascadesReviews(t *testing.T) {
	app := setupApp(t)
	db := database.Database.Db

	user, _ := createUser(t, "user@example.com", models.RoleUser)
	_, adminToken := createUser(t, "admin@example.com", models.RoleAdmin)

	company := models.Company{Name: "Acme"}
	require.NoError(t, db.Create(&company).Error)
	review := models.Review{CompanyID: company.ID, UserID: user.ID, Rating: 4}
	require.NoError(t, db.Create(&review).Error)

	resp, _ := doJSON(t, app, "DELETE", fmt.Sprintf("/api/companies/%d", company.ID), adminToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, "GET", fmt.Sprintf("/api/companies/%d", company.ID), "", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, app, "GET", fmt.Sprintf("/api/reviews/%d", review.ID), "", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&models.Review{}).Where("company_id = ?", company.ID).Count(&count).Error)
	assert.Zero(t, count)
}
