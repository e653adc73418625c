// handlers/api_test.go - HTTP surface smoke tests
package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"meritledger/database"
	"meritledger/middleware"
	"meritledger/models"
	"meritledger/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testOwnerAccount uint64 = 1

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret-for-handlers-0123456789ab")

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Issuer{},
		&models.Achievement{},
		&models.AchievementAward{},
		&models.Certification{},
		&models.CertificationAward{},
		&models.Profile{},
		&models.RegistryState{},
	))
	require.NoError(t, database.SeedRegistryState(db, testOwnerAccount))

	bus := services.NewEventBus()
	InitHandlers(services.NewRegistry(db, bus), bus)

	app := fiber.New()
	api := app.Group("/api")
	api.Post("/issuers", middleware.AuthMiddleware, RegisterIssuer)
	api.Delete("/issuers/:account", middleware.AuthMiddleware, DeactivateIssuer)
	api.Get("/issuers/:account", GetIssuerInfo)
	api.Post("/achievements", middleware.AuthMiddleware, CreateAchievement)
	api.Get("/achievements/:id", GetAchievement)
	api.Post("/awards/achievement", middleware.AuthMiddleware, AwardAchievement)
	api.Post("/rewards/claim", middleware.AuthMiddleware, ClaimReward)
	api.Post("/registry/fund", middleware.AuthMiddleware, FundRegistry)
	api.Get("/registry/stats", GetRegistryStats)
	api.Get("/profiles/:account", GetUserProfile)
	return app
}

func tokenFor(t *testing.T, account uint64) string {
	t.Helper()
	token, err := generateToken(models.User{ID: account, Username: fmt.Sprintf("user%d", account)})
	require.NoError(t, err)
	return token
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, map[string]interface{}) {
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
	defer resp.Body.Close()

	var parsed map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &parsed))
	return resp.StatusCode, parsed
}

func TestClaimFlowOverHTTP(t *testing.T) {
	app := newTestApp(t)

	ownerToken := tokenFor(t, testOwnerAccount)
	issuerToken := tokenFor(t, 2)
	userToken := tokenFor(t, 10)

	status, _ := doJSON(t, app, http.MethodPost, "/api/issuers", ownerToken,
		fiber.Map{"account": 2, "name": "Acme", "description": "desc"})
	require.Equal(t, http.StatusOK, status)

	status, body := doJSON(t, app, http.MethodPost, "/api/achievements", issuerToken,
		fiber.Map{"name": "Course1", "description": "desc", "category": "CS", "reward_amount": 2000})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, float64(1), body["id"])

	status, body = doJSON(t, app, http.MethodPost, "/api/registry/fund", ownerToken,
		fiber.Map{"amount": 5000})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(5000), body["balance"])

	status, _ = doJSON(t, app, http.MethodPost, "/api/awards/achievement", issuerToken,
		fiber.Map{"account": 10, "id": 1})
	require.Equal(t, http.StatusOK, status)

	status, body = doJSON(t, app, http.MethodPost, "/api/rewards/claim", userToken,
		fiber.Map{"achievement_id": 1})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(2000), body["amount"])

	// Second claim conflicts
	status, _ = doJSON(t, app, http.MethodPost, "/api/rewards/claim", userToken,
		fiber.Map{"achievement_id": 1})
	assert.Equal(t, http.StatusConflict, status)

	status, body = doJSON(t, app, http.MethodGet, "/api/registry/stats", "", nil)
	require.Equal(t, http.StatusOK, status)
	stats := body["stats"].(map[string]interface{})
	assert.Equal(t, float64(3000), stats["balance"])

	status, body = doJSON(t, app, http.MethodGet, "/api/profiles/10", "", nil)
	require.Equal(t, http.StatusOK, status)
	profile := body["profile"].(map[string]interface{})
	assert.Equal(t, float64(2000), profile["total_rewards_claimed"])
}

func TestAuthorizationOverHTTP(t *testing.T) {
	app := newTestApp(t)

	userToken := tokenFor(t, 10)

	// Missing token
	status, _ := doJSON(t, app, http.MethodPost, "/api/issuers", "",
		fiber.Map{"account": 2, "name": "Acme", "description": "desc"})
	assert.Equal(t, http.StatusUnauthorized, status)

	// Non-owner caller
	status, _ = doJSON(t, app, http.MethodPost, "/api/issuers", userToken,
		fiber.Map{"account": 2, "name": "Acme", "description": "desc"})
	assert.Equal(t, http.StatusForbidden, status)

	// Non-issuer creating a definition
	status, _ = doJSON(t, app, http.MethodPost, "/api/achievements", userToken,
		fiber.Map{"name": "Course1", "description": "desc", "category": "CS", "reward_amount": 2000})
	assert.Equal(t, http.StatusForbidden, status)

	// Unknown achievement
	status, _ = doJSON(t, app, http.MethodGet, "/api/achievements/42", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
}
