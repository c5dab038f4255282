package testutils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"github.com/billableapp/billable-server/internal/api"
	"github.com/billableapp/billable-server/internal/config"
	"github.com/billableapp/billable-server/internal/models"
	"github.com/billableapp/billable-server/internal/repository"
	"github.com/billableapp/billable-server/internal/service"
)

// TestContext holds all dependencies for tests
type TestContext struct {
	Router     *gin.Engine
	Repository repository.Repository
	Service    service.Service
	JWTSecret  []byte
	DB         *sqlx.DB

	FirmID     string
	AdminID    string
	AdminJWT   string
	LawyerID   string
	LawyerJWT  string
	ClientID   string
	TaskTypeID string
}

// SetupTestContext creates a new test context with initialized dependencies
func SetupTestContext(t *testing.T) *TestContext {
	// Load configuration from environment
	cfg := config.LoadConfig()

	// Override with test-specific config
	if cfg.Database.DBName == "billable" && cfg.Database.TestDBName != "" {
		cfg.Database.DBName = cfg.Database.TestDBName
	} else if cfg.Database.TestDBName == "" {
		// Fallback to hardcoded test DB if not in environment
		cfg.Database.DBName = "billable_test"
	}

	// Use a test JWT secret
	if cfg.Auth.JWTSecret == "" {
		cfg.Auth.JWTSecret = "test-secret-key"
	}

	// Set up database
	db, err := config.SetupDatabase(cfg)
	assert.NoError(t, err, "Failed to set up test database")

	// Create repository
	repo := repository.NewPostgresRepository(db)

	// Create service
	svc := service.NewDefaultService(repo, cfg.Auth.JWTSecret)

	// Create API handler
	handler := api.NewHandler(svc)

	// Set up Gin router
	gin.SetMode(gin.TestMode)
	router := gin.Default()

	// Add middleware for JWT secret
	router.Use(func(c *gin.Context) {
		c.Set("jwtSecret", []byte(cfg.Auth.JWTSecret))
		c.Next()
	})

	// Set up routes
	handler.SetupRoutes(router)

	testCtx := &TestContext{
		Router:     router,
		Repository: repo,
		Service:    svc,
		JWTSecret:  []byte(cfg.Auth.JWTSecret),
		DB:         db,
	}

	createTestFirm(t, testCtx)

	return testCtx
}

// CleanupTestContext cleans up test resources
func CleanupTestContext(t *TestContext) {
	if t.DB != nil {
		cleanupTestDatabase(nil, t.Repository)
		t.DB.Close()
	}
}

// cleanupTestDatabase removes any existing test data, preserving the
// seeded global task types.
func cleanupTestDatabase(t *testing.T, repo repository.Repository) {
	pgRepo, ok := repo.(*repository.PostgresRepository)
	if !ok {
		return
	}
	db := pgRepo.GetDB()

	// Delete in foreign-key order
	statements := []string{
		"DELETE FROM edit_requests",
		"DELETE FROM time_entries",
		"DELETE FROM clients",
		"DELETE FROM task_types WHERE firm_id IS NOT NULL",
		"DELETE FROM users",
		"DELETE FROM firms",
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil && t != nil {
			t.Logf("Warning: Failed to clean up (%s): %v", stmt, err)
		}
	}
}

// createTestFirm provisions a firm with an admin, a lawyer, a client
// and a firm task type, and issues JWTs for both users.
func createTestFirm(t *testing.T, testCtx *TestContext) {
	cleanupTestDatabase(t, testCtx.Repository)

	ctx := context.Background()
	repo := testCtx.Repository

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("testpassword"), bcrypt.DefaultCost)

	firm := &models.Firm{
		Name:             "Test & Associates",
		BillingIncrement: 0.1,
	}
	admin := &models.User{
		ID:       uuid.New().String(),
		Email:    "admin@example.com",
		FullName: "Ada Admin",
		Password: string(hashedPassword),
		Role:     models.RoleAdmin,
	}

	err := repo.CreateFirmWithAdmin(ctx, firm, admin)
	assert.NoError(t, err, "Failed to create test firm")

	lawyer := &models.User{
		ID:       uuid.New().String(),
		FirmID:   &firm.ID,
		Email:    "lawyer@example.com",
		FullName: "Lana Lawyer",
		Password: string(hashedPassword),
		Role:     models.RoleLawyer,
	}
	err = repo.CreateUser(ctx, lawyer)
	assert.NoError(t, err, "Failed to create test lawyer")

	client := &models.Client{FirmID: firm.ID, Name: "Acme Corp"}
	err = repo.CreateClient(ctx, client)
	assert.NoError(t, err, "Failed to create test client")

	taskType := &models.TaskType{FirmID: &firm.ID, Name: "Deposition Prep"}
	err = repo.CreateTaskType(ctx, taskType)
	assert.NoError(t, err, "Failed to create test task type")

	testCtx.FirmID = firm.ID
	testCtx.AdminID = admin.ID
	testCtx.AdminJWT = GenerateJWT(t, testCtx.JWTSecret, admin.ID)
	testCtx.LawyerID = lawyer.ID
	testCtx.LawyerJWT = GenerateJWT(t, testCtx.JWTSecret, lawyer.ID)
	testCtx.ClientID = client.ID
	testCtx.TaskTypeID = taskType.ID
}

// GenerateJWT issues a token for the given user id with the test secret.
func GenerateJWT(t *testing.T, secret []byte, userID string) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(24 * time.Hour).Unix(),
		"iat": time.Now().Unix(),
	})

	tokenString, err := token.SignedString(secret)
	assert.NoError(t, err, "Failed to generate JWT token")

	return tokenString
}

// PerformRequest executes an HTTP request against the router
func PerformRequest(r http.Handler, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer

	if body != nil {
		jsonBody, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBody)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// AuthHeaders returns headers with Authorization token
func AuthHeaders(token string) map[string]string {
	return map[string]string{
		"Authorization": fmt.Sprintf("Bearer %s", token),
	}
}
