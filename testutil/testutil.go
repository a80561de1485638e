// Package testutil wires up an application instance backed by an in-memory
// sqlite database for handler tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"olc/config"
	"olc/database"
	"olc/middleware"
	"olc/models"
	authRoutes "olc/routers/authRoutes"
	enrollmentRoutes "olc/routers/enrollmentRoutes"
	resourceRoutes "olc/routers/resourceRoutes"
	userRoutes "olc/routers/userRoutes"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Envelope is the JSON response shape every handler returns
type Envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// SetupApp builds a fiber app with all routes registered against a fresh
// in-memory database and installs it as the global DB instance.
func SetupApp(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey:    "test-secret",
		SaltRound: bcrypt.MinCost,
	}

	// One shared-cache memory DB per test; the connection pool keeps it alive
	// for the test's duration.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	authRoutes.SetupAuthRoutes(app)
	resourceRoutes.SetupResourceRoutes(app)
	enrollmentRoutes.SetupEnrollmentRoutes(app)
	userRoutes.SetupUserRoutes(app)

	return app
}

// CreateUser inserts a user with a bcrypt-hashed password
func CreateUser(t *testing.T, username, email, password, role string) models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := models.User{
		Username: username,
		Email:    strings.ToLower(email),
		Password: string(hashed),
		Role:     role,
	}
	if err := database.Database.Db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

// TokenFor issues a JWT for the given user
func TokenFor(t *testing.T, user models.User) string {
	t.Helper()

	token, err := middleware.GenerateJWT(user.ID, user.Username, user.Role, user.Email)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return token
}

// DoJSON performs a request against the app and decodes the response
// envelope. An empty token leaves the request unauthenticated.
func DoJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, Envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, 15000)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, path, err)
	}

	var env Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("failed to decode response envelope: %v", err)
	}
	return resp, env
}

// DecodeData unmarshals an envelope's data field into target
func DecodeData(t *testing.T, env Envelope, target interface{}) {
	t.Helper()

	if err := json.Unmarshal(env.Data, target); err != nil {
		t.Fatalf("failed to decode response data: %v", err)
	}
}
