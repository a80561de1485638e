package userController_test

import (
	"net/http"
	"testing"

	"olc/database"
	"olc/models"
	"olc/testutil"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestGetProfile(t *testing.T) {
	app := testutil.SetupApp(t)
	user := testutil.CreateUser(t, "student", "s@test.test", "secret1", models.RoleUser)

	resp, env := testutil.DoJSON(t, app, http.MethodGet, "/users/profile", testutil.TokenFor(t, user), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var profile models.User
	testutil.DecodeData(t, env, &profile)
	assert.Equal(t, user.ID, profile.ID)
	assert.Equal(t, "student", profile.Username)
	assert.NotContains(t, string(env.Data), "password")
}

func TestUpdateProfile(t *testing.T) {
	app := testutil.SetupApp(t)
	user := testutil.CreateUser(t, "student", "s@test.test", "old-secret", models.RoleUser)
	token := testutil.TokenFor(t, user)

	resp, env := testutil.DoJSON(t, app, http.MethodPut, "/users/profile", token, map[string]string{
		"username": "renamed",
		"email":    "Renamed@Test.Test",
		"password": "new-secret",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var profile models.User
	testutil.DecodeData(t, env, &profile)
	assert.Equal(t, "renamed", profile.Username)
	assert.Equal(t, "renamed@test.test", profile.Email)

	// New password is hashed and effective
	var stored models.User
	database.Database.Db.Where("id = ?", user.ID).First(&stored)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("new-secret")))
}

func TestUpdateProfileEmailConflict(t *testing.T) {
	app := testutil.SetupApp(t)
	testutil.CreateUser(t, "other", "taken@test.test", "secret1", models.RoleUser)
	user := testutil.CreateUser(t, "student", "s@test.test", "secret1", models.RoleUser)

	resp, _ := testutil.DoJSON(t, app, http.MethodPut, "/users/profile", testutil.TokenFor(t, user), map[string]string{
		"email": "taken@test.test",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Caller's email unchanged
	var stored models.User
	database.Database.Db.Where("id = ?", user.ID).First(&stored)
	assert.Equal(t, "s@test.test", stored.Email)
}

func TestUpdateProfileValidation(t *testing.T) {
	app := testutil.SetupApp(t)
	user := testutil.CreateUser(t, "student", "s@test.test", "secret1", models.RoleUser)

	resp, _ := testutil.DoJSON(t, app, http.MethodPut, "/users/profile", testutil.TokenFor(t, user), map[string]string{
		"email": "not-an-email",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
