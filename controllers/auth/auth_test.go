package authController_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	authRoutes "lms/routers/authRoutes"
	userRoutes "lms/routers/userRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()
	config.LoadConfig()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.LoginRecord{},
		&courseModels.Course{},
		&courseModels.Module{},
		&courseModels.Lesson{},
		&courseModels.Enrollment{},
	))
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	authRoutes.SetupAuthRoutes(app)
	userRoutes.SetupUserRoutes(app)
	return app
}

func jsonReq(method, target string, payload interface{}) *http.Request {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	resp.Body.Close()
	return body
}

func registerPayload(username, email string) map[string]interface{} {
	return map[string]interface{}{
		"username":   username,
		"email":      email,
		"password":   "s3cure-pass",
		"first_name": "Test",
		"last_name":  "User",
	}
}

func register(t *testing.T, app *fiber.App, payload map[string]interface{}) *http.Response {
	t.Helper()
	resp, err := app.Test(jsonReq("POST", "/accounts/register", payload))
	require.NoError(t, err)
	return resp
}

func findCookie(resp *http.Response, name string) *http.Cookie {
	for _, cookie := range resp.Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func TestRegisterSuccess(t *testing.T) {
	app := setupApp(t)

	resp := register(t, app, registerPayload("alice", "alice@example.com"))
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "alice", data["username"])
	assert.Equal(t, "student", data["role"])
	assert.NotContains(t, data, "password")
}

func TestRegisterDuplicateEmailCaseInsensitive(t *testing.T) {
	app := setupApp(t)

	resp := register(t, app, registerPayload("alice", "X@Y.com"))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = register(t, app, registerPayload("bob", "x@y.com"))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	errs := body["errors"].(map[string]interface{})
	assert.Contains(t, errs, "email")
}

func TestRegisterCollectsAllPasswordIssues(t *testing.T) {
	app := setupApp(t)

	payload := registerPayload("carol", "carol@example.com")
	payload["password"] = "1234"

	resp := register(t, app, payload)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	errs := body["errors"].(map[string]interface{})
	message := errs["password"].(string)
	assert.Contains(t, message, "at least 8 characters")
	assert.Contains(t, message, "entirely numeric")
}

func TestRegisterInvalidRole(t *testing.T) {
	app := setupApp(t)

	payload := registerPayload("dave", "dave@example.com")
	payload["role"] = "superuser"

	resp := register(t, app, payload)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	errs := body["errors"].(map[string]interface{})
	assert.Contains(t, errs, "role")
}

func TestRegisterAdminGetsStaffFlag(t *testing.T) {
	app := setupApp(t)

	payload := registerPayload("root", "root@example.com")
	payload["role"] = "admin"

	resp := register(t, app, payload)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var user models.User
	require.NoError(t, database.Database.Db.Where("username = ?", "root").First(&user).Error)
	assert.True(t, user.IsStaff)
	assert.Equal(t, models.RoleAdmin, user.Role)
}

func TestLoginWithUsername(t *testing.T) {
	app := setupApp(t)
	register(t, app, registerPayload("alice", "alice@example.com"))

	resp, err := app.Test(jsonReq("POST", "/token", map[string]interface{}{
		"username": "alice",
		"password": "s3cure-pass",
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.NotNil(t, findCookie(resp, config.AppConfig.AccessCookieName))
	assert.NotNil(t, findCookie(resp, config.AppConfig.RefreshCookieName))

	body := decodeBody(t, resp)
	assert.Contains(t, body, "detail")
}

func TestLoginWithEmailCaseInsensitive(t *testing.T) {
	app := setupApp(t)
	register(t, app, registerPayload("alice", "alice@example.com"))

	resp, err := app.Test(jsonReq("POST", "/token", map[string]interface{}{
		"email":    "ALICE@Example.COM",
		"password": "s3cure-pass",
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotNil(t, findCookie(resp, config.AppConfig.AccessCookieName))
}

func TestLoginWrongPassword(t *testing.T) {
	app := setupApp(t)
	register(t, app, registerPayload("alice", "alice@example.com"))

	resp, err := app.Test(jsonReq("POST", "/token", map[string]interface{}{
		"username": "alice",
		"password": "wrong-pass-1",
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Nil(t, findCookie(resp, config.AppConfig.AccessCookieName))
}

func TestLoginUnknownUser(t *testing.T) {
	app := setupApp(t)

	resp, err := app.Test(jsonReq("POST", "/token", map[string]interface{}{
		"username": "ghost",
		"password": "whatever-1",
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRefreshRotatesTokens(t *testing.T) {
	app := setupApp(t)
	register(t, app, registerPayload("alice", "alice@example.com"))

	loginResp, err := app.Test(jsonReq("POST", "/token", map[string]interface{}{
		"username": "alice",
		"password": "s3cure-pass",
	}))
	require.NoError(t, err)
	refreshCookie := findCookie(loginResp, config.AppConfig.RefreshCookieName)
	require.NotNil(t, refreshCookie)

	req := httptest.NewRequest("POST", "/token/refresh", nil)
	req.AddCookie(&http.Cookie{Name: refreshCookie.Name, Value: refreshCookie.Value})

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotNil(t, findCookie(resp, config.AppConfig.AccessCookieName))
	assert.NotNil(t, findCookie(resp, config.AppConfig.RefreshCookieName))
}

func TestRefreshMissingCookie(t *testing.T) {
	app := setupApp(t)

	resp, err := app.Test(httptest.NewRequest("POST", "/token/refresh", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "refresh token not found", body["detail"])
}

func TestRefreshExpiredTokenNeverSucceeds(t *testing.T) {
	app := setupApp(t)
	register(t, app, registerPayload("alice", "alice@example.com"))

	var user models.User
	require.NoError(t, database.Database.Db.Where("username = ?", "alice").First(&user).Error)

	expired, err := middleware.GenerateToken(user.ID, user.Role, middleware.TokenTypeRefresh, -time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/token/refresh", nil)
	req.AddCookie(&http.Cookie{Name: config.AppConfig.RefreshCookieName, Value: expired})

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	app := setupApp(t)
	register(t, app, registerPayload("alice", "alice@example.com"))

	var user models.User
	require.NoError(t, database.Database.Db.Where("username = ?", "alice").First(&user).Error)

	access, _, err := middleware.GenerateTokenPair(user.ID, user.Role)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/token/refresh", nil)
	req.AddCookie(&http.Cookie{Name: config.AppConfig.RefreshCookieName, Value: access})

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestLogoutIsIdempotent(t *testing.T) {
	app := setupApp(t)

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest("POST", "/logout", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		access := findCookie(resp, config.AppConfig.AccessCookieName)
		require.NotNil(t, access)
		assert.Empty(t, access.Value)
	}
}

func TestMeRequiresAuthentication(t *testing.T) {
	app := setupApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/users/me", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestMeReturnsProfile(t *testing.T) {
	app := setupApp(t)
	register(t, app, registerPayload("alice", "alice@example.com"))

	var user models.User
	require.NoError(t, database.Database.Db.Where("username = ?", "alice").First(&user).Error)

	access, _, err := middleware.GenerateTokenPair(user.ID, user.Role)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+access)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "alice", data["username"])
	assert.Equal(t, "alice@example.com", data["email"])
	assert.Equal(t, "Test", data["first_name"])
	assert.Equal(t, "student", data["role"])
}

func TestLoginHistoryRecorded(t *testing.T) {
	app := setupApp(t)
	register(t, app, registerPayload("alice", "alice@example.com"))

	loginResp, err := app.Test(jsonReq("POST", "/token", map[string]interface{}{
		"username": "alice",
		"password": "s3cure-pass",
	}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, loginResp.StatusCode)

	accessCookie := findCookie(loginResp, config.AppConfig.AccessCookieName)
	require.NotNil(t, accessCookie)

	req := httptest.NewRequest("GET", "/users/me/logins", nil)
	req.AddCookie(&http.Cookie{Name: accessCookie.Name, Value: accessCookie.Value})

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	data := body["data"].(map[string]interface{})
	logins := data["logins"].([]interface{})
	assert.Len(t, logins, 1)
}
