package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/welovit/lead-buddy-app/internal/allocation"
	"github.com/welovit/lead-buddy-app/internal/middleware"
	"github.com/welovit/lead-buddy-app/internal/model"
	"github.com/welovit/lead-buddy-app/internal/session"
	"github.com/welovit/lead-buddy-app/pkg/database"
	"github.com/welovit/lead-buddy-app/pkg/passhash"
)

// setupTest wires the handler package against a fresh in-memory
// database with the seeded reference catalog and returns a router with
// the full route table.
func setupTest(t *testing.T) (*echo.Echo, *gorm.DB, *session.Manager) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&model.User{}, &model.Session{}, &model.Category{},
		&model.Company{}, &model.Lead{}, &model.UserLead{},
	))
	require.NoError(t, database.Seed(db))

	sessions := session.NewManager(db, time.Hour)
	Init(db, sessions, allocation.NewEngine(db, 7))

	e := echo.New()
	auth := middleware.SessionAuth(sessions)
	e.POST("/register", Register)
	e.POST("/login", Login)
	e.GET("/categories", ListCategories)
	e.GET("/leads/daily", GetDailyLeads, auth)
	e.GET("/leads", GetUserLeads, auth)
	e.POST("/lead_status", UpdateLeadStatus, auth)
	e.POST("/notes", AddLeadNote, auth)
	e.GET("/user/profile", GetProfile, auth)
	e.PUT("/user/profile", UpdateProfile, auth)
	return e, db, sessions
}

func doJSON(t *testing.T, e *echo.Echo, method, target, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func registerUser(t *testing.T, e *echo.Echo, email string) {
	t.Helper()
	rec := doJSON(t, e, http.MethodPost, "/register", "", map[string]interface{}{
		"name":     "Jane Doe",
		"email":    email,
		"password": "hunter22",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
}

func loginUser(t *testing.T, e *echo.Echo, email string) string {
	t.Helper()
	rec := doJSON(t, e, http.MethodPost, "/login", "", map[string]interface{}{
		"email":    email,
		"password": "hunter22",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	token, ok := decodeBody(t, rec)["token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)
	return token
}

func TestRegister_Success(t *testing.T) {
	e, db, _ := setupTest(t)

	rec := doJSON(t, e, http.MethodPost, "/register", "", map[string]interface{}{
		"name":         "Jane Doe",
		"email":        "jane@example.com",
		"password":     "hunter22",
		"phone":        "+15550001111",
		"company_name": "Jane LLC",
		"countries":    []string{"United States", "Canada"},
		// Category names and ids are both accepted; unknown names drop.
		"categories": []interface{}{"Beauty", 5, "No Such Category"},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var user model.User
	require.NoError(t, db.Where("email = ?", "jane@example.com").First(&user).Error)
	assert.Equal(t, "Jane Doe", user.Name)
	assert.Equal(t, "UTC", user.Timezone)
	assert.Equal(t, "United States,Canada", user.CountryPreferences)
	assert.Equal(t, "2,5", user.CategoryPreferences)
	// Stored credential is a derived hash, never the password.
	assert.NotContains(t, user.PasswordHash, "hunter22")
	assert.True(t, passhash.Verify("hunter22", user.PasswordHash))
}

func TestRegister_MissingFields(t *testing.T) {
	e, _, _ := setupTest(t)

	rec := doJSON(t, e, http.MethodPost, "/register", "", map[string]interface{}{
		"email": "jane@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	e, _, _ := setupTest(t)
	registerUser(t, e, "jane@example.com")

	rec := doJSON(t, e, http.MethodPost, "/register", "", map[string]interface{}{
		"name":     "Second Jane",
		"email":    "jane@example.com",
		"password": "different",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLogin_IssuesResolvableToken(t *testing.T) {
	e, db, sessions := setupTest(t)
	registerUser(t, e, "jane@example.com")

	token := loginUser(t, e, "jane@example.com")

	var user model.User
	require.NoError(t, db.Where("email = ?", "jane@example.com").First(&user).Error)
	userID, err := sessions.Resolve(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
}

func TestLogin_UniformInvalidCredentials(t *testing.T) {
	e, _, _ := setupTest(t)
	registerUser(t, e, "jane@example.com")

	wrongPassword := doJSON(t, e, http.MethodPost, "/login", "", map[string]interface{}{
		"email":    "jane@example.com",
		"password": "wrong",
	})
	unknownEmail := doJSON(t, e, http.MethodPost, "/login", "", map[string]interface{}{
		"email":    "nobody@example.com",
		"password": "hunter22",
	})

	// Identical status and body for both failure modes, so the
	// endpoint leaks no account-existence signal.
	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.JSONEq(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}

func TestLogin_MissingFields(t *testing.T) {
	e, _, _ := setupTest(t)

	rec := doJSON(t, e, http.MethodPost, "/login", "", map[string]interface{}{
		"email": "jane@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListCategories(t *testing.T) {
	e, _, _ := setupTest(t)

	rec := doJSON(t, e, http.MethodGet, "/categories", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	categories, ok := decodeBody(t, rec)["categories"].([]interface{})
	require.True(t, ok)
	assert.Len(t, categories, 7)
	first, ok := categories[0].(map[string]interface{})
	require.True(t, ok)
	// Ordered by name.
	assert.Equal(t, "Beauty", first["name"])
}
