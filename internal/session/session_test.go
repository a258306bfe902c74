package session

import (
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

	"github.com/welovit/lead-buddy-app/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	// A second pooled connection would see its own empty in-memory
	// database, so keep everything on one connection.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&model.Session{}))
	return db
}

func TestCreateAndResolve(t *testing.T) {
	m := NewManager(newTestDB(t), time.Hour)

	token, err := m.Create(42)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	userID, err := m.Resolve(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestCreate_TokensAreUnique(t *testing.T) {
	m := NewManager(newTestDB(t), time.Hour)

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		token, err := m.Create(1)
		require.NoError(t, err)
		assert.False(t, seen[token])
		seen[token] = true
	}
}

func TestResolve_UnknownToken(t *testing.T) {
	m := NewManager(newTestDB(t), time.Hour)

	_, err := m.Resolve("no-such-token")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = m.Resolve("")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestResolve_ExpiredSessionIsDeleted(t *testing.T) {
	db := newTestDB(t)
	m := NewManager(db, time.Hour)

	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return current }

	token, err := m.Create(7)
	require.NoError(t, err)

	// Still valid one second before expiry.
	current = current.Add(time.Hour - time.Second)
	userID, err := m.Resolve(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), userID)

	// At the expiry instant the session no longer authenticates and
	// the record is removed.
	current = current.Add(time.Second)
	_, err = m.Resolve(token)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	var count int64
	db.Model(&model.Session{}).Where("token = ?", token).Count(&count)
	assert.Zero(t, count)

	// Subsequent resolve misses the row, it does not merely repeat the
	// expiry check.
	_, err = m.Resolve(token)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestNewManager_DefaultTTL(t *testing.T) {
	m := NewManager(newTestDB(t), 0)
	assert.Equal(t, DefaultTTL, m.ttl)
}

func TestTokenFromRequest(t *testing.T) {
	e := echo.New()

	makeContext := func(target, authHeader string) echo.Context {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		if authHeader != "" {
			req.Header.Set("Authorization", authHeader)
		}
		return e.NewContext(req, httptest.NewRecorder())
	}

	assert.Equal(t, "abc123", TokenFromRequest(makeContext("/leads/daily", "Bearer abc123")))
	assert.Equal(t, "abc123", TokenFromRequest(makeContext("/leads/daily", "bearer abc123")))
	// Query parameter fallback when the header is absent or malformed.
	assert.Equal(t, "qp-token", TokenFromRequest(makeContext("/leads/daily?token=qp-token", "")))
	assert.Equal(t, "qp-token", TokenFromRequest(makeContext("/leads/daily?token=qp-token", "Basic abc")))
	// Header wins over the query parameter.
	assert.Equal(t, "hdr", TokenFromRequest(makeContext("/leads/daily?token=qp", "Bearer hdr")))
	assert.Equal(t, "", TokenFromRequest(makeContext("/leads/daily", "")))
}
