// Package session implements the opaque bearer token lifecycle: issue
// at login, resolve on each authenticated request, lazy delete on
// expiry. Tokens are server-side records, so an expired or unknown
// token can never authenticate.
package session

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/welovit/lead-buddy-app/internal/model"
	"github.com/welovit/lead-buddy-app/prometheus"
)

// ErrUnauthenticated covers missing, unknown and expired tokens alike
// so callers cannot distinguish the cases.
var ErrUnauthenticated = errors.New("session: unauthenticated")

// DefaultTTL is the fixed session lifetime when none is configured.
const DefaultTTL = 24 * time.Hour

// Manager issues and resolves sessions against the database.
type Manager struct {
	db  *gorm.DB
	ttl time.Duration
	now func() time.Time
}

// NewManager returns a session manager with the given token lifetime.
// A non-positive ttl falls back to DefaultTTL.
func NewManager(db *gorm.DB, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{db: db, ttl: ttl, now: time.Now}
}

// Create issues a new session for the user and returns its token.
func (m *Manager) Create(userID uint) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}
	sess := model.Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: m.now().Add(m.ttl),
	}
	if err := m.db.Create(&sess).Error; err != nil {
		return "", err
	}
	return token, nil
}

// Resolve maps a token to its user id. An expired session is deleted
// before failing, so a later resolve of the same token misses the row
// entirely. A concurrent delete of the same expired row is a no-op.
func (m *Manager) Resolve(token string) (uint, error) {
	if token == "" {
		return 0, ErrUnauthenticated
	}
	var sess model.Session
	err := m.db.Where("token = ?", token).First(&sess).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrUnauthenticated
	}
	if err != nil {
		return 0, err
	}
	if sess.IsExpired(m.now()) {
		result := m.db.Where("token = ?", token).Delete(&model.Session{})
		if result.RowsAffected > 0 {
			prometheus.DecreaseActiveSessions()
		}
		return 0, ErrUnauthenticated
	}
	return sess.UserID, nil
}

// TokenFromRequest extracts the bearer token from the Authorization
// header, falling back to the "token" query parameter. Returns the
// empty string when neither is present.
func TokenFromRequest(c echo.Context) string {
	header := c.Request().Header.Get("Authorization")
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	return c.QueryParam("token")
}

// generateToken returns 256 bits of cryptographic randomness in
// URL-safe base64.
func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
