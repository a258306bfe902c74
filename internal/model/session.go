package model

import (
	"time"
)

// Session represents an opaque bearer token issued at login.
// The token itself is the primary key; resolution is a point lookup.
type Session struct {
	Token     string    `json:"-" gorm:"primaryKey;type:varchar(64)"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

// IsExpired reports whether the session has passed its absolute expiry.
func (s *Session) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
