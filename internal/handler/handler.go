package handler

import (
	"gorm.io/gorm"

	"github.com/welovit/lead-buddy-app/internal/allocation"
	"github.com/welovit/lead-buddy-app/internal/session"
)

var (
	db       *gorm.DB
	sessions *session.Manager
	engine   *allocation.Engine
)

// Init wires the handler package to its collaborators. Must be called
// before any route is served.
func Init(database *gorm.DB, sessionManager *session.Manager, allocationEngine *allocation.Engine) {
	db = database
	sessions = sessionManager
	engine = allocationEngine
}
