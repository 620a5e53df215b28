package view

import (
	"fe-v2/internal/api"
	"fe-v2/internal/avatar"
	"fe-v2/internal/session"
	"fe-v2/pkg/logger"
)

// Deps carries what every view needs: the API client, the avatar resolver,
// the session and the logger. Injected explicitly, never read from globals.
type Deps struct {
	Client   *api.Client
	Resolver *avatar.Resolver
	Session  *session.Session
	Log      *logger.Logger
}
