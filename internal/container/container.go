package container

import (
	"fe-v2/internal/api"
	"fe-v2/internal/avatar"
	"fe-v2/internal/config"
	"fe-v2/internal/session"
	"fe-v2/internal/view"
	"fe-v2/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config   *config.Config
	Logger   *logger.Logger
	Session  *session.Session
	Client   *api.Client
	Resolver *avatar.Resolver
}

// New creates a new dependency injection container. The session is the one
// process-wide session object; everything needing authorization gets it
// from here.
func New(cfg *config.Config, log *logger.Logger) (*Container, error) {
	sess, err := session.Load(cfg.TokenPath, log)
	if err != nil {
		return nil, err
	}

	return &Container{
		Config:   cfg,
		Logger:   log,
		Session:  sess,
		Client:   api.NewClient(cfg.APIBaseURL, sess, log),
		Resolver: avatar.NewResolver(cfg.APIBaseURL),
	}, nil
}

// ViewDeps bundles the dependencies the view layer needs
func (c *Container) ViewDeps() view.Deps {
	return view.Deps{
		Client:   c.Client,
		Resolver: c.Resolver,
		Session:  c.Session,
		Log:      c.Logger,
	}
}
