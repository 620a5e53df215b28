package view

import (
	"context"
	"fmt"
	"sync"
)

// TopBar shows the logged-in user's avatar and the profile link. The avatar
// comes from a best-effort profile fetch; failures keep the default icon.
// Hidden on the auth pages.
type TopBar struct {
	lifecycle
	deps Deps

	mu        sync.Mutex
	avatarURL string
}

// NewTopBar creates the top bar
func NewTopBar(parent context.Context, deps Deps) *TopBar {
	return &TopBar{lifecycle: newLifecycle(parent), deps: deps}
}

// Refresh re-checks the login state and refreshes the avatar in the
// background. Called on every route change.
func (t *TopBar) Refresh() {
	if !t.deps.Session.LoggedIn() {
		return
	}

	go func() {
		var profile struct {
			AvatarURL string `json:"avatar_url"`
		}
		err := t.deps.Client.Get(t.ctx, "user", "get_user_profile", &profile)
		if err != nil {
			t.deps.Log.WithError(err).Warn("Failed to fetch user avatar")
			return
		}
		if t.Closed() || profile.AvatarURL == "" {
			return
		}

		t.mu.Lock()
		t.avatarURL = profile.AvatarURL
		t.mu.Unlock()
	}()
}

// AvatarURL returns the resolved avatar for display
func (t *TopBar) AvatarURL() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.deps.Resolver.Resolve(t.avatarURL)
}

// Render returns the bar for the given route; profile controls only show
// when logged in and outside the auth pages
func (t *TopBar) Render(route string) string {
	bar := "速搭  [搜索...]"

	isAuthPage := route == LoginRoute || route == "/register-page"
	if t.deps.Session.LoggedIn() && !isAuthPage {
		bar += fmt.Sprintf("  [头像 %s] [个人主页]", t.AvatarURL())
	}
	return bar
}
