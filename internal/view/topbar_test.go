package view

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"fe-v2/internal/avatar"
	"fe-v2/internal/domain"
)

func TestTopBarLoggedOut(t *testing.T) {
	env := newStubEnv(t)
	bar := NewTopBar(context.Background(), newDeps(t, env.Server.URL, ""))
	defer bar.Close()

	bar.Refresh()
	assert.Equal(t, "速搭  [搜索...]", bar.Render("/"))
	assert.Zero(t, env.count("/api/user/get_user_profile"))
}

func TestTopBarRefreshPicksUpAvatar(t *testing.T) {
	env := newStubEnv(t)
	env.Store.AddUser(domain.UserProfile{
		ID:        7,
		Username:  "Ben",
		Email:     "ben@example.com",
		AvatarURL: "/static/avatars/user_7.png",
	})
	bar := NewTopBar(context.Background(), env.depsFor(t, 7))
	defer bar.Close()

	assert.Equal(t, avatar.DefaultIcon, bar.AvatarURL())

	bar.Refresh()
	assert.Eventually(t, func() bool {
		return bar.AvatarURL() == env.Server.URL+"/static/avatars/user_7.png"
	}, timeoutShort, pollShort)

	assert.Contains(t, bar.Render("/"), "[个人主页]")
}

func TestTopBarHiddenControlsOnAuthPages(t *testing.T) {
	env := newStubEnv(t)
	env.Store.AddUser(domain.UserProfile{ID: 7, Username: "Ben", Email: "ben@example.com"})
	bar := NewTopBar(context.Background(), env.depsFor(t, 7))
	defer bar.Close()

	assert.Equal(t, "速搭  [搜索...]", bar.Render(LoginRoute))
	assert.Equal(t, "速搭  [搜索...]", bar.Render("/register-page"))
	assert.Contains(t, bar.Render("/"), "[个人主页]")
}
