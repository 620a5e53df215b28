package view

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fe-v2/internal/domain"
)

func pngBytes(size int) []byte {
	return bytes.Repeat([]byte{0x89}, size)
}

func seedProfileOwner(t *testing.T) *stubEnv {
	t.Helper()
	env := newStubEnv(t)
	env.Store.AddUser(domain.UserProfile{
		ID:        7,
		Username:  "Ben",
		Email:     "ben@example.com",
		Signature: "出发",
		Bio:       "周末组局",
		CreatedAt: "2024-10-01T00:00:00Z",
	})
	return env
}

func TestProfileLoadSeedsForm(t *testing.T) {
	env := seedProfileOwner(t)
	page := NewProfilePage(context.Background(), env.depsFor(t, 7))
	defer page.Close()

	page.Load()

	require.Equal(t, PhaseLoaded, page.Phase())
	assert.Equal(t, "出发", page.form.Signature)
	assert.Equal(t, "周末组局", page.form.Bio)
	assert.Empty(t, page.form.Habits)

	out := page.Render()
	assert.Contains(t, out, "Ben")
	assert.Contains(t, out, "ben@example.com")
	assert.Contains(t, out, "注册时间: 2024/10/01")
	assert.Contains(t, out, "个性签名: 出发")
}

func TestSetAvatarValidation(t *testing.T) {
	env := seedProfileOwner(t)
	page := NewProfilePage(context.Background(), env.depsFor(t, 7))
	defer page.Close()

	err := page.SetAvatar("photo.jpg", "image/jpeg", pngBytes(10))
	require.Error(t, err)
	assert.Equal(t, "只支持PNG格式图片", page.ErrorMessage())
	assert.Nil(t, page.PendingAvatar())

	err = page.SetAvatar("big.png", "image/png", pngBytes(maxAvatarSize+1))
	require.Error(t, err)
	assert.Equal(t, "图片大小不能超过1MB", page.ErrorMessage())
	assert.Nil(t, page.PendingAvatar())

	require.NoError(t, page.SetAvatar("ok.png", "image/png", pngBytes(128)))
	require.NotNil(t, page.PendingAvatar())
	assert.Equal(t, "ok.png", page.PendingAvatar().Name)
	assert.True(t, strings.HasPrefix(page.AvatarPreview(), "data:image/png;base64,"))
}

func TestSetAvatarRejectionKeepsPreviousSelection(t *testing.T) {
	env := seedProfileOwner(t)
	page := NewProfilePage(context.Background(), env.depsFor(t, 7))
	defer page.Close()

	require.NoError(t, page.SetAvatar("first.png", "image/png", pngBytes(64)))
	require.Error(t, page.SetAvatar("photo.jpg", "image/jpeg", pngBytes(64)))

	require.NotNil(t, page.PendingAvatar())
	assert.Equal(t, "first.png", page.PendingAvatar().Name)
}

func TestSaveUploadsAvatarThenUpdates(t *testing.T) {
	env := seedProfileOwner(t)
	page := NewProfilePage(context.Background(), env.depsFor(t, 7))
	defer page.Close()
	page.Load()

	page.SetSignature("新的签名")
	require.NoError(t, page.SetAvatar("ok.png", "image/png", pngBytes(128)))
	require.NoError(t, page.Save())

	assert.Equal(t, 1, env.count("/api/user/upload_avatar"))
	assert.Equal(t, 1, env.count("/api/user/update_profile"))

	require.NotNil(t, page.Profile())
	assert.Equal(t, "新的签名", page.Profile().Signature)
	assert.Equal(t, "/static/avatars/user_7.png", page.Profile().AvatarURL)
	assert.Nil(t, page.PendingAvatar())
	assert.Empty(t, page.AvatarPreview())
	assert.Equal(t, "个人资料更新成功", page.SuccessMessage())
}

func TestSaveWithoutPendingAvatarSkipsUpload(t *testing.T) {
	env := seedProfileOwner(t)
	page := NewProfilePage(context.Background(), env.depsFor(t, 7))
	defer page.Close()
	page.Load()

	page.SetBio("改一下介绍")
	require.NoError(t, page.Save())

	assert.Zero(t, env.count("/api/user/upload_avatar"))
	assert.Equal(t, 1, env.count("/api/user/update_profile"))
	assert.Equal(t, "改一下介绍", page.Profile().Bio)
}

func TestSaveAbortsWhenUploadFails(t *testing.T) {
	var updated atomic.Bool
	r := chi.NewRouter()
	r.Get("/api/user/get_user_profile", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(`{"id":7,"username":"Ben","email":"ben@example.com","created_at":"2024-10-01T00:00:00Z"}`))
	})
	r.Post("/api/user/upload_avatar", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"上传头像失败"}`))
	})
	r.Put("/api/user/update_profile", func(w http.ResponseWriter, req *http.Request) {
		updated.Store(true)
		w.Write([]byte(`{}`))
	})
	ts := httptest.NewServer(r)
	defer ts.Close()

	page := NewProfilePage(context.Background(), newDeps(t, ts.URL, ""))
	defer page.Close()
	page.Load()

	require.NoError(t, page.SetAvatar("ok.png", "image/png", pngBytes(128)))
	require.Error(t, page.Save())

	assert.False(t, updated.Load())
	assert.Equal(t, "上传头像失败", page.ErrorMessage())
	assert.Empty(t, page.SuccessMessage())
	// the selection stays pending so the user can retry
	assert.NotNil(t, page.PendingAvatar())
}

func TestLogoutClearsSessionAndRoutesToLogin(t *testing.T) {
	env := seedProfileOwner(t)
	deps := env.depsFor(t, 7)
	page := NewProfilePage(context.Background(), deps)
	defer page.Close()

	require.True(t, deps.Session.LoggedIn())

	route, err := page.Logout()
	require.NoError(t, err)
	assert.Equal(t, LoginRoute, route)
	assert.False(t, deps.Session.LoggedIn())
	assert.Empty(t, deps.Session.Token())
}
