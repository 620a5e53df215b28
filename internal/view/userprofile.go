package view

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"fe-v2/internal/api"
	"fe-v2/internal/domain"
)

// UserProfileView is the profile overlay opened by clicking a user. It
// fetches the public profile once on load and closes on an outside click or
// the explicit close control.
type UserProfileView struct {
	lifecycle
	deps   Deps
	userID int

	mu      sync.Mutex
	phase   Phase
	profile *domain.UserProfile
	errMsg  string
}

// NewUserProfileView creates the overlay for the given user id
func NewUserProfileView(parent context.Context, deps Deps, userID int) *UserProfileView {
	return &UserProfileView{
		lifecycle: newLifecycle(parent),
		deps:      deps,
		userID:    userID,
	}
}

// UserID returns the id the overlay was opened for
func (v *UserProfileView) UserID() int {
	return v.userID
}

// Load fetches the user's public profile
func (v *UserProfileView) Load() {
	v.mu.Lock()
	v.phase = PhaseLoading
	v.mu.Unlock()

	var profile domain.UserProfile
	err := v.deps.Client.Get(v.ctx, "user", fmt.Sprintf("get_user_by_id/%d", v.userID), &profile)

	if v.Closed() {
		return
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if err != nil {
		v.phase = PhaseError
		v.errMsg = profileErrorMessage(err)
		return
	}
	if profile.ID == 0 {
		v.phase = PhaseNotFound
		return
	}
	v.profile = &profile
	v.phase = PhaseLoaded
}

// Phase returns the current load phase
func (v *UserProfileView) Phase() Phase {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.phase
}

// Profile returns the loaded profile, nil before load completes
func (v *UserProfileView) Profile() *domain.UserProfile {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.profile
}

// HandleOverlayClick dismisses the overlay when the click landed outside the
// card; clicks inside never propagate to the background handler. Reports
// whether the overlay closed.
func (v *UserProfileView) HandleOverlayClick(insideCard bool) bool {
	if insideCard {
		return false
	}
	v.Close()
	return true
}

// Render returns the overlay's display block
func (v *UserProfileView) Render() string {
	v.mu.Lock()
	defer v.mu.Unlock()

	switch v.phase {
	case PhaseLoading:
		return "加载中..."
	case PhaseError:
		return v.errMsg + "\n[关闭]"
	case PhaseNotFound:
		return "未找到用户资料\n[关闭]"
	}

	p := v.profile
	var b strings.Builder
	fmt.Fprintf(&b, "[头像 %s] %s\n", v.deps.Resolver.Resolve(p.AvatarURL), p.Username)
	if p.Signature != "" {
		fmt.Fprintf(&b, "“%s”\n", p.Signature)
	}
	fmt.Fprintf(&b, "加入时间: %s\n", formatDate(p.CreatedAt))
	if p.Bio != "" {
		fmt.Fprintf(&b, "自我介绍: %s\n", p.Bio)
	}
	if p.Habits != "" {
		fmt.Fprintf(&b, "个人习惯: %s\n", p.Habits)
	}
	fmt.Fprintf(&b, "邮箱: %s\n", p.Email)
	b.WriteString("[关闭]")
	return b.String()
}

func profileErrorMessage(err error) string {
	if reqErr, ok := err.(*api.RequestError); ok && reqErr.Message != "" {
		return reqErr.Message
	}
	return "获取用户资料失败"
}
