package view

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"fe-v2/internal/api"
	"fe-v2/internal/domain"
)

// ActivityDetailView is the expanded activity overlay: full detail,
// participant list and the apply action. Clicking the creator or a
// participant opens a nested profile overlay; only one can be open at a time.
type ActivityDetailView struct {
	lifecycle
	deps       Deps
	activityID int

	mu           sync.Mutex
	phase        Phase
	detail       *domain.ActivityDetail
	participants []domain.SimpleUserInfo
	creatorInfo  *domain.SimpleUserInfo
	errMsg       string
	applying     bool
	applyOK      *Banner
	applyErr     *Banner
	selectedUser *UserProfileView
}

// NewActivityDetailView creates the overlay for the given activity id
func NewActivityDetailView(parent context.Context, deps Deps, activityID int) *ActivityDetailView {
	return &ActivityDetailView{
		lifecycle:  newLifecycle(parent),
		deps:       deps,
		activityID: activityID,
		applyOK:    newBanner(defaultBannerTTL),
		applyErr:   newBanner(defaultBannerTTL),
	}
}

// Load fetches the activity, the creator's profile and the participant list.
// The creator lookup is advisory: it only refreshes the avatar, so its
// failure is logged and swallowed and the detail still renders.
func (v *ActivityDetailView) Load() {
	v.mu.Lock()
	v.phase = PhaseLoading
	v.mu.Unlock()

	var detail domain.ActivityDetail
	err := v.deps.Client.Get(v.ctx, "activity", fmt.Sprintf("get_activity_by_id/%d", v.activityID), &detail)
	if v.Closed() {
		return
	}
	if err != nil {
		v.setError(detailErrorMessage(err))
		return
	}
	if detail.ID == 0 {
		v.mu.Lock()
		v.phase = PhaseNotFound
		v.mu.Unlock()
		return
	}

	if detail.CreatorID != 0 {
		v.fetchCreatorInfo(detail.CreatorID)
	}

	var participants []domain.SimpleUserInfo
	err = v.deps.Client.Get(v.ctx, "user", fmt.Sprintf("get_activity_participants/%d", v.activityID), &participants)
	if v.Closed() {
		return
	}
	if err != nil {
		v.setError(detailErrorMessage(err))
		return
	}

	v.mu.Lock()
	v.detail = &detail
	v.participants = participants
	v.phase = PhaseLoaded
	v.mu.Unlock()
}

// fetchCreatorInfo resolves the creator's authoritative avatar. Best effort.
func (v *ActivityDetailView) fetchCreatorInfo(creatorID int) {
	var profile domain.UserProfile
	err := v.deps.Client.Get(v.ctx, "user", fmt.Sprintf("get_user_by_id/%d", creatorID), &profile)
	if err != nil {
		v.deps.Log.WithError(err).WithField("creator_id", creatorID).Warn("获取创建者信息失败")
		return
	}
	if v.Closed() {
		return
	}

	v.mu.Lock()
	v.creatorInfo = &domain.SimpleUserInfo{
		ID:        profile.ID,
		Username:  profile.Username,
		AvatarURL: profile.AvatarURL,
	}
	v.mu.Unlock()
}

func (v *ActivityDetailView) setError(msg string) {
	v.mu.Lock()
	v.phase = PhaseError
	v.errMsg = msg
	v.mu.Unlock()
}

// Phase returns the current load phase
func (v *ActivityDetailView) Phase() Phase {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.phase
}

// Detail returns the loaded activity, nil until loaded
func (v *ActivityDetailView) Detail() *domain.ActivityDetail {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.detail
}

// Participants returns the loaded participant list
func (v *ActivityDetailView) Participants() []domain.SimpleUserInfo {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.participants
}

// Applying reports whether a join request is outstanding
func (v *ActivityDetailView) Applying() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.applying
}

// Apply posts a join request for this activity, with the same transient
// banner behavior as the summary card
func (v *ActivityDetailView) Apply() {
	if v.activityID == 0 {
		v.applyOK.Clear()
		v.applyErr.Show("活动ID不存在")
		return
	}

	v.mu.Lock()
	if v.applying {
		v.mu.Unlock()
		return
	}
	v.applying = true
	v.mu.Unlock()

	v.applyOK.Clear()
	v.applyErr.Clear()

	message, err := applyToActivity(v.ctx, v.deps.Client, v.activityID)

	v.mu.Lock()
	v.applying = false
	v.mu.Unlock()

	if v.Closed() {
		return
	}
	if err != nil {
		v.applyErr.Show(applyErrorMessage(err))
		return
	}
	v.applyOK.Show(message)
}

// SelectUser opens the profile overlay for the clicked participant or
// creator. An already open overlay is replaced, never stacked.
func (v *ActivityDetailView) SelectUser(userID int) *UserProfileView {
	v.mu.Lock()
	if v.selectedUser != nil {
		v.selectedUser.Close()
	}
	overlay := NewUserProfileView(v.ctx, v.deps, userID)
	v.selectedUser = overlay
	v.mu.Unlock()

	overlay.Load()
	return overlay
}

// SelectedUser returns the open profile overlay, nil when none
func (v *ActivityDetailView) SelectedUser() *UserProfileView {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.selectedUser != nil && v.selectedUser.Closed() {
		v.selectedUser = nil
	}
	return v.selectedUser
}

// CloseUserProfile dismisses the nested profile overlay
func (v *ActivityDetailView) CloseUserProfile() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.selectedUser != nil {
		v.selectedUser.Close()
		v.selectedUser = nil
	}
}

// HandleOverlayClick closes the overlay on an outside click; clicks inside
// the card never propagate to the background handler
func (v *ActivityDetailView) HandleOverlayClick(insideCard bool) bool {
	if insideCard {
		return false
	}
	v.Close()
	return true
}

// creatorCard builds the creator row, preferring the advisory lookup's
// avatar over the one embedded in the activity payload
func (v *ActivityDetailView) creatorCard() UserCard {
	user := domain.SimpleUserInfo{
		ID:       v.detail.CreatorID,
		Username: v.detail.CreatorName,
	}
	if v.creatorInfo != nil {
		user.AvatarURL = v.creatorInfo.AvatarURL
	} else {
		user.AvatarURL = v.detail.CreatorAvatarURL
	}
	return NewUserCard(user, v.deps.Resolver)
}

// Render returns the overlay's display block
func (v *ActivityDetailView) Render() string {
	v.mu.Lock()
	defer v.mu.Unlock()

	switch v.phase {
	case PhaseLoading:
		return "加载中..."
	case PhaseError:
		return v.errMsg + "\n[关闭]"
	case PhaseNotFound:
		return "未找到活动详情\n[关闭]"
	}

	d := v.detail
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", d.Title, renderTags(d.Tags))
	fmt.Fprintf(&b, "活动时间: %s\n", formatDateTime(d.Time))
	fmt.Fprintf(&b, "活动地点: %s\n", d.Location)
	fmt.Fprintf(&b, "活动描述: %s\n", d.Description)
	fmt.Fprintf(&b, "创建者: %s\n", v.creatorCard().Render())

	fmt.Fprintf(&b, "参与者 (%d)\n", len(v.participants))
	if len(v.participants) == 0 {
		b.WriteString("暂无参与者\n")
	} else {
		for _, p := range v.participants {
			fmt.Fprintf(&b, "  %s\n", NewUserCard(p, v.deps.Resolver).Render())
		}
	}

	if d.CreatedAt != "" {
		fmt.Fprintf(&b, "创建于: %s\n", formatDateTime(d.CreatedAt))
	}

	if v.applying {
		b.WriteString("[申请中...] [关闭]")
	} else {
		b.WriteString("[申请加入] [关闭]")
	}

	if msg := v.applyOK.Text(); msg != "" {
		b.WriteString("\n✔ " + msg)
	}
	if msg := v.applyErr.Text(); msg != "" {
		b.WriteString("\n✘ " + msg)
	}

	return b.String()
}

func detailErrorMessage(err error) string {
	if reqErr, ok := err.(*api.RequestError); ok && reqErr.Message != "" {
		return reqErr.Message
	}
	return "获取活动详情失败"
}
