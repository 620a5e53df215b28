package view

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"

	"fe-v2/internal/api"
	"fe-v2/internal/domain"
)

// maxAvatarSize is the client-side upload limit
const maxAvatarSize = 1024 * 1024

// LoginRoute is where Logout navigates to
const LoginRoute = "/login-page"

// AvatarFile is a pending avatar selection awaiting upload
type AvatarFile struct {
	Name string
	MIME string
	Data []byte
}

// ProfilePage is the editable profile of the current user. Signature, bio
// and habits are editable; username, email and join date are read-only.
// A selected avatar is validated locally and uploaded only on save.
type ProfilePage struct {
	lifecycle
	deps Deps

	mu            sync.Mutex
	phase         Phase
	profile       *domain.UserProfile
	form          domain.ProfileUpdate
	pendingAvatar *AvatarFile
	avatarPreview string
	successMsg    *Banner
	errMsg        *Banner
}

// NewProfilePage creates the profile editor page
func NewProfilePage(parent context.Context, deps Deps) *ProfilePage {
	return &ProfilePage{
		lifecycle:  newLifecycle(parent),
		deps:       deps,
		successMsg: newBanner(defaultBannerTTL),
		errMsg:     newBanner(defaultBannerTTL),
	}
}

// Load fetches the current user's profile and seeds the editable form
func (p *ProfilePage) Load() {
	p.mu.Lock()
	p.phase = PhaseLoading
	p.mu.Unlock()

	var profile domain.UserProfile
	err := p.deps.Client.Get(p.ctx, "user", "get_user_profile", &profile)
	if p.Closed() {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.phase = PhaseError
		p.errMsg.ShowSticky(profileErrorMessage(err))
		return
	}
	p.profile = &profile
	p.form = domain.ProfileUpdate{
		Signature: profile.Signature,
		Bio:       profile.Bio,
		Habits:    profile.Habits,
	}
	p.phase = PhaseLoaded
}

// Phase returns the current load phase
func (p *ProfilePage) Phase() Phase {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.phase
}

// Profile returns the loaded profile, nil until loaded
func (p *ProfilePage) Profile() *domain.UserProfile {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.profile
}

// SetSignature updates the signature form field
func (p *ProfilePage) SetSignature(value string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.form.Signature = value
}

// SetBio updates the bio form field
func (p *ProfilePage) SetBio(value string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.form.Bio = value
}

// SetHabits updates the habits form field
func (p *ProfilePage) SetHabits(value string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.form.Habits = value
}

// SetAvatar validates a selected avatar file and keeps it as the pending
// upload. Only PNG up to 1 MiB passes; a rejected file surfaces an inline
// error and leaves any previous pending file untouched.
func (p *ProfilePage) SetAvatar(name, mimeType string, data []byte) error {
	if mimeType != "image/png" {
		err := api.NewValidationError("只支持PNG格式图片")
		p.errMsg.ShowSticky(err.Message)
		return err
	}
	if len(data) > maxAvatarSize {
		err := api.NewValidationError("图片大小不能超过1MB")
		p.errMsg.ShowSticky(err.Message)
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.pendingAvatar = &AvatarFile{Name: name, MIME: mimeType, Data: data}
	p.avatarPreview = "data:image/png;base64," + base64.StdEncoding.EncodeToString(data)
	return nil
}

// PendingAvatar returns the file awaiting upload, nil when none
func (p *ProfilePage) PendingAvatar() *AvatarFile {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pendingAvatar
}

// AvatarPreview returns the local preview of the pending avatar
func (p *ProfilePage) AvatarPreview() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.avatarPreview
}

// Save persists the form. A pending avatar uploads first and its returned
// reference merges into the profile update; failure of either step surfaces
// its message and aborts the rest. On success local state is replaced with
// the server's canonical profile and the pending avatar is cleared.
func (p *ProfilePage) Save() error {
	p.successMsg.Clear()
	p.errMsg.Clear()

	p.mu.Lock()
	payload := p.form
	pending := p.pendingAvatar
	p.mu.Unlock()

	if pending != nil {
		var uploaded struct {
			AvatarURL string `json:"avatar_url"`
		}
		err := p.deps.Client.PostFile(p.ctx, "user", "upload_avatar", "avatar", pending.Name, pending.Data, &uploaded)
		if p.Closed() {
			return err
		}
		if err != nil {
			p.errMsg.Show(saveErrorMessage(err, "上传头像失败"))
			return err
		}
		payload.AvatarURL = uploaded.AvatarURL
	}

	var out struct {
		Message string             `json:"message"`
		Profile domain.UserProfile `json:"profile"`
	}
	err := p.deps.Client.Put(p.ctx, "user", "update_profile", payload, &out)
	if p.Closed() {
		return err
	}
	if err != nil {
		p.errMsg.Show(saveErrorMessage(err, "更新个人资料失败"))
		return err
	}

	p.mu.Lock()
	p.profile = &out.Profile
	p.pendingAvatar = nil
	p.avatarPreview = ""
	p.mu.Unlock()

	if out.Message != "" {
		p.successMsg.Show(out.Message)
	} else {
		p.successMsg.Show("个人资料更新成功")
	}
	return nil
}

// Logout clears the stored credential and reports the login entry route.
// Purely local, no server round trip.
func (p *ProfilePage) Logout() (string, error) {
	if err := p.deps.Session.Logout(); err != nil {
		return "", err
	}
	return LoginRoute, nil
}

// SuccessMessage returns the visible save confirmation, empty when cleared
func (p *ProfilePage) SuccessMessage() string {
	return p.successMsg.Text()
}

// ErrorMessage returns the visible inline error, empty when cleared
func (p *ProfilePage) ErrorMessage() string {
	return p.errMsg.Text()
}

// Render returns the page's display block
func (p *ProfilePage) Render() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	var b strings.Builder
	b.WriteString("个人主页\n")

	if p.phase == PhaseLoading {
		b.WriteString("加载中...")
		return b.String()
	}

	if p.profile != nil {
		avatarDisplay := p.avatarPreview
		if avatarDisplay == "" {
			avatarDisplay = p.deps.Resolver.Resolve(p.profile.AvatarURL)
		}
		fmt.Fprintf(&b, "[头像 %s] (更换头像)\n", avatarDisplay)
		fmt.Fprintf(&b, "%s\n", p.profile.Username)
		fmt.Fprintf(&b, "%s\n", p.profile.Email)
		joined := "未知"
		if p.profile.CreatedAt != "" {
			joined = formatDate(p.profile.CreatedAt)
		}
		fmt.Fprintf(&b, "注册时间: %s\n", joined)
	}

	fmt.Fprintf(&b, "个性签名: %s\n", p.form.Signature)
	fmt.Fprintf(&b, "自我介绍: %s\n", p.form.Bio)
	fmt.Fprintf(&b, "个人习惯: %s\n", p.form.Habits)

	if msg := p.successMsg.Text(); msg != "" {
		fmt.Fprintf(&b, "✔ %s\n", msg)
	}
	if msg := p.errMsg.Text(); msg != "" {
		fmt.Fprintf(&b, "✘ %s\n", msg)
	}

	b.WriteString("[保存个人资料] [退出登录]")
	return b.String()
}

func saveErrorMessage(err error, fallback string) string {
	if reqErr, ok := err.(*api.RequestError); ok && reqErr.Message != "" {
		return reqErr.Message
	}
	return fallback
}
