package view

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"fe-v2/internal/api"
	"fe-v2/internal/domain"
)

// Dashboard sections, also the scroll anchors of the tab bar
const (
	TabCreated        = "created"
	TabParticipations = "participations"
	TabApplications   = "applications"
	TabReceived       = "received"
)

// MyActivitiesPage aggregates the four activity collections of the current
// user. All four sections stay mounted; the tab bar only moves the scroll
// anchor. Each collection is fetched independently so one failure never
// blocks the others.
type MyActivitiesPage struct {
	lifecycle
	deps Deps

	mu             sync.Mutex
	created        []domain.ActivityInfo
	applications   []domain.ApplicationInfo
	received       []domain.ReceivedApplicationInfo
	participations []domain.ParticipationInfo
	loading        bool
	errMsg         string
	activeTab      string
	actionOK       *Banner
	actionErr      *Banner
	selectedUser   *UserProfileView
}

// NewMyActivitiesPage creates the dashboard page
func NewMyActivitiesPage(parent context.Context, deps Deps) *MyActivitiesPage {
	return &MyActivitiesPage{
		lifecycle: newLifecycle(parent),
		deps:      deps,
		activeTab: TabCreated,
		actionOK:  newBanner(defaultBannerTTL),
		actionErr: newBanner(defaultBannerTTL),
	}
}

// Load fetches all four collections concurrently. Any failure lands in the
// page-level error; the remaining fetches still populate their sections.
func (p *MyActivitiesPage) Load() {
	p.mu.Lock()
	p.loading = true
	p.mu.Unlock()

	var wg sync.WaitGroup
	wg.Add(4)

	go func() {
		defer wg.Done()
		p.fetchCreated()
	}()
	go func() {
		defer wg.Done()
		p.fetchMyApplications()
	}()
	go func() {
		defer wg.Done()
		p.fetchReceived()
	}()
	go func() {
		defer wg.Done()
		p.fetchParticipations()
	}()

	wg.Wait()
}

func (p *MyActivitiesPage) fetchCreated() {
	var activities []domain.ActivityInfo
	err := p.deps.Client.Get(p.ctx, "activity", "get_creator_activities", &activities)
	if p.Closed() {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = false
	if err != nil {
		p.errMsg = api.UserMessage(err)
		return
	}
	p.created = activities
}

func (p *MyActivitiesPage) fetchMyApplications() {
	var apps []domain.ApplicationInfo
	err := p.deps.Client.Get(p.ctx, "application", "get_my_applications", &apps)
	if p.Closed() {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.errMsg = api.UserMessage(err)
		return
	}
	p.applications = apps
}

func (p *MyActivitiesPage) fetchReceived() {
	var apps []domain.ReceivedApplicationInfo
	err := p.deps.Client.Get(p.ctx, "application", "get_activity_applications", &apps)
	if p.Closed() {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.errMsg = api.UserMessage(err)
		return
	}
	p.received = apps
}

func (p *MyActivitiesPage) fetchParticipations() {
	var parts []domain.ParticipationInfo
	err := p.deps.Client.Get(p.ctx, "application", "get_my_participations", &parts)
	if p.Closed() {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.errMsg = api.UserMessage(err)
		return
	}
	p.participations = parts
}

// Decide accepts or rejects a received application. The displayed status is
// patched optimistically, then the received list is re-fetched to reconcile
// with server truth; on acceptance the participations list is re-fetched
// too. The re-fetch result always wins over the optimistic patch.
func (p *MyActivitiesPage) Decide(applicationID string, status domain.ApplicationStatus) {
	if status != domain.StatusAccepted && status != domain.StatusRejected {
		return
	}

	err := p.deps.Client.Put(p.ctx, "application", "update_application_status", map[string]interface{}{
		"application_id": applicationID,
		"status":         status,
	}, nil)
	if p.Closed() {
		return
	}
	if err != nil {
		p.actionErr.Show(api.UserMessage(err))
		return
	}

	p.mu.Lock()
	for i := range p.received {
		if p.received[i].ApplicationID == applicationID {
			p.received[i].Status = status
		}
	}
	p.mu.Unlock()

	if status == domain.StatusAccepted {
		p.actionOK.Show("申请已接受")
	} else {
		p.actionOK.Show("申请已拒绝")
	}

	p.fetchReceived()
	if status == domain.StatusAccepted {
		p.fetchParticipations()
	}
}

// SelectTab records the active section; sections are never unmounted, the
// tab only scrolls
func (p *MyActivitiesPage) SelectTab(tab string) {
	switch tab {
	case TabCreated, TabParticipations, TabApplications, TabReceived:
		p.mu.Lock()
		p.activeTab = tab
		p.mu.Unlock()
	}
}

// ActiveTab returns the current scroll anchor
func (p *MyActivitiesPage) ActiveTab() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.activeTab
}

// Error returns the page-level error, empty when all fetches succeeded
func (p *MyActivitiesPage) Error() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.errMsg
}

// Created returns the created-activities section data
func (p *MyActivitiesPage) Created() []domain.ActivityInfo {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.created
}

// Applications returns the my-applications section data
func (p *MyActivitiesPage) Applications() []domain.ApplicationInfo {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.applications
}

// Received returns the received-applications section data
func (p *MyActivitiesPage) Received() []domain.ReceivedApplicationInfo {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.received
}

// Participations returns the participations section data
func (p *MyActivitiesPage) Participations() []domain.ParticipationInfo {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.participations
}

// SelectUser opens a profile overlay for the clicked applicant
func (p *MyActivitiesPage) SelectUser(userID int) *UserProfileView {
	p.mu.Lock()
	if p.selectedUser != nil {
		p.selectedUser.Close()
	}
	overlay := NewUserProfileView(p.ctx, p.deps, userID)
	p.selectedUser = overlay
	p.mu.Unlock()

	overlay.Load()
	return overlay
}

// CloseUserProfile dismisses the profile overlay
func (p *MyActivitiesPage) CloseUserProfile() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.selectedUser != nil {
		p.selectedUser.Close()
		p.selectedUser = nil
	}
}

// Render returns the full dashboard. Created activities render newest first.
func (p *MyActivitiesPage) Render() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	var b strings.Builder
	b.WriteString("我的活动 — “最远处里，有最近的人”\n")
	fmt.Fprintf(&b, "[我创建的活动] [我参与的活动] [我申请的活动] [申请信息]  (当前: %s)\n", p.activeTab)

	b.WriteString("\n== 我创建的活动 ==\n")
	if p.errMsg != "" {
		fmt.Fprintf(&b, "! %s\n", p.errMsg)
	}
	switch {
	case p.loading:
		b.WriteString("玩命加载中...\n")
	case len(p.created) == 0:
		b.WriteString("暂无活动，快去创建吧！\n")
	default:
		for i := len(p.created) - 1; i >= 0; i-- {
			card := NewActivityCard(p.ctx, p.deps, p.created[i], false)
			b.WriteString(card.Render() + "\n")
			card.Close()
		}
	}

	b.WriteString("\n== 我参与的活动 ==\n")
	if len(p.participations) == 0 {
		b.WriteString("暂无参与的活动\n")
	} else {
		for _, part := range p.participations {
			card := NewActivityCard(p.ctx, p.deps, domain.ActivityInfo{
				ID:          part.ActivityID,
				Title:       part.Title,
				Time:        part.Time,
				Location:    part.Location,
				Tags:        part.Tags,
				CreatorName: part.CreatorName,
			}, false)
			b.WriteString(card.Render() + "\n")
			card.Close()
		}
	}

	b.WriteString("\n== 我申请的活动 ==\n")
	if len(p.applications) == 0 {
		b.WriteString("暂无申请的活动\n")
	} else {
		for _, app := range p.applications {
			text, _ := app.Status.Display()
			fmt.Fprintf(&b, "%s  [%s]\n", app.Title, text)
			fmt.Fprintf(&b, "地点: %s\n", app.Location)
			fmt.Fprintf(&b, "时间: %s\n", formatDateTime(app.Time))
			fmt.Fprintf(&b, "创建者: %s\n", app.CreatorName)
			fmt.Fprintf(&b, "申请时间: %s\n", formatDateTime(app.CreatedAt))
			if len(app.Tags) > 0 {
				b.WriteString(renderTags(app.Tags) + "\n")
			}
		}
	}

	b.WriteString("\n== 申请信息 ==\n")
	if msg := p.actionOK.Text(); msg != "" {
		fmt.Fprintf(&b, "✔ %s\n", msg)
	}
	if msg := p.actionErr.Text(); msg != "" {
		fmt.Fprintf(&b, "✘ %s\n", msg)
	}
	if len(p.received) == 0 {
		b.WriteString("暂无申请\n")
	} else {
		for _, app := range p.received {
			text, _ := app.Status.Display()
			fmt.Fprintf(&b, "%s  [%s]\n", app.ActivityTitle, text)
			fmt.Fprintf(&b, "申请者: %s\n", app.Username)
			fmt.Fprintf(&b, "申请时间: %s\n", formatDateTime(app.CreatedAt))
			if app.Status == domain.StatusPending {
				b.WriteString("[接受] [拒绝]\n")
			}
		}
	}

	return b.String()
}
