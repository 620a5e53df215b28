package view

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"fe-v2/internal/api"
	"fe-v2/internal/domain"
)

// ActivityCard is the summary card for one activity. Rendering is stateless;
// the only local state is the apply action and the optionally opened detail
// overlay. Apply never triggers Open, mirroring the original's event
// propagation stop on the button.
type ActivityCard struct {
	lifecycle
	deps     Deps
	activity domain.ActivityInfo

	// ShowApplyButton hides the apply control on lists of own activities
	ShowApplyButton bool

	mu       sync.Mutex
	applying bool
	applyOK  *Banner
	applyErr *Banner
	detail   *ActivityDetailView
}

// NewActivityCard creates a card for the given activity summary
func NewActivityCard(parent context.Context, deps Deps, activity domain.ActivityInfo, showApplyButton bool) *ActivityCard {
	return &ActivityCard{
		lifecycle:       newLifecycle(parent),
		deps:            deps,
		activity:        activity,
		ShowApplyButton: showApplyButton,
		applyOK:         newBanner(defaultBannerTTL),
		applyErr:        newBanner(defaultBannerTTL),
	}
}

// Activity returns the rendered activity
func (c *ActivityCard) Activity() domain.ActivityInfo {
	return c.activity
}

// Applying reports whether a join request is outstanding; the apply control
// is disabled while it is
func (c *ActivityCard) Applying() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.applying
}

// Apply posts a join request for this activity. The success or error message
// shows as a banner for three seconds; repeated triggers reset the window.
func (c *ActivityCard) Apply() {
	if c.activity.ID == 0 {
		c.applyOK.Clear()
		c.applyErr.Show("活动ID不存在")
		return
	}

	c.mu.Lock()
	if c.applying {
		c.mu.Unlock()
		return
	}
	c.applying = true
	c.mu.Unlock()

	c.applyOK.Clear()
	c.applyErr.Clear()

	message, err := applyToActivity(c.ctx, c.deps.Client, c.activity.ID)

	c.mu.Lock()
	c.applying = false
	c.mu.Unlock()

	if c.Closed() {
		return
	}
	if err != nil {
		c.applyErr.Show(applyErrorMessage(err))
		return
	}
	c.applyOK.Show(message)
}

// Open expands the card into its detail overlay. Only one overlay exists per
// card; repeated opens return the existing one.
func (c *ActivityCard) Open() *ActivityDetailView {
	if c.activity.ID == 0 {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.detail == nil || c.detail.Closed() {
		c.detail = NewActivityDetailView(c.ctx, c.deps, c.activity.ID)
	}
	return c.detail
}

// CloseDetail dismisses the detail overlay if open
func (c *ActivityCard) CloseDetail() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.detail != nil {
		c.detail.Close()
		c.detail = nil
	}
}

// Render returns the card's display block
func (c *ActivityCard) Render() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s  %s\n", c.activity.Title, renderTags(c.activity.Tags))
	fmt.Fprintf(&b, "地点: %s\n", c.activity.Location)
	fmt.Fprintf(&b, "时间: %s\n", formatDateTime(c.activity.Time))

	if msg := c.applyOK.Text(); msg != "" {
		fmt.Fprintf(&b, "✔ %s\n", msg)
	}
	if msg := c.applyErr.Text(); msg != "" {
		fmt.Fprintf(&b, "✘ %s\n", msg)
	}

	fmt.Fprintf(&b, "By: %s", c.activity.CreatorName)
	if c.ShowApplyButton {
		if c.Applying() {
			b.WriteString("  [申请中...]")
		} else {
			b.WriteString("  [申请加入]")
		}
	}

	return b.String()
}

// applyErrorMessage maps a request failure to the banner text
func applyErrorMessage(err error) string {
	if reqErr, ok := err.(*api.RequestError); ok && reqErr.Message != "" {
		return reqErr.Message
	}
	return "申请失败，请稍后重试"
}
