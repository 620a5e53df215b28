package view

import (
	"sync"
	"time"
)

// defaultBannerTTL is how long transient banners stay visible
const defaultBannerTTL = 3 * time.Second

// Banner is a transient one-line message. Show arms a timer that clears the
// text after the TTL; showing again while visible resets the window rather
// than queueing, so rapid repeats share a single timer.
type Banner struct {
	mu    sync.Mutex
	ttl   time.Duration
	text  string
	timer *time.Timer
}

func newBanner(ttl time.Duration) *Banner {
	return &Banner{ttl: ttl}
}

// Show displays text and schedules it to clear after the TTL
func (b *Banner) Show(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.text = text
	if b.timer != nil {
		b.timer.Stop()
	}
	b.timer = time.AfterFunc(b.ttl, b.Clear)
}

// ShowSticky displays text with no auto-clear
func (b *Banner) ShowSticky(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.text = text
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}

// Clear removes the message immediately
func (b *Banner) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.text = ""
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}

// Text returns the currently visible message, empty when cleared
func (b *Banner) Text() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.text
}
