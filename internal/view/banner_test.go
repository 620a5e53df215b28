package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBannerClearsAfterTTL(t *testing.T) {
	b := newBanner(50 * time.Millisecond)
	b.Show("申请成功，等待审核")
	assert.Equal(t, "申请成功，等待审核", b.Text())

	assert.Eventually(t, func() bool { return b.Text() == "" },
		time.Second, 10*time.Millisecond)
}

func TestBannerRetriggerResetsWindow(t *testing.T) {
	b := newBanner(120 * time.Millisecond)
	b.Show("first")
	time.Sleep(70 * time.Millisecond)
	b.Show("second")

	// the first window would have expired by now, the reset one has not
	time.Sleep(70 * time.Millisecond)
	assert.Equal(t, "second", b.Text())

	assert.Eventually(t, func() bool { return b.Text() == "" },
		time.Second, 10*time.Millisecond)
}

func TestBannerShowStickyNeverExpires(t *testing.T) {
	b := newBanner(30 * time.Millisecond)
	b.ShowSticky("只支持PNG格式图片")
	time.Sleep(90 * time.Millisecond)
	assert.Equal(t, "只支持PNG格式图片", b.Text())

	b.Clear()
	assert.Empty(t, b.Text())
}

func TestBannerStickyCancelsPendingTimer(t *testing.T) {
	b := newBanner(40 * time.Millisecond)
	b.Show("transient")
	b.ShowSticky("sticky")
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, "sticky", b.Text())
}
