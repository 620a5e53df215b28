package view

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fe-v2/internal/domain"
)

func summaryActivity() domain.ActivityInfo {
	return domain.ActivityInfo{
		ID:          42,
		Title:       "周末羽毛球",
		Time:        "2025-03-08T14:30:00Z",
		Location:    "大学城体育馆",
		Tags:        []string{"运动", "羽毛球"},
		CreatorName: "小明",
	}
}

func TestActivityCardRender(t *testing.T) {
	deps := newDeps(t, "http://localhost:5000", "")
	card := NewActivityCard(context.Background(), deps, summaryActivity(), true)
	defer card.Close()

	out := card.Render()
	assert.Contains(t, out, "周末羽毛球")
	assert.Contains(t, out, "[运动] [羽毛球]")
	assert.Contains(t, out, "地点: 大学城体育馆")
	assert.Contains(t, out, "时间: 2025/03/08 星期六 14:30")
	assert.Contains(t, out, "By: 小明")
	assert.Contains(t, out, "[申请加入]")
}

func TestActivityCardRenderSingleTagHasNoChips(t *testing.T) {
	deps := newDeps(t, "http://localhost:5000", "")
	activity := summaryActivity()
	activity.Tags = []string{"夜跑"}
	card := NewActivityCard(context.Background(), deps, activity, false)
	defer card.Close()

	out := card.Render()
	assert.Contains(t, out, "夜跑")
	assert.NotContains(t, out, "[夜跑]")
	// apply control hidden on own activities
	assert.NotContains(t, out, "[申请加入]")
}

func TestApplyShowsSuccessBannerForOneWindow(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/api/application/apply_activity", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(`{"message":"申请成功，等待审核"}`))
	})
	ts := httptest.NewServer(r)
	defer ts.Close()

	card := NewActivityCard(context.Background(), newDeps(t, ts.URL, ""), summaryActivity(), true)
	defer card.Close()
	card.applyOK.ttl = 60 * time.Millisecond
	card.applyErr.ttl = 60 * time.Millisecond

	card.Apply()
	assert.False(t, card.Applying())
	assert.Equal(t, "申请成功，等待审核", card.applyOK.Text())
	assert.Empty(t, card.applyErr.Text())

	assert.Eventually(t, func() bool { return card.applyOK.Text() == "" },
		time.Second, 10*time.Millisecond)
}

func TestApplyShowsServerErrorBanner(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/api/application/apply_activity", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"请勿重复申请"}`))
	})
	ts := httptest.NewServer(r)
	defer ts.Close()

	card := NewActivityCard(context.Background(), newDeps(t, ts.URL, ""), summaryActivity(), true)
	defer card.Close()
	card.applyErr.ttl = 60 * time.Millisecond

	card.Apply()
	assert.Equal(t, "请勿重复申请", card.applyErr.Text())
	assert.Empty(t, card.applyOK.Text())

	assert.Eventually(t, func() bool { return card.applyErr.Text() == "" },
		time.Second, 10*time.Millisecond)
}

func TestApplyWithoutIDNeverHitsNetwork(t *testing.T) {
	var hits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		hits.Add(1)
	}))
	defer ts.Close()

	card := NewActivityCard(context.Background(), newDeps(t, ts.URL, ""), domain.ActivityInfo{}, true)
	defer card.Close()

	card.Apply()
	assert.Equal(t, "活动ID不存在", card.applyErr.Text())
	assert.Zero(t, hits.Load())
}

func TestApplyDisabledWhileInFlight(t *testing.T) {
	release := make(chan struct{})
	var hits atomic.Int32
	r := chi.NewRouter()
	r.Post("/api/application/apply_activity", func(w http.ResponseWriter, req *http.Request) {
		hits.Add(1)
		<-release
		w.Write([]byte(`{"message":"ok"}`))
	})
	ts := httptest.NewServer(r)
	defer ts.Close()

	card := NewActivityCard(context.Background(), newDeps(t, ts.URL, ""), summaryActivity(), true)
	defer card.Close()

	done := make(chan struct{})
	go func() {
		card.Apply()
		close(done)
	}()

	require.Eventually(t, func() bool { return card.Applying() },
		time.Second, 5*time.Millisecond)

	// a second trigger while outstanding is a no-op
	card.Apply()
	assert.Equal(t, int32(1), hits.Load())

	close(release)
	<-done
	assert.False(t, card.Applying())
	assert.Equal(t, int32(1), hits.Load())
}

func TestOpenReturnsDetailOverlay(t *testing.T) {
	deps := newDeps(t, "http://localhost:5000", "")
	card := NewActivityCard(context.Background(), deps, summaryActivity(), true)
	defer card.Close()

	detail := card.Open()
	require.NotNil(t, detail)
	assert.Same(t, detail, card.Open())

	card.CloseDetail()
	assert.True(t, detail.Closed())

	reopened := card.Open()
	require.NotNil(t, reopened)
	assert.NotSame(t, detail, reopened)
}

func TestOpenWithoutIDDoesNothing(t *testing.T) {
	deps := newDeps(t, "http://localhost:5000", "")
	card := NewActivityCard(context.Background(), deps, domain.ActivityInfo{}, true)
	defer card.Close()

	assert.Nil(t, card.Open())
}
