package view

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"fe-v2/internal/api"
	"fe-v2/internal/avatar"
	"fe-v2/internal/session"
	"fe-v2/internal/stubserver"
	"fe-v2/pkg/logger"
)

const testSecret = "test-secret"

// polling bounds for Eventually-style assertions
const (
	timeoutShort = time.Second
	pollShort    = 5 * time.Millisecond
)

// newDeps builds view dependencies against an arbitrary backend URL
func newDeps(t *testing.T, baseURL, token string) Deps {
	t.Helper()

	sess, err := session.Load(filepath.Join(t.TempDir(), "token"), logger.Nop())
	require.NoError(t, err)
	if token != "" {
		require.NoError(t, sess.SetToken(token))
	}

	return Deps{
		Client:   api.NewClient(baseURL, sess, logger.Nop()),
		Resolver: avatar.NewResolver(baseURL),
		Session:  sess,
		Log:      logger.Nop(),
	}
}

// stubEnv runs the stub backend inside httptest and counts requests per path
type stubEnv struct {
	Store  *stubserver.Store
	Server *httptest.Server

	mu     sync.Mutex
	counts map[string]int
}

func newStubEnv(t *testing.T) *stubEnv {
	t.Helper()

	env := &stubEnv{
		Store:  stubserver.NewStore(),
		counts: make(map[string]int),
	}

	router := stubserver.NewServer(env.Store, testSecret, logger.Nop()).Router()
	env.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		env.mu.Lock()
		env.counts[r.URL.Path]++
		env.mu.Unlock()
		router.ServeHTTP(w, r)
	}))
	t.Cleanup(env.Server.Close)

	return env
}

// depsFor builds view dependencies authenticated as the given user
func (e *stubEnv) depsFor(t *testing.T, userID int) Deps {
	t.Helper()
	token, err := stubserver.IssueToken(testSecret, userID, time.Hour)
	require.NoError(t, err)
	return newDeps(t, e.Server.URL, token)
}

// count reports how many requests hit the given path
func (e *stubEnv) count(path string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.counts[path]
}
