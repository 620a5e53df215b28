package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fe-v2/pkg/logger"
)

func tokenPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "token")
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "1",
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestLoadMissingFileMeansLoggedOut(t *testing.T) {
	s, err := Load(tokenPath(t), logger.Nop())
	require.NoError(t, err)

	assert.Empty(t, s.Token())
	assert.False(t, s.LoggedIn())
}

func TestSetTokenPersists(t *testing.T) {
	path := tokenPath(t)
	s, err := Load(path, logger.Nop())
	require.NoError(t, err)

	token := signedToken(t, time.Now().Add(time.Hour))
	require.NoError(t, s.SetToken(token))
	assert.Equal(t, token, s.Token())
	assert.True(t, s.LoggedIn())

	reloaded, err := Load(path, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, token, reloaded.Token())
}

func TestExpiredTokenCountsAsLoggedOut(t *testing.T) {
	s, err := Load(tokenPath(t), logger.Nop())
	require.NoError(t, err)

	require.NoError(t, s.SetToken(signedToken(t, time.Now().Add(-time.Hour))))
	assert.False(t, s.LoggedIn())
}

func TestOpaqueTokenStillCountsAsPresent(t *testing.T) {
	s, err := Load(tokenPath(t), logger.Nop())
	require.NoError(t, err)

	require.NoError(t, s.SetToken("not-a-jwt"))
	assert.True(t, s.LoggedIn())
}

func TestLogoutClearsStateAndFile(t *testing.T) {
	path := tokenPath(t)
	s, err := Load(path, logger.Nop())
	require.NoError(t, err)

	require.NoError(t, s.SetToken("some-token"))
	require.NoError(t, s.Logout())

	assert.Empty(t, s.Token())
	assert.False(t, s.LoggedIn())
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))

	// logging out twice is fine
	require.NoError(t, s.Logout())
}
