package stubserver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := IssueToken("secret", 7, time.Hour)
	require.NoError(t, err)

	id, err := parseToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, 7, id)
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := IssueToken("secret", 7, time.Hour)
	require.NoError(t, err)

	_, err = parseToken("other", token)
	assert.Error(t, err)
}

func TestTokenExpired(t *testing.T) {
	token, err := IssueToken("secret", 7, -time.Minute)
	require.NoError(t, err)

	_, err = parseToken("secret", token)
	assert.Error(t, err)
}

func TestTokenGarbage(t *testing.T) {
	_, err := parseToken("secret", "not-a-token")
	assert.Error(t, err)
}
