package auth_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/maxviazov/railway-blog-service/internal/auth"
	"github.com/maxviazov/railway-blog-service/internal/config"
)

func newManager(t *testing.T, now *time.Time) *auth.Manager {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	cfg := config.AuthConfig{AdminPasswordHash: string(hash), SecretKey: "0123456789abcdef", CookieTTLSeconds: 3600}
	return auth.NewManager(cfg, auth.WithClock(func() time.Time { return *now }))
}

func TestCheckPassword(t *testing.T) {
	now := time.Now()
	m := newManager(t, &now)
	assert.True(t, m.CheckPassword("s3cret"))
	assert.False(t, m.CheckPassword("S3cret"))
	assert.False(t, m.CheckPassword(""))
}

func TestIssueVerify(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	m := newManager(t, &now)

	token := m.Issue()
	require.NoError(t, m.Verify(token))

	now = now.Add(59 * time.Minute)
	assert.NoError(t, m.Verify(token))

	now = now.Add(time.Minute)
	assert.ErrorIs(t, m.Verify(token), auth.ErrExpiredToken)
}

func TestVerify_Tampered(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	m := newManager(t, &now)
	token := m.Issue()

	other := auth.NewManager(config.AuthConfig{SecretKey: "another-secret-key", CookieTTLSeconds: 3600},
		auth.WithClock(func() time.Time { return now }))

	for name, tok := range map[string]string{
		"empty":          "",
		"no separator":   "abc",
		"bumped expiry":  "9999999999" + token[strings.Index(token, "."):],
		"foreign secret": other.Issue(),
		"no signature":   token[:11],
	} {
		assert.ErrorIs(t, m.Verify(tok), auth.ErrInvalidToken, name)
	}
}

func TestHashPassword(t *testing.T) {
	h, err := auth.HashPassword("pw")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(h), []byte("pw")))

	_, err = auth.HashPassword("")
	assert.Error(t, err)
}
