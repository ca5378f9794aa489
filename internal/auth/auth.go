// Package auth guards the admin area: one bcrypt-hashed admin password and a
// signed, expiring cookie token. There are no user accounts.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/maxviazov/railway-blog-service/internal/config"
)

var (
	ErrInvalidToken = errors.New("auth: invalid token")
	ErrExpiredToken = errors.New("auth: token expired")
)

// Manager issues and verifies admin tokens.
type Manager struct {
	hash   []byte
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// Option customizes a Manager.
type Option func(*Manager)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func NewManager(cfg config.AuthConfig, opts ...Option) *Manager {
	m := &Manager{
		hash:   []byte(cfg.AdminPasswordHash),
		secret: []byte(cfg.SecretKey),
		ttl:    cfg.CookieTTL(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// TTL is how long an issued token stays valid.
func (m *Manager) TTL() time.Duration { return m.ttl }

// CheckPassword compares a login attempt with the configured bcrypt hash.
func (m *Manager) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword(m.hash, []byte(password)) == nil
}

// Issue returns "<expiry unix>.<base64url hmac>".
func (m *Manager) Issue() string {
	exp := strconv.FormatInt(m.now().Add(m.ttl).Unix(), 10)
	return exp + "." + m.sign(exp)
}

// Verify checks the signature first, then the expiry.
func (m *Manager) Verify(token string) error {
	exp, sig, ok := strings.Cut(token, ".")
	if !ok || exp == "" || sig == "" {
		return ErrInvalidToken
	}
	if !hmac.Equal([]byte(sig), []byte(m.sign(exp))) {
		return ErrInvalidToken
	}
	unix, err := strconv.ParseInt(exp, 10, 64)
	if err != nil {
		return ErrInvalidToken
	}
	if !m.now().Before(time.Unix(unix, 0)) {
		return ErrExpiredToken
	}
	return nil
}

func (m *Manager) sign(payload string) string {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// HashPassword produces the value for auth.admin_password_hash.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("auth: empty password")
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
