package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/o1egl/paseto"
)

// CookieName is the cookie the auth provider stores the access token in.
const CookieName = "accessToken"

var (
	ErrMissingToken = errors.New("missing access token")
	ErrExpired      = errors.New("token expired")
)

// Session is the authenticated user of one request.
type Session struct {
	UserID string    `json:"userId"`
	Email  string    `json:"email"`
	Role   string    `json:"role"`
	Expiry time.Time `json:"expiry"`
}

// Manager decrypts PASETO v2 local tokens sealed with the key shared with
// the auth provider.
type Manager struct {
	key []byte
	v2  *paseto.V2
	now func() time.Time
}

func NewManager(symmetricKey string) (*Manager, error) {
	if len(symmetricKey) != 32 {
		return nil, fmt.Errorf("symmetric key must be 32 bytes long, got %d", len(symmetricKey))
	}
	return &Manager{key: []byte(symmetricKey), v2: paseto.NewV2(), now: time.Now}, nil
}

// Issue seals a session valid for ttl. The service itself never logs users
// in; Issue serves local stacks and tests.
func (m *Manager) Issue(userID, email, role string, ttl time.Duration) (string, error) {
	claims := Session{UserID: userID, Email: email, Role: role, Expiry: m.now().Add(ttl)}
	token, err := m.v2.Encrypt(m.key, claims, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

// Parse decrypts token and rejects expired sessions.
func (m *Manager) Parse(token string) (*Session, error) {
	if token == "" {
		return nil, ErrMissingToken
	}
	var s Session
	if err := m.v2.Decrypt(token, m.key, &s, nil); err != nil {
		return nil, fmt.Errorf("failed to decrypt token: %w", err)
	}
	if m.now().After(s.Expiry) {
		return nil, ErrExpired
	}
	return &s, nil
}

// FromRequest resolves the session of r, if any.
func (m *Manager) FromRequest(r *http.Request) (*Session, error) {
	return m.Parse(TokenFromRequest(r))
}

// TokenFromRequest takes the bearer token, falling back to the access token
// cookie.
func TokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	if c, err := r.Cookie(CookieName); err == nil {
		return c.Value
	}
	return ""
}

type contextKey struct{}

// WithSession returns a copy of ctx carrying s.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the session stored by WithSession.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(contextKey{}).(*Session)
	return s, ok && s != nil
}

// Recipient names who notifications raised in ctx are delivered to.
func Recipient(ctx context.Context) string {
	if s, ok := FromContext(ctx); ok && s.UserID != "" {
		return s.UserID
	}
	return "anonymous"
}
