package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const contextKey = "session.username"

// Config configures the session cookie.
type Config struct {
	Secret     []byte
	CookieName string
	// TTL bounds the cookie and token lifetime. Zero issues a browser-session
	// cookie whose token never expires.
	TTL    time.Duration
	Secure bool
}

// Manager issues, resolves and clears session cookies.
type Manager struct {
	store Store
	cfg   Config
}

func NewManager(store Store, cfg Config) *Manager {
	if cfg.CookieName == "" {
		cfg.CookieName = "session"
	}
	return &Manager{store: store, cfg: cfg}
}

// Start establishes a session for username and sets the cookie. Any session
// the client already holds is discarded first.
func (m *Manager) Start(c *gin.Context, username string) error {
	if id, ok := m.sessionID(c); ok {
		_ = m.store.Delete(c.Request.Context(), id)
	}

	id := uuid.NewString()
	token, err := m.sign(id)
	if err != nil {
		return fmt.Errorf("sign session: %w", err)
	}
	if err := m.store.Save(c.Request.Context(), id, username); err != nil {
		return err
	}

	maxAge := 0
	if m.cfg.TTL > 0 {
		maxAge = int(m.cfg.TTL / time.Second)
	}
	m.setCookie(c, token, maxAge)
	c.Set(contextKey, username)
	return nil
}

// Username returns the authenticated username of the request, if any.
// Invalid, expired or unknown cookies count as no session.
func (m *Manager) Username(c *gin.Context) (string, bool) {
	if v, ok := c.Get(contextKey); ok {
		username, _ := v.(string)
		return username, username != ""
	}

	id, ok := m.sessionID(c)
	if !ok {
		return "", false
	}
	username, err := m.store.Load(c.Request.Context(), id)
	if err != nil {
		return "", false
	}
	c.Set(contextKey, username)
	return username, true
}

// End removes the server-side session, if one exists, and expires the cookie.
func (m *Manager) End(c *gin.Context) error {
	var err error
	if id, ok := m.sessionID(c); ok {
		err = m.store.Delete(c.Request.Context(), id)
	}
	c.Set(contextKey, "")
	m.setCookie(c, "", -1)
	return err
}

func (m *Manager) sign(id string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		ID:       id,
		IssuedAt: jwt.NewNumericDate(now),
	}
	if m.cfg.TTL > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(m.cfg.TTL))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.cfg.Secret)
}

func (m *Manager) sessionID(c *gin.Context) (string, bool) {
	raw, err := c.Cookie(m.cfg.CookieName)
	if err != nil || raw == "" {
		return "", false
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return m.cfg.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		// an expired token still carries a verified id; drop its entry
		if errors.Is(err, jwt.ErrTokenExpired) && claims.ID != "" {
			_ = m.store.Delete(c.Request.Context(), claims.ID)
		}
		return "", false
	}
	if !token.Valid || claims.ID == "" {
		return "", false
	}
	return claims.ID, true
}

func (m *Manager) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cfg.CookieName, value, maxAge, "/", "", m.cfg.Secure, true)
}
