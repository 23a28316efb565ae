package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newContext(cookies ...*http.Cookie) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	c.Request = req
	return c, w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	t.Fatalf("cookie %s not set", name)
	return nil
}

func TestManager_StartThenResolve(t *testing.T) {
	m := NewManager(NewMemoryStore(0), Config{Secret: []byte("s3cret")})

	c, w := newContext()
	require.NoError(t, m.Start(c, "asha"))

	cookie := sessionCookie(t, w, "session")
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, 0, cookie.MaxAge)

	next, _ := newContext(cookie)
	username, ok := m.Username(next)
	require.True(t, ok)
	assert.Equal(t, "asha", username)
}

func TestManager_NoCookie(t *testing.T) {
	m := NewManager(NewMemoryStore(0), Config{Secret: []byte("s3cret")})

	c, _ := newContext()
	_, ok := m.Username(c)
	assert.False(t, ok)
}

func TestManager_RejectsForeignSignature(t *testing.T) {
	store := NewMemoryStore(0)
	issuer := NewManager(store, Config{Secret: []byte("other")})
	m := NewManager(store, Config{Secret: []byte("s3cret")})

	c, w := newContext()
	require.NoError(t, issuer.Start(c, "asha"))

	next, _ := newContext(sessionCookie(t, w, "session"))
	_, ok := m.Username(next)
	assert.False(t, ok)
}

func TestManager_RejectsTamperedCookie(t *testing.T) {
	m := NewManager(NewMemoryStore(0), Config{Secret: []byte("s3cret")})

	c, w := newContext()
	require.NoError(t, m.Start(c, "asha"))
	cookie := sessionCookie(t, w, "session")
	cookie.Value += "x"

	next, _ := newContext(cookie)
	_, ok := m.Username(next)
	assert.False(t, ok)
}

func TestManager_EndClearsSession(t *testing.T) {
	store := NewMemoryStore(0)
	m := NewManager(store, Config{Secret: []byte("s3cret")})

	c, w := newContext()
	require.NoError(t, m.Start(c, "asha"))
	cookie := sessionCookie(t, w, "session")

	end, endW := newContext(cookie)
	require.NoError(t, m.End(end))
	cleared := sessionCookie(t, endW, "session")
	assert.Equal(t, "", cleared.Value)
	assert.Less(t, cleared.MaxAge, 0)

	// the old cookie no longer resolves server-side
	again, _ := newContext(cookie)
	_, ok := m.Username(again)
	assert.False(t, ok)
}

func TestManager_EndWithoutSession(t *testing.T) {
	m := NewManager(NewMemoryStore(0), Config{Secret: []byte("s3cret")})

	c, _ := newContext()
	require.NoError(t, m.End(c))
}

func TestManager_StartReplacesPreviousSession(t *testing.T) {
	store := NewMemoryStore(0)
	m := NewManager(store, Config{Secret: []byte("s3cret")})

	c, w := newContext()
	require.NoError(t, m.Start(c, "asha"))
	first := sessionCookie(t, w, "session")

	relogin, _ := newContext(first)
	require.NoError(t, m.Start(relogin, "ravi"))

	old, _ := newContext(first)
	_, ok := m.Username(old)
	assert.False(t, ok)
	assert.Len(t, store.sessions, 1)
}

func TestManager_TTLSetsMaxAge(t *testing.T) {
	m := NewManager(NewMemoryStore(0), Config{Secret: []byte("s3cret"), TTL: time.Hour, CookieName: "sid"})

	c, w := newContext()
	require.NoError(t, m.Start(c, "asha"))
	assert.Equal(t, 3600, sessionCookie(t, w, "sid").MaxAge)
}

func TestManager_ExpiredTokenIsNoSession(t *testing.T) {
	m := NewManager(NewMemoryStore(0), Config{Secret: []byte("s3cret"), TTL: time.Millisecond})
	require.NoError(t, m.store.Save(context.Background(), "id-1", "asha"))

	token, err := m.sign("id-1")
	require.NoError(t, err)
	time.Sleep(1100 * time.Millisecond)

	c, _ := newContext(&http.Cookie{Name: "session", Value: token})
	_, ok := m.Username(c)
	assert.False(t, ok)

	// the expired token's entry is pruned from the store
	_, err = m.store.Load(context.Background(), "id-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestManager_ForeignExpiredTokenLeavesStore(t *testing.T) {
	store := NewMemoryStore(0)
	require.NoError(t, store.Save(context.Background(), "id-1", "asha"))

	foreign := NewManager(NewMemoryStore(0), Config{Secret: []byte("other"), TTL: time.Millisecond})
	token, err := foreign.sign("id-1")
	require.NoError(t, err)
	time.Sleep(1100 * time.Millisecond)

	m := NewManager(store, Config{Secret: []byte("s3cret")})
	c, _ := newContext(&http.Cookie{Name: "session", Value: token})
	_, ok := m.Username(c)
	assert.False(t, ok)

	username, err := store.Load(context.Background(), "id-1")
	require.NoError(t, err)
	assert.Equal(t, "asha", username)
}
