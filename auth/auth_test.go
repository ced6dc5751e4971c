package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUID = "410544b2-4001-4271-9855-fec4b6a6442a"

func sessionRequest(t *testing.T, uid string) *http.Request {
	t.Helper()
	w := httptest.NewRecorder()
	CreateSession(w, uid)
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	for _, c := range w.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestSessionRoundTrip(t *testing.T) {
	req := sessionRequest(t, testUID)
	uid, ok := ParseSession(req)
	require.True(t, ok)
	assert.Equal(t, testUID, uid)
}

func TestSessionRejectsTampering(t *testing.T) {
	w := httptest.NewRecorder()
	CreateSession(w, testUID)
	cookie := w.Result().Cookies()[0]

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: cookie.Name, Value: "someone-else" + cookie.Value[len(testUID):]})
	_, ok := ParseSession(req)
	assert.False(t, ok)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: cookie.Name, Value: "no-signature"})
	_, ok = ParseSession(req)
	assert.False(t, ok)
}

func TestSessionSecretRotationInvalidates(t *testing.T) {
	t.Cleanup(func() { SetSecret("") })
	SetSecret("first")
	req := sessionRequest(t, testUID)
	SetSecret("second")
	_, ok := ParseSession(req)
	assert.False(t, ok)
}

func TestRequireAuth(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	h := Middleware(RequireAuth(ok))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("Accept", "application/json")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"unauthorized"}`, w.Body.String())

	w = httptest.NewRecorder()
	h.ServeHTTP(w, sessionRequest(t, testUID))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRequireAuthVerifier(t *testing.T) {
	t.Cleanup(func() { SetUserVerifier(nil) })
	SetUserVerifier(func(ctx context.Context, uid string) bool { return false })

	h := Middleware(RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run for a stale session")
	})))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, sessionRequest(t, testUID))
	assert.Equal(t, http.StatusSeeOther, w.Code)

	var cleared bool
	for _, c := range w.Result().Cookies() {
		if c.Name == sessionCookieName && c.Value == "" {
			cleared = true
		}
	}
	assert.True(t, cleared, "session cookie should be cleared")
}

func TestUserIDFromContext(t *testing.T) {
	_, ok := UserIDFromContext(context.Background())
	assert.False(t, ok)

	uid, ok := UserIDFromContext(WithUserID(context.Background(), testUID))
	assert.True(t, ok)
	assert.Equal(t, testUID, uid)
}
