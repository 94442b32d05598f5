package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/require"
)

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func TestChainOrder(t *testing.T) {
	var order []string
	mark := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(http.HandlerFunc(okHandler), mark("first"), mark("second"), mark("third"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, []string{"first", "second", "third"}, order)
}

func TestRateLimiterWindow(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	rl := newRateLimiter(2, time.Minute)
	rl.now = func() time.Time { return now }

	require.True(t, rl.Allow("1.2.3.4"))
	require.True(t, rl.Allow("1.2.3.4"))
	require.False(t, rl.Allow("1.2.3.4"))
	require.True(t, rl.Allow("5.6.7.8"))

	now = now.Add(61 * time.Second)
	require.True(t, rl.Allow("1.2.3.4"))

	now = now.Add(10 * time.Minute)
	rl.cleanup()
	require.Empty(t, rl.requests)
}

func TestRateLimitOnlyCountsPost(t *testing.T) {
	rl := newRateLimiter(1, time.Minute)
	h := RateLimit(rl)(okHandler)

	post := func() int {
		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodPost, "/fetch-user/", nil))
		return rec.Code
	}

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/fetch-user/", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)

	require.Equal(t, http.StatusNoContent, post())
	require.Equal(t, http.StatusTooManyRequests, post())
}

func TestGetClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:5000"
	require.Equal(t, "192.0.2.1", getClientIP(req))

	req.RemoteAddr = "[2001:db8::1]:443"
	require.Equal(t, "2001:db8::1", getClientIP(req))

	// Headers alone never change the result
	req.Header.Set("X-Forwarded-For", "203.0.113.9")
	require.Equal(t, "2001:db8::1", getClientIP(req))
}

func TestRealIP(t *testing.T) {
	var seen string
	record := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = getClientIP(r)
	})

	newReq := func() *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/fetch-user/", nil)
		req.RemoteAddr = "10.0.0.2:40000"
		req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
		return req
	}

	// Untrusted: spoofed headers are ignored
	RealIP(false)(record).ServeHTTP(httptest.NewRecorder(), newReq())
	require.Equal(t, "10.0.0.2", seen)

	// Trusted: first X-Forwarded-For entry wins
	RealIP(true)(record).ServeHTTP(httptest.NewRecorder(), newReq())
	require.Equal(t, "203.0.113.9", seen)

	// Trusted: X-Real-IP when there is no X-Forwarded-For
	req := newReq()
	req.Header.Del("X-Forwarded-For")
	req.Header.Set("X-Real-IP", " 198.51.100.7 ")
	RealIP(true)(record).ServeHTTP(httptest.NewRecorder(), req)
	require.Equal(t, "198.51.100.7", seen)

	// Trusted but no headers: RemoteAddr stays
	req = newReq()
	req.Header.Del("X-Forwarded-For")
	RealIP(true)(record).ServeHTTP(httptest.NewRecorder(), req)
	require.Equal(t, "10.0.0.2", seen)
}

func TestRateLimitIgnoresSpoofedForwardedFor(t *testing.T) {
	h := RateLimit(newRateLimiter(1, time.Minute))(okHandler)

	for i, xff := range []string{"203.0.113.1", "203.0.113.2"} {
		req := httptest.NewRequest(http.MethodPost, "/fetch-user/", nil)
		req.RemoteAddr = "192.0.2.50:1234"
		req.Header.Set("X-Forwarded-For", xff)
		rec := httptest.NewRecorder()
		h(rec, req)
		if i == 0 {
			require.Equal(t, http.StatusNoContent, rec.Code)
		} else {
			require.Equal(t, http.StatusTooManyRequests, rec.Code)
		}
	}
}

func TestCSRFProtection(t *testing.T) {
	h := CSRFProtection(http.HandlerFunc(okHandler))

	// GET issues the cookie
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	token := cookies[0].Value

	// POST without token is rejected
	req := httptest.NewRequest(http.MethodPost, "/fetch-user/", strings.NewReader("username=octocat"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusForbidden, rec.Code)

	// POST with matching form token passes
	form := url.Values{"username": {"octocat"}, "csrf_token": {token}}
	req = httptest.NewRequest(http.MethodPost, "/fetch-user/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)

	// JSON API is exempt
	req = httptest.NewRequest(http.MethodPost, "/api/book-demo", strings.NewReader(`{}`))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Empty(t, rec.Result().Cookies())
}

func TestSecurityHeadersUsesNonce(t *testing.T) {
	var pageNonce string
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pageNonce = templ.GetNonce(r.Context())
		w.WriteHeader(http.StatusOK)
	}), NonceMiddleware, SecurityHeaders)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotEmpty(t, pageNonce)
	require.Contains(t, rec.Header().Get("Content-Security-Policy"), "'nonce-"+pageNonce+"'")
	require.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	require.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
}

func TestRecoverJSON(t *testing.T) {
	h := RecoverJSON(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/school-demo", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.JSONEq(t, `{"success":false,"error":"Internal server error"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), "Internal server error")
}
