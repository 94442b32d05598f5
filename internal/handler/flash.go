package handler

import (
	"encoding/base64"
	"net/http"

	"github.com/templui/devlens/internal/ctxkeys"
)

const flashCookieName = "flash"

// redirectWithFlash stores msg for the next page load and sends the browser home
func redirectWithFlash(w http.ResponseWriter, r *http.Request, msg string) {
	cfg := ctxkeys.Config(r.Context())
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    base64.RawURLEncoding.EncodeToString([]byte(msg)),
		Path:     "/",
		HttpOnly: true,
		Secure:   cfg != nil && cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   60,
	})
	http.Redirect(w, r, "/", http.StatusFound)
}

// popFlash returns the pending flash message, if any, and clears it
func popFlash(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil {
		return ""
	}

	http.SetCookie(w, &http.Cookie{
		Name:   flashCookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})

	msg, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return ""
	}
	return string(msg)
}
