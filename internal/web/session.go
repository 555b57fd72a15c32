package web

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

// sessionCookies issues and reads the cookie that keys a visitor's cursor.
type sessionCookies struct {
	name string
	ttl  time.Duration
}

// lookup returns the session id carried by r, if it is a well-formed one.
func (c sessionCookies) lookup(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(c.name)
	if err != nil {
		return "", false
	}
	if _, err := uuid.Parse(cookie.Value); err != nil {
		return "", false
	}
	return cookie.Value, true
}

// ensure reuses r's session id or creates one, and (re)sets the cookie so
// its expiry slides with activity.
func (c sessionCookies) ensure(w http.ResponseWriter, r *http.Request) string {
	id, ok := c.lookup(r)
	if !ok {
		id = uuid.NewString()
	}

	http.SetCookie(w, &http.Cookie{
		Name:     c.name,
		Value:    id,
		Path:     "/",
		MaxAge:   int(c.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
