package session

import (
	"net/http"
	"time"
)

const DefaultCookieName = "session"

// CookieOptions defines how session cookies are issued.
type CookieOptions struct {
	Name     string
	Path     string
	HttpOnly bool
	Secure   bool
	SameSite http.SameSite
	Domain   string
	MaxAge   time.Duration
}

// normalize applies safe defaults without breaking callers
func (o CookieOptions) normalize() CookieOptions {
	if o.Name == "" {
		o.Name = DefaultCookieName
	}
	if o.Path == "" {
		o.Path = "/"
	}
	if !o.HttpOnly {
		o.HttpOnly = true // secure default
	}
	if o.SameSite == 0 {
		o.SameSite = http.SameSiteLaxMode
	}
	return o
}

// SetCookie issues the session cookie to the client. Max-Age is the
// session lifetime, matching the server-side expiry.
func SetCookie(w http.ResponseWriter, token Token, opts CookieOptions) {
	opts = opts.normalize()

	maxAge := opts.MaxAge
	if maxAge <= 0 {
		maxAge = time.Until(token.ExpiresAt)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     opts.Name,
		Value:    token.Value,
		Path:     opts.Path,
		Domain:   opts.Domain,
		Expires:  token.ExpiresAt,
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: opts.HttpOnly,
		Secure:   opts.Secure,
		SameSite: opts.SameSite,
	})
}

// ClearCookie removes the session cookie from the client.
func ClearCookie(w http.ResponseWriter, opts CookieOptions) {
	opts = opts.normalize()

	http.SetCookie(w, &http.Cookie{
		Name:     opts.Name,
		Value:    "",
		Path:     opts.Path,
		Domain:   opts.Domain,
		MaxAge:   -1,
		HttpOnly: opts.HttpOnly,
		Secure:   opts.Secure,
		SameSite: opts.SameSite,
	})
}

// ReadCookie returns the presented session token, or "" if none.
func ReadCookie(r *http.Request, opts CookieOptions) string {
	opts = opts.normalize()
	c, err := r.Cookie(opts.Name)
	if err != nil {
		return ""
	}
	return c.Value
}
