package token

import "net/http"

// CookieTransport reads and writes action tokens as HTTP cookies. Kept apart
// from the codec so the signing logic stays transport-agnostic.
type CookieTransport struct {
	// Secure sets the Secure attribute on issued cookies. Enabled in
	// production where the site is served over HTTPS.
	Secure bool
}

// Read returns the token value submitted for (action, endpoint, id), or ""
// when no cookie is present. A missing cookie is indistinguishable from a
// never-issued token, which is exactly the desired fail-open behavior.
func (t CookieTransport) Read(r *http.Request, action Action, endpoint, id string) string {
	c, err := r.Cookie(CookieName(action, endpoint, id))
	if err != nil {
		return ""
	}
	return c.Value
}

// Write attaches a freshly issued token to the response. The max-age is the
// sole expiry mechanism for the token.
func (t CookieTransport) Write(w http.ResponseWriter, action Action, endpoint, id, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName(action, endpoint, id),
		Value:    value,
		Path:     "/",
		MaxAge:   int(Window.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   t.Secure,
	})
}
