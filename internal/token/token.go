// Package token implements the bearer idempotency token that stands in for a
// session store. A token proves "this client already performed this action on
// this target"; the client keeps the only copy, the server never persists it.
package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"
)

// Action selects which engagement the token guards. It is carried by the
// cookie name, not the signed payload.
type Action string

const (
	ActionLike    Action = "liked"
	ActionComment Action = "commented"
)

// Window is how long an issued token suppresses a repeat action. Enforced by
// the cookie max-age, not by Verify.
const Window = time.Hour

// Codec issues and verifies signed action tokens. Pure: no state beyond the
// secret, no clock access.
type Codec struct {
	secret []byte
}

// NewCodec creates a codec with the given signing secret.
func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret)}
}

// Issue returns a token value "<hex-mac>:<epoch-ms>" binding (endpoint, id)
// at the given moment.
func (c *Codec) Issue(endpoint, id string, now time.Time) string {
	ms := now.UnixMilli()
	return c.sign(endpoint, id, ms) + ":" + strconv.FormatInt(ms, 10)
}

// Verify reports whether value is a token this codec issued for
// (endpoint, id). Fails closed on empty or malformed values. Age is not
// checked here; an expired cookie is simply never submitted by the browser.
func (c *Codec) Verify(value, endpoint, id string) bool {
	idx := strings.LastIndex(value, ":")
	if idx < 0 {
		return false
	}
	mac, tsStr := value[:idx], value[idx+1:]

	ms, err := strconv.ParseInt(tsStr, 10, 64)
	if err != nil {
		return false
	}

	expected := c.sign(endpoint, id, ms)
	return hmac.Equal([]byte(mac), []byte(expected))
}

func (c *Codec) sign(endpoint, id string, ms int64) string {
	h := hmac.New(sha256.New, c.secret)
	h.Write([]byte(endpoint + ":" + id + ":" + strconv.FormatInt(ms, 10)))
	return hex.EncodeToString(h.Sum(nil))
}

// CookieName returns the per-action, per-target cookie name, e.g.
// "liked-exhibitions-ex1".
func CookieName(action Action, endpoint, id string) string {
	return string(action) + "-" + endpoint + "-" + id
}
