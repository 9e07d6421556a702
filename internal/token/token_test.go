package token

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestIssueVerifyRoundTrip(t *testing.T) {
	codec := NewCodec("test-secret")
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	cases := []struct {
		endpoint string
		id       string
	}{
		{"exhibitions", "ex1"},
		{"workshops", "w1"},
		{"exhibitions", "id-with-dash"},
	}
	for _, tc := range cases {
		value := codec.Issue(tc.endpoint, tc.id, now)
		if !codec.Verify(value, tc.endpoint, tc.id) {
			t.Fatalf("round trip failed for %s/%s: %q", tc.endpoint, tc.id, value)
		}
	}
}

func TestVerifyRejectsTamperedSignature(t *testing.T) {
	codec := NewCodec("test-secret")
	value := codec.Issue("exhibitions", "ex1", time.Now())

	idx := strings.LastIndex(value, ":")
	sig, ts := value[:idx], value[idx:]

	for i := 0; i < len(sig); i++ {
		mutated := []byte(sig)
		if mutated[i] == 'a' {
			mutated[i] = 'b'
		} else {
			mutated[i] = 'a'
		}
		if codec.Verify(string(mutated)+ts, "exhibitions", "ex1") {
			t.Fatalf("tampered signature at byte %d verified", i)
		}
	}
}

func TestVerifyRejectsWrongTarget(t *testing.T) {
	codec := NewCodec("test-secret")
	value := codec.Issue("exhibitions", "ex1", time.Now())

	if codec.Verify(value, "exhibitions", "ex2") {
		t.Fatal("token verified for a different content ID")
	}
	if codec.Verify(value, "workshops", "ex1") {
		t.Fatal("token verified for a different endpoint")
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	value := NewCodec("secret-a").Issue("exhibitions", "ex1", time.Now())
	if NewCodec("secret-b").Verify(value, "exhibitions", "ex1") {
		t.Fatal("token verified under a rotated secret")
	}
}

func TestVerifyFailsClosedOnMalformedValues(t *testing.T) {
	codec := NewCodec("test-secret")

	for _, value := range []string{
		"",
		"no-separator",
		"abc:not-a-number",
		":123",
		"abc:",
	} {
		if codec.Verify(value, "exhibitions", "ex1") {
			t.Fatalf("malformed value %q verified", value)
		}
	}
}

func TestCookieName(t *testing.T) {
	if got := CookieName(ActionLike, "exhibitions", "ex1"); got != "liked-exhibitions-ex1" {
		t.Fatalf("like cookie name = %q", got)
	}
	if got := CookieName(ActionComment, "workshops", "w1"); got != "commented-workshops-w1" {
		t.Fatalf("comment cookie name = %q", got)
	}
}

func TestCookieTransportWrite(t *testing.T) {
	codec := NewCodec("test-secret")
	value := codec.Issue("exhibitions", "ex1", time.Now())

	rec := httptest.NewRecorder()
	CookieTransport{Secure: true}.Write(rec, ActionLike, "exhibitions", "ex1", value)

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	c := cookies[0]
	if c.Name != "liked-exhibitions-ex1" {
		t.Fatalf("cookie name = %q", c.Name)
	}
	if c.Value != value {
		t.Fatalf("cookie value = %q", c.Value)
	}
	if c.MaxAge != 3600 {
		t.Fatalf("cookie max-age = %d", c.MaxAge)
	}
	if !c.HttpOnly || !c.Secure || c.SameSite != http.SameSiteLaxMode || c.Path != "/" {
		t.Fatalf("cookie attributes wrong: %+v", c)
	}
}

func TestCookieTransportRead(t *testing.T) {
	transport := CookieTransport{}

	r := httptest.NewRequest(http.MethodPost, "/api/like", nil)
	if got := transport.Read(r, ActionLike, "exhibitions", "ex1"); got != "" {
		t.Fatalf("expected empty value without cookie, got %q", got)
	}

	r.AddCookie(&http.Cookie{Name: "liked-exhibitions-ex1", Value: "abc:123"})
	if got := transport.Read(r, ActionLike, "exhibitions", "ex1"); got != "abc:123" {
		t.Fatalf("read value = %q", got)
	}
}
