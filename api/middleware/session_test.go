package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCartSessionPrefersHeader(t *testing.T) {
	t.Parallel()

	var seen string
	handler := CartSession(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = SessionIDFromContext(r.Context())
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Cart-Session", "header-session")
	req.AddCookie(&http.Cookie{Name: "teohome_cart", Value: "cookie-session"})
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if seen != "header-session" {
		t.Fatalf("expected header session to win, got %q", seen)
	}
	if w.Header().Get("X-Cart-Session") != "header-session" {
		t.Fatalf("expected session echoed on response, got %q", w.Header().Get("X-Cart-Session"))
	}
}

func TestCartSessionFallsBackToCookie(t *testing.T) {
	t.Parallel()

	var seen string
	handler := CartSession(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = SessionIDFromContext(r.Context())
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: "teohome_cart", Value: "cookie-session"})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if seen != "cookie-session" {
		t.Fatalf("expected cookie session, got %q", seen)
	}
}

func TestCartSessionMintsNewID(t *testing.T) {
	t.Parallel()

	var seen string
	handler := CartSession(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = SessionIDFromContext(r.Context())
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	if seen == "" {
		t.Fatal("expected a minted session id")
	}
	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "teohome_cart" {
			cookie = c
		}
	}
	if cookie == nil || cookie.Value != seen {
		t.Fatalf("expected cookie matching minted id %q, got %v", seen, cookie)
	}
	if !cookie.HttpOnly {
		t.Fatal("session cookie must be http-only")
	}
}
