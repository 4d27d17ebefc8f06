package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// replay copies cookies set on rec onto a fresh request.
func replay(t *testing.T, rec *httptest.ResponseRecorder) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge < 0 {
			continue
		}
		req.AddCookie(c)
	}
	return req
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestCookieStore_RoundTrip(t *testing.T) {
	store := NewCookieStore("secret")

	sess, err := store.Load(httptest.NewRequest(http.MethodGet, "/", http.NoBody))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := sess.Set("user", profile{Name: "Ada"}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	rec := httptest.NewRecorder()
	if err := store.Save(rec, httptest.NewRequest(http.MethodGet, "/", http.NoBody), sess); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	c := findCookie(rec, CookieName)
	if c == nil {
		t.Fatal("expected session cookie")
	}
	if !c.HttpOnly {
		t.Fatal("session cookie must be HttpOnly")
	}

	loaded, err := store.Load(replay(t, rec))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	var got profile
	if ok, _ := loaded.Get("user", &got); !ok || got.Name != "Ada" {
		t.Fatalf("expected Ada in reloaded session, got ok=%v %+v", ok, got)
	}
}

func TestCookieStore_TamperedCookieIsEmpty(t *testing.T) {
	store := NewCookieStore("secret")
	sess := New()
	_ = sess.Set("user", profile{Name: "Ada"})

	rec := httptest.NewRecorder()
	if err := store.Save(rec, httptest.NewRequest(http.MethodGet, "/", http.NoBody), sess); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	c := findCookie(rec, CookieName)

	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: c.Value + "tampered"})

	loaded, err := store.Load(req)
	if err != nil {
		t.Fatalf("tampering must not surface as an error: %v", err)
	}
	if loaded.Len() != 0 {
		t.Fatalf("expected empty session, got %d keys", loaded.Len())
	}
}

func TestCookieStore_OtherSecretIsEmpty(t *testing.T) {
	sess := New()
	_ = sess.Set("user", profile{Name: "Ada"})

	rec := httptest.NewRecorder()
	if err := NewCookieStore("one").Save(rec, httptest.NewRequest(http.MethodGet, "/", http.NoBody), sess); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, _ := NewCookieStore("two").Load(replay(t, rec))
	if loaded.Has("user") {
		t.Fatal("a cookie signed with another key must not be trusted")
	}
}

func TestCookieStore_EmptySessionDeletesCookie(t *testing.T) {
	store := NewCookieStore("secret")

	rec := httptest.NewRecorder()
	if err := store.Save(rec, httptest.NewRequest(http.MethodGet, "/", http.NoBody), New()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	c := findCookie(rec, CookieName)
	if c == nil || c.MaxAge >= 0 {
		t.Fatalf("expected a deleting cookie, got %+v", c)
	}
}
