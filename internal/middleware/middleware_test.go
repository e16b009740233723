package middleware

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"vet-clinic/internal/adapters/capabilities/roletable"
	memsession "vet-clinic/internal/adapters/session/memory"
	"vet-clinic/internal/domain/access"
	"vet-clinic/internal/platform/flash"
	"vet-clinic/internal/platform/logger"
	"vet-clinic/internal/ports/auth"
	"vet-clinic/internal/ports/session"
)

func sessionMW(store session.Store) func(http.Handler) http.Handler {
	return SessionContext(SessionOptions{Store: store, TTL: time.Hour})
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookie {
			return c
		}
	}
	return nil
}

func TestSessionContext_UntouchedSessionSetsNoCookie(t *testing.T) {
	store := memsession.NewStore()
	h := sessionMW(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetSession(r.Context()); !ok {
			t.Fatalf("expected session in context")
		}
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if sessionCookie(rec) != nil {
		t.Fatalf("untouched session must not set a cookie")
	}
}

func TestSessionContext_PersistsAcrossRequests(t *testing.T) {
	store := memsession.NewStore()
	h := sessionMW(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, _ := GetSession(r.Context())
		if r.URL.Path == "/login" {
			s.SetIdentity(auth.Identity{Authenticated: true, Username: "ana", Role: "veterinarian"})
			s.Renew()
			w.WriteHeader(http.StatusNoContent)
			return
		}
		if !s.Identity().Authenticated {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", nil))
	c := sessionCookie(rec)
	if c == nil || !c.HttpOnly {
		t.Fatalf("expected http-only session cookie, got %#v", c)
	}
	// cookie de sesión del navegador; la expiración la maneja el store
	if c.MaxAge != 0 || !c.Expires.IsZero() || strings.Contains(rec.Header().Get("Set-Cookie"), "Max-Age") {
		t.Fatalf("session cookie must not be persistent, got %q", rec.Header().Get("Set-Cookie"))
	}

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(c)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected authenticated request, got %d", rec.Code)
	}
}

func TestSessionContext_RenewDestroysOldID(t *testing.T) {
	store := memsession.NewStore()
	ctx := context.Background()
	_ = store.Save(ctx, "old", session.Data{Identity: auth.Identity{Authenticated: true, Username: "ana"}}, time.Hour)

	h := sessionMW(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, _ := GetSession(r.Context())
		s.Clear()
		s.Renew()
		s.AddFlash(flash.Info("bye"))
		w.WriteHeader(http.StatusSeeOther)
	}))

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "old"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if _, err := store.Load(ctx, "old"); err != session.ErrNotFound {
		t.Fatalf("old session should be destroyed, got %v", err)
	}
	c := sessionCookie(rec)
	if c == nil || c.Value == "old" {
		t.Fatalf("expected a rotated cookie, got %#v", c)
	}
	data, err := store.Load(ctx, c.Value)
	if err != nil || data.Identity.Authenticated || len(data.Flashes) != 1 {
		t.Fatalf("unexpected new session data %#v err=%v", data, err)
	}
}

func TestGuard_RedirectsWithFlash(t *testing.T) {
	store := memsession.NewStore()
	guard := NewGuard(roletable.NewResolver(), logger.Discard())
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	cases := []struct {
		name     string
		identity auth.Identity
		want     int
		flash    string
	}{
		{"anonymous", auth.Anonymous(), http.StatusSeeOther, MsgLoginRequired},
		{"veterinarian", auth.Identity{Authenticated: true, Username: "v", Role: "veterinarian"}, http.StatusSeeOther, MsgPermissionDenied},
		{"administrator", auth.Identity{Authenticated: true, Username: "a", Role: "administrator"}, http.StatusOK, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var seen *session.Session
			h := sessionMW(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen, _ = GetSession(r.Context())
				if tc.identity.Authenticated {
					seen.SetIdentity(tc.identity)
				}
				guard(access.CapUsers)(ok).ServeHTTP(w, r)
			}))

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users", nil))

			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, rec.Code)
			}
			if tc.want == http.StatusSeeOther && rec.Header().Get("Location") != "/" {
				t.Fatalf("expected redirect to /, got %q", rec.Header().Get("Location"))
			}
			flashes := seen.PopFlashes()
			if tc.flash == "" && len(flashes) != 0 {
				t.Fatalf("unexpected flashes %#v", flashes)
			}
			if tc.flash != "" && (len(flashes) != 1 || flashes[0].Message != tc.flash) {
				t.Fatalf("expected flash %q, got %#v", tc.flash, flashes)
			}
		})
	}
}

func TestRequestLog_WritesLine(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Options{Level: logger.Info, Output: &buf})
	h := RequestLog(log)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/about", nil))

	out := buf.String()
	if !strings.Contains(out, "path=/about") || !strings.Contains(out, "status=418") {
		t.Fatalf("unexpected log line %q", out)
	}
}
