package auth

import (
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"
	"time"
)

func TestGeneratePassword_Format(t *testing.T) {
	pw := GeneratePassword()

	parts := strings.Split(pw, "-")
	if len(parts) != 3 {
		t.Fatalf("expected 3 words separated by dashes, got %d parts: %s", len(parts), pw)
	}
	for _, part := range parts {
		if !slices.Contains(festivalWords, part) {
			t.Errorf("word %q not in festivalWords list", part)
		}
	}
}

func TestGeneratePassword_Randomness(t *testing.T) {
	passwords := make(map[string]bool)
	for i := 0; i < 10; i++ {
		passwords[GeneratePassword()] = true
	}
	if len(passwords) < 3 {
		t.Errorf("expected more password variety, got only %d unique passwords", len(passwords))
	}
}

func TestLogin(t *testing.T) {
	a := New("marigold-tabla-quiz")

	if _, ok := a.Login("wrong"); ok {
		t.Error("expected login to fail with wrong password")
	}
	if _, ok := a.Login(""); ok {
		t.Error("expected login to fail with empty password")
	}

	token, ok := a.Login("marigold-tabla-quiz")
	if !ok {
		t.Fatal("expected login to succeed")
	}
	if len(token) != tokenLength {
		t.Errorf("expected %d-char token, got %d", tokenLength, len(token))
	}
	if !a.ValidateSession(token) {
		t.Error("expected new session to be valid")
	}

	other, _ := a.Login("marigold-tabla-quiz")
	if other == token {
		t.Error("expected distinct tokens per login")
	}
	if a.ActiveSessions() != 2 {
		t.Errorf("expected 2 active sessions, got %d", a.ActiveSessions())
	}
}

func TestLogout(t *testing.T) {
	a := New("pw")
	token, _ := a.Login("pw")

	a.Logout(token)
	if a.ValidateSession(token) {
		t.Error("expected session to be invalid after logout")
	}
	a.Logout("unknown")
}

func TestValidateSession_Expired(t *testing.T) {
	a := New("pw")
	now := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	a.now = func() time.Time { return now }

	token, _ := a.Login("pw")
	now = now.Add(SessionExpiry - time.Minute)
	if !a.ValidateSession(token) {
		t.Fatal("expected session valid before expiry")
	}

	now = now.Add(2 * time.Minute)
	if a.ActiveSessions() != 0 {
		t.Errorf("expected expired session not counted")
	}
	if a.ValidateSession(token) {
		t.Error("expected session invalid after expiry")
	}
	if _, exists := a.sessions[token]; exists {
		t.Error("expected expired session to be removed")
	}
}

func TestRequireAuthAPI(t *testing.T) {
	a := New("pw")
	token, _ := a.Login("pw")
	handler := a.RequireAuthAPI(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name   string
		cookie *http.Cookie
		want   int
	}{
		{"no cookie", nil, http.StatusUnauthorized},
		{"bad token", &http.Cookie{Name: CookieName, Value: "nope"}, http.StatusUnauthorized},
		{"valid", &http.Cookie{Name: CookieName, Value: token}, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/admin/results", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, w.Code)
			}
			if tt.want == http.StatusUnauthorized && !strings.Contains(w.Body.String(), "UNAUTHORIZED") {
				t.Errorf("expected UNAUTHORIZED body, got %s", w.Body.String())
			}
		})
	}
}

func TestSessionCookies(t *testing.T) {
	w := httptest.NewRecorder()
	SetSessionCookie(w, "tok")
	c := w.Result().Cookies()
	if len(c) != 1 || c[0].Name != CookieName || c[0].Value != "tok" || !c[0].HttpOnly {
		t.Errorf("unexpected session cookie: %+v", c)
	}

	w = httptest.NewRecorder()
	ClearSessionCookie(w)
	c = w.Result().Cookies()
	if len(c) != 1 || c[0].MaxAge >= 0 {
		t.Errorf("expected expiring cookie, got %+v", c)
	}
}
