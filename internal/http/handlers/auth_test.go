package handlers

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/modboard/modboard/internal/auth"
	"github.com/modboard/modboard/internal/auth/providers"
	"github.com/modboard/modboard/internal/botapi"
	"github.com/modboard/modboard/internal/http/authn"
)

func newLoginHarness(t *testing.T) *handlerHarness {
	t.Helper()

	hash, err := auth.HashPassword("correct horse")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	provider, err := providers.NewPasswordProvider("1001", hash)
	if err != nil {
		t.Fatalf("NewPasswordProvider: %v", err)
	}
	hh := newHandlerHarness(t, newFakeDashboard())
	hh.h.Auth = provider
	return hh
}

func TestHandleLoginPostRejectsBadPassword(t *testing.T) {
	hh := newLoginHarness(t)

	c, rec := hh.request(http.MethodPost, "/login", url.Values{
		"user_id":  {"1001"},
		"password": {"wrong"},
	})
	if err := hh.h.HandleLoginPost(c); err != nil {
		t.Fatalf("HandleLoginPost: %v", err)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if !strings.Contains(rec.Body.String(), invalidLoginMessage) {
		t.Fatalf("body missing error message")
	}
	if got := hh.sessions.GetString(hh.ctx, authn.SessionKeyUserID); got != "" {
		t.Fatalf("session user = %q after failed login", got)
	}
}

func TestHandleLoginPostRejectsUnknownUser(t *testing.T) {
	hh := newLoginHarness(t)

	c, rec := hh.request(http.MethodPost, "/login", url.Values{
		"user_id":  {"2002"},
		"password": {"correct horse"},
	})
	if err := hh.h.HandleLoginPost(c); err != nil {
		t.Fatalf("HandleLoginPost: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestHandleLoginPostStartsSessionAndFollowsNext(t *testing.T) {
	hh := newLoginHarness(t)

	c, rec := hh.request(http.MethodPost, "/login", url.Values{
		"user_id":  {"<@1001>"},
		"password": {"correct horse"},
		"next":     {"/?tab=bans"},
	})
	if err := hh.h.HandleLoginPost(c); err != nil {
		t.Fatalf("HandleLoginPost: %v", err)
	}

	assertRedirect(t, rec, "/?tab=bans")
	if got := hh.sessions.GetString(c.Request().Context(), authn.SessionKeyUserID); got != "1001" {
		t.Fatalf("session user = %q", got)
	}
}

func TestHandleLoginPostDropsExternalNext(t *testing.T) {
	hh := newLoginHarness(t)

	c, rec := hh.request(http.MethodPost, "/login", url.Values{
		"user_id":  {"1001"},
		"password": {"correct horse"},
		"next":     {"https://evil.example/"},
	})
	if err := hh.h.HandleLoginPost(c); err != nil {
		t.Fatalf("HandleLoginPost: %v", err)
	}
	assertRedirect(t, rec, "/")
}

func TestHandleLoginGetRendersForm(t *testing.T) {
	hh := newLoginHarness(t)

	c, rec := hh.request(http.MethodGet, "/login?next=%2F%3Ftab%3Dstaff", nil)
	if err := hh.h.HandleLoginGet(c); err != nil {
		t.Fatalf("HandleLoginGet: %v", err)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `action="/login"`) || !strings.Contains(body, `name="next" value="/?tab=staff"`) {
		t.Fatalf("login form missing fields: %q", body)
	}
}

func TestHandleLogoutPostDropsSessionAndDrafts(t *testing.T) {
	hh := newLoginHarness(t)
	hh.sessions.Put(hh.ctx, authn.SessionKeyUserID, "1001")
	hh.h.putSettingsDraft(hh.ctx, botapi.Settings{botapi.SettingWelcomeMessage: "unsaved"})
	hh.h.putQuestionsDraft(hh.ctx, botapi.QuestionTypeStaff, []string{"Draft question"})

	c, rec := hh.request(http.MethodPost, "/logout", nil)
	if err := hh.h.HandleLogoutPost(c); err != nil {
		t.Fatalf("HandleLogoutPost: %v", err)
	}

	assertRedirect(t, rec, "/login")
	vary := parseVaryHeader(rec.Header().Get("Vary"))
	if vary["hx-request"] != 1 {
		t.Fatalf("Vary header missing hx-request: %v", vary)
	}
	if got := hh.sessions.GetString(hh.ctx, authn.SessionKeyUserID); got != "" {
		t.Fatalf("session user = %q after logout", got)
	}
	if _, ok := hh.h.settingsDraft(hh.ctx); ok {
		t.Fatalf("settings draft survived logout")
	}
	if _, ok := hh.h.questionsDraft(hh.ctx, botapi.QuestionTypeStaff); ok {
		t.Fatalf("questions draft survived logout")
	}
	if toast := flashToastFrom(t, rec); toast == nil || toast.Title != "Signed out" {
		t.Fatalf("toast = %+v, want Signed out", toast)
	}
}

func TestHandleLogoutPostHTMXUsesHXRedirect(t *testing.T) {
	hh := newLoginHarness(t)
	hh.sessions.Put(hh.ctx, authn.SessionKeyUserID, "1001")

	c, rec := hh.request(http.MethodPost, "/logout", nil)
	c.Request().Header.Set("HX-Request", "true")
	if err := hh.h.HandleLogoutPost(c); err != nil {
		t.Fatalf("HandleLogoutPost: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got := rec.Header().Get("HX-Redirect"); got != "/login" {
		t.Fatalf("HX-Redirect = %q, want %q", got, "/login")
	}
	if got := hh.sessions.GetString(hh.ctx, authn.SessionKeyUserID); got != "" {
		t.Fatalf("session user = %q after logout", got)
	}
}
