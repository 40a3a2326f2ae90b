package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"slices"
	"strings"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/labstack/echo/v5"
	"github.com/modboard/modboard/internal/auth"
	"github.com/modboard/modboard/internal/botapi"
	"github.com/modboard/modboard/internal/dashboard"
	"github.com/modboard/modboard/internal/http/authn"
	"github.com/modboard/modboard/internal/http/viewmodels"
)

type reviewCall struct {
	ID         string
	Action     botapi.ReviewAction
	ReviewerID string
}

type fakeDashboard struct {
	snap     *dashboard.Snapshot
	features dashboard.Features

	refreshes  int
	refreshErr error

	savedSettings   []botapi.Settings
	saveSettingsErr error

	savedQuestions   map[string][]string
	saveQuestionsErr error

	reviews   []reviewCall
	reviewed  bool
	reviewErr error

	sent    []botapi.SendMessageRequest
	sendErr error
}

func newFakeDashboard() *fakeDashboard {
	features := dashboard.AllFeatures()
	return &fakeDashboard{
		features: features,
		reviewed: true,
		snap: &dashboard.Snapshot{
			Loaded:   true,
			Features: features,
			Settings: botapi.Settings{
				botapi.SettingWelcomeMessage: "Welcome!",
				botapi.SettingLogChannelID:   "900",
			},
			Questions: botapi.QuestionSet{
				botapi.QuestionTypeStaff: {"Age?", "Why?"},
			},
		},
	}
}

func (f *fakeDashboard) Snapshot() *dashboard.Snapshot { return f.snap }
func (f *fakeDashboard) Features() dashboard.Features  { return f.features }

func (f *fakeDashboard) RefreshNow(context.Context) error {
	f.refreshes++
	return f.refreshErr
}

func (f *fakeDashboard) SaveSettings(_ context.Context, draft botapi.Settings) (botapi.Settings, error) {
	f.savedSettings = append(f.savedSettings, draft.Clone())
	if f.saveSettingsErr != nil {
		return nil, f.saveSettingsErr
	}
	f.snap.Settings = draft.Clone()
	return draft.Clone(), nil
}

func (f *fakeDashboard) SaveQuestions(_ context.Context, qtype string, questions []string) ([]string, error) {
	if f.savedQuestions == nil {
		f.savedQuestions = make(map[string][]string)
	}
	f.savedQuestions[qtype] = slices.Clone(questions)
	if f.saveQuestionsErr != nil {
		return nil, f.saveQuestionsErr
	}
	f.snap.Questions = f.snap.Questions.With(qtype, questions)
	return slices.Clone(questions), nil
}

func (f *fakeDashboard) ReviewApplication(_ context.Context, id string, action botapi.ReviewAction, reviewerID string) (bool, error) {
	f.reviews = append(f.reviews, reviewCall{ID: id, Action: action, ReviewerID: reviewerID})
	return f.reviewed && f.reviewErr == nil, f.reviewErr
}

func (f *fakeDashboard) SendMessage(_ context.Context, fromStaff, toUser, message string) error {
	if strings.TrimSpace(toUser) == "" || strings.TrimSpace(message) == "" {
		return dashboard.ErrEmptyMessage
	}
	f.sent = append(f.sent, botapi.SendMessageRequest{FromStaff: fromStaff, ToUser: toUser, Message: message})
	return f.sendErr
}

// handlerHarness is one signed-in operator session shared across requests.
type handlerHarness struct {
	t        *testing.T
	h        *Handlers
	sessions *scs.SessionManager
	ctx      context.Context
}

func newHandlerHarness(t *testing.T, dash DashboardClient) *handlerHarness {
	t.Helper()

	sessions := scs.New()
	ctx, err := sessions.Load(context.Background(), "")
	if err != nil {
		t.Fatalf("sessions.Load() error = %v", err)
	}
	return &handlerHarness{
		t:        t,
		h:        &Handlers{Dashboard: dash, Sessions: sessions},
		sessions: sessions,
		ctx:      ctx,
	}
}

// request builds a context for an authenticated request. form is sent as an
// urlencoded body when non-nil.
func (hh *handlerHarness) request(method, target string, form url.Values) (*echo.Context, *httptest.ResponseRecorder) {
	hh.t.Helper()

	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req = req.WithContext(hh.ctx)

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	c.Set(authn.ContextKeyPrincipal, auth.Principal{UserID: "1001", Role: auth.RoleAdmin, Method: auth.MethodPassword})
	return c, rec
}

func flashToastFrom(t *testing.T, rec *httptest.ResponseRecorder) *viewmodels.ToastViewData {
	t.Helper()

	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name != flashToastCookieName || cookie.Value == "" {
			continue
		}
		raw, err := base64.RawURLEncoding.DecodeString(cookie.Value)
		if err != nil {
			t.Fatalf("decode toast cookie: %v", err)
		}
		var toast viewmodels.ToastViewData
		if err := json.Unmarshal(raw, &toast); err != nil {
			t.Fatalf("unmarshal toast cookie: %v", err)
		}
		return &toast
	}
	return nil
}

func assertRedirect(t *testing.T, rec *httptest.ResponseRecorder, location string) {
	t.Helper()

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if got := rec.Header().Get("Location"); got != location {
		t.Fatalf("Location = %q, want %q", got, location)
	}
}
