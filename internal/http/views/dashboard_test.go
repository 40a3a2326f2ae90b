package views

import (
	"testing"

	"github.com/modboard/modboard/internal/http/viewmodels"
)

func TestDashboardOverviewPollsForFreshData(t *testing.T) {
	t.Parallel()

	html := renderViewComponent(t, DashboardPage(viewmodels.DashboardViewData{
		Layout: viewmodels.LayoutData{Loaded: true, CSRFToken: "tok"},
		Tab:    "overview",
		Overview: viewmodels.OverviewViewData{
			Cards: []viewmodels.StatCard{{Label: "Members", Value: "42"}},
			RecentTickets: []viewmodels.TicketRow{
				{ID: "7", UserID: "111", Status: "open"},
			},
		},
	}))

	assertContains(t, html, `id="dashboard-view"`)
	assertContains(t, html, `hx-trigger="every 10s"`)
	assertContains(t, html, `hx-select="#dashboard-view"`)
	assertContains(t, html, `<span class="stat-value">42</span>`)
	assertContains(t, html, `id="recent-tickets"`)
	assertContains(t, html, `<td>#7</td>`)
	assertNotContains(t, html, `id="loading"`)
}

func TestDashboardShowsLoadingBeforeFirstRefresh(t *testing.T) {
	t.Parallel()

	html := renderViewComponent(t, DashboardPage(viewmodels.DashboardViewData{Tab: "overview"}))
	assertContains(t, html, `id="loading"`)
}

func TestDashboardFormTabsDoNotPoll(t *testing.T) {
	t.Parallel()

	for _, tab := range []string{"settings", "questions", "messages"} {
		html := renderViewComponent(t, DashboardPage(viewmodels.DashboardViewData{Tab: tab}))
		assertNotContains(t, html, `hx-trigger="every 10s"`)
	}
}

func TestDashboardApplicationsRenderReviewForms(t *testing.T) {
	t.Parallel()

	html := renderViewComponent(t, DashboardPage(viewmodels.DashboardViewData{
		Layout: viewmodels.LayoutData{Loaded: true, CSRFToken: "tok"},
		Tab:    "applications",
		Applications: []viewmodels.ApplicationRow{
			{
				ID: "5", Type: "staff", UserID: "222", Status: "pending",
				Answers:    []viewmodels.AnswerRow{{Question: "Why?", Answer: "<script>"}},
				Reviewable: true, ReviewHref: "/applications/5/review",
			},
			{ID: "6", Type: "admin", UserID: "333", Status: "approved"},
		},
	}))

	assertContains(t, html, `id="application-5"`)
	assertContains(t, html, `action="/applications/5/review"`)
	assertContains(t, html, `value="approve"`)
	assertContains(t, html, `value="deny"`)
	assertContains(t, html, `&lt;script&gt;`)
	assertNotContains(t, html, `action="/applications/6/review"`)
}

func TestDashboardQuestionsEditor(t *testing.T) {
	t.Parallel()

	html := renderViewComponent(t, DashboardPage(viewmodels.DashboardViewData{
		Tab: "questions",
		Questions: viewmodels.QuestionsViewData{Lists: []viewmodels.QuestionList{
			{Type: "staff", Label: "Staff", Questions: []string{"Age?", "Why?"}, Dirty: true, Action: "/questions/staff"},
		}},
	}))

	assertContains(t, html, `id="questions-staff"`)
	assertContains(t, html, `action="/questions/staff"`)
	assertContains(t, html, `name="questions" value="Age?"`)
	assertContains(t, html, `value="remove:1"`)
	assertContains(t, html, `value="add"`)
	assertContains(t, html, `value="save"`)
	assertContains(t, html, `Unsaved changes.`)
}

func TestDashboardSettingsForm(t *testing.T) {
	t.Parallel()

	html := renderViewComponent(t, DashboardPage(viewmodels.DashboardViewData{
		Tab: "settings",
		Settings: viewmodels.SettingsViewData{
			Dirty: true,
			Fields: []viewmodels.SettingField{
				{Key: "welcome_message", Label: "Welcome message", Value: "Hi \"all\"", Multiline: true, Changed: true},
				{Key: "log_channel_id", Label: "Log channel", Value: "900"},
			},
		},
	}))

	assertContains(t, html, `id="settings-form"`)
	assertContains(t, html, `class="field changed"`)
	assertContains(t, html, `name="welcome_message"`)
	assertContains(t, html, `Hi &#34;all&#34;`)
	assertContains(t, html, `name="log_channel_id" value="900"`)
	assertContains(t, html, `You have unsaved changes.`)
}

func TestDashboardMessagesCompose(t *testing.T) {
	t.Parallel()

	html := renderViewComponent(t, DashboardPage(viewmodels.DashboardViewData{
		Tab:      "messages",
		Messages: viewmodels.MessagesViewData{FromStaff: "999"},
	}))

	assertContains(t, html, `id="compose"`)
	assertContains(t, html, `name="to_user"`)
	assertContains(t, html, `name="message"`)
	assertContains(t, html, `No messages logged.`)
}

func TestDashboardRefreshButtonKeepsTab(t *testing.T) {
	t.Parallel()

	html := renderViewComponent(t, DashboardPage(viewmodels.DashboardViewData{Tab: "bans"}))
	assertContains(t, html, `action="/refresh"`)
	assertContains(t, html, `name="tab" value="bans"`)
	assertContains(t, html, `No bans.`)
}

func TestLoginPageKeepsNext(t *testing.T) {
	t.Parallel()

	html := renderViewComponent(t, LoginPage(viewmodels.LoginViewData{
		CSRFToken:    "tok",
		Next:         "/?tab=bans",
		ErrorMessage: "Invalid user ID or password.",
	}))

	assertContains(t, html, `action="/login"`)
	assertContains(t, html, `name="next" value="/?tab=bans"`)
	assertContains(t, html, `Invalid user ID or password.`)
}

func TestDashboardSanitizesUnsafeLinks(t *testing.T) {
	t.Parallel()

	html := renderViewComponent(t, DashboardPage(viewmodels.DashboardViewData{
		Layout: viewmodels.LayoutData{Loaded: true},
		Tab:    "overview",
		Overview: viewmodels.OverviewViewData{
			Cards: []viewmodels.StatCard{
				{Label: "Members", Value: "42", Href: "javascript:alert(1)"},
				{Label: "Bans", Value: "3", Href: "/?tab=bans"},
			},
		},
	}))

	assertNotContains(t, html, `javascript:`)
	assertContains(t, html, `about:invalid#TemplFailedSanitizationURL`)
	assertContains(t, html, `href="/?tab=bans"`)
}
