package handlers

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/modboard/modboard/internal/botapi"
	"github.com/modboard/modboard/internal/dashboard"
	"github.com/modboard/modboard/internal/http/viewmodels"
	"github.com/modboard/modboard/internal/http/views"
)

const recentItems = 5

var settingLabels = map[string]string{
	botapi.SettingTicketCategoryID:     "Ticket category",
	botapi.SettingStaffRoleID:          "Staff role",
	botapi.SettingAdminRoleID:          "Admin role",
	botapi.SettingVerifiedRoleID:       "Verified role",
	botapi.SettingLogChannelID:         "Log channel",
	botapi.SettingApplicationChannelID: "Application channel",
	botapi.SettingWelcomeMessage:       "Welcome message",
	botapi.SettingWelcomeChannelID:     "Welcome channel",
}

var questionLabels = map[string]string{
	botapi.QuestionTypeStaff:     "Staff application",
	botapi.QuestionTypeAdmin:     "Admin application",
	botapi.QuestionTypeDeveloper: "Developer application",
}

// HandleDashboard renders one tab from the current snapshot and the
// operator's drafts. It never calls the bot API.
func (h *Handlers) HandleDashboard(c *echo.Context) error {
	ctx := c.Request().Context()
	snap := h.Dashboard.Snapshot()
	features := h.Dashboard.Features()
	tab := dashboard.ParseTab(c.QueryParam("tab"), features)

	layout := h.LayoutData(c, tab.Label())
	layout.Tabs = tabLinks(snap, features, tab)
	layout.ActiveTab = tab.String()
	layout.Loaded = snap.Loaded
	if !snap.RefreshedAt.IsZero() {
		layout.RefreshedAt = snap.RefreshedAt.Local().Format("2006-01-02 15:04:05")
	}
	layout.RefreshAlert = refreshAlert(snap)
	layout.PollSeconds = int(h.Cfg.RefreshInterval.Round(time.Second) / time.Second)

	data := viewmodels.DashboardViewData{Layout: layout, Tab: tab.String()}
	switch tab {
	case dashboard.TabTickets:
		data.Tickets = ticketRows(snap.Tickets)
	case dashboard.TabApplications:
		data.Applications = applicationRows(snap.Applications)
	case dashboard.TabQuestions:
		data.Questions = h.questionsView(ctx, snap)
	case dashboard.TabWarnings:
		data.Warnings = warningRows(snap.Warnings)
	case dashboard.TabBans:
		data.Bans = banRows(snap.Bans)
	case dashboard.TabStaff:
		data.Staff = staffRows(snap.Staff)
	case dashboard.TabMessages:
		data.Messages = viewmodels.MessagesViewData{
			Logs:      messageLogRows(snap.MessageLogs),
			FromStaff: h.principal(c),
		}
	case dashboard.TabSettings:
		data.Settings = h.settingsView(ctx, snap)
	default:
		data.Overview = overviewView(snap)
	}

	addVary(c, "HX-Request")
	return h.RenderComponent(c, views.DashboardPage(data))
}

func tabLinks(snap *dashboard.Snapshot, features dashboard.Features, active dashboard.Tab) []viewmodels.TabLink {
	tabs := dashboard.Tabs(features)
	out := make([]viewmodels.TabLink, 0, len(tabs))
	for _, t := range tabs {
		link := viewmodels.TabLink{
			Key:    t.String(),
			Label:  t.Label(),
			Href:   views.TabURL(t.String()),
			Active: t == active,
		}
		switch t {
		case dashboard.TabTickets:
			link.Badge = countBadge(snap.Stats.Tickets.Open)
		case dashboard.TabApplications:
			link.Badge = countBadge(len(snap.PendingApplications()))
		}
		out = append(out, link)
	}
	return out
}

func countBadge(n int) string {
	if n <= 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func refreshAlert(snap *dashboard.Snapshot) *viewmodels.AlertBanner {
	failed := snap.Failed()
	if len(failed) == 0 {
		return nil
	}
	items := make([]string, 0, len(failed))
	for _, r := range failed {
		items = append(items, fmt.Sprintf("%s: %s", r, snap.LastErrors[r]))
	}
	return &viewmodels.AlertBanner{
		Title:   "Some data could not be refreshed",
		Message: "Showing the last values received from the bot.",
		Items:   items,
	}
}

func overviewView(snap *dashboard.Snapshot) viewmodels.OverviewViewData {
	stats := snap.Stats
	cards := []viewmodels.StatCard{
		{Label: "Members", Value: strconv.Itoa(stats.Members)},
		{
			Label:  "Open tickets",
			Value:  strconv.Itoa(stats.Tickets.Open),
			Detail: fmt.Sprintf("%d total", stats.Tickets.Total),
			Href:   views.TabURL(dashboard.TabTickets.String()),
		},
		{
			Label:  "Pending applications",
			Value:  strconv.Itoa(stats.Applications.Pending),
			Detail: fmt.Sprintf("%d total", stats.Applications.Total),
			Href:   views.TabURL(dashboard.TabApplications.String()),
		},
		{Label: "Warnings", Value: strconv.Itoa(stats.Warnings), Href: views.TabURL(dashboard.TabWarnings.String())},
	}
	bans := viewmodels.StatCard{Label: "Bans", Value: strconv.Itoa(stats.Bans)}
	if snap.Features.Bans {
		bans.Href = views.TabURL(dashboard.TabBans.String())
	}
	cards = append(cards, bans)

	return viewmodels.OverviewViewData{
		Cards:              cards,
		RecentTickets:      ticketRows(snap.RecentTickets(recentItems)),
		RecentApplications: applicationRows(snap.RecentApplications(recentItems)),
	}
}

func ticketRows(tickets []botapi.Ticket) []viewmodels.TicketRow {
	out := make([]viewmodels.TicketRow, 0, len(tickets))
	for _, t := range tickets {
		class := "muted"
		if t.Status == botapi.TicketStatusOpen {
			class = "success"
		}
		out = append(out, viewmodels.TicketRow{
			ID:          t.ID.String(),
			ChannelID:   t.ChannelID.String(),
			UserID:      t.UserID.String(),
			Status:      t.Status,
			StatusClass: class,
			CreatedAt:   t.CreatedAt,
		})
	}
	return out
}

func applicationStatusClass(status string) string {
	switch status {
	case botapi.ApplicationStatusPending:
		return "warning"
	case botapi.ApplicationStatusApproved:
		return "success"
	case botapi.ApplicationStatusDenied:
		return "danger"
	default:
		return "muted"
	}
}

func applicationRows(apps []botapi.Application) []viewmodels.ApplicationRow {
	out := make([]viewmodels.ApplicationRow, 0, len(apps))
	for _, app := range apps {
		answers := make([]viewmodels.AnswerRow, 0, len(app.Answers))
		for _, a := range app.Answers {
			answers = append(answers, viewmodels.AnswerRow{Question: a.Question, Answer: a.Answer})
		}
		out = append(out, viewmodels.ApplicationRow{
			ID:          app.ID.String(),
			Type:        app.Type,
			UserID:      app.UserID.String(),
			Status:      app.Status,
			StatusClass: applicationStatusClass(app.Status),
			CreatedAt:   app.CreatedAt,
			Answers:     answers,
			Reviewable:  app.Status == botapi.ApplicationStatusPending,
			ReviewHref:  "/applications/" + url.PathEscape(app.ID.String()) + "/review",
		})
	}
	return out
}

func warningRows(warnings []botapi.Warning) []viewmodels.WarningRow {
	out := make([]viewmodels.WarningRow, 0, len(warnings))
	for _, w := range warnings {
		out = append(out, viewmodels.WarningRow{
			ID:          w.ID.String(),
			UserID:      w.UserID.String(),
			ModeratorID: w.ModeratorID.String(),
			Reason:      w.Reason,
			Timestamp:   w.Timestamp,
		})
	}
	return out
}

func banRows(bans []botapi.Ban) []viewmodels.BanRow {
	out := make([]viewmodels.BanRow, 0, len(bans))
	for _, b := range bans {
		out = append(out, viewmodels.BanRow{
			ID:          b.ID.String(),
			UserID:      b.UserID.String(),
			ModeratorID: b.ModeratorID.String(),
			Reason:      b.Reason,
			Duration:    string(b.Duration),
			Active:      b.Active,
			Timestamp:   b.Timestamp,
		})
	}
	return out
}

func staffRows(staff []botapi.StaffMember) []viewmodels.StaffRow {
	out := make([]viewmodels.StaffRow, 0, len(staff))
	for _, s := range staff {
		out = append(out, viewmodels.StaffRow{
			UserID:     s.UserID.String(),
			RankName:   s.Rank.Name,
			RankLevel:  strconv.Itoa(s.Rank.Level),
			PromotedBy: s.PromotedBy.String(),
			PromotedAt: s.PromotedAt,
		})
	}
	return out
}

func messageLogRows(logs []botapi.MessageLog) []viewmodels.MessageLogRow {
	out := make([]viewmodels.MessageLogRow, 0, len(logs))
	for _, m := range logs {
		out = append(out, viewmodels.MessageLogRow{
			ID:        m.ID.String(),
			UserID:    m.UserID.String(),
			ChannelID: m.ChannelID.String(),
			Content:   m.Content,
			Timestamp: m.Timestamp,
		})
	}
	return out
}

func (h *Handlers) settingsView(ctx context.Context, snap *dashboard.Snapshot) viewmodels.SettingsViewData {
	draft := h.currentSettings(ctx, snap)
	var data viewmodels.SettingsViewData
	for _, key := range botapi.SettingKeys {
		field := viewmodels.SettingField{
			Key:       key,
			Label:     settingLabels[key],
			Value:     draft[key],
			Multiline: key == botapi.SettingWelcomeMessage,
			Changed:   draft[key] != snap.Settings[key],
		}
		data.Dirty = data.Dirty || field.Changed
		data.Fields = append(data.Fields, field)
	}
	return data
}

func (h *Handlers) questionsView(ctx context.Context, snap *dashboard.Snapshot) viewmodels.QuestionsViewData {
	var data viewmodels.QuestionsViewData
	for _, qtype := range botapi.QuestionTypes {
		questions := h.currentQuestions(ctx, snap, qtype)
		data.Lists = append(data.Lists, viewmodels.QuestionList{
			Type:      qtype,
			Label:     questionLabels[qtype],
			Questions: questions,
			Dirty:     !slices.Equal(questions, snap.Questions[qtype]),
			Action:    "/questions/" + qtype,
		})
	}
	return data
}
