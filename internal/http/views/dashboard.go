package views

import (
	"context"
	"strconv"

	"github.com/a-h/templ"
	"github.com/modboard/modboard/internal/http/viewmodels"
)

// pollingTabs re-render themselves from the server snapshot every refresh
// interval. Tabs holding a form are excluded so typing is never interrupted.
var pollingTabs = map[string]bool{
	"overview":     true,
	"tickets":      true,
	"applications": true,
	"warnings":     true,
	"bans":         true,
	"staff":        true,
}

func DashboardPage(data viewmodels.DashboardViewData) templ.Component {
	body := component(func(ctx context.Context, h *htmlWriter) {
		h.rawf(`<div id="dashboard-view" data-tab="%s"`, attr(data.Tab))
		if pollingTabs[data.Tab] {
			poll := data.Layout.PollSeconds
			if poll <= 0 {
				poll = 10
			}
			h.rawf(` hx-get="%s" hx-trigger="every %ds" hx-select="#dashboard-view" hx-swap="outerHTML"`, urlAttr(TabURL(data.Tab)), poll)
		}
		h.raw(`>`)

		if !data.Layout.Loaded {
			h.raw(`<p class="muted" id="loading">Loading data from the bot...</p>`)
		}

		switch data.Tab {
		case "tickets":
			writeTickets(h, "tickets-table", data.Tickets)
		case "applications":
			writeApplications(h, data.Layout.CSRFToken, data.Applications, true)
		case "questions":
			writeQuestions(h, data.Layout.CSRFToken, data.Questions)
		case "warnings":
			writeWarnings(h, data.Warnings)
		case "bans":
			writeBans(h, data.Bans)
		case "staff":
			writeStaff(h, data.Staff)
		case "messages":
			writeMessages(h, data.Layout.CSRFToken, data.Messages)
		case "settings":
			writeSettings(h, data.Layout.CSRFToken, data.Settings)
		default:
			writeOverview(h, data.Overview)
		}

		h.raw(`<form class="refresh" method="post" action="/refresh">`)
		h.rawf(`<input type="hidden" name="csrf" value="%s">`, attr(data.Layout.CSRFToken))
		h.rawf(`<input type="hidden" name="tab" value="%s">`, attr(data.Tab))
		h.raw(`<button type="submit" class="btn-sm">Refresh now</button></form>`)
		h.raw(`</div>`)
	})
	return Layout(data.Layout, body)
}

func writeOverview(h *htmlWriter, data viewmodels.OverviewViewData) {
	h.raw(`<section class="cards">`)
	for _, card := range data.Cards {
		h.raw(`<div class="card stat">`)
		h.rawf(`<span class="stat-label">%s</span>`, templ.EscapeString(card.Label))
		h.rawf(`<span class="stat-value">%s</span>`, templ.EscapeString(card.Value))
		if card.Detail != "" {
			h.rawf(`<span class="stat-detail">%s</span>`, templ.EscapeString(card.Detail))
		}
		if card.Href != "" {
			h.rawf(`<a href="%s">View</a>`, urlAttr(card.Href))
		}
		h.raw(`</div>`)
	}
	h.raw(`</section>`)

	h.raw(`<section><h2>Recent tickets</h2>`)
	writeTickets(h, "recent-tickets", data.RecentTickets)
	h.raw(`</section><section><h2>Recent applications</h2>`)
	writeApplications(h, "", data.RecentApplications, false)
	h.raw(`</section>`)
}

func writeTable(h *htmlWriter, id string, headers []string, rows [][]string, empty string) {
	if len(rows) == 0 {
		h.rawf(`<p id="%s" class="empty muted">%s</p>`, attr(id), templ.EscapeString(empty))
		return
	}
	h.rawf(`<table id="%s"><thead><tr>`, attr(id))
	for _, header := range headers {
		h.rawf(`<th>%s</th>`, templ.EscapeString(header))
	}
	h.raw(`</tr></thead><tbody>`)
	for _, row := range rows {
		h.raw(`<tr>`)
		for _, cell := range row {
			h.rawf(`<td>%s</td>`, templ.EscapeString(OrDash(cell)))
		}
		h.raw(`</tr>`)
	}
	h.raw(`</tbody></table>`)
}

func writeTickets(h *htmlWriter, id string, tickets []viewmodels.TicketRow) {
	rows := make([][]string, 0, len(tickets))
	for _, t := range tickets {
		rows = append(rows, []string{"#" + t.ID, t.UserID, t.ChannelID, t.Status, t.CreatedAt})
	}
	writeTable(h, id, []string{"Ticket", "User", "Channel", "Status", "Opened"}, rows, "No tickets.")
}

func writeApplications(h *htmlWriter, csrf string, apps []viewmodels.ApplicationRow, detailed bool) {
	if len(apps) == 0 {
		h.raw(`<p class="empty muted">No applications.</p>`)
		return
	}
	h.raw(`<ul class="applications">`)
	for _, app := range apps {
		h.rawf(`<li id="application-%s" class="card">`, attr(app.ID))
		h.rawf(`<div class="application-head"><strong>%s</strong> application from <code>%s</code> `,
			templ.EscapeString(app.Type), templ.EscapeString(app.UserID))
		h.rawf(`<span class="%s">%s</span> <span class="muted">%s</span></div>`,
			badgeClass(app.StatusClass), templ.EscapeString(app.Status), templ.EscapeString(app.CreatedAt))
		if detailed && len(app.Answers) > 0 {
			h.raw(`<dl class="answers">`)
			for _, a := range app.Answers {
				h.rawf(`<dt>%s</dt><dd>%s</dd>`, templ.EscapeString(a.Question), templ.EscapeString(OrDash(a.Answer)))
			}
			h.raw(`</dl>`)
		}
		if detailed && app.Reviewable {
			h.rawf(`<form method="post" action="%s" class="review">`, urlAttr(app.ReviewHref))
			h.rawf(`<input type="hidden" name="csrf" value="%s">`, attr(csrf))
			h.raw(`<button type="submit" name="action" value="approve" class="btn-success">Approve</button>`)
			h.raw(`<button type="submit" name="action" value="deny" class="btn-danger">Deny</button>`)
			h.raw(`</form>`)
		}
		h.raw(`</li>`)
	}
	h.raw(`</ul>`)
}

func writeWarnings(h *htmlWriter, warnings []viewmodels.WarningRow) {
	rows := make([][]string, 0, len(warnings))
	for _, w := range warnings {
		rows = append(rows, []string{w.ID, w.UserID, w.ModeratorID, w.Reason, w.Timestamp})
	}
	writeTable(h, "warnings-table", []string{"ID", "User", "Moderator", "Reason", "When"}, rows, "No warnings.")
}

func writeBans(h *htmlWriter, bans []viewmodels.BanRow) {
	rows := make([][]string, 0, len(bans))
	for _, b := range bans {
		state := "lifted"
		if b.Active {
			state = "active"
		}
		rows = append(rows, []string{b.ID, b.UserID, b.ModeratorID, b.Reason, b.Duration, state, b.Timestamp})
	}
	writeTable(h, "bans-table", []string{"ID", "User", "Moderator", "Reason", "Duration", "State", "When"}, rows, "No bans.")
}

func writeStaff(h *htmlWriter, staff []viewmodels.StaffRow) {
	rows := make([][]string, 0, len(staff))
	for _, s := range staff {
		rows = append(rows, []string{s.UserID, s.RankName, s.RankLevel, s.PromotedBy, s.PromotedAt})
	}
	writeTable(h, "staff-table", []string{"User", "Rank", "Level", "Promoted by", "Promoted"}, rows, "No staff members.")
}

func writeMessages(h *htmlWriter, csrf string, data viewmodels.MessagesViewData) {
	h.raw(`<section class="card"><h2>Send a direct message</h2>`)
	h.raw(`<form id="compose" method="post" action="/messages">`)
	h.rawf(`<input type="hidden" name="csrf" value="%s">`, attr(csrf))
	h.raw(`<label for="to_user">Recipient user ID</label><input id="to_user" name="to_user" inputmode="numeric" required>`)
	h.raw(`<label for="message">Message</label><textarea id="message" name="message" rows="4" required></textarea>`)
	if data.FromStaff != "" {
		h.rawf(`<p class="muted">Sent as <code>%s</code></p>`, templ.EscapeString(data.FromStaff))
	}
	h.raw(`<button type="submit" class="btn-primary">Send</button></form></section>`)

	rows := make([][]string, 0, len(data.Logs))
	for _, m := range data.Logs {
		rows = append(rows, []string{m.ID, m.UserID, m.ChannelID, m.Content, m.Timestamp})
	}
	h.raw(`<section><h2>Message log</h2>`)
	writeTable(h, "messages-table", []string{"ID", "User", "Channel", "Content", "When"}, rows, "No messages logged.")
	h.raw(`</section>`)
}

func writeSettings(h *htmlWriter, csrf string, data viewmodels.SettingsViewData) {
	h.raw(`<form id="settings-form" class="card" method="post" action="/settings">`)
	h.rawf(`<input type="hidden" name="csrf" value="%s">`, attr(csrf))
	if data.Dirty {
		h.raw(`<p class="alert alert-info">You have unsaved changes.</p>`)
	}
	for _, f := range data.Fields {
		class := "field"
		if f.Changed {
			class += " changed"
		}
		h.rawf(`<div class="%s"><label for="setting-%s">%s</label>`, class, attr(f.Key), templ.EscapeString(f.Label))
		if f.Multiline {
			h.rawf(`<textarea id="setting-%s" name="%s" rows="3">%s</textarea>`, attr(f.Key), attr(f.Key), templ.EscapeString(f.Value))
		} else {
			h.rawf(`<input id="setting-%s" name="%s" value="%s">`, attr(f.Key), attr(f.Key), attr(f.Value))
		}
		h.raw(`</div>`)
	}
	h.raw(`<button type="submit" name="action" value="update" class="btn-sm">Keep draft</button>`)
	h.raw(`<button type="submit" name="action" value="reset" class="btn-sm" formnovalidate>Discard changes</button>`)
	h.raw(`<button type="submit" name="action" value="save" class="btn-primary">Save settings</button>`)
	h.raw(`</form>`)
}

func writeQuestions(h *htmlWriter, csrf string, data viewmodels.QuestionsViewData) {
	for _, list := range data.Lists {
		h.rawf(`<form id="questions-%s" class="card" method="post" action="%s">`, attr(list.Type), urlAttr(list.Action))
		h.rawf(`<h2>%s</h2>`, templ.EscapeString(list.Label))
		h.rawf(`<input type="hidden" name="csrf" value="%s">`, attr(csrf))
		if list.Dirty {
			h.raw(`<p class="alert alert-info">Unsaved changes.</p>`)
		}
		if len(list.Questions) == 0 {
			h.raw(`<p class="empty muted">No questions yet.</p>`)
		}
		h.raw(`<ol>`)
		for i, q := range list.Questions {
			idx := strconv.Itoa(i)
			h.rawf(`<li><input name="questions" value="%s" aria-label="Question %d">`, attr(q), i+1)
			h.rawf(`<button type="submit" name="action" value="remove:%s" class="btn-sm">Remove</button></li>`, idx)
		}
		h.raw(`</ol>`)
		h.raw(`<button type="submit" name="action" value="add" class="btn-sm">Add question</button>`)
		h.raw(`<button type="submit" name="action" value="reset" class="btn-sm">Discard changes</button>`)
		h.raw(`<button type="submit" name="action" value="save" class="btn-primary">Save</button>`)
		h.raw(`</form>`)
	}
}
