package dashboard

import "strings"

// Tab is one mutually exclusive dashboard view.
type Tab string

const (
	TabOverview     Tab = "overview"
	TabTickets      Tab = "tickets"
	TabApplications Tab = "applications"
	TabQuestions    Tab = "questions"
	TabWarnings     Tab = "warnings"
	TabBans         Tab = "bans"
	TabStaff        Tab = "staff"
	TabMessages     Tab = "messages"
	TabSettings     Tab = "settings"
)

var tabOrder = []Tab{
	TabOverview,
	TabTickets,
	TabApplications,
	TabQuestions,
	TabWarnings,
	TabBans,
	TabStaff,
	TabMessages,
	TabSettings,
}

var tabLabels = map[Tab]string{
	TabOverview:     "Overview",
	TabTickets:      "Tickets",
	TabApplications: "Applications",
	TabQuestions:    "Questions",
	TabWarnings:     "Warnings",
	TabBans:         "Bans",
	TabStaff:        "Staff",
	TabMessages:     "Messages",
	TabSettings:     "Settings",
}

func (t Tab) Label() string {
	if label, ok := tabLabels[t]; ok {
		return label
	}
	return string(t)
}

func (t Tab) String() string {
	return string(t)
}

// Available reports whether the tab is shown under f.
func (t Tab) Available(f Features) bool {
	switch t {
	case TabBans:
		return f.Bans
	case TabStaff:
		return f.Staff
	case TabMessages:
		return f.Messages
	default:
		_, ok := tabLabels[t]
		return ok
	}
}

// Tabs lists the visible tabs in navigation order.
func Tabs(f Features) []Tab {
	out := make([]Tab, 0, len(tabOrder))
	for _, t := range tabOrder {
		if t.Available(f) {
			out = append(out, t)
		}
	}
	return out
}

// ParseTab resolves a tab query value. Unknown or hidden tabs resolve to the
// overview.
func ParseTab(raw string, f Features) Tab {
	t := Tab(strings.ToLower(strings.TrimSpace(raw)))
	if t.Available(f) {
		return t
	}
	return TabOverview
}
