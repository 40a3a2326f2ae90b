package dashboard

import (
	"fmt"
	"strings"
)

// Resource names one collection mirrored from the bot API. The value is the
// endpoint path segment.
type Resource string

const (
	ResourceStats        Resource = "stats"
	ResourceTickets      Resource = "tickets"
	ResourceApplications Resource = "applications"
	ResourceWarnings     Resource = "warnings"
	ResourceBans         Resource = "bans"
	ResourceStaff        Resource = "staff"
	ResourceMessageLogs  Resource = "message-logs"
	ResourceSettings     Resource = "settings"
	ResourceQuestions    Resource = "application-questions"
)

// Features selects the optional resources the backing bot API serves.
type Features struct {
	Bans     bool
	Staff    bool
	Messages bool
}

// AllFeatures enables every optional resource.
func AllFeatures() Features {
	return Features{Bans: true, Staff: true, Messages: true}
}

// ParseFeatures reads a comma separated list such as "bans,staff,messages".
// "none" or an empty list disables every optional resource.
func ParseFeatures(raw string) (Features, error) {
	var f Features
	for _, part := range strings.Split(raw, ",") {
		switch strings.ToLower(strings.TrimSpace(part)) {
		case "", "none":
		case "all":
			f = AllFeatures()
		case "bans":
			f.Bans = true
		case "staff":
			f.Staff = true
		case "messages", "message-logs":
			f.Messages = true
		default:
			return Features{}, fmt.Errorf("unknown bot api feature %q", strings.TrimSpace(part))
		}
	}
	return f, nil
}

func (f Features) String() string {
	var parts []string
	if f.Bans {
		parts = append(parts, "bans")
	}
	if f.Staff {
		parts = append(parts, "staff")
	}
	if f.Messages {
		parts = append(parts, "messages")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ",")
}

// Enabled reports whether r is fetched under f.
func (f Features) Enabled(r Resource) bool {
	switch r {
	case ResourceBans:
		return f.Bans
	case ResourceStaff:
		return f.Staff
	case ResourceMessageLogs:
		return f.Messages
	case ResourceStats, ResourceTickets, ResourceApplications, ResourceWarnings, ResourceSettings, ResourceQuestions:
		return true
	default:
		return false
	}
}

var allResources = []Resource{
	ResourceStats,
	ResourceTickets,
	ResourceApplications,
	ResourceWarnings,
	ResourceBans,
	ResourceStaff,
	ResourceMessageLogs,
	ResourceSettings,
	ResourceQuestions,
}

// Resources lists the enabled resources in fetch order.
func (f Features) Resources() []Resource {
	out := make([]Resource, 0, len(allResources))
	for _, r := range allResources {
		if f.Enabled(r) {
			out = append(out, r)
		}
	}
	return out
}
