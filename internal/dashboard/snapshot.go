package dashboard

import (
	"maps"
	"slices"
	"time"

	"github.com/modboard/modboard/internal/botapi"
)

// Snapshot is a point-in-time copy of every mirrored collection. A Snapshot
// returned by Client.Snapshot is never modified afterwards; callers must not
// modify it either.
type Snapshot struct {
	Loaded      bool      `json:"loaded"`
	RefreshedAt time.Time `json:"refreshed_at,omitzero"`
	Features    Features  `json:"-"`

	Stats        botapi.Stats         `json:"stats"`
	Tickets      []botapi.Ticket      `json:"tickets"`
	Applications []botapi.Application `json:"applications"`
	Warnings     []botapi.Warning     `json:"warnings"`
	Bans         []botapi.Ban         `json:"bans,omitempty"`
	Staff        []botapi.StaffMember `json:"staff,omitempty"`
	MessageLogs  []botapi.MessageLog  `json:"message_logs,omitempty"`
	Settings     botapi.Settings      `json:"settings"`
	Questions    botapi.QuestionSet   `json:"questions"`

	// LastErrors holds the latest refresh failure per resource. An entry is
	// cleared as soon as that resource is applied again.
	LastErrors map[Resource]string `json:"last_errors,omitempty"`
}

// Failed lists the resources whose latest refresh failed, in fetch order.
func (s *Snapshot) Failed() []Resource {
	if len(s.LastErrors) == 0 {
		return nil
	}
	out := make([]Resource, 0, len(s.LastErrors))
	for _, r := range allResources {
		if _, ok := s.LastErrors[r]; ok {
			out = append(out, r)
		}
	}
	return out
}

// RecentTickets returns the first n tickets in the order the bot API listed
// them.
func (s *Snapshot) RecentTickets(n int) []botapi.Ticket {
	return firstN(s.Tickets, n)
}

// RecentApplications returns the first n applications in API order.
func (s *Snapshot) RecentApplications(n int) []botapi.Application {
	return firstN(s.Applications, n)
}

// PendingApplications returns the applications still awaiting review.
func (s *Snapshot) PendingApplications() []botapi.Application {
	var out []botapi.Application
	for _, app := range s.Applications {
		if app.Status == botapi.ApplicationStatusPending {
			out = append(out, app)
		}
	}
	return out
}

// Application looks up an application by id.
func (s *Snapshot) Application(id botapi.ID) (botapi.Application, bool) {
	for _, app := range s.Applications {
		if app.ID == id {
			return app, true
		}
	}
	return botapi.Application{}, false
}

// Count returns the number of items currently held for r.
func (s *Snapshot) Count(r Resource) int {
	switch r {
	case ResourceTickets:
		return len(s.Tickets)
	case ResourceApplications:
		return len(s.Applications)
	case ResourceWarnings:
		return len(s.Warnings)
	case ResourceBans:
		return len(s.Bans)
	case ResourceStaff:
		return len(s.Staff)
	case ResourceMessageLogs:
		return len(s.MessageLogs)
	case ResourceSettings:
		return len(s.Settings)
	case ResourceQuestions:
		n := 0
		for _, qs := range s.Questions {
			n += len(qs)
		}
		return n
	default:
		return 0
	}
}

func (s *Snapshot) clone() *Snapshot {
	out := *s
	out.LastErrors = maps.Clone(s.LastErrors)
	return &out
}

func firstN[T any](items []T, n int) []T {
	if n <= 0 || len(items) == 0 {
		return nil
	}
	return slices.Clone(items[:min(n, len(items))])
}
