package dashboard

import (
	"context"
	gosync "sync"

	"github.com/modboard/modboard/internal/botapi"
)

// fakeAPI serves canned data and counts calls per method. Hooks override a
// method when set.
type fakeAPI struct {
	mu    gosync.Mutex
	calls map[string]int
	fail  map[string]error

	stats        botapi.Stats
	tickets      []botapi.Ticket
	applications []botapi.Application
	warnings     []botapi.Warning
	bans         []botapi.Ban
	staff        []botapi.StaffMember
	messageLogs  []botapi.MessageLog
	settings     botapi.Settings
	questions    botapi.QuestionSet

	getSettings    func(context.Context) (botapi.Settings, error)
	updateSettings func(context.Context, botapi.Settings) (botapi.Settings, error)
	updateQuestion func(context.Context, string, []string) ([]string, error)
	review         func(context.Context, string, botapi.ReviewRequest) error
	sendMessage    func(context.Context, botapi.SendMessageRequest) error
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		calls: make(map[string]int),
		fail:  make(map[string]error),
		stats: botapi.Stats{Members: 120, Tickets: botapi.TicketCounts{Open: 1, Total: 2}},
		tickets: []botapi.Ticket{
			{ID: "1", ChannelID: "c1", UserID: "u1", Status: botapi.TicketStatusClosed, CreatedAt: "2025-01-01T00:00:00Z"},
			{ID: "2", ChannelID: "c2", UserID: "u2", Status: botapi.TicketStatusOpen, CreatedAt: "2025-01-02T00:00:00Z"},
		},
		applications: []botapi.Application{
			{ID: "10", Type: botapi.QuestionTypeStaff, UserID: "u3", Status: botapi.ApplicationStatusPending, Answers: []botapi.Answer{{Question: "Why?", Answer: "Because"}}},
		},
		warnings:    []botapi.Warning{{ID: "5", UserID: "u4", ModeratorID: "m1", Reason: "spam"}},
		bans:        []botapi.Ban{{ID: "7", UserID: "u5", Reason: "raid", Duration: "permanent", Active: true}},
		staff:       []botapi.StaffMember{{UserID: "m1", Rank: botapi.Rank{Name: "Moderator", Level: 2}}},
		messageLogs: []botapi.MessageLog{{ID: "99", UserID: "u6", ChannelID: "c9", Content: "hello"}},
		settings:    botapi.Settings{botapi.SettingWelcomeMessage: "Welcome!", botapi.SettingStaffRoleID: "42"},
		questions: botapi.QuestionSet{
			botapi.QuestionTypeStaff:     {"Why staff?"},
			botapi.QuestionTypeAdmin:     {"Why admin?"},
			botapi.QuestionTypeDeveloper: {"Languages?"},
		},
	}
}

func (f *fakeAPI) record(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
	return f.fail[name]
}

func (f *fakeAPI) Calls(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeAPI) TotalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, v := range f.calls {
		n += v
	}
	return n
}

func (f *fakeAPI) setFail(name string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail[name] = err
}

func (f *fakeAPI) setApplications(apps []botapi.Application) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.applications = apps
}

func get[T any](f *fakeAPI, name string, v *T) (T, error) {
	if err := f.record(name); err != nil {
		var zero T
		return zero, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return *v, nil
}

func (f *fakeAPI) GetStats(context.Context) (botapi.Stats, error) {
	return get(f, "stats", &f.stats)
}

func (f *fakeAPI) ListTickets(context.Context) ([]botapi.Ticket, error) {
	return get(f, "tickets", &f.tickets)
}

func (f *fakeAPI) ListApplications(context.Context) ([]botapi.Application, error) {
	return get(f, "applications", &f.applications)
}

func (f *fakeAPI) ListWarnings(context.Context) ([]botapi.Warning, error) {
	return get(f, "warnings", &f.warnings)
}

func (f *fakeAPI) ListBans(context.Context) ([]botapi.Ban, error) {
	return get(f, "bans", &f.bans)
}

func (f *fakeAPI) ListStaff(context.Context) ([]botapi.StaffMember, error) {
	return get(f, "staff", &f.staff)
}

func (f *fakeAPI) ListMessageLogs(context.Context) ([]botapi.MessageLog, error) {
	return get(f, "message-logs", &f.messageLogs)
}

func (f *fakeAPI) GetSettings(ctx context.Context) (botapi.Settings, error) {
	if f.getSettings != nil {
		_ = f.record("settings")
		return f.getSettings(ctx)
	}
	return get(f, "settings", &f.settings)
}

func (f *fakeAPI) GetQuestions(context.Context) (botapi.QuestionSet, error) {
	return get(f, "application-questions", &f.questions)
}

func (f *fakeAPI) UpdateSettings(ctx context.Context, s botapi.Settings) (botapi.Settings, error) {
	if err := f.record("update-settings"); err != nil {
		return nil, err
	}
	if f.updateSettings != nil {
		return f.updateSettings(ctx, s)
	}
	return s, nil
}

func (f *fakeAPI) UpdateQuestions(ctx context.Context, qtype string, qs []string) ([]string, error) {
	if err := f.record("update-questions"); err != nil {
		return nil, err
	}
	if f.updateQuestion != nil {
		return f.updateQuestion(ctx, qtype, qs)
	}
	return qs, nil
}

func (f *fakeAPI) ReviewApplication(ctx context.Context, id string, req botapi.ReviewRequest) error {
	if err := f.record("review"); err != nil {
		return err
	}
	if f.review != nil {
		return f.review(ctx, id, req)
	}
	return nil
}

func (f *fakeAPI) SendMessage(ctx context.Context, req botapi.SendMessageRequest) error {
	if err := f.record("send-message"); err != nil {
		return err
	}
	if f.sendMessage != nil {
		return f.sendMessage(ctx, req)
	}
	return nil
}
