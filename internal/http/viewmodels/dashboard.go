package viewmodels

type DashboardViewData struct {
	Layout LayoutData
	Tab    string

	Overview     OverviewViewData
	Tickets      []TicketRow
	Applications []ApplicationRow
	Warnings     []WarningRow
	Bans         []BanRow
	Staff        []StaffRow
	Messages     MessagesViewData
	Questions    QuestionsViewData
	Settings     SettingsViewData
}

type StatCard struct {
	Label  string
	Value  string
	Detail string
	Href   string
}

type OverviewViewData struct {
	Cards              []StatCard
	RecentTickets      []TicketRow
	RecentApplications []ApplicationRow
}

type TicketRow struct {
	ID          string
	ChannelID   string
	UserID      string
	Status      string
	StatusClass string
	CreatedAt   string
}

type AnswerRow struct {
	Question string
	Answer   string
}

type ApplicationRow struct {
	ID          string
	Type        string
	UserID      string
	Status      string
	StatusClass string
	CreatedAt   string
	Answers     []AnswerRow
	Reviewable  bool
	ReviewHref  string
}

type WarningRow struct {
	ID          string
	UserID      string
	ModeratorID string
	Reason      string
	Timestamp   string
}

type BanRow struct {
	ID          string
	UserID      string
	ModeratorID string
	Reason      string
	Duration    string
	Active      bool
	Timestamp   string
}

type StaffRow struct {
	UserID     string
	RankName   string
	RankLevel  string
	PromotedBy string
	PromotedAt string
}

type MessageLogRow struct {
	ID        string
	UserID    string
	ChannelID string
	Content   string
	Timestamp string
}

type MessagesViewData struct {
	Logs []MessageLogRow
	// FromStaff is the operator id sent as the message author.
	FromStaff string
}
