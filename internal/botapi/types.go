package botapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID is an identifier as the bot API sends it. Discord snowflakes arrive as
// strings, database keys as numbers; both decode to the same textual form.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	s, err := flexString(b)
	if err != nil {
		return fmt.Errorf("decode id: %w", err)
	}
	*id = ID(s)
	return nil
}

func (id ID) String() string {
	return string(id)
}

// Duration is a ban duration, either a label ("7d", "permanent") or a number
// of seconds.
type Duration string

func (d *Duration) UnmarshalJSON(b []byte) error {
	s, err := flexString(b)
	if err != nil {
		return fmt.Errorf("decode duration: %w", err)
	}
	*d = Duration(s)
	return nil
}

const (
	TicketStatusOpen   = "open"
	TicketStatusClosed = "closed"

	ApplicationStatusPending    = "pending"
	ApplicationStatusApproved   = "approved"
	ApplicationStatusDenied     = "denied"
	ApplicationStatusInProgress = "in_progress"
)

type TicketCounts struct {
	Open  int `json:"open"`
	Total int `json:"total"`
}

type ApplicationCounts struct {
	Pending int `json:"pending"`
	Total   int `json:"total"`
}

// Stats is the aggregate counter object served by GET /stats.
type Stats struct {
	Members      int               `json:"members"`
	Tickets      TicketCounts      `json:"tickets"`
	Applications ApplicationCounts `json:"applications"`
	Warnings     int               `json:"warnings"`
	Bans         int               `json:"bans"`
}

type Ticket struct {
	ID        ID     `json:"id"`
	ChannelID ID     `json:"channel_id"`
	UserID    ID     `json:"user_id"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

type Answer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type Application struct {
	ID        ID       `json:"id"`
	Type      string   `json:"type"`
	UserID    ID       `json:"user_id"`
	Status    string   `json:"status"`
	CreatedAt string   `json:"created_at"`
	Answers   []Answer `json:"answers"`
}

type Warning struct {
	ID          ID     `json:"id"`
	UserID      ID     `json:"user_id"`
	ModeratorID ID     `json:"moderator_id"`
	Reason      string `json:"reason"`
	Timestamp   string `json:"timestamp"`
}

// UnmarshalJSON accepts the older camelCase userId key that some bot builds
// still emit for warnings.
func (w *Warning) UnmarshalJSON(b []byte) error {
	type plain Warning
	var aux struct {
		plain
		LegacyUserID ID `json:"userId"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*w = Warning(aux.plain)
	if w.UserID == "" {
		w.UserID = aux.LegacyUserID
	}
	return nil
}

type Ban struct {
	ID          ID       `json:"id"`
	UserID      ID       `json:"user_id"`
	ModeratorID ID       `json:"moderator_id"`
	Reason      string   `json:"reason"`
	Duration    Duration `json:"duration"`
	Active      bool     `json:"active"`
	Timestamp   string   `json:"timestamp"`
}

type Rank struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
}

type StaffMember struct {
	UserID     ID     `json:"user_id"`
	Rank       Rank   `json:"rank"`
	PromotedBy ID     `json:"promoted_by"`
	PromotedAt string `json:"promoted_at"`
}

type MessageLog struct {
	ID        ID     `json:"id"`
	UserID    ID     `json:"user_id"`
	ChannelID ID     `json:"channel_id"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// Known settings keys. The bot may return more; unknown keys are kept and
// sent back unchanged on save.
const (
	SettingTicketCategoryID     = "ticket_category_id"
	SettingStaffRoleID          = "staff_role_id"
	SettingAdminRoleID          = "admin_role_id"
	SettingVerifiedRoleID       = "verified_role_id"
	SettingLogChannelID         = "log_channel_id"
	SettingApplicationChannelID = "application_channel_id"
	SettingWelcomeMessage       = "welcome_message"
	SettingWelcomeChannelID     = "welcome_channel_id"
)

// SettingKeys lists the editable settings in form order.
var SettingKeys = []string{
	SettingTicketCategoryID,
	SettingStaffRoleID,
	SettingAdminRoleID,
	SettingVerifiedRoleID,
	SettingLogChannelID,
	SettingApplicationChannelID,
	SettingWelcomeMessage,
	SettingWelcomeChannelID,
}

// Settings maps configuration keys to their string values.
type Settings map[string]string

// UnmarshalJSON keeps non-string scalars as their JSON text and maps null to
// the empty string.
func (s *Settings) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	out := make(Settings, len(raw))
	for key, value := range raw {
		v, err := flexString(value)
		if err != nil {
			return fmt.Errorf("decode setting %q: %w", key, err)
		}
		out[key] = v
	}
	*s = out
	return nil
}

// Clone returns an independent copy.
func (s Settings) Clone() Settings {
	if s == nil {
		return nil
	}
	out := make(Settings, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

const (
	QuestionTypeStaff     = "staff"
	QuestionTypeAdmin     = "admin"
	QuestionTypeDeveloper = "developer"
)

// QuestionTypes lists the application types in display order.
var QuestionTypes = []string{QuestionTypeStaff, QuestionTypeAdmin, QuestionTypeDeveloper}

func IsQuestionType(t string) bool {
	switch t {
	case QuestionTypeStaff, QuestionTypeAdmin, QuestionTypeDeveloper:
		return true
	default:
		return false
	}
}

// QuestionSet maps an application type to its ordered questions.
type QuestionSet map[string][]string

// With returns a copy of the set where only qtype is replaced.
func (q QuestionSet) With(qtype string, questions []string) QuestionSet {
	out := make(QuestionSet, len(q)+1)
	for k, v := range q {
		out[k] = v
	}
	out[qtype] = append([]string(nil), questions...)
	return out
}

type ReviewAction string

const (
	ReviewApprove ReviewAction = "approve"
	ReviewDeny    ReviewAction = "deny"
)

func (a ReviewAction) Valid() bool {
	return a == ReviewApprove || a == ReviewDeny
}

type ReviewRequest struct {
	Action     ReviewAction `json:"action"`
	ReviewerID string       `json:"reviewer_id"`
}

type SendMessageRequest struct {
	FromStaff string `json:"from_staff"`
	ToUser    string `json:"to_user"`
	Message   string `json:"message"`
}

type SendMessageResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type questionsUpdate struct {
	Type      string   `json:"type"`
	Questions []string `json:"questions"`
}

func flexString(b []byte) (string, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return "", nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return "", err
		}
		return s, nil
	case 't', 'f':
		var v bool
		if err := json.Unmarshal(b, &v); err != nil {
			return "", err
		}
		return strconv.FormatBool(v), nil
	case '{', '[':
		return "", fmt.Errorf("unexpected %s value", string(b[:1]))
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return "", err
		}
		return n.String(), nil
	}
}
