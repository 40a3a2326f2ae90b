package auth

import (
	"errors"
	"strings"
)

const (
	RoleAdmin = "admin"

	MethodPassword = "password"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Principal is a signed-in dashboard operator. UserID is the operator's
// Discord user id; it is sent to the bot as the reviewer and message sender.
type Principal struct {
	UserID string
	Role   string
	Method string
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// NormalizeUserID trims a Discord user id and strips a pasted mention
// wrapper such as <@123>.
func NormalizeUserID(id string) string {
	id = strings.TrimSpace(id)
	if strings.HasPrefix(id, "<@") && strings.HasSuffix(id, ">") {
		id = strings.TrimPrefix(strings.TrimSuffix(id, ">"), "<@")
		id = strings.TrimPrefix(id, "!")
	}
	return strings.TrimSpace(id)
}
