package model

import (
	"strings"
	"time"

	"github.com/secmon-lab/qainfo/pkg/domain/types"
)

// DefaultPreMessageTemplate is the greeting put in front of relayed
// messages. {name} is replaced with the staff name of the user.
const DefaultPreMessageTemplate = "プロ実スタッフの{name}です。"

// UserRecord is a Slack user who completed the OAuth flow. It holds the
// user's access token and the default greeting (preMessage).
type UserRecord struct {
	UserID       types.SlackUserID
	TeamID       string
	TeamName     string
	AccessToken  string `masq:"secret"`
	EnterpriseID string
	Scope        string
	URL          string
	Team         string
	User         string
	RealName     string
	PreMessage   string
	UpdatedAt    time.Time
}

// Authorized returns true if the record exists and has an access token
func (x *UserRecord) Authorized() bool {
	return x != nil && x.AccessToken != ""
}

// StaffName returns the real name without the trailing parenthesized part,
// e.g. "Taro Yamada (Sales)" -> "Taro Yamada".
func StaffName(realName string) string {
	name := realName
	if i := strings.IndexAny(name, "(（"); i >= 0 {
		name = name[:i]
	}
	return strings.TrimSpace(name)
}

// NewPreMessage renders the preMessage template for the real name. An empty
// template falls back to DefaultPreMessageTemplate.
func NewPreMessage(template, realName string) string {
	if template == "" {
		template = DefaultPreMessageTemplate
	}
	return strings.ReplaceAll(template, "{name}", StaffName(realName))
}

// Recipient is a candidate of the DM destination shown in the modal
type Recipient struct {
	ID   types.SlackUserID
	Name string
}
