package types

import (
	"regexp"

	"github.com/m-mizutani/goerr/v2"
)

var slackUserIDPattern = regexp.MustCompile(`^[UW][A-Z0-9]+$`)

// SlackUserID is the Slack member ID (e.g. U0123ABCD). It is the key of a
// UserRecord.
type SlackUserID string

// Validate checks if the SlackUserID looks like a Slack member ID
func (x SlackUserID) Validate() error {
	if x == "" {
		return goerr.New("slack user ID cannot be empty")
	}
	if !slackUserIDPattern.MatchString(string(x)) {
		return goerr.New("invalid slack user ID format", goerr.V("id", x))
	}
	return nil
}

func (x SlackUserID) String() string {
	return string(x)
}
