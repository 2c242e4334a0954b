package slack

import (
	"context"

	"github.com/slack-go/slack"
)

// Service provides interface to Slack API authenticated with the bot token
type Service interface {
	// GetUserInfo retrieves user information for the given user ID (with caching)
	GetUserInfo(ctx context.Context, userID string) (*User, error)

	// PostMessage posts a plain text message to a channel or user DM
	PostMessage(ctx context.Context, channelID, text string) error

	// OpenView opens a modal view for the trigger
	OpenView(ctx context.Context, triggerID string, view slack.ModalViewRequest) error

	// AsUser returns a UserService that calls the API with the user access token
	AsUser(token string) UserService
}

// UserService provides interface to Slack API authenticated with a user
// access token. Messages and reactions made through it belong to the user.
type UserService interface {
	// AuthTest returns the identity bound to the token
	AuthTest(ctx context.Context) (*Identity, error)

	// GetUserInfo retrieves user information for the given user ID
	GetUserInfo(ctx context.Context, userID string) (*User, error)

	// ListReactions returns reaction names on the message
	ListReactions(ctx context.Context, channelID, ts string) ([]string, error)

	// AddReaction adds a reaction to the message
	AddReaction(ctx context.Context, channelID, ts, name string) error

	// PostMessage posts a plain text message as the user
	PostMessage(ctx context.Context, channelID, text string) error
}

// User represents a Slack user
type User struct {
	ID       string
	Name     string
	RealName string
}

// Identity is the result of auth.test
type Identity struct {
	URL          string
	Team         string
	User         string
	TeamID       string
	UserID       string
	EnterpriseID string
}
