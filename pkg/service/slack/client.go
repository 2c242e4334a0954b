package slack

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
)

const (
	// DefaultCacheTTL is the default TTL for user info cache
	DefaultCacheTTL = 5 * time.Minute
)

// cacheEntry holds a cached user with expiration
type cacheEntry struct {
	user      User
	expiresAt time.Time
}

// client implements Service interface
type client struct {
	api      *slack.Client
	apiURL   string
	cacheTTL time.Duration

	mu    sync.RWMutex
	cache map[string]cacheEntry
}

// Option is a functional option for client configuration
type Option func(*client)

// WithCacheTTL sets the TTL for user info cache. Zero disables the cache.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *client) {
		c.cacheTTL = ttl
	}
}

// WithAPIURL overrides the Slack API base URL, e.g. "https://slack.com/api/".
// It applies to both bot and user clients.
func WithAPIURL(url string) Option {
	return func(c *client) {
		c.apiURL = url
	}
}

// New creates a new Slack service with the provided bot token
func New(token string, opts ...Option) (Service, error) {
	if token == "" {
		return nil, goerr.New("Slack bot token is required")
	}

	c := &client{
		cacheTTL: DefaultCacheTTL,
		cache:    make(map[string]cacheEntry),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.api = slack.New(token, c.slackOptions()...)

	return c, nil
}

func (c *client) slackOptions() []slack.Option {
	var options []slack.Option
	if c.apiURL != "" {
		options = append(options, slack.OptionAPIURL(c.apiURL))
	}
	return options
}

// GetUserInfo retrieves user information for the given user ID with caching
func (c *client) GetUserInfo(ctx context.Context, userID string) (*User, error) {
	now := time.Now()

	c.mu.RLock()
	entry, ok := c.cache[userID]
	c.mu.RUnlock()
	if ok && now.Before(entry.expiresAt) {
		user := entry.user
		return &user, nil
	}

	user, err := getUserInfo(ctx, c.api, userID)
	if err != nil {
		return nil, err
	}

	if c.cacheTTL > 0 {
		c.mu.Lock()
		c.cache[userID] = cacheEntry{user: *user, expiresAt: now.Add(c.cacheTTL)}
		c.mu.Unlock()
	}

	return user, nil
}

// PostMessage posts a plain text message as the bot
func (c *client) PostMessage(ctx context.Context, channelID, text string) error {
	return postMessage(ctx, c.api, channelID, text)
}

// OpenView opens a modal view
func (c *client) OpenView(ctx context.Context, triggerID string, view slack.ModalViewRequest) error {
	if _, err := c.api.OpenViewContext(ctx, triggerID, view); err != nil {
		return goerr.Wrap(err, "failed to open view",
			goerr.V("trigger_id", triggerID),
			goerr.V("callback_id", view.CallbackID))
	}
	return nil
}

// AsUser returns a UserService bound to the user access token
func (c *client) AsUser(token string) UserService {
	return &userClient{
		api: slack.New(token, c.slackOptions()...),
	}
}

// userClient implements UserService interface
type userClient struct {
	api *slack.Client
}

// AuthTest returns the identity bound to the token
func (u *userClient) AuthTest(ctx context.Context) (*Identity, error) {
	resp, err := u.api.AuthTestContext(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to call auth.test")
	}

	return &Identity{
		URL:          resp.URL,
		Team:         resp.Team,
		User:         resp.User,
		TeamID:       resp.TeamID,
		UserID:       resp.UserID,
		EnterpriseID: resp.EnterpriseID,
	}, nil
}

// GetUserInfo retrieves user information with the user token
func (u *userClient) GetUserInfo(ctx context.Context, userID string) (*User, error) {
	return getUserInfo(ctx, u.api, userID)
}

// ListReactions returns reaction names on the message
func (u *userClient) ListReactions(ctx context.Context, channelID, ts string) ([]string, error) {
	reactions, err := u.api.GetReactionsContext(ctx, slack.NewRefToMessage(channelID, ts), slack.NewGetReactionsParameters())
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get reactions",
			goerr.V("channel_id", channelID),
			goerr.V("ts", ts))
	}

	names := make([]string, 0, len(reactions))
	for _, r := range reactions {
		names = append(names, r.Name)
	}
	return names, nil
}

// AddReaction adds a reaction to the message
func (u *userClient) AddReaction(ctx context.Context, channelID, ts, name string) error {
	if err := u.api.AddReactionContext(ctx, name, slack.NewRefToMessage(channelID, ts)); err != nil {
		return goerr.Wrap(err, "failed to add reaction",
			goerr.V("channel_id", channelID),
			goerr.V("ts", ts),
			goerr.V("name", name))
	}
	return nil
}

// PostMessage posts a plain text message as the user
func (u *userClient) PostMessage(ctx context.Context, channelID, text string) error {
	return postMessage(ctx, u.api, channelID, text)
}

func getUserInfo(ctx context.Context, api *slack.Client, userID string) (*User, error) {
	user, err := api.GetUserInfoContext(ctx, userID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get user info", goerr.V("user_id", userID))
	}

	return &User{
		ID:       user.ID,
		Name:     user.Name,
		RealName: user.RealName,
	}, nil
}

func postMessage(ctx context.Context, api *slack.Client, channelID, text string) error {
	if _, _, err := api.PostMessageContext(ctx, channelID, slack.MsgOptionText(text, false)); err != nil {
		return goerr.Wrap(err, "failed to post message", goerr.V("channel_id", channelID))
	}
	return nil
}
