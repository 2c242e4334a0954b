package usecase

import (
	"github.com/secmon-lab/qainfo/pkg/domain/interfaces"
	"github.com/secmon-lab/qainfo/pkg/domain/model"
	slackmodel "github.com/secmon-lab/qainfo/pkg/domain/model/slack"
	"github.com/secmon-lab/qainfo/pkg/domain/types"
	slacksvc "github.com/secmon-lab/qainfo/pkg/service/slack"
	"golang.org/x/oauth2"
)

// DefaultSlackAPIURL is the base URL of Slack Web API
const DefaultSlackAPIURL = "https://slack.com/api/"

// UseCases holds the request handling logic of the bot
type UseCases struct {
	repo         interfaces.Repository
	slackService slacksvc.Service

	oauth       *oauth2.Config
	slackAPIURL string

	sourceBotID        string
	markers            []types.ReactionName
	inProgressReaction types.ReactionName
	preMessageTemplate string
}

type Option func(*UseCases)

// WithOAuth sets the Slack app credentials and the redirect URI of /oauth
func WithOAuth(clientID, clientSecret, redirectURI string) Option {
	return func(uc *UseCases) {
		uc.oauth.ClientID = clientID
		uc.oauth.ClientSecret = clientSecret
		uc.oauth.RedirectURL = redirectURI
	}
}

// WithSlackAPIURL overrides the Slack API base URL used for oauth.access
func WithSlackAPIURL(url string) Option {
	return func(uc *UseCases) {
		uc.slackAPIURL = url
	}
}

// WithSourceBotID sets the bot whose posts carry the question in block index 1
func WithSourceBotID(botID string) Option {
	return func(uc *UseCases) {
		uc.sourceBotID = botID
	}
}

// WithMarkerReactions replaces the reactions that block relaying
func WithMarkerReactions(markers []types.ReactionName) Option {
	return func(uc *UseCases) {
		uc.markers = markers
	}
}

// WithInProgressReaction sets the reaction added after a bot post is relayed
func WithInProgressReaction(name types.ReactionName) Option {
	return func(uc *UseCases) {
		uc.inProgressReaction = name
	}
}

// WithPreMessageTemplate sets the template of the initial preMessage
func WithPreMessageTemplate(template string) Option {
	return func(uc *UseCases) {
		uc.preMessageTemplate = template
	}
}

func New(repo interfaces.Repository, slackService slacksvc.Service, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:               repo,
		slackService:       slackService,
		oauth:              &oauth2.Config{Scopes: []string{OAuthScopes}},
		slackAPIURL:        DefaultSlackAPIURL,
		sourceBotID:        slackmodel.DefaultSourceBotID,
		markers:            types.DefaultMarkerReactions(),
		inProgressReaction: types.ReactionInProgress,
		preMessageTemplate: model.DefaultPreMessageTemplate,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.oauth.Endpoint = oauth2.Endpoint{
		AuthURL:   slackAuthorizeURL,
		TokenURL:  uc.slackAPIURL + "oauth.access",
		AuthStyle: oauth2.AuthStyleInParams,
	}

	return uc
}
