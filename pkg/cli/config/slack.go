package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	slacksvc "github.com/secmon-lab/qainfo/pkg/service/slack"
	"github.com/secmon-lab/qainfo/pkg/usecase"
	"github.com/urfave/cli/v3"
)

type Slack struct {
	clientID      string
	clientSecret  string
	redirectURI   string
	botToken      string
	signingSecret string
	apiURL        string
}

func (x *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-client-id",
			Usage:       "Slack app client ID for the user token flow",
			Category:    "Slack",
			Destination: &x.clientID,
			Sources:     cli.EnvVars("QAINFO_SLACK_CLIENT_ID"),
		},
		&cli.StringFlag{
			Name:        "slack-client-secret",
			Usage:       "Slack app client secret",
			Category:    "Slack",
			Destination: &x.clientSecret,
			Sources:     cli.EnvVars("QAINFO_SLACK_CLIENT_SECRET"),
		},
		&cli.StringFlag{
			Name:        "slack-redirect-uri",
			Usage:       "Redirect URI of the user token flow (e.g., https://your-domain.com/oauth)",
			Category:    "Slack",
			Destination: &x.redirectURI,
			Sources:     cli.EnvVars("QAINFO_SLACK_REDIRECT_URI"),
		},
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Usage:       "Slack Bot User OAuth Token",
			Category:    "Slack",
			Destination: &x.botToken,
			Sources:     cli.EnvVars("QAINFO_SLACK_BOT_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "slack-signing-secret",
			Usage:       "Slack Signing Secret (for webhook verification)",
			Category:    "Slack",
			Destination: &x.signingSecret,
			Sources:     cli.EnvVars("QAINFO_SLACK_SIGNING_SECRET"),
		},
		&cli.StringFlag{
			Name:        "slack-api-url",
			Usage:       "Slack Web API base URL (for testing)",
			Category:    "Slack",
			Value:       usecase.DefaultSlackAPIURL,
			Destination: &x.apiURL,
			Sources:     cli.EnvVars("QAINFO_SLACK_API_URL"),
		},
	}
}

func (x Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("client-id.len", len(x.clientID)),
		slog.Int("client-secret.len", len(x.clientSecret)),
		slog.Int("bot-token.len", len(x.botToken)),
		slog.Int("signing-secret.len", len(x.signingSecret)),
		slog.String("redirect-uri", x.redirectURI),
		slog.String("api-url", x.apiURL),
	)
}

// Validate checks that every credential the bot needs is set
func (x *Slack) Validate() error {
	required := []struct {
		flag  string
		value string
	}{
		{"slack-client-id", x.clientID},
		{"slack-client-secret", x.clientSecret},
		{"slack-bot-token", x.botToken},
		{"slack-signing-secret", x.signingSecret},
	}
	for _, r := range required {
		if r.value == "" {
			return goerr.Wrap(ErrMissingRequired, "slack configuration is incomplete", goerr.V(FlagKey, r.flag))
		}
	}
	return nil
}

// Configure creates the bot token Slack service
func (x *Slack) Configure() (slacksvc.Service, error) {
	if err := x.Validate(); err != nil {
		return nil, err
	}

	svc, err := slacksvc.New(x.botToken, slacksvc.WithAPIURL(x.apiURL))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize slack service")
	}
	return svc, nil
}

// UseCaseOptions returns the OAuth settings for the use cases
func (x *Slack) UseCaseOptions() []usecase.Option {
	return []usecase.Option{
		usecase.WithOAuth(x.clientID, x.clientSecret, x.redirectURI),
		usecase.WithSlackAPIURL(x.apiURL),
	}
}

// SigningSecret returns the Slack signing secret
func (x *Slack) SigningSecret() string {
	return x.signingSecret
}
