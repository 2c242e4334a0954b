package http

import (
	"context"

	"github.com/secmon-lab/qainfo/pkg/domain/model"
	slackmodel "github.com/secmon-lab/qainfo/pkg/domain/model/slack"
	"github.com/slack-go/slack/slackevents"
)

// SlackUseCase is the request handling logic behind /hooks/slack
type SlackUseCase interface {
	HandleSlackEvent(ctx context.Context, event *slackevents.EventsAPIEvent) error
	HandleCommand(ctx context.Context, req *slackmodel.CommandRequest) string
	HandleShortcut(ctx context.Context, req *slackmodel.ShortcutRequest) error
	HandleSubmission(ctx context.Context, sub *slackmodel.Submission) error
}

// OAuthUseCase is the logic behind /oauth
type OAuthUseCase interface {
	HandleOAuthCallback(ctx context.Context, code string) (*model.UserRecord, error)
}
