package usecase

import (
	"context"

	slackmodel "github.com/secmon-lab/qainfo/pkg/domain/model/slack"
	"github.com/secmon-lab/qainfo/pkg/utils/logging"
	"github.com/slack-go/slack/slackevents"
)

// HandleSlackEvent processes Slack Events API events. Subscribed events are
// only logged.
func (uc *UseCases) HandleSlackEvent(ctx context.Context, event *slackevents.EventsAPIEvent) error {
	logger := logging.From(ctx)

	ev := slackmodel.NewEvent(event)
	if ev == nil {
		logger.Warn("unsupported slack event type", "type", event.Type, "innerType", event.InnerEvent.Type)
		return nil
	}

	logger.Info("slack event received",
		"type", ev.Type,
		"team_id", ev.TeamID,
		"user_id", ev.UserID,
		"channel_id", ev.ChannelID,
	)
	return nil
}
