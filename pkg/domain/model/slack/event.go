package slack

import (
	"github.com/slack-go/slack/slackevents"
)

// Event is an Events API callback the bot subscribes to
type Event struct {
	Type      string
	TeamID    string
	UserID    string
	ChannelID string
	Text      string
	EventTS   string
}

// NewEvent creates an Event from a Slack Events API event. It returns nil for
// events the bot does not handle.
func NewEvent(ev *slackevents.EventsAPIEvent) *Event {
	if ev.Type != slackevents.CallbackEvent {
		return nil
	}

	switch evt := ev.InnerEvent.Data.(type) {
	case *slackevents.AppMentionEvent:
		return &Event{
			Type:      string(slackevents.AppMention),
			TeamID:    ev.TeamID,
			UserID:    evt.User,
			ChannelID: evt.Channel,
			Text:      evt.Text,
			EventTS:   evt.EventTimeStamp,
		}
	case *slackevents.AppHomeOpenedEvent:
		return &Event{
			Type:      string(slackevents.AppHomeOpened),
			TeamID:    ev.TeamID,
			UserID:    evt.User,
			ChannelID: evt.Channel,
			EventTS:   evt.EventTimeStamp,
		}
	default:
		return nil
	}
}
