package slack_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/qainfo/pkg/domain/model/slack"
	"github.com/slack-go/slack/slackevents"
)

func TestNewEvent_AppMention(t *testing.T) {
	event := &slackevents.EventsAPIEvent{
		Type:   slackevents.CallbackEvent,
		TeamID: "T123456",
		InnerEvent: slackevents.EventsAPIInnerEvent{
			Type: "app_mention",
			Data: &slackevents.AppMentionEvent{
				Type:           "app_mention",
				User:           "U123456",
				Text:           "<@UBOT> hello",
				TimeStamp:      "1234567890.123456",
				Channel:        "C123456",
				EventTimeStamp: "1234567890.123456",
			},
		},
	}

	ev := slack.NewEvent(event)
	gt.Value(t, ev).NotNil().Required()
	gt.Value(t, ev.Type).Equal("app_mention")
	gt.Value(t, ev.UserID).Equal("U123456")
	gt.Value(t, ev.ChannelID).Equal("C123456")
	gt.Value(t, ev.Text).Equal("<@UBOT> hello")
}

func TestNewEvent_AppHomeOpened(t *testing.T) {
	event := &slackevents.EventsAPIEvent{
		Type:   slackevents.CallbackEvent,
		TeamID: "T123456",
		InnerEvent: slackevents.EventsAPIInnerEvent{
			Type: "app_home_opened",
			Data: &slackevents.AppHomeOpenedEvent{
				Type:    "app_home_opened",
				User:    "U123456",
				Channel: "D123456",
			},
		},
	}

	ev := slack.NewEvent(event)
	gt.Value(t, ev).NotNil().Required()
	gt.Value(t, ev.Type).Equal("app_home_opened")
	gt.Value(t, ev.UserID).Equal("U123456")
}

func TestNewEvent_Ignored(t *testing.T) {
	gt.Value(t, slack.NewEvent(&slackevents.EventsAPIEvent{Type: slackevents.URLVerification})).Nil()

	event := &slackevents.EventsAPIEvent{
		Type: slackevents.CallbackEvent,
		InnerEvent: slackevents.EventsAPIInnerEvent{
			Type: "message",
			Data: &slackevents.MessageEvent{Type: "message", Text: "hi"},
		},
	}
	gt.Value(t, slack.NewEvent(event)).Nil()
}
