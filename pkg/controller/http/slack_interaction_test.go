package http_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/m-mizutani/gt"
	httpctrl "github.com/secmon-lab/qainfo/pkg/controller/http"
	"github.com/secmon-lab/qainfo/pkg/domain/types"
)

func postInteraction(t *testing.T, server http.Handler, payload string) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{}
	form.Set("payload", payload)

	rec := httptest.NewRecorder()
	req := signedRequest(t, "/hooks/slack/interaction", "application/x-www-form-urlencoded", []byte(form.Encode()))
	server.ServeHTTP(rec, req)
	return rec
}

func TestSlackInteractionHandler_Shortcut(t *testing.T) {
	uc := newMockUseCase()
	server := httpctrl.New(httpctrl.WithSlack(uc, testSigningSecret))

	rec := postInteraction(t, server, `{
		"type": "message_action",
		"callback_id": "qa-info",
		"trigger_id": "trigger-1",
		"user": {"id": "U123"},
		"channel": {"id": "C123"},
		"message_ts": "1700000000.000100",
		"message": {"type": "message", "user": "U456", "text": "question", "ts": "1700000000.000100"}
	}`)
	gt.Value(t, rec.Code).Equal(http.StatusOK)
	gt.Value(t, rec.Body.Len()).Equal(0)

	uc.wait(t)
	uc.mu.Lock()
	defer uc.mu.Unlock()
	gt.Array(t, uc.shortcuts).Length(1).Required()
	gt.Value(t, uc.shortcuts[0].UserID).Equal(types.SlackUserID("U123"))
	gt.Value(t, uc.shortcuts[0].TriggerID).Equal("trigger-1")
	gt.Value(t, uc.shortcuts[0].Message.Text()).Equal("question")
}

func TestSlackInteractionHandler_Submission(t *testing.T) {
	uc := newMockUseCase()
	server := httpctrl.New(httpctrl.WithSlack(uc, testSigningSecret))

	rec := postInteraction(t, server, `{
		"type": "view_submission",
		"user": {"id": "U123"},
		"view": {
			"type": "modal",
			"callback_id": "qa-info",
			"private_metadata": "{}",
			"state": {
				"values": {
					"pre_message": {"input": {"type": "plain_text_input", "value": "hello"}},
					"to": {"input": {"type": "static_select", "selected_option": {"value": "U456"}}}
				}
			}
		}
	}`)
	gt.Value(t, rec.Code).Equal(http.StatusOK)
	gt.Value(t, rec.Body.Len()).Equal(0)

	uc.wait(t)
	uc.mu.Lock()
	defer uc.mu.Unlock()
	gt.Array(t, uc.submissions).Length(1).Required()
	gt.Value(t, uc.submissions[0].RecipientID).Equal(types.SlackUserID("U456"))
	gt.Value(t, uc.submissions[0].PreMessage).Equal("hello")
	gt.Value(t, uc.submissions[0].Metadata).Equal("{}")
}

func TestSlackInteractionHandler_SubmissionWithoutRecipient(t *testing.T) {
	uc := newMockUseCase()
	server := httpctrl.New(httpctrl.WithSlack(uc, testSigningSecret))

	rec := postInteraction(t, server, `{
		"type": "view_submission",
		"user": {"id": "U123"},
		"view": {"type": "modal", "callback_id": "qa-info", "state": {"values": {}}}
	}`)
	gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
}

func TestSlackInteractionHandler_UnknownCallback(t *testing.T) {
	uc := newMockUseCase()
	server := httpctrl.New(httpctrl.WithSlack(uc, testSigningSecret))

	rec := postInteraction(t, server, `{
		"type": "message_action",
		"callback_id": "something-else",
		"trigger_id": "trigger-1",
		"user": {"id": "U123"}
	}`)
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	uc.mu.Lock()
	defer uc.mu.Unlock()
	gt.Array(t, uc.shortcuts).Length(0)
}

func TestSlackInteractionHandler_BadPayload(t *testing.T) {
	uc := newMockUseCase()
	server := httpctrl.New(httpctrl.WithSlack(uc, testSigningSecret))

	t.Run("malformed json", func(t *testing.T) {
		rec := postInteraction(t, server, `{not json`)
		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
	})

	t.Run("missing payload", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := signedRequest(t, "/hooks/slack/interaction", "application/x-www-form-urlencoded", []byte("foo=bar"))
		server.ServeHTTP(rec, req)
		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
	})
}
