package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	slackmodel "github.com/secmon-lab/qainfo/pkg/domain/model/slack"
	"github.com/secmon-lab/qainfo/pkg/utils/async"
	"github.com/secmon-lab/qainfo/pkg/utils/errutil"
	"github.com/secmon-lab/qainfo/pkg/utils/logging"
	"github.com/slack-go/slack"
)

// SlackInteractionHandler handles the message shortcut and the modal submission
type SlackInteractionHandler struct {
	slackUC SlackUseCase
}

// NewSlackInteractionHandler creates a new Slack interaction handler
func NewSlackInteractionHandler(slackUC SlackUseCase) *SlackInteractionHandler {
	return &SlackInteractionHandler{
		slackUC: slackUC,
	}
}

// ServeHTTP acknowledges the interaction with an empty 200 and processes it
// asynchronously
func (h *SlackInteractionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.From(ctx)

	// Slack sends interaction payloads as application/x-www-form-urlencoded
	// with a "payload" field containing JSON
	payload := r.FormValue("payload")
	if payload == "" {
		errutil.HandleHTTP(ctx, w, goerr.New("missing payload field in interaction request"), http.StatusBadRequest)
		return
	}

	var callback slack.InteractionCallback
	if err := json.Unmarshal([]byte(payload), &callback); err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to parse interaction payload"), http.StatusBadRequest)
		return
	}

	switch {
	case callback.Type == slack.InteractionTypeMessageAction && callback.CallbackID == slackmodel.CallbackID:
		req, err := slackmodel.NewShortcutRequest(&callback)
		if err != nil {
			errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
			return
		}

		w.WriteHeader(http.StatusOK)
		async.Dispatch(ctx, func(ctx context.Context) error {
			return h.slackUC.HandleShortcut(ctx, req)
		})

	case callback.Type == slack.InteractionTypeViewSubmission && callback.View.CallbackID == slackmodel.CallbackID:
		sub, err := slackmodel.NewSubmission(&callback)
		if err != nil {
			errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
			return
		}

		// An empty body closes the modal
		w.WriteHeader(http.StatusOK)
		async.Dispatch(ctx, func(ctx context.Context) error {
			return h.slackUC.HandleSubmission(ctx, sub)
		})

	default:
		logger.Warn("unhandled slack interaction",
			"type", callback.Type,
			"callback_id", callback.CallbackID,
			"view_callback_id", callback.View.CallbackID,
		)
		w.WriteHeader(http.StatusOK)
	}
}
