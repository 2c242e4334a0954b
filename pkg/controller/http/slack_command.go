package http

import (
	"encoding/json"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	slackmodel "github.com/secmon-lab/qainfo/pkg/domain/model/slack"
	"github.com/secmon-lab/qainfo/pkg/utils/errutil"
	"github.com/secmon-lab/qainfo/pkg/utils/logging"
	"github.com/slack-go/slack"
)

// SlackCommandHandler handles the /qa-info slash command
type SlackCommandHandler struct {
	slackUC SlackUseCase
}

// NewSlackCommandHandler creates a new slash command handler
func NewSlackCommandHandler(slackUC SlackUseCase) *SlackCommandHandler {
	return &SlackCommandHandler{
		slackUC: slackUC,
	}
}

// ServeHTTP answers the command with an ephemeral message in the response body
func (h *SlackCommandHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cmd, err := slack.SlashCommandParse(r)
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to parse slash command"), http.StatusBadRequest)
		return
	}

	req, err := slackmodel.NewCommandRequest(cmd)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}

	reply := h.slackUC.HandleCommand(ctx, req)

	data, err := json.Marshal(&slack.Msg{
		ResponseType: slack.ResponseTypeEphemeral,
		Text:         reply,
	})
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to marshal command reply"), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(data); err != nil {
		logging.From(ctx).Error("failed to write command reply", "error", err)
	}
}
