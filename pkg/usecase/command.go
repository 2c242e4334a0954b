package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	slackmodel "github.com/secmon-lab/qainfo/pkg/domain/model/slack"
	"github.com/secmon-lab/qainfo/pkg/domain/types"
	"github.com/secmon-lab/qainfo/pkg/utils/errutil"
	"github.com/secmon-lab/qainfo/pkg/utils/logging"
)

// HandleCommand runs a /qa-info sub command and returns the ephemeral reply.
// It never fails; errors are logged and answered with the usage.
func (uc *UseCases) HandleCommand(ctx context.Context, req *slackmodel.CommandRequest) string {
	tokens := strings.Fields(req.Text)

	reply, err := uc.runCommand(ctx, req.UserID, tokens)
	if err != nil {
		errutil.Handle(ctx, err, "command error")
		return msgCommandError
	}
	return reply
}

func (uc *UseCases) runCommand(ctx context.Context, userID types.SlackUserID, tokens []string) (string, error) {
	if len(tokens) == 0 {
		return msgUsage, nil
	}

	cmd := types.Command(tokens[0])
	logging.From(ctx).Debug("slash command received",
		"user_id", userID,
		"command", cmd,
		"known", cmd.IsValid(),
		"args", len(tokens)-1,
	)
	if !cmd.IsValid() {
		return msgUsage, nil
	}

	switch cmd {
	case types.CommandHelp:
		return msgHelp, nil

	case types.CommandAuth:
		return fmt.Sprintf(msgAuthFormat, uc.AuthURL()), nil

	case types.CommandMessage:
		if len(tokens) >= 2 {
			return uc.setPreMessage(ctx, userID, tokens[1])
		}
		return uc.showPreMessage(ctx, userID)

	case types.CommandLogout:
		return msgLogout, nil
	}
	return msgUsage, nil
}

func (uc *UseCases) showPreMessage(ctx context.Context, userID types.SlackUserID) (string, error) {
	user, ok := uc.Authorize(ctx, userID)
	if !ok {
		return msgNotRegisteredHint, nil
	}
	return fmt.Sprintf(msgPreMessageFormat, user.PreMessage), nil
}

func (uc *UseCases) setPreMessage(ctx context.Context, userID types.SlackUserID, preMessage string) (string, error) {
	if _, ok := uc.Authorize(ctx, userID); !ok {
		return msgNotRegistered, nil
	}

	updated, err := uc.repo.User().UpdatePreMessage(ctx, userID, preMessage)
	if err != nil {
		return "", goerr.Wrap(err, "failed to update preMessage", goerr.V(UserIDKey, userID))
	}
	if updated == nil {
		return "", goerr.Wrap(ErrRecordDisappeared, "failed to update preMessage", goerr.V(UserIDKey, userID))
	}

	logging.From(ctx).Info("preMessage updated", "user_id", userID)
	return fmt.Sprintf(msgPreMessageSetFormat, updated.PreMessage), nil
}
