package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/qainfo/pkg/domain/model"
	slackmodel "github.com/secmon-lab/qainfo/pkg/domain/model/slack"
	"github.com/secmon-lab/qainfo/pkg/utils/errutil"
	"github.com/secmon-lab/qainfo/pkg/utils/logging"
)

// HandleSubmission relays the quoted message to the selected recipient as the
// submitting user. For bot posts the marker reactions are checked again and
// the in-progress reaction is added after relaying.
func (uc *UseCases) HandleSubmission(ctx context.Context, sub *slackmodel.Submission) error {
	logger := logging.From(ctx)

	user, ok := uc.Authorize(ctx, sub.UserID)
	if !ok {
		logger.Info("submission by unregistered user", "user_id", sub.UserID)
		return nil
	}

	relay, err := model.DecodePendingRelay(sub.Metadata)
	if err != nil {
		return goerr.Wrap(err, "failed to parse submission", goerr.V(UserIDKey, sub.UserID))
	}
	logger = logger.With("relay_id", relay.ID)

	if relay.MessageType.IsBot() {
		blocked, err := uc.IsBlocked(ctx, relay.ChannelID, relay.TS, user.AccessToken)
		switch {
		case err != nil:
			errutil.Handle(ctx, err, "reaction check at submission failed, relaying anyway")
		case blocked:
			logger.Info("submission on handled message", "user_id", sub.UserID, "ts", relay.TS)
			if err := uc.slackService.PostMessage(ctx, sub.UserID.String(), blockedMessage(uc.markers, msgBlockedAtSubmit)); err != nil {
				return goerr.Wrap(err, "failed to notify blocked submission", goerr.V(UserIDKey, sub.UserID))
			}
			return nil
		}
	}

	acting := uc.slackService.AsUser(user.AccessToken)

	text := model.RelayText(sub.PreMessage, relay.Message)
	if err := acting.PostMessage(ctx, sub.RecipientID.String(), text); err != nil {
		errutil.Handle(ctx, goerr.Wrap(err, "failed to relay message",
			goerr.V(UserIDKey, sub.UserID),
			goerr.V("recipient_id", sub.RecipientID)), "relay failed")
	} else {
		logger.Info("message relayed", "user_id", sub.UserID, "recipient_id", sub.RecipientID)
	}

	if relay.MessageType.IsBot() {
		if err := acting.AddReaction(ctx, relay.ChannelID, relay.TS, uc.inProgressReaction.String()); err != nil {
			errutil.Handle(ctx, goerr.Wrap(err, "failed to mark message in progress",
				goerr.V(ChannelIDKey, relay.ChannelID),
				goerr.V(TSKey, relay.TS)), "reaction add failed")
		}
	}

	return nil
}
