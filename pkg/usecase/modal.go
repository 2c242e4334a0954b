package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/qainfo/pkg/domain/model"
	slackmodel "github.com/secmon-lab/qainfo/pkg/domain/model/slack"
	"github.com/secmon-lab/qainfo/pkg/utils/logging"
	goslack "github.com/slack-go/slack"
)

// HandleShortcut opens the composer modal for the message the shortcut was
// invoked on. Unauthorized users and blocked bot posts get a DM instead.
func (uc *UseCases) HandleShortcut(ctx context.Context, req *slackmodel.ShortcutRequest) error {
	logger := logging.From(ctx)

	user, ok := uc.Authorize(ctx, req.UserID)
	if !ok {
		logger.Info("shortcut by unregistered user", "user_id", req.UserID)
		if err := uc.slackService.PostMessage(ctx, req.UserID.String(), msgShortcutNotAuthorized); err != nil {
			return goerr.Wrap(err, "failed to notify unregistered user", goerr.V(UserIDKey, req.UserID))
		}
		return nil
	}

	src := req.Message
	recipients, err := uc.mentionedRecipients(ctx, src, user)
	if err != nil {
		return err
	}

	var text string
	if src.IsFromSourceBot(uc.sourceBotID) {
		logger.Debug("shortcut on source bot post", "bot_id", src.BotID(), "ts", src.TS())
		blocked, err := uc.IsBlocked(ctx, src.ChannelID(), src.TS(), user.AccessToken)
		if err != nil {
			return goerr.Wrap(err, "reaction check before opening modal failed")
		}
		if blocked {
			logger.Info("shortcut on handled message", "user_id", req.UserID, "ts", src.TS())
			if err := uc.slackService.PostMessage(ctx, req.UserID.String(), blockedMessage(uc.markers, msgBlockedBeforeOpen)); err != nil {
				return goerr.Wrap(err, "failed to notify blocked shortcut", goerr.V(UserIDKey, req.UserID))
			}
			return nil
		}

		text, err = src.BlockText()
		if err != nil {
			return err
		}
	} else {
		text = src.Text()
		author, err := uc.authorRecipient(ctx, src)
		if err != nil {
			return err
		}
		if author != nil {
			recipients = append(recipients, *author)
		}
	}

	relay := model.NewPendingRelay(src.MessageType(), model.Quote(text), src.ChannelID(), src.TS())
	view, err := BuildModal(user.PreMessage, recipients, relay)
	if err != nil {
		return err
	}

	if err := uc.slackService.OpenView(ctx, req.TriggerID, *view); err != nil {
		return goerr.Wrap(err, "failed to open composer modal", goerr.V(UserIDKey, req.UserID))
	}

	logger.Info("composer modal opened",
		"user_id", req.UserID,
		"relay_id", relay.ID,
		"recipients", len(recipients),
	)
	return nil
}

// mentionedRecipients resolves every <@ID> in the message text in scan order
// and appends the invoking user
func (uc *UseCases) mentionedRecipients(ctx context.Context, src *slackmodel.SourceMessage, invoker *model.UserRecord) ([]model.Recipient, error) {
	var recipients []model.Recipient
	for _, id := range slackmodel.Mentions(src.Text()) {
		info, err := uc.slackService.GetUserInfo(ctx, id.String())
		if err != nil {
			return nil, goerr.Wrap(err, "failed to resolve mentioned user", goerr.V(UserIDKey, id))
		}
		recipients = append(recipients, model.Recipient{ID: id, Name: info.RealName})
	}

	recipients = append(recipients, model.Recipient{ID: invoker.UserID, Name: invoker.RealName})
	return recipients, nil
}

// authorRecipient resolves the author of a user message. It returns nil when
// the message has no author or the author has no real name.
func (uc *UseCases) authorRecipient(ctx context.Context, src *slackmodel.SourceMessage) (*model.Recipient, error) {
	if src.UserID() == "" {
		return nil, nil
	}

	info, err := uc.slackService.GetUserInfo(ctx, src.UserID().String())
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve message author", goerr.V(UserIDKey, src.UserID()))
	}
	if info.RealName == "" {
		return nil, nil
	}
	return &model.Recipient{ID: src.UserID(), Name: info.RealName}, nil
}

// BuildModal builds the composer modal. The first recipient is pre-selected
// and the relay is carried in the private metadata.
func BuildModal(preMessage string, recipients []model.Recipient, relay *model.PendingRelay) (*goslack.ModalViewRequest, error) {
	if len(recipients) == 0 {
		return nil, goerr.New("no recipient candidate")
	}

	metadata, err := relay.Encode()
	if err != nil {
		return nil, err
	}

	options := make([]*goslack.OptionBlockObject, 0, len(recipients))
	for _, r := range recipients {
		options = append(options, goslack.NewOptionBlockObject(
			r.ID.String(),
			goslack.NewTextBlockObject(goslack.PlainTextType, r.Name, true, false),
			nil,
		))
	}

	preMessageInput := goslack.NewPlainTextInputBlockElement(nil, slackmodel.ActionIDInput)
	preMessageInput.Multiline = true
	preMessageInput.InitialValue = preMessage

	recipientSelect := goslack.NewOptionsSelectBlockElement(
		goslack.OptTypeStatic,
		goslack.NewTextBlockObject(goslack.PlainTextType, modalRecipientHolder, true, false),
		slackmodel.ActionIDInput,
		options...,
	)
	recipientSelect.InitialOption = options[0]

	return &goslack.ModalViewRequest{
		Type:            goslack.VTModal,
		CallbackID:      slackmodel.CallbackID,
		PrivateMetadata: metadata,
		Title:           goslack.NewTextBlockObject(goslack.PlainTextType, modalTitle, true, false),
		Submit:          goslack.NewTextBlockObject(goslack.PlainTextType, modalSubmit, true, false),
		Close:           goslack.NewTextBlockObject(goslack.PlainTextType, modalClose, true, false),
		Blocks: goslack.Blocks{
			BlockSet: []goslack.Block{
				goslack.NewDividerBlock(),
				goslack.NewInputBlock(
					slackmodel.BlockIDPreMessage,
					goslack.NewTextBlockObject(goslack.PlainTextType, modalPreMessageLabel, true, false),
					nil,
					preMessageInput,
				),
				goslack.NewSectionBlock(
					goslack.NewTextBlockObject(goslack.MarkdownType, "> "+relay.Message, false, false),
					nil, nil,
				),
				goslack.NewDividerBlock(),
				goslack.NewInputBlock(
					slackmodel.BlockIDTo,
					goslack.NewTextBlockObject(goslack.PlainTextType, modalRecipientLabel, true, false),
					nil,
					recipientSelect,
				),
			},
		},
	}, nil
}
