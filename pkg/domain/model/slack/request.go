package slack

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/qainfo/pkg/domain/types"
	goslack "github.com/slack-go/slack"
)

// Identifiers shared by the modal and its submission
const (
	CallbackID        = "qa-info"
	BlockIDPreMessage = "pre_message"
	BlockIDTo         = "to"
	ActionIDInput     = "input"
)

// ErrInvalidRequest is returned when a Slack payload misses required fields
// or carries a malformed member ID
var ErrInvalidRequest = goerr.New("invalid slack request")

func validateUserID(id string, field string) error {
	if err := types.SlackUserID(id).Validate(); err != nil {
		return goerr.Wrap(ErrInvalidRequest, "invalid member ID in slack request",
			goerr.V("field", field),
			goerr.V("cause", err.Error()))
	}
	return nil
}

// CommandRequest is a /qa-info slash command invocation
type CommandRequest struct {
	UserID    types.SlackUserID
	ChannelID string
	TeamID    string
	Text      string
}

// NewCommandRequest creates a CommandRequest from a parsed slash command
func NewCommandRequest(cmd goslack.SlashCommand) (*CommandRequest, error) {
	if cmd.UserID == "" {
		return nil, goerr.Wrap(ErrInvalidRequest, "user_id is missing in slash command",
			goerr.V("command", cmd.Command))
	}
	if err := validateUserID(cmd.UserID, "user_id"); err != nil {
		return nil, err
	}
	return &CommandRequest{
		UserID:    types.SlackUserID(cmd.UserID),
		ChannelID: cmd.ChannelID,
		TeamID:    cmd.TeamID,
		Text:      cmd.Text,
	}, nil
}

// ShortcutRequest is a message shortcut invocation
type ShortcutRequest struct {
	UserID    types.SlackUserID
	TriggerID string
	Message   *SourceMessage
}

// NewShortcutRequest creates a ShortcutRequest from a message_action payload
func NewShortcutRequest(callback *goslack.InteractionCallback) (*ShortcutRequest, error) {
	if callback.User.ID == "" {
		return nil, goerr.Wrap(ErrInvalidRequest, "user is missing in shortcut")
	}
	if err := validateUserID(callback.User.ID, "user.id"); err != nil {
		return nil, err
	}
	if callback.TriggerID == "" {
		return nil, goerr.Wrap(ErrInvalidRequest, "trigger_id is missing in shortcut",
			goerr.V("user_id", callback.User.ID))
	}

	ts := callback.MessageTs
	if ts == "" {
		ts = callback.Message.Timestamp
	}

	return &ShortcutRequest{
		UserID:    types.SlackUserID(callback.User.ID),
		TriggerID: callback.TriggerID,
		Message:   NewSourceMessage(callback.Channel.ID, ts, callback.Message),
	}, nil
}

// Submission is the submitted state of the composer modal
type Submission struct {
	UserID      types.SlackUserID
	RecipientID types.SlackUserID
	PreMessage  string
	Metadata    string
}

// NewSubmission extracts the modal state from a view_submission payload
func NewSubmission(callback *goslack.InteractionCallback) (*Submission, error) {
	if callback.User.ID == "" {
		return nil, goerr.Wrap(ErrInvalidRequest, "user is missing in view submission")
	}
	if err := validateUserID(callback.User.ID, "user.id"); err != nil {
		return nil, err
	}
	if callback.View.State == nil {
		return nil, goerr.Wrap(ErrInvalidRequest, "view state is missing",
			goerr.V("user_id", callback.User.ID))
	}

	values := callback.View.State.Values
	to, ok := values[BlockIDTo][ActionIDInput]
	if !ok || to.SelectedOption.Value == "" {
		return nil, goerr.Wrap(ErrInvalidRequest, "recipient is not selected",
			goerr.V("user_id", callback.User.ID))
	}
	if err := validateUserID(to.SelectedOption.Value, "to"); err != nil {
		return nil, err
	}

	return &Submission{
		UserID:      types.SlackUserID(callback.User.ID),
		RecipientID: types.SlackUserID(to.SelectedOption.Value),
		PreMessage:  values[BlockIDPreMessage][ActionIDInput].Value,
		Metadata:    callback.View.PrivateMetadata,
	}, nil
}
