package model

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/qainfo/pkg/domain/types"
)

// ErrInvalidPendingRelay is returned when the modal private metadata can not
// be decoded
var ErrInvalidPendingRelay = goerr.New("invalid pending relay")

// PendingRelay is a quote-and-relay operation started by the message
// shortcut. It travels in the modal private metadata and is consumed by the
// view submission.
type PendingRelay struct {
	ID          string            `json:"id"`
	MessageType types.MessageType `json:"messageType"`
	Message     string            `json:"message"`
	ChannelID   string            `json:"channel_id"`
	TS          string            `json:"ts"`
}

// NewPendingRelay creates a PendingRelay with a new correlation ID. The
// message must already be quoted by Quote.
func NewPendingRelay(messageType types.MessageType, message, channelID, ts string) *PendingRelay {
	return &PendingRelay{
		ID:          uuid.New().String(),
		MessageType: messageType,
		Message:     message,
		ChannelID:   channelID,
		TS:          ts,
	}
}

// Encode returns the JSON string stored as private metadata
func (x *PendingRelay) Encode() (string, error) {
	raw, err := json.Marshal(x)
	if err != nil {
		return "", goerr.Wrap(err, "failed to encode pending relay")
	}
	return string(raw), nil
}

// Validate checks that a bot-authored relay knows its source message, which
// is needed to check and add reactions.
func (x *PendingRelay) Validate() error {
	if x.MessageType.IsBot() && (x.ChannelID == "" || x.TS == "") {
		return goerr.Wrap(ErrInvalidPendingRelay, "source message of bot relay is missing",
			goerr.V("channel_id", x.ChannelID),
			goerr.V("ts", x.TS))
	}
	return nil
}

// DecodePendingRelay parses private metadata created by Encode
func DecodePendingRelay(metadata string) (*PendingRelay, error) {
	if metadata == "" {
		return nil, goerr.Wrap(ErrInvalidPendingRelay, "private metadata is empty")
	}

	var relay PendingRelay
	if err := json.Unmarshal([]byte(metadata), &relay); err != nil {
		return nil, goerr.Wrap(ErrInvalidPendingRelay, "failed to decode pending relay",
			goerr.V("error", err.Error()))
	}
	if err := relay.Validate(); err != nil {
		return nil, err
	}
	return &relay, nil
}

// Quote trims the text and re-indents every line after the first as a
// Slack quote. The first line gets its "> " from the surrounding message.
func Quote(text string) string {
	return strings.Join(strings.Split(strings.TrimSpace(text), "\n"), "\n> ")
}

// RelayText builds the DM body from the edited greeting and the quoted text
func RelayText(preMessage, quoted string) string {
	return preMessage + "\n\n>" + quoted
}
