package model_test

import (
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/qainfo/pkg/domain/model"
	"github.com/secmon-lab/qainfo/pkg/domain/types"
)

func TestQuote(t *testing.T) {
	gt.Value(t, model.Quote("a\nb\nc")).Equal("a\n> b\n> c")
	gt.Value(t, model.Quote("  single line \n")).Equal("single line")
	gt.Value(t, model.Quote("")).Equal("")
}

func TestRelayText(t *testing.T) {
	gt.Value(t, model.RelayText("hi", "a\n> b")).Equal("hi\n\n>a\n> b")
}

func TestPendingRelay_EncodeDecode(t *testing.T) {
	relay := model.NewPendingRelay(types.MessageTypeBot, "a\n> b", "C123", "1700000000.000100")
	gt.String(t, relay.ID).NotEqual("")

	metadata, err := relay.Encode()
	gt.NoError(t, err).Required()
	gt.String(t, metadata).Contains(`"messageType":"bot_message"`)
	gt.String(t, metadata).Contains(`"channel_id":"C123"`)

	decoded, err := model.DecodePendingRelay(metadata)
	gt.NoError(t, err).Required()
	gt.Value(t, decoded).Equal(relay)
}

func TestDecodePendingRelay(t *testing.T) {
	t.Run("user message without channel", func(t *testing.T) {
		relay, err := model.DecodePendingRelay(`{"messageType":"","message":"hello"}`)
		gt.NoError(t, err).Required()
		gt.Bool(t, relay.MessageType.IsBot()).False()
		gt.Value(t, relay.Message).Equal("hello")
	})

	t.Run("bot message without ts", func(t *testing.T) {
		_, err := model.DecodePendingRelay(`{"messageType":"bot_message","message":"x","channel_id":"C1"}`)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, model.ErrInvalidPendingRelay)).True()
	})

	t.Run("empty", func(t *testing.T) {
		_, err := model.DecodePendingRelay("")
		gt.Bool(t, errors.Is(err, model.ErrInvalidPendingRelay)).True()
	})

	t.Run("broken json", func(t *testing.T) {
		_, err := model.DecodePendingRelay("{")
		gt.Bool(t, errors.Is(err, model.ErrInvalidPendingRelay)).True()
	})
}
