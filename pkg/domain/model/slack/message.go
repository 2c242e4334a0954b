package slack

import (
	"regexp"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/qainfo/pkg/domain/types"
	goslack "github.com/slack-go/slack"
)

// DefaultSourceBotID is the bot whose posts carry the question text in the
// second block
const DefaultSourceBotID = "B0141BXEWUX"

// ErrNoSourceBlock is returned when a bot post has no text in block index 1
var ErrNoSourceBlock = goerr.New("source text block not found")

var mentionPattern = regexp.MustCompile(`<@(\w+)>`)

// SourceMessage is the message a shortcut was invoked on
type SourceMessage struct {
	channelID   string
	ts          string
	userID      string
	botID       string
	messageType types.MessageType
	text        string
	blocks      []goslack.Block
}

// NewSourceMessage creates a SourceMessage from the message of an
// interaction payload
func NewSourceMessage(channelID, ts string, msg goslack.Message) *SourceMessage {
	return &SourceMessage{
		channelID:   channelID,
		ts:          ts,
		userID:      msg.User,
		botID:       msg.BotID,
		messageType: types.MessageType(msg.SubType),
		text:        msg.Text,
		blocks:      msg.Blocks.BlockSet,
	}
}

// Getters to maintain immutability
func (m *SourceMessage) ChannelID() string {
	return m.channelID
}

func (m *SourceMessage) TS() string {
	return m.ts
}

func (m *SourceMessage) UserID() types.SlackUserID {
	return types.SlackUserID(m.userID)
}

func (m *SourceMessage) BotID() string {
	return m.botID
}

func (m *SourceMessage) MessageType() types.MessageType {
	return m.messageType
}

func (m *SourceMessage) Text() string {
	return m.text
}

// IsFromSourceBot returns true if the message is a post of the bot whose
// questions are relayed
func (m *SourceMessage) IsFromSourceBot(sourceBotID string) bool {
	return m.messageType.IsBot() && m.botID == sourceBotID
}

// BlockText returns the text of the section block at index 1, where the
// source bot puts the question body
func (m *SourceMessage) BlockText() (string, error) {
	if len(m.blocks) < 2 {
		return "", goerr.Wrap(ErrNoSourceBlock, "message has too few blocks",
			goerr.V("blocks", len(m.blocks)),
			goerr.V("ts", m.ts))
	}

	section, ok := m.blocks[1].(*goslack.SectionBlock)
	if !ok || section.Text == nil {
		return "", goerr.Wrap(ErrNoSourceBlock, "block index 1 is not a text section",
			goerr.V("type", m.blocks[1].BlockType()),
			goerr.V("ts", m.ts))
	}
	return section.Text.Text, nil
}

// Mentions returns user IDs mentioned as <@ID> in scan order. Duplicates are
// kept.
func Mentions(text string) []types.SlackUserID {
	var ids []types.SlackUserID
	for _, match := range mentionPattern.FindAllStringSubmatch(text, -1) {
		ids = append(ids, types.SlackUserID(match[1]))
	}
	return ids
}
