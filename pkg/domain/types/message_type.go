package types

// MessageType is the subtype of the message a relay was started from. Only
// bot-authored messages are distinguished; user messages have no subtype.
type MessageType string

const (
	MessageTypeUser MessageType = ""
	MessageTypeBot  MessageType = "bot_message"
)

// IsBot returns true if the source message was posted by a bot
func (x MessageType) IsBot() bool {
	return x == MessageTypeBot
}

func (x MessageType) String() string {
	return string(x)
}
