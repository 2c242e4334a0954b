package types

// Command is the first token of the /qa-info slash command
type Command string

const (
	CommandHelp    Command = "help"
	CommandAuth    Command = "auth"
	CommandMessage Command = "message"
	CommandLogout  Command = "logout"
)

// IsValid checks if the command is a known sub command
func (c Command) IsValid() bool {
	switch c {
	case CommandHelp, CommandAuth, CommandMessage, CommandLogout:
		return true
	default:
		return false
	}
}

func (c Command) String() string {
	return string(c)
}
