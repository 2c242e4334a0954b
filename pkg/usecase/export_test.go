package usecase

// Replies exported for testing
const (
	MsgUsage                 = msgUsage
	MsgHelp                  = msgHelp
	MsgNotRegistered         = msgNotRegistered
	MsgNotRegisteredHint     = msgNotRegisteredHint
	MsgLogout                = msgLogout
	MsgCommandError          = msgCommandError
	MsgShortcutNotAuthorized = msgShortcutNotAuthorized
)

// BlockedMessage is exported for testing
var BlockedMessage = blockedMessage

// BlockedBeforeOpen and BlockedAtSubmit are exported for testing
const (
	BlockedBeforeOpen = msgBlockedBeforeOpen
	BlockedAtSubmit   = msgBlockedAtSubmit
)
