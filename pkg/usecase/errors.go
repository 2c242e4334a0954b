package usecase

import "errors"

// Sentinel errors for use case layer
var (
	// OAuth errors
	ErrMissingCode       = errors.New("authorization code is missing")
	ErrInvalidGrant      = errors.New("invalid oauth grant")
	ErrRecordDisappeared = errors.New("user record disappeared during update")
)

// Context keys for error values
const (
	UserIDKey    = "user_id"
	ChannelIDKey = "channel_id"
	TSKey        = "ts"
)
