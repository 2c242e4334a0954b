package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrConfigNotFound  = goerr.New("configuration file not found")
	ErrInvalidConfig   = goerr.New("invalid configuration")
	ErrMissingRequired = goerr.New("required configuration is missing")
	ErrInvalidReaction = goerr.New("invalid reaction name")
	ErrInvalidTemplate = goerr.New("invalid preMessage template")
	ErrInvalidBackend  = goerr.New("invalid repository backend")
)

// Context keys for error values
const (
	ConfigPathKey = "config_path"
	FlagKey       = "flag"
	ReactionKey   = "reaction"
	BackendKey    = "backend"
)
