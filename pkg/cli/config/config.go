package config

import (
	"errors"
	"io/fs"
	"os"
	"slices"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/qainfo/pkg/domain/types"
	"github.com/secmon-lab/qainfo/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// BotSettings is the optional TOML file that overrides the built-in bot
// behavior. Empty fields keep the defaults.
type BotSettings struct {
	SourceBotID        string   `toml:"source_bot_id"`
	MarkerReactions    []string `toml:"marker_reactions"`
	InProgressReaction string   `toml:"in_progress_reaction"`
	PreMessageTemplate string   `toml:"pre_message_template"`
}

func validateReaction(name string) error {
	if name == "" || strings.ContainsAny(name, ": \t\n") {
		return goerr.Wrap(ErrInvalidReaction, "reaction must be a bare emoji name",
			goerr.V(ReactionKey, name))
	}
	return nil
}

// Validate checks if the BotSettings is valid
func (s *BotSettings) Validate() error {
	for _, name := range s.MarkerReactions {
		if err := validateReaction(name); err != nil {
			return goerr.Wrap(err, "invalid marker_reactions")
		}
	}
	if s.InProgressReaction != "" {
		if err := validateReaction(s.InProgressReaction); err != nil {
			return goerr.Wrap(err, "invalid in_progress_reaction")
		}
		// A relayed bot post must end up blocked by its own in-progress mark
		if !slices.Contains(s.markers(), types.ReactionName(s.InProgressReaction)) {
			return goerr.Wrap(ErrInvalidReaction, "in_progress_reaction must be one of the marker reactions",
				goerr.V(ReactionKey, s.InProgressReaction))
		}
	}
	if s.PreMessageTemplate != "" && !strings.Contains(s.PreMessageTemplate, "{name}") {
		return goerr.Wrap(ErrInvalidTemplate, "pre_message_template must contain {name}",
			goerr.V("template", s.PreMessageTemplate))
	}
	return nil
}

// markers returns the configured marker reactions or the defaults
func (s *BotSettings) markers() []types.ReactionName {
	if len(s.MarkerReactions) == 0 {
		return types.DefaultMarkerReactions()
	}
	markers := make([]types.ReactionName, len(s.MarkerReactions))
	for i, name := range s.MarkerReactions {
		markers[i] = types.ReactionName(name)
	}
	return markers
}

// Options converts the settings into use case options
func (s *BotSettings) Options() []usecase.Option {
	var opts []usecase.Option

	if s.SourceBotID != "" {
		opts = append(opts, usecase.WithSourceBotID(s.SourceBotID))
	}
	if len(s.MarkerReactions) > 0 {
		opts = append(opts, usecase.WithMarkerReactions(s.markers()))
	}
	if s.InProgressReaction != "" {
		opts = append(opts, usecase.WithInProgressReaction(types.ReactionName(s.InProgressReaction)))
	}
	if s.PreMessageTemplate != "" {
		opts = append(opts, usecase.WithPreMessageTemplate(s.PreMessageTemplate))
	}

	return opts
}

// LoadBotSettings loads the bot settings from a TOML file
func LoadBotSettings(path string) (*BotSettings, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerr.Wrap(ErrConfigNotFound, "bot settings file not found", goerr.V(ConfigPathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read bot settings file", goerr.V(ConfigPathKey, path))
	}

	var settings BotSettings
	if err := toml.Unmarshal(data, &settings); err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, "failed to parse TOML bot settings",
			goerr.V(ConfigPathKey, path), goerr.V("error", err.Error()))
	}

	if err := settings.Validate(); err != nil {
		return nil, goerr.Wrap(err, "bot settings validation failed", goerr.V(ConfigPathKey, path))
	}

	return &settings, nil
}

// Bot holds the CLI flag pointing to the bot settings file
type Bot struct {
	path string
}

// Flags returns CLI flags for bot settings
func (b *Bot) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "bot-config",
			Usage:       "Path to a TOML file overriding source bot ID, marker reactions and preMessage template",
			Category:    "Bot",
			Sources:     cli.EnvVars("QAINFO_BOT_CONFIG"),
			Destination: &b.path,
		},
	}
}

// Configure loads the settings file when set. Without it the defaults apply.
func (b *Bot) Configure() ([]usecase.Option, error) {
	if b.path == "" {
		return nil, nil
	}

	settings, err := LoadBotSettings(b.path)
	if err != nil {
		return nil, err
	}
	return settings.Options(), nil
}
