package usecase

import (
	"context"
	"slices"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/qainfo/pkg/domain/types"
)

// IsBlocked reports whether the message has one of the marker reactions.
// Reactions are listed with the acting user's token.
func (uc *UseCases) IsBlocked(ctx context.Context, channelID, ts, accessToken string) (bool, error) {
	names, err := uc.slackService.AsUser(accessToken).ListReactions(ctx, channelID, ts)
	if err != nil {
		return false, goerr.Wrap(err, "failed to list reactions",
			goerr.V(ChannelIDKey, channelID),
			goerr.V(TSKey, ts))
	}

	for _, name := range names {
		if slices.Contains(uc.markers, types.ReactionName(name)) {
			return true, nil
		}
	}
	return false, nil
}
