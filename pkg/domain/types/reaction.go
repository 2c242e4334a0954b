package types

// ReactionName is an emoji name without colons, e.g. "対応中"
type ReactionName string

const (
	ReactionInProgress ReactionName = "対応中"
	ReactionDone       ReactionName = "対応済"
	ReactionDone2      ReactionName = "対応済2"
)

// DefaultMarkerReactions returns the reactions that mark a message as taken
// by staff or done
func DefaultMarkerReactions() []ReactionName {
	return []ReactionName{
		ReactionInProgress,
		ReactionDone,
		ReactionDone2,
	}
}

func (x ReactionName) String() string {
	return string(x)
}

// Emoji returns the name wrapped in colons for message text
func (x ReactionName) Emoji() string {
	return ":" + string(x) + ":"
}
