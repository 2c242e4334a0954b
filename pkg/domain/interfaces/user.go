package interfaces

import (
	"context"

	"github.com/secmon-lab/qainfo/pkg/domain/model"
	"github.com/secmon-lab/qainfo/pkg/domain/types"
)

// UserRepository provides database operations for authorized users.
// There is at most one record per user ID.
type UserRepository interface {
	// Get retrieves the record of the user. Returns (nil, nil) when the user
	// has no record.
	Get(ctx context.Context, userID types.SlackUserID) (*model.UserRecord, error)

	// Put creates or overwrites the record (upsert). UpdatedAt is set by the
	// repository.
	Put(ctx context.Context, user *model.UserRecord) error

	// UpdatePreMessage sets preMessage of an existing record and returns the
	// updated record. Returns (nil, nil) when the user has no record.
	UpdatePreMessage(ctx context.Context, userID types.SlackUserID, preMessage string) (*model.UserRecord, error)

	// List returns all records ordered by user ID
	List(ctx context.Context) ([]*model.UserRecord, error)

	// ListByTeam returns records of the workspace, most recently updated first
	ListByTeam(ctx context.Context, teamID string) ([]*model.UserRecord, error)
}
