package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/qainfo/pkg/domain/interfaces"
	"github.com/secmon-lab/qainfo/pkg/domain/model"
	"github.com/secmon-lab/qainfo/pkg/domain/types"
)

type userRepository struct {
	mu    sync.RWMutex
	users map[types.SlackUserID]*model.UserRecord
}

var _ interfaces.UserRepository = &userRepository{}

func newUserRepository() *userRepository {
	return &userRepository{
		users: make(map[types.SlackUserID]*model.UserRecord),
	}
}

// Get retrieves a user record by ID. Returns (nil, nil) if not found.
func (r *userRepository) Get(ctx context.Context, userID types.SlackUserID) (*model.UserRecord, error) {
	if userID == "" {
		return nil, goerr.New("user ID is empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[userID]
	if !ok {
		return nil, nil
	}

	// Return a copy to prevent external modifications
	userCopy := *user
	return &userCopy, nil
}

// Put creates or overwrites a user record
func (r *userRepository) Put(ctx context.Context, user *model.UserRecord) error {
	if user == nil || user.UserID == "" {
		return goerr.New("user ID is empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	user.UpdatedAt = time.Now().UTC()
	userCopy := *user
	r.users[user.UserID] = &userCopy
	return nil
}

// UpdatePreMessage sets preMessage of an existing record. Returns (nil, nil)
// if not found.
func (r *userRepository) UpdatePreMessage(ctx context.Context, userID types.SlackUserID, preMessage string) (*model.UserRecord, error) {
	if userID == "" {
		return nil, goerr.New("user ID is empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[userID]
	if !ok {
		return nil, nil
	}

	user.PreMessage = preMessage
	user.UpdatedAt = time.Now().UTC()

	userCopy := *user
	return &userCopy, nil
}

// List retrieves all user records ordered by user ID
func (r *userRepository) List(ctx context.Context) ([]*model.UserRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*model.UserRecord, 0, len(r.users))
	for _, user := range r.users {
		userCopy := *user
		users = append(users, &userCopy)
	}

	sort.Slice(users, func(i, j int) bool {
		return users[i].UserID < users[j].UserID
	})

	return users, nil
}

// ListByTeam retrieves records of the team, most recently updated first
func (r *userRepository) ListByTeam(ctx context.Context, teamID string) ([]*model.UserRecord, error) {
	if teamID == "" {
		return nil, goerr.New("team ID is empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var users []*model.UserRecord
	for _, user := range r.users {
		if user.TeamID != teamID {
			continue
		}
		userCopy := *user
		users = append(users, &userCopy)
	}

	sort.Slice(users, func(i, j int) bool {
		return users[i].UpdatedAt.After(users[j].UpdatedAt)
	})

	return users, nil
}
