package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/qainfo/pkg/domain/model"
	"github.com/secmon-lab/qainfo/pkg/domain/types"
	"github.com/secmon-lab/qainfo/pkg/utils/errutil"
)

// Authorize returns the user record if the user completed OAuth. A lookup
// failure is logged and treated as not found.
func (uc *UseCases) Authorize(ctx context.Context, userID types.SlackUserID) (*model.UserRecord, bool) {
	user, err := uc.repo.User().Get(ctx, userID)
	if err != nil {
		errutil.Handle(ctx, goerr.Wrap(err, "failed to look up user", goerr.V(UserIDKey, userID)), "user lookup failed")
		return nil, false
	}
	if !user.Authorized() {
		return nil, false
	}
	return user, true
}
