package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/qainfo/pkg/domain/model"
	"github.com/secmon-lab/qainfo/pkg/domain/types"
	"github.com/secmon-lab/qainfo/pkg/utils/logging"
)

// OAuthScopes is the user scope requested by /qa-info auth
const OAuthScopes = "identify,users:read,chat:write:user,reactions:write,reactions:read"

const slackAuthorizeURL = "https://slack.com/oauth/authorize"

// AuthURL returns the Slack authorization URL for the user token
func (uc *UseCases) AuthURL() string {
	return uc.oauth.AuthCodeURL("")
}

// HandleOAuthCallback exchanges the code for a user token, fetches the
// profile of the user and stores the record with the initial preMessage.
func (uc *UseCases) HandleOAuthCallback(ctx context.Context, code string) (*model.UserRecord, error) {
	if code == "" {
		return nil, goerr.Wrap(ErrMissingCode, "oauth callback without code")
	}

	token, err := uc.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to exchange oauth code")
	}

	record := &model.UserRecord{
		UserID:       types.SlackUserID(extraString(token.Extra("user_id"))),
		TeamID:       extraString(token.Extra("team_id")),
		TeamName:     extraString(token.Extra("team_name")),
		AccessToken:  token.AccessToken,
		EnterpriseID: extraString(token.Extra("enterprise_id")),
		Scope:        extraString(token.Extra("scope")),
	}

	acting := uc.slackService.AsUser(token.AccessToken)

	identity, err := acting.AuthTest(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to identify token owner", goerr.V(UserIDKey, record.UserID))
	}

	record.URL = identity.URL
	record.Team = identity.Team
	record.User = identity.User
	if identity.TeamID != "" {
		record.TeamID = identity.TeamID
	}
	if identity.UserID != "" {
		record.UserID = types.SlackUserID(identity.UserID)
	}
	if identity.EnterpriseID != "" {
		record.EnterpriseID = identity.EnterpriseID
	}

	if record.UserID == "" {
		return nil, goerr.Wrap(ErrInvalidGrant, "user_id is missing in oauth grant")
	}

	info, err := acting.GetUserInfo(ctx, record.UserID.String())
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get profile of token owner", goerr.V(UserIDKey, record.UserID))
	}
	if info.RealName == "" {
		return nil, goerr.Wrap(ErrInvalidGrant, "real name of token owner is empty", goerr.V(UserIDKey, record.UserID))
	}

	record.RealName = info.RealName
	record.PreMessage = model.NewPreMessage(uc.preMessageTemplate, info.RealName)

	if err := uc.repo.User().Put(ctx, record); err != nil {
		return nil, goerr.Wrap(err, "failed to save user", goerr.V(UserIDKey, record.UserID))
	}

	logging.From(ctx).Info("user authorized",
		"user_id", record.UserID,
		"team_id", record.TeamID,
		"scope", record.Scope,
	)
	return record, nil
}

// extraString converts a token extra field to string. Slack returns null
// for absent fields such as enterprise_id.
func extraString(v any) string {
	s, _ := v.(string)
	return s
}
