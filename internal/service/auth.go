package service

import (
	"context"
	"fmt"

	"github.com/Skotchmaster/premium_service/internal/authclient"
	"github.com/Skotchmaster/premium_service/internal/events"
	"github.com/Skotchmaster/premium_service/internal/logging"
	"github.com/Skotchmaster/premium_service/internal/repo"
	"github.com/Skotchmaster/premium_service/internal/tokens"
)

type Gateway interface {
	Login(ctx context.Context, username, password string, caller authclient.Caller) (*authclient.LoginResult, error)
}

type AuthService struct {
	Gateway Gateway
	Repo    *repo.GormRepo
	Codec   *tokens.Codec
	Events  *events.Emitter
}

// Login forwards the credentials and, when the gateway accepts them, caches
// the issued token on the local user row. The gateway reply is returned
// unchanged.
func (s *AuthService) Login(ctx context.Context, username, password string, caller authclient.Caller) (*authclient.LoginResult, error) {
	l := logging.FromContext(ctx).With("service", "auth.login")

	res, err := s.Gateway.Login(ctx, username, password, caller)
	if err != nil {
		return nil, fmt.Errorf("gateway login: %w", err)
	}
	if !res.OK() {
		return nil, &RejectedError{Status: res.Status, Message: res.Message}
	}
	if res.Token == "" {
		return nil, ErrNoToken
	}

	claims, err := s.Codec.Decode(res.Token)
	if err != nil {
		return nil, fmt.Errorf("decode gateway token: %w", err)
	}

	if err := s.Repo.UpsertToken(ctx, claims.UserID, res.Token); err != nil {
		return nil, fmt.Errorf("save user %d: %w", claims.UserID, err)
	}
	l.Info("user_synced", "user_id", claims.UserID)

	s.Events.UserEvent(ctx, events.TypeUserLoggedIn, claims.UserID)
	return res, nil
}
