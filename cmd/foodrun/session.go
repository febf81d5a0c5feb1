package main

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/jask/foodrun/internal/api"
	"github.com/jask/foodrun/internal/secrets"
)

// storedSession is the client's session contract plus the local cookie
// store: a successful server logout also forgets the saved cookie.
type storedSession struct {
	*api.Client
	store      *secrets.Store
	server     string
	cookieName string
	logger     *zap.Logger
}

// restore seeds the client's jar with the saved cookie, if any.
func (s storedSession) restore() {
	cookie, err := s.store.LoadSession(s.server)
	switch {
	case err == nil:
		s.Client.SetCookies([]*http.Cookie{{Name: s.cookieName, Value: cookie, Path: "/"}})
		s.logger.Debug("restored session cookie", zap.String("server", s.server))
	case errors.Is(err, secrets.ErrNoSession):
		s.logger.Debug("no saved session", zap.String("server", s.server))
	default:
		s.logger.Warn("failed to load saved session", zap.Error(err))
	}
}

func (s storedSession) EndSession(ctx context.Context) error {
	if err := s.Client.EndSession(ctx); err != nil {
		return err
	}
	if err := s.store.DeleteSession(s.server); err != nil {
		s.logger.Warn("failed to forget session cookie", zap.Error(err))
	}
	return nil
}
