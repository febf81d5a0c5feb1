package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
)

// CheckSession asks the server whether the session cookie is still valid.
// 401 and 403 are reported as an unauthenticated status, not as errors.
func (c *Client) CheckSession(ctx context.Context) (SessionStatus, error) {
	var raw json.RawMessage
	err := c.do(ctx, http.MethodGet, pathLoggedIn, nil, &raw)
	var se *StatusError
	if errors.As(err, &se) && (se.Code == http.StatusUnauthorized || se.Code == http.StatusForbidden) {
		return SessionStatus{}, nil
	}
	if err != nil {
		return SessionStatus{}, err
	}
	return SessionStatus{Authenticated: parseLoggedIn(raw)}, nil
}

// parseLoggedIn accepts a bare boolean or {"loggedIn": bool}. Anything else is
// treated as unauthenticated.
func parseLoggedIn(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b
	}
	var obj struct {
		LoggedIn *bool `json:"loggedIn"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.LoggedIn != nil {
		return *obj.LoggedIn
	}
	return false
}

// FetchProfile returns the current user's identity.
func (c *Client) FetchProfile(ctx context.Context) (Profile, error) {
	var p Profile
	if err := c.do(ctx, http.MethodGet, pathProfile, nil, &p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// EndSession logs the user out on the server.
func (c *Client) EndSession(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, pathLogout, nil, nil)
}
