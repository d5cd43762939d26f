package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cinebook-cli/auth"
	"cinebook-cli/model"
)

// Login exchanges credentials for a token pair.
func (c *Client) Login(ctx context.Context, username string, password string) (*auth.Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, errors.New("username and password are required")
	}
	endpoint := fmt.Sprintf("%s/token/", c.baseURL)
	body := map[string]string{"username": username, "password": password}

	var pair model.TokenPair
	if err := c.postJSON(ctx, nil, endpoint, body, &pair); err != nil {
		return nil, err
	}
	if pair.Access == "" {
		return nil, errors.New("login response carried no access token")
	}
	return &auth.Session{Access: pair.Access, Refresh: pair.Refresh}, nil
}

// RefreshSession exchanges the refresh token for a new access token. The
// server rotates refresh tokens, so the returned session replaces both.
func (c *Client) RefreshSession(ctx context.Context, session *auth.Session) (*auth.Session, error) {
	if session == nil || strings.TrimSpace(session.Refresh) == "" {
		return nil, errors.New("a refresh token is required")
	}
	endpoint := fmt.Sprintf("%s/token/refresh/", c.baseURL)
	body := map[string]string{"refresh": session.Refresh}

	var pair model.TokenPair
	if err := c.postJSON(ctx, nil, endpoint, body, &pair); err != nil {
		return nil, err
	}
	if pair.Access == "" {
		return nil, errors.New("refresh response carried no access token")
	}
	next := &auth.Session{Access: pair.Access, Refresh: pair.Refresh}
	if next.Refresh == "" {
		next.Refresh = session.Refresh
	}
	return next, nil
}
