package staffsdk

import (
	"context"
	"errors"
)

const (
	registerMutation = `mutation Register($input: UserInput) {
  register(input: $input) { token email userName position experience }
}`
	loginMutation = `mutation Login($input: UserInput) {
  login(input: $input) { token email }
}`
)

var errNoToken = errors.New("staffql: server returned no token")

// Register creates an account and returns a session for it.
func (c *Client) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	var out struct {
		Register *UserLogged `json:"register"`
	}
	if err := c.execute(ctx, "", registerMutation, map[string]any{"input": in}, &out); err != nil {
		return nil, err
	}
	return c.sessionFrom(out.Register)
}

// Login exchanges credentials for a session.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	var out struct {
		Login *UserLogged `json:"login"`
	}
	vars := map[string]any{"input": map[string]any{"email": email, "password": password}}
	if err := c.execute(ctx, "", loginMutation, vars, &out); err != nil {
		return nil, err
	}
	return c.sessionFrom(out.Login)
}

func (c *Client) sessionFrom(u *UserLogged) (*Session, error) {
	if u == nil || u.Token == nil || *u.Token == "" {
		return nil, errNoToken
	}
	return &Session{client: c, token: *u.Token, profile: *u}, nil
}
