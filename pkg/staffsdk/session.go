package staffsdk

import "context"

// Session sends its token with every request. The zero token is an
// anonymous session.
type Session struct {
	client  *Client
	token   string
	profile UserLogged
}

// Token returns the bearer token, empty for anonymous sessions.
func (s *Session) Token() string { return s.token }

// Profile returns the fields returned alongside the token.
func (s *Session) Profile() UserLogged { return s.profile }

// Execute runs an arbitrary GraphQL document as this session.
func (s *Session) Execute(ctx context.Context, query string, vars map[string]any, out any) error {
	return s.client.execute(ctx, s.token, query, vars, out)
}

// Me returns the caller's profile, nil when the session is not authenticated.
func (s *Session) Me(ctx context.Context) (*UserLogged, error) {
	var out struct {
		Me *UserLogged `json:"me"`
	}
	if err := s.Execute(ctx, `{ me { email userName position experience } }`, nil, &out); err != nil {
		return nil, err
	}
	return out.Me, nil
}
