package staffsdk

import (
	"net/http"
	"strings"
	"time"
)

// Client talks to a staffql server. It is safe for concurrent use.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client for the server at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Anonymous returns a session that sends no token.
func (c *Client) Anonymous() *Session {
	return &Session{client: c}
}

// NewSessionFromToken wraps a previously issued token.
func (c *Client) NewSessionFromToken(token string) *Session {
	return &Session{client: c, token: token}
}
