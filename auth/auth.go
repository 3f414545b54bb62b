// Package auth obtains and refreshes the bearer tokens required by the
// schedule API. Token issuance itself is an opaque external service; this
// package only runs the client-credentials flow against it.
package auth

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
)

// ClientCred holds a client-credentials configuration and the token it
// last obtained.
type ClientCred struct {
	conf  func(ctx context.Context) (*oauth2.Token, error)
	token *oauth2.Token
}

// NewClientCred creates a ClientCred from the configuration.
func NewClientCred(conf Conf) *ClientCred {
	cfg := conf.toOauth2Config()
	return &ClientCred{
		conf: func(ctx context.Context) (*oauth2.Token, error) { return cfg.Token(ctx) },
	}
}

// Token retrieves a valid access token, requesting a new one when the
// cached token has expired.
func (c *ClientCred) Token(ctx context.Context) (string, error) {
	if c.token != nil && c.token.Valid() {
		return c.token.AccessToken, nil
	}
	if err := c.refresh(ctx); err != nil {
		return "", err
	}
	return c.token.AccessToken, nil
}

// SetAuthHeader sets the Authorization header on the request, refreshing
// the token first if needed.
func (c *ClientCred) SetAuthHeader(r *http.Request) error {
	if c.token == nil || !c.token.Valid() {
		if err := c.refresh(r.Context()); err != nil {
			return err
		}
	}
	c.token.SetAuthHeader(r)
	return nil
}

func (c *ClientCred) refresh(ctx context.Context) error {
	tok, err := c.conf(ctx)
	if err != nil {
		return fmt.Errorf("failed to get token: %w", err)
	}
	c.token = tok
	return nil
}
