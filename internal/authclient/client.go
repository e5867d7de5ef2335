// Package authclient holds one visitor's authentication session against the
// auth service, the way a browser client keeps its session after sign-in.
package authclient

import (
	"context"
	"errors"
	"sync"
	"time"

	"cro-sprint-backend/internal/domain"
	"cro-sprint-backend/internal/logger"
	"cro-sprint-backend/internal/service"
)

// Client is safe for concurrent use
type Client struct {
	auth service.AuthService
	now  func() time.Time

	mu      sync.RWMutex
	session *domain.Session
}

func New(auth service.AuthService) *Client {
	return &Client{auth: auth, now: time.Now}
}

// SignInWithPassword establishes a session on success
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) error {
	session, err := c.auth.SignInWithPassword(ctx, email, password)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.session = session
	c.mu.Unlock()
	return nil
}

// SignUp registers a new account. It does not establish a session.
func (c *Client) SignUp(ctx context.Context, email, password string, opts domain.SignUpOptions) error {
	_, err := c.auth.SignUp(ctx, email, password, opts)
	return err
}

// GetUser resolves the current session identity. No session, or a session
// the auth service no longer accepts, yields (nil, nil).
func (c *Client) GetUser(ctx context.Context) (*domain.User, error) {
	c.mu.RLock()
	session := c.session
	c.mu.RUnlock()

	if session == nil {
		return nil, nil
	}
	if !session.ExpiresAt.IsZero() && !c.now().Before(session.ExpiresAt) {
		c.dropSession(session)
		return nil, nil
	}

	user, err := c.auth.GetUser(ctx, session.AccessToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidToken) {
			logger.WarnContext(ctx, "Session rejected by auth service, dropping it", "error", err)
			c.dropSession(session)
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// Session returns the current session, if any
func (c *Client) Session() *domain.Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

// SignOut forgets the current session
func (c *Client) SignOut() {
	c.mu.Lock()
	c.session = nil
	c.mu.Unlock()
}

// dropSession clears s only if it is still the current session
func (c *Client) dropSession(s *domain.Session) {
	c.mu.Lock()
	if c.session == s {
		c.session = nil
	}
	c.mu.Unlock()
}
