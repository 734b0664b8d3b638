package slack

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
)

// DefaultCacheTTL is the default TTL for the email to Slack user ID cache
const DefaultCacheTTL = 15 * time.Minute

// cacheEntry holds a cached Slack user ID with expiration
type cacheEntry struct {
	userID    string
	expiresAt time.Time
}

// client implements Service interface
type client struct {
	api      *slack.Client
	cacheTTL time.Duration

	mu    sync.RWMutex
	cache map[string]cacheEntry
}

// Option is a functional option for client configuration
type Option func(*client)

// WithCacheTTL sets the TTL for the user lookup cache
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *client) {
		c.cacheTTL = ttl
	}
}

// New creates a new Slack service with the provided bot token
func New(token string, opts ...Option) (Service, error) {
	if token == "" {
		return nil, goerr.New("Slack bot token is required")
	}

	c := &client{
		api:      slack.New(token),
		cacheTTL: DefaultCacheTTL,
		cache:    make(map[string]cacheEntry),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// SendDirectMessage DMs the Slack user registered under the given email
func (c *client) SendDirectMessage(ctx context.Context, email, title, message string) error {
	userID, err := c.lookupUserID(ctx, email)
	if err != nil {
		return err
	}

	channel, _, _, err := c.api.OpenConversationContext(ctx, &slack.OpenConversationParameters{
		Users: []string{userID},
	})
	if err != nil {
		return goerr.Wrap(err, "failed to open Slack DM", goerr.V("user_id", userID))
	}

	_, _, err = c.api.PostMessageContext(ctx, channel.ID,
		slack.MsgOptionText(title+"\n"+message, false),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to post Slack DM", goerr.V("user_id", userID))
	}

	return nil
}

func (c *client) lookupUserID(ctx context.Context, email string) (string, error) {
	c.mu.RLock()
	entry, ok := c.cache[email]
	c.mu.RUnlock()
	if ok && time.Now().Before(entry.expiresAt) {
		return entry.userID, nil
	}

	user, err := c.api.GetUserByEmailContext(ctx, email)
	if err != nil {
		return "", goerr.Wrap(err, "failed to look up Slack user by email")
	}

	c.mu.Lock()
	c.cache[email] = cacheEntry{
		userID:    user.ID,
		expiresAt: time.Now().Add(c.cacheTTL),
	}
	c.mu.Unlock()

	return user.ID, nil
}
