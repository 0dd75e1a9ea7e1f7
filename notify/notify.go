package notify

import (
	"HospitalAdmin/cache"
	"HospitalAdmin/session"
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notification is a transient message shown to the user.
type Notification struct {
	Level       Level     `json:"level"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func Success(description string) Notification {
	return Notification{Level: LevelSuccess, Title: "Success", Description: description}
}

func Failure(description string) Notification {
	return Notification{Level: LevelError, Title: "Error", Description: description}
}

// Notifier delivers notifications. Delivery is fire-and-forget: failures
// are logged and never reach the caller.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// Center queues notifications per recipient in Redis until the client
// drains them.
type Center struct {
	cache *cache.Cache
	ttl   time.Duration
	now   func() time.Time
}

// NewCenter builds a Center. With a nil cache notifications are only logged.
func NewCenter(c *cache.Cache, ttl time.Duration) *Center {
	return &Center{cache: c, ttl: ttl, now: time.Now}
}

func inboxKey(recipient string) string {
	return "notifications:" + recipient
}

func (c *Center) Notify(ctx context.Context, n Notification) {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = c.now().UTC()
	}
	recipient := session.Recipient(ctx)

	event := log.Info()
	if n.Level == LevelError {
		event = log.Warn()
	}
	event.Str("recipient", recipient).Str("level", string(n.Level)).Str("title", n.Title).Msg(n.Description)

	if c.cache == nil {
		return
	}
	data, err := json.Marshal(n)
	if err != nil {
		log.Error().Err(err).Msg("failed to encode notification")
		return
	}
	if err := c.cache.Append(context.WithoutCancel(ctx), inboxKey(recipient), data, c.ttl); err != nil {
		log.Error().Err(err).Str("recipient", recipient).Msg("failed to queue notification")
	}
}

// Drain returns and removes the pending notifications of recipient, oldest
// first. It never returns nil.
func (c *Center) Drain(ctx context.Context, recipient string) ([]Notification, error) {
	out := []Notification{}
	if c.cache == nil {
		return out, nil
	}
	raw, err := c.cache.Drain(ctx, inboxKey(recipient))
	if err != nil {
		return out, err
	}
	for _, item := range raw {
		var n Notification
		if err := json.Unmarshal([]byte(item), &n); err != nil {
			log.Warn().Err(err).Msg("dropping malformed notification")
			continue
		}
		out = append(out, n)
	}
	return out, nil
}
