package middleware

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/keshon/hizollo/internal/command"
)

// Cooldowns remembers when each user may run each command again.
type Cooldowns struct {
	mu    sync.Mutex
	until map[string]time.Time
	now   func() time.Time
}

// NewCooldowns returns an empty tracker.
func NewCooldowns() *Cooldowns {
	return &Cooldowns{until: make(map[string]time.Time), now: time.Now}
}

// Take starts the cooldown for key unless one is running, in which case it
// returns the time left.
func (c *Cooldowns) Take(key string, d time.Duration) (time.Duration, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if until, ok := c.until[key]; ok && now.Before(until) {
		return until.Sub(now), false
	}
	c.until[key] = now.Add(d)
	return 0, true
}

// Prune drops expired entries.
func (c *Cooldowns) Prune() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for k, until := range c.until {
		if !now.Before(until) {
			delete(c.until, k)
		}
	}
}

// WithCooldown rejects a command the caller ran less than Command.Cooldown
// seconds ago.
func WithCooldown(c *Cooldowns) command.Middleware {
	return func(next command.Handler) command.Handler {
		return func(ctx context.Context, inv *command.Invocation) error {
			if inv.Command == nil || inv.Command.Cooldown <= 0 {
				return next(ctx, inv)
			}
			key := inv.Caller.UserID + "/" + commandName(inv)
			left, ok := c.Take(key, time.Duration(inv.Command.Cooldown)*time.Second)
			if !ok {
				secs := int(math.Ceil(left.Seconds()))
				return deny(ctx, inv, fmt.Sprintf("請等待 %d 秒後再使用這個指令", secs))
			}
			return next(ctx, inv)
		}
	}
}
