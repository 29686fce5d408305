// Package commands is the catalog of commands the bot ships with.
package commands

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/keshon/hizollo/internal/command"
	"github.com/keshon/hizollo/internal/help"
	"github.com/keshon/hizollo/internal/storage"
)

// HistoryReader exposes recent command usage of a guild.
type HistoryReader interface {
	FetchCommandHistory(guildID string) ([]storage.CommandHistoryRecord, error)
}

// Deps are the collaborators catalog commands need.
type Deps struct {
	Renderer *help.Renderer
	History  HistoryReader
	Color    int

	// Latency reports the gateway heartbeat latency. Nil means unknown.
	Latency func() time.Duration
	// Intn returns a value in [0, n). Defaults to math/rand/v2.
	Intn func(n int) int
	// Jobs lists running background jobs. Nil means none are tracked.
	Jobs func() []string
}

// Register adds every catalog command to reg. Middleware wraps each
// handler, first one outermost.
func Register(reg *command.Registry, deps Deps, mws ...command.Middleware) error {
	if deps.Intn == nil {
		deps.Intn = rand.IntN
	}

	for _, cmd := range []*command.Command{
		helpCommand(reg, deps),
		chooseCommand(deps),
		pingCommand(deps),
		devdumpCommand(reg, deps),
	} {
		cmd.Handler = command.Apply(cmd.Handler, mws...)
		if err := reg.Register(cmd); err != nil {
			return fmt.Errorf("register %s: %w", cmd.Name, err)
		}
	}

	header, subs := rollGroup(deps)
	for _, sub := range subs {
		sub.Handler = command.Apply(sub.Handler, mws...)
	}
	if err := reg.RegisterGroup(header, subs...); err != nil {
		return fmt.Errorf("register %s: %w", header.Name, err)
	}
	return nil
}
