// Package nav turns picker selections on help views into the next view.
// Menu identifiers carry only the scope, so no state is kept between
// interactions.
package nav

import (
	"github.com/rs/zerolog"

	"github.com/keshon/hizollo/internal/command"
	"github.com/keshon/hizollo/internal/help"
	"github.com/keshon/hizollo/internal/view"
)

// Selection is a picker event as delivered by the transport.
type Selection struct {
	CustomID string
	Values   []string
}

// Reply is the outcome of a selection. Exactly one of View and Text is set,
// and it is always shown to the selecting user only.
type Reply struct {
	View *view.View
	Text string
}

// Router maps selections to replies.
type Router struct {
	reg      *command.Registry
	renderer *help.Renderer
	log      zerolog.Logger
}

// NewRouter returns a router over reg rendered by renderer.
func NewRouter(reg *command.Registry, renderer *help.Renderer, log zerolog.Logger) *Router {
	return &Router{reg: reg, renderer: renderer, log: log.With().Str("component", "nav").Logger()}
}

// Owns reports whether the router handles the given custom ID.
func (r *Router) Owns(customID string) bool {
	return help.Owns(customID)
}

// Handle produces the reply for a selection. It returns false for foreign,
// stale or empty selections, which should be ignored without a response.
func (r *Router) Handle(caller command.Caller, sel Selection) (Reply, bool) {
	scope, ok := help.ParseMenuID(sel.CustomID)
	if !ok {
		r.log.Debug().Str("custom_id", sel.CustomID).Msg("ignoring unknown menu")
		return Reply{}, false
	}
	if len(sel.Values) == 0 {
		r.log.Debug().Str("custom_id", sel.CustomID).Msg("ignoring empty selection")
		return Reply{}, false
	}
	value := sel.Values[0]

	switch scope {
	case help.ScopeMain:
		t, ok := command.ParseType(value)
		if !ok {
			r.log.Debug().Str("value", value).Msg("ignoring unknown category")
			return Reply{}, false
		}
		if !r.renderer.Authorized(caller, t) {
			return r.notFound(), true
		}
		return r.ephemeral(r.renderer.Category(caller, t)), true

	case help.ScopeType:
		v, ok := r.renderer.Resolved(caller, r.reg.Resolve(value, ""))
		if !ok {
			return r.notFound(), true
		}
		return r.ephemeral(v), true
	}
	return Reply{}, false
}

func (r *Router) ephemeral(v *view.View) Reply {
	v.Ephemeral = true
	return Reply{View: v}
}

func (r *Router) notFound() Reply {
	return Reply{Text: r.renderer.NotFound()}
}
