package command

// Middleware wraps a handler with a cross-cutting concern such as access
// checks or history logging.
type Middleware func(Handler) Handler

// Apply wraps h so that the first middleware in the list runs outermost.
func Apply(h Handler, mws ...Middleware) Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
