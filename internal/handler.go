package internal

// Handler declares routes on a router.
//
// Example:
//
//	type PanelHandler struct {
//	    runner *Runner
//	}
//
//	func (h *PanelHandler) Routes(r Router) {
//	    r.GET("/", h.index)
//	    r.POST("/jobs", h.start)
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerFunc is the signature for route handlers.
// Returning a non-nil error triggers the app's error handler.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc to add cross-cutting concerns.
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler handles errors returned from handlers.
type ErrorHandler func(Context, error) error
