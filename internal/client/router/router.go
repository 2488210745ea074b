// Package router is the client's navigation primitive: a route table, the
// current path, and the authorization guards that decide, for every
// navigation, whether a page may render or the user must be redirected.
package router

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/avdeyev/bizdash/internal/client/session"
	"github.com/avdeyev/bizdash/internal/logging"
)

// Access says which guard wraps a route.
type Access int

const (
	// AccessPrivate routes render only for authenticated sessions.
	AccessPrivate Access = iota
	// AccessPublic routes (login) render only for unauthenticated sessions.
	AccessPublic
)

// RenderFunc draws a page. It runs only after the route's guard has settled
// to the matching authorized state; no other contract is imposed on pages.
type RenderFunc func(ctx context.Context, w io.Writer) error

// Route binds a path to a guard kind and a page render.
type Route struct {
	Path   string
	Access Access
	Render RenderFunc
}

// Config holds the two distinguished navigation targets.
type Config struct {
	// LoginPath is the public route unauthenticated users are sent to.
	LoginPath string
	// DefaultPath is the landing route after a login with no return URL.
	DefaultPath string
}

// redirect bounds exist only to stop a misconfigured route table (e.g. a
// private login path) from cycling forever.
const maxRedirects = 8

// Router owns the current path and evaluates guards on every navigation and
// on every session-cache change. All decisions are re-derived from the
// session store at the moment of settlement, never cached from mount time.
type Router struct {
	cfg   Config
	store *session.Store
	cache *session.Cache
	out   io.Writer
	log   logging.Logger

	mu      sync.Mutex
	routes  map[string]Route
	current string

	unsubscribe func()
}

// New builds a router over the given store and cache and subscribes to the
// cache so guards re-settle whenever the user value changes (a logout
// elsewhere in the app, or a 401-triggered clear).
func New(cfg Config, store *session.Store, cache *session.Cache, out io.Writer, log logging.Logger) *Router {
	r := &Router{
		cfg:    cfg,
		store:  store,
		cache:  cache,
		out:    out,
		log:    log,
		routes: make(map[string]Route),
	}
	r.unsubscribe = cache.Subscribe(func(*session.UserRecord) {
		r.Refresh()
	})
	return r
}

// Register adds routes to the table. Registering the same path twice keeps
// the last definition.
func (r *Router) Register(routes ...Route) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, route := range routes {
		r.routes[route.Path] = route
	}
}

// Path returns the current path.
func (r *Router) Path() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Navigate moves to path, runs the target route's guard, follows any
// redirect the guard decides on, and renders the finally settled page.
func (r *Router) Navigate(path string) {
	r.navigate(context.Background(), path)
}

// Refresh re-evaluates the guard for the current path. Called on every
// session-cache change so an already-rendered page loses its authorization
// the moment the session does.
func (r *Router) Refresh() {
	r.mu.Lock()
	current := r.current
	r.mu.Unlock()
	if current == "" {
		return
	}
	r.navigate(context.Background(), current)
}

// Close drops the cache subscription.
func (r *Router) Close() {
	if r.unsubscribe != nil {
		r.unsubscribe()
		r.unsubscribe = nil
	}
}

// navigate resolves the guard decision chain under the lock and renders the
// finally settled page after releasing it, so a render that itself triggers
// a session change (e.g. a 401 during a data fetch) can re-enter the router
// without deadlocking.
func (r *Router) navigate(ctx context.Context, path string) {
	route, ok := r.resolve(ctx, &path)
	if !ok {
		fmt.Fprintf(r.out, "page %s not found\n", path)
		return
	}
	if route.Render == nil {
		return
	}

	if err := route.Render(ctx, r.out); err != nil {
		r.log.Error(ctx, "page render failed", "path", path, "error", err)
	}
}

// resolve follows guard redirects until a route settles. It returns false
// when the final path has no route. A zero Route with ok=true means the
// resolution ended without anything to render (misconfiguration or a
// redirect loop); callers render nothing then.
func (r *Router) resolve(ctx context.Context, path *string) (Route, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := 0; i < maxRedirects; i++ {
		route, ok := r.routes[*path]
		if !ok {
			r.current = *path
			return Route{}, false
		}

		r.current = *path

		next := r.settle(ctx, route)
		if next == "" {
			return route, true
		}
		if next == *path {
			// A guard redirecting a route to itself means the table is
			// misconfigured; render nothing rather than leak the page.
			r.log.Error(ctx, "guard redirected route to itself", "path", *path)
			return Route{}, true
		}
		*path = next
	}

	// Still redirecting after the bound: render nothing rather than loop.
	r.log.Error(ctx, "redirect loop detected", "path", *path)
	return Route{}, true
}
