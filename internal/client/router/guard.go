package router

import "context"

// guardState is the authorization state machine for a mounted route.
type guardState int

const (
	stateUnknown guardState = iota
	stateAuthorized
	stateUnauthorized
)

// settleState derives the guard state from the session store at this exact
// moment. An unavailable or empty store settles to Unauthorized, never to
// Authorized; Unknown survives only while no store is wired at all.
func (r *Router) settleState(ctx context.Context) guardState {
	if r.store == nil {
		return stateUnknown
	}
	if r.store.IsAuthenticated(ctx) {
		return stateAuthorized
	}
	return stateUnauthorized
}

// settle runs the route's guard and returns the redirect target, or "" when
// the page may render. Nothing is rendered for a route whose guard does not
// settle to the matching state — that is what prevents a flash of protected
// content before the redirect.
func (r *Router) settle(ctx context.Context, route Route) string {
	state := r.settleState(ctx)

	switch route.Access {
	case AccessPrivate:
		if state == stateAuthorized {
			return ""
		}
		// Remember where the visitor was headed, so login can restore it.
		// The login path itself is never worth restoring.
		if r.store != nil && route.Path != r.cfg.LoginPath {
			r.store.SetReturnURL(ctx, route.Path)
		}
		return r.cfg.LoginPath

	case AccessPublic:
		if state != stateAuthorized {
			return ""
		}
		// Already signed in: consume the return URL exactly once, falling
		// back to the default landing route.
		target, ok := r.store.ConsumeReturnURL(ctx)
		if !ok || target == r.cfg.LoginPath {
			target = r.cfg.DefaultPath
		}
		return target

	default:
		return r.cfg.LoginPath
	}
}
