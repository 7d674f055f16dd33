// Package guard decides whether a view may be entered given the current
// session.
package guard

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/branchadmin/internal/client/session"
	"github.com/dmitrijs2005/branchadmin/internal/logging"
)

type Route string

const (
	RouteLogin    Route = "login"
	RouteBranches Route = "branches"
	RouteUsers    Route = "users"
)

// Routes lists the views in menu order.
func Routes() []Route {
	return []Route{RouteLogin, RouteBranches, RouteUsers}
}

// ParseRoute maps a typed view name to a Route.
func ParseRoute(name string) (Route, error) {
	for _, r := range Routes() {
		if string(r) == name {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown view %q", name)
}

// Protected reports whether the route needs an authenticated administrator.
func (r Route) Protected() bool {
	return r != RouteLogin
}

// AccessDeniedNotice is shown when a non-admin session is cut off.
const AccessDeniedNotice = "Access denied: only administrators can use this panel."

// Decision is the outcome of a navigation check. Redirect, when set, is the
// route the caller should show instead of (or alongside) the requested one.
type Decision struct {
	Allowed  bool
	Redirect Route
	Notice   string
}

// Session is the part of session.State the authorizer needs.
type Session interface {
	Snapshot() session.Snapshot
	Clear(ctx context.Context) error
}

type Authorizer struct {
	session Session
	log     logging.Logger
}

func NewAuthorizer(s Session, log logging.Logger) *Authorizer {
	return &Authorizer{session: s, log: log.With("component", "guard")}
}

// Authorize evaluates navigation to route:
//
//	Unauthenticated            allow, redirect to login
//	Authenticated, admin       allow
//	Authenticated, non-admin   clear the session, deny with a notice
//	TwoFactorPending           login only, anything else redirects to login
func (a *Authorizer) Authorize(ctx context.Context, route Route) Decision {
	snap := a.session.Snapshot()

	switch snap.Phase {
	case session.Authenticated:
		if snap.User != nil && snap.User.IsAdmin() {
			return Decision{Allowed: true}
		}
		if err := a.session.Clear(ctx); err != nil {
			a.log.Error(ctx, "failed to clear non-admin session", "error", err)
		}
		a.log.Warn(ctx, "navigation denied for non-admin session", "route", string(route))
		return Decision{Allowed: false, Redirect: RouteLogin, Notice: AccessDeniedNotice}

	case session.TwoFactorPending:
		if route == RouteLogin {
			return Decision{Allowed: true}
		}
		return Decision{Allowed: false, Redirect: RouteLogin}

	default:
		return Decision{Allowed: true, Redirect: RouteLogin}
	}
}
