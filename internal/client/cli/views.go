package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/branchadmin/internal/client/guard"
	"github.com/dmitrijs2005/branchadmin/internal/client/session"
)

// WhoAmI prints the signed-in user as recorded by the session.
func (a *App) WhoAmI(_ context.Context) error {
	snap := a.session.Snapshot()
	switch snap.Phase {
	case session.Authenticated:
		u := snap.User
		info := u.RoleID.Info()
		fmt.Fprintf(a.out, "[%s] %s <%s>\n", u.Initials(), u.Name, u.Email)
		fmt.Fprintf(a.out, "  role:   %s (%s)\n", info.DisplayName, info.Badge)
		if u.BranchID != nil {
			fmt.Fprintf(a.out, "  branch: %d\n", *u.BranchID)
		}
	case session.TwoFactorPending:
		fmt.Fprintf(a.out, "Waiting for the verification code sent to %s\n", snap.PendingEmail)
	default:
		fmt.Fprintln(a.out, "Not signed in.")
	}
	return nil
}

// Open navigates to a view after the route gate has approved it.
func (a *App) Open(ctx context.Context, name string) error {
	route, err := guard.ParseRoute(name)
	if err != nil {
		fmt.Fprintf(a.out, "Unknown view %q. Available: %s\n", name, routeNames())
		return shown(err)
	}

	d := a.guard.Authorize(ctx, route)
	if d.Notice != "" {
		fmt.Fprintln(a.out, d.Notice)
	}

	switch {
	case !d.Allowed:
		a.setView(d.Redirect)
		if d.Notice == "" {
			fmt.Fprintln(a.out, "Finish signing in first.")
		}
	case d.Redirect != "":
		a.setView(d.Redirect)
		if route.Protected() {
			fmt.Fprintln(a.out, "Sign in to continue.")
		} else {
			fmt.Fprintf(a.out, "Now viewing %s.\n", d.Redirect)
		}
	default:
		a.setView(route)
		fmt.Fprintf(a.out, "Now viewing %s.\n", route)
	}
	return nil
}

func routeNames() string {
	names := make([]string, 0, len(guard.Routes()))
	for _, r := range guard.Routes() {
		names = append(names, string(r))
	}
	return strings.Join(names, ", ")
}
