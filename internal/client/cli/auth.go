package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/branchadmin/internal/client/client"
	"github.com/dmitrijs2005/branchadmin/internal/client/guard"
	"github.com/dmitrijs2005/branchadmin/internal/client/models"
	"github.com/dmitrijs2005/branchadmin/internal/client/services"
	"github.com/dmitrijs2005/branchadmin/internal/client/session"
	"github.com/dmitrijs2005/branchadmin/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for email and password and runs the password step. The
// password is wiped before returning, whatever the outcome.
func (a *App) Login(ctx context.Context) error {
	switch a.phase() {
	case session.Authenticated:
		fmt.Fprintln(a.out, "Already signed in. Use 'logout' first.")
		return nil
	case session.TwoFactorPending:
		fmt.Fprintln(a.out, "A verification code is pending. Use 'verify', 'resend' or 'cancel'.")
		return nil
	}

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	creds := models.Credentials{Email: email, Password: password}
	if err := creds.Validate(); err != nil {
		fmt.Fprintln(a.out, "Please enter email and password.")
		return shown(err)
	}

	outcome, err := a.authService.Login(ctx, creds)
	if err != nil {
		a.report(err, "Invalid credentials.")
		return shown(err)
	}

	if outcome.Challenge != nil {
		if outcome.Challenge.Message != "" {
			fmt.Fprintln(a.out, outcome.Challenge.Message)
		}
		fmt.Fprintf(a.out, "A verification code was sent to %s. Enter it with 'verify'.\n", outcome.Challenge.Email)
		return nil
	}

	a.welcome(outcome.User)
	return nil
}

// Verify prompts for the second-factor code. A rejected code is discarded
// and the challenge stays pending.
func (a *App) Verify(ctx context.Context) error {
	if a.phase() != session.TwoFactorPending {
		fmt.Fprintln(a.out, "No verification code is pending. Use 'login' first.")
		return nil
	}

	code, err := getSimpleText(a.reader, fmt.Sprintf("Enter the %d-digit code", models.TwoFactorCodeLength), a.out)
	if err != nil {
		return err
	}
	if err := models.ValidateTwoFactorCode(code); err != nil {
		fmt.Fprintf(a.out, "Please enter the %d-digit code.\n", models.TwoFactorCodeLength)
		return shown(err)
	}

	user, err := a.authService.VerifyTwoFactor(ctx, "", code)
	if err != nil {
		a.report(err, "Invalid or expired code.")
		return shown(err)
	}

	a.welcome(user)
	return nil
}

// Resend requests a new code once the cooldown allows it.
func (a *App) Resend(ctx context.Context) error {
	msg, err := a.authService.ResendTwoFactor(ctx, "")
	if err != nil {
		var cdErr *services.CooldownError
		switch {
		case errors.As(err, &cdErr):
			fmt.Fprintf(a.out, "Wait %d seconds before requesting a new code.\n", cdErr.Remaining)
		case errors.Is(err, common.ErrValidation):
			fmt.Fprintln(a.out, "No verification code is pending. Use 'login' first.")
		default:
			a.report(err, "Could not resend the code.")
		}
		return shown(err)
	}

	if msg == "" {
		msg = "A new code was sent."
	}
	fmt.Fprintln(a.out, msg)
	return nil
}

// Cancel abandons a pending challenge.
func (a *App) Cancel(ctx context.Context) error {
	if a.phase() != session.TwoFactorPending {
		fmt.Fprintln(a.out, "Nothing to cancel.")
		return nil
	}
	if err := a.session.Clear(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Verification cancelled.")
	return nil
}

// Logout ends the session. The local session is cleared even when the
// server cannot be reached.
func (a *App) Logout(ctx context.Context) error {
	if a.phase() != session.Authenticated {
		fmt.Fprintln(a.out, "Not signed in.")
		return nil
	}

	err := a.authService.Logout(ctx)
	a.setView(guard.RouteLogin)
	fmt.Fprintln(a.out, "Signed out.")
	return shown(err)
}

func (a *App) welcome(u *models.User) {
	a.setView(guard.RouteBranches)
	if u == nil {
		return
	}
	fmt.Fprintf(a.out, "Welcome, %s (%s)\n", u.Name, u.RoleID)
}

// report prints a user-facing message for err: access denied, the server's
// own message, or fallback.
func (a *App) report(err error, fallback string) {
	switch {
	case errors.Is(err, common.ErrRoleRejected):
		fmt.Fprintln(a.out, guard.AccessDeniedNotice)
	case errors.Is(err, common.ErrUnavailable):
		fmt.Fprintln(a.out, "Server unavailable, try again later.")
	case errors.Is(err, common.ErrThrottled):
		fmt.Fprintln(a.out, "Too many attempts, wait a moment and try again.")
	default:
		if msg := client.ServerMessage(err); msg != "" {
			fmt.Fprintln(a.out, msg)
			return
		}
		fmt.Fprintln(a.out, fallback)
	}
}
