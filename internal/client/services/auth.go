// Package services contains application services for the branch admin
// client. This file defines the authentication service: the password step,
// the second-factor step and its resend cooldown, logout, and validation of
// a session left by a previous run.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/branchadmin/internal/client/client"
	"github.com/dmitrijs2005/branchadmin/internal/client/models"
	"github.com/dmitrijs2005/branchadmin/internal/client/session"
	"github.com/dmitrijs2005/branchadmin/internal/common"
	"github.com/dmitrijs2005/branchadmin/internal/logging"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: password step; ends Authenticated or TwoFactorPending.
//   - VerifyTwoFactor: second-factor step; ends Authenticated on success,
//     otherwise the challenge stays pending.
//   - ResendTwoFactor: asks for a new code once the cooldown is over.
//   - Logout: ends the session locally whatever the server answers.
//   - Restore: validates a token left by a previous run.
//   - Session: read access to the session state.
//
// Every method returns after the session mutation it causes. Calls are not
// serialized against each other; the caller issues one at a time.
type AuthService interface {
	Login(ctx context.Context, creds models.Credentials) (*models.LoginOutcome, error)
	VerifyTwoFactor(ctx context.Context, email, code string) (*models.User, error)
	ResendTwoFactor(ctx context.Context, email string) (string, error)
	Logout(ctx context.Context) error
	Restore(ctx context.Context) error
	Session() *session.State
}

// CooldownError is returned by ResendTwoFactor while the resend cooldown is
// still running. It matches common.ErrThrottled.
type CooldownError struct {
	Remaining int
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("%s: retry in %d seconds", common.ErrThrottled, e.Remaining)
}

func (e *CooldownError) Unwrap() error {
	return common.ErrThrottled
}

// authService is the concrete AuthService backed by a remote Client and the
// process session.
type authService struct {
	client  client.Client
	session *session.State
	log     logging.Logger
}

// NewAuthService constructs an AuthService bound to the given API client
// and session.
func NewAuthService(c client.Client, s *session.State, log logging.Logger) AuthService {
	return &authService{client: c, session: s, log: log.With("component", "auth")}
}

func (a *authService) Session() *session.State {
	return a.session
}

// Login sends the credentials. Input is expected to be validated by the
// caller. A non-admin account yields common.ErrRoleRejected and leaves the
// session Unauthenticated.
func (a *authService) Login(ctx context.Context, creds models.Credentials) (*models.LoginOutcome, error) {
	if phase := a.session.Phase(); phase != session.Unauthenticated {
		return nil, fmt.Errorf("%w: login while %s", common.ErrInvalidTransition, phase)
	}

	res, err := a.client.Login(ctx, creds.Email, creds.Password)
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}

	switch {
	case res.Challenge != nil:
		if err := a.session.BeginTwoFactor(ctx, res.Challenge.Email); err != nil {
			return nil, err
		}
		ch := *res.Challenge
		return &models.LoginOutcome{Challenge: &ch}, nil
	case res.Auth != nil:
		if err := a.session.CompleteAuthentication(ctx, res.Auth.Token, res.Auth.User); err != nil {
			return nil, err
		}
		u := res.Auth.User
		return &models.LoginOutcome{User: &u}, nil
	default:
		return nil, fmt.Errorf("login error: %w", common.ErrBadResponse)
	}
}

// VerifyTwoFactor submits the code for the pending challenge. An empty email
// means the pending one. The code length is checked before any network
// call. On failure the challenge stays pending and the cooldown is not
// touched.
func (a *authService) VerifyTwoFactor(ctx context.Context, email, code string) (*models.User, error) {
	if err := models.ValidateTwoFactorCode(code); err != nil {
		return nil, err
	}
	email, err := a.pendingEmail(email)
	if err != nil {
		return nil, err
	}

	res, err := a.client.VerifyTwoFactor(ctx, email, code)
	if err != nil {
		a.log.Info(ctx, "second factor rejected", "error", err)
		return nil, fmt.Errorf("verify error: %w", err)
	}

	if err := a.session.CompleteAuthentication(ctx, res.Token, res.User); err != nil {
		return nil, err
	}
	u := res.User
	return &u, nil
}

// ResendTwoFactor asks the server for a new code. While the cooldown runs it
// returns *CooldownError without touching the network. On success the
// cooldown restarts and the server's message is returned.
func (a *authService) ResendTwoFactor(ctx context.Context, email string) (string, error) {
	email, err := a.pendingEmail(email)
	if err != nil {
		return "", err
	}
	if remaining := a.session.ResendRemaining(); remaining > 0 {
		return "", &CooldownError{Remaining: remaining}
	}

	msg, err := a.client.ResendTwoFactor(ctx, email)
	if err != nil {
		return "", fmt.Errorf("resend error: %w", err)
	}

	if err := a.session.RestartCooldown(); err != nil {
		// The challenge was abandoned while the request was in flight.
		a.log.Debug(ctx, "cooldown not restarted", "error", err)
	}
	return msg, nil
}

// Logout tells the server and then clears the local session regardless of
// the outcome. A server failure is still returned so the caller can log it.
func (a *authService) Logout(ctx context.Context) error {
	var netErr error
	if err := a.client.Logout(ctx); err != nil {
		a.log.Warn(ctx, "server logout failed, clearing local session anyway", "error", err)
		netErr = fmt.Errorf("logout error: %w", err)
	}

	return errors.Join(netErr, a.session.Clear(ctx))
}

// Restore validates a token left by a previous run. With no stored token it
// does nothing. When the server rejects the token (or cannot be reached) the
// token is discarded and common.ErrStaleSession is returned. If ctx ends
// first the token is kept and ctx.Err() is returned.
func (a *authService) Restore(ctx context.Context) error {
	token, err := a.session.StoredToken(ctx)
	if err != nil {
		return fmt.Errorf("read stored token: %w", err)
	}
	if token == "" {
		return nil
	}

	user, err := a.client.Me(ctx)
	if err != nil {
		if ctx.Err() != nil {
			// Shutting down before the answer arrived says nothing about the token.
			return ctx.Err()
		}
		if dErr := a.session.DiscardToken(ctx, token); dErr != nil {
			a.log.Error(ctx, "failed to discard stale token", "error", dErr)
		}
		a.log.Warn(ctx, "stored session rejected, starting signed out", "error", err)
		return fmt.Errorf("%w: %w", common.ErrStaleSession, err)
	}

	return a.session.Restore(ctx, token, *user)
}

func (a *authService) pendingEmail(email string) (string, error) {
	pending := a.session.PendingEmail()
	if pending == "" {
		return "", fmt.Errorf("%w: no second-factor challenge is pending", common.ErrValidation)
	}
	if email == "" {
		return pending, nil
	}
	return email, nil
}
