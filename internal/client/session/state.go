// Package session holds the authentication phase of the process: who is
// signed in, which second-factor challenge is pending, and the resend
// cooldown that belongs to it.
//
// The phase is a tagged variant with exactly one active member:
//
//	Unauthenticated
//	TwoFactorPending{email}
//	Authenticated{user}
//
// Authenticated holds if and only if the token store holds a token, with
// one exception: at startup a token left by a previous run exists before
// Restore has validated it.
package session

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/branchadmin/internal/client/cooldown"
	"github.com/dmitrijs2005/branchadmin/internal/client/models"
	"github.com/dmitrijs2005/branchadmin/internal/client/tokenstore"
	"github.com/dmitrijs2005/branchadmin/internal/common"
	"github.com/dmitrijs2005/branchadmin/internal/logging"
)

type Phase int

const (
	Unauthenticated Phase = iota
	TwoFactorPending
	Authenticated
)

func (p Phase) String() string {
	switch p {
	case Unauthenticated:
		return "unauthenticated"
	case TwoFactorPending:
		return "two_factor_pending"
	case Authenticated:
		return "authenticated"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Snapshot is a consistent copy of the session, safe to keep around.
type Snapshot struct {
	Phase        Phase
	User         *models.User
	PendingEmail string
	ResendIn     int
}

// State is the single owner of the session. All mutation goes through its
// methods; it is safe for concurrent use.
type State struct {
	tokens   tokenstore.Store
	cooldown *cooldown.Timer
	log      logging.Logger

	mu    sync.RWMutex
	phase Phase
	user  *models.User
	email string
}

// New creates a session in the Unauthenticated phase.
func New(tokens tokenstore.Store, cd *cooldown.Timer, log logging.Logger) *State {
	return &State{
		tokens:   tokens,
		cooldown: cd,
		log:      log.With("component", "session"),
	}
}

// BeginTwoFactor records a pending challenge for email and starts the
// resend cooldown. Only valid from Unauthenticated. A token left by a
// previous run is dropped: the user has moved on from that session.
func (s *State) BeginTwoFactor(ctx context.Context, email string) error {
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("%w: two-factor challenge without email", common.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != Unauthenticated {
		return fmt.Errorf("%w: begin two-factor from %s", common.ErrInvalidTransition, s.phase)
	}
	if err := s.tokens.Delete(ctx); err != nil {
		return fmt.Errorf("drop previous token: %w", err)
	}

	s.phase = TwoFactorPending
	s.email = email
	s.user = nil
	s.cooldown.Start()

	s.log.Info(ctx, "second factor required", "phase", s.phase)
	return nil
}

// CompleteAuthentication stores token and records user. Users without the
// administrator role are rejected: the session returns to Unauthenticated
// and the token is never written.
func (s *State) CompleteAuthentication(ctx context.Context, token string, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == Authenticated {
		return fmt.Errorf("%w: already authenticated", common.ErrInvalidTransition)
	}
	if token == "" {
		return fmt.Errorf("%w: empty token", common.ErrBadResponse)
	}

	if !user.IsAdmin() {
		if err := s.resetLocked(ctx); err != nil {
			s.log.Error(ctx, "failed to clear token after role rejection", "error", err)
		}
		s.log.Warn(ctx, "authentication rejected for non-admin role", "user_id", user.ID, "role_id", int(user.RoleID))
		return fmt.Errorf("%w: role %d", common.ErrRoleRejected, int(user.RoleID))
	}

	if err := s.tokens.Save(ctx, token); err != nil {
		return fmt.Errorf("store token: %w", err)
	}

	s.authenticateLocked(user)
	s.log.Info(ctx, "authenticated", "user_id", user.ID)
	return nil
}

// Restore marks the session authenticated for a token left by a previous
// run once the server has confirmed it. The same role rule as
// CompleteAuthentication applies. When the stored token or the phase
// changed while the check was in flight (login, logout), the result is
// stale and ignored.
func (s *State) Restore(ctx context.Context, token string, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.tokens.Load(ctx)
	if err != nil {
		return err
	}
	if current == "" || current != token || s.phase != Unauthenticated {
		s.log.Debug(ctx, "restore superseded", "phase", s.phase)
		return nil
	}

	if !user.IsAdmin() {
		if _, err := s.tokens.DeleteIf(ctx, token); err != nil {
			s.log.Error(ctx, "failed to drop restored token", "error", err)
		}
		s.log.Warn(ctx, "stored session belongs to a non-admin role", "user_id", user.ID, "role_id", int(user.RoleID))
		return fmt.Errorf("%w: role %d", common.ErrRoleRejected, int(user.RoleID))
	}

	s.authenticateLocked(user)
	s.log.Info(ctx, "session restored", "user_id", user.ID)
	return nil
}

// DiscardToken removes token from the store if it is still the stored one.
// Used when a token left by a previous run fails validation.
func (s *State) DiscardToken(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	deleted, err := s.tokens.DeleteIf(ctx, token)
	if err != nil {
		return err
	}
	if deleted {
		s.log.Info(ctx, "stale token discarded")
	}
	return nil
}

// Clear returns to Unauthenticated from any phase, removes the token and
// cancels the cooldown. Calling it repeatedly is harmless. The in-memory
// reset happens even when removing the token fails.
func (s *State) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.resetLocked(ctx); err != nil {
		s.log.Error(ctx, "failed to remove token", "error", err)
		return fmt.Errorf("clear session: %w", err)
	}
	s.log.Debug(ctx, "session cleared")
	return nil
}

// RestartCooldown starts a fresh resend countdown. Only valid while a
// challenge is pending.
func (s *State) RestartCooldown() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != TwoFactorPending {
		return fmt.Errorf("%w: no pending challenge", common.ErrInvalidTransition)
	}
	s.cooldown.Start()
	return nil
}

// Close releases the cooldown ticker. The session stays usable.
func (s *State) Close() {
	s.cooldown.Cancel()
}

func (s *State) authenticateLocked(user models.User) {
	u := user
	s.phase = Authenticated
	s.user = &u
	s.email = ""
	s.cooldown.Cancel()
}

func (s *State) resetLocked(ctx context.Context) error {
	s.phase = Unauthenticated
	s.user = nil
	s.email = ""
	s.cooldown.Cancel()
	return s.tokens.Delete(ctx)
}

func (s *State) Phase() Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phase
}

func (s *State) IsAuthenticated() bool {
	return s.Phase() == Authenticated
}

// CurrentUser returns a copy of the signed-in user, or nil.
func (s *State) CurrentUser() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// PendingEmail is non-empty only while a challenge is pending.
func (s *State) PendingEmail() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.email
}

// ResendRemaining returns the seconds left before a resend is allowed.
func (s *State) ResendRemaining() int {
	return s.cooldown.Remaining()
}

// StoredToken reads the token store. Used at startup to decide whether a
// previous session needs validating.
func (s *State) StoredToken(ctx context.Context) (string, error) {
	return s.tokens.Load(ctx)
}

func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{Phase: s.phase, PendingEmail: s.email}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}
	if s.phase == TwoFactorPending {
		snap.ResendIn = s.cooldown.Remaining()
	}
	return snap
}
