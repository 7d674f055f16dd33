package client

import (
	"context"

	"github.com/dmitrijs2005/branchadmin/internal/client/models"
)

// AuthResult is a successful password or second-factor step: the bearer
// token and the user it belongs to always arrive together.
type AuthResult struct {
	Token string
	User  models.User
}

// LoginResult has exactly one member set.
type LoginResult struct {
	Auth      *AuthResult
	Challenge *models.TwoFactorChallenge
}

// Client is the transport contract of the authentication API.
type Client interface {
	Login(ctx context.Context, email string, password []byte) (*LoginResult, error)
	VerifyTwoFactor(ctx context.Context, email, code string) (*AuthResult, error)
	ResendTwoFactor(ctx context.Context, email string) (string, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*models.User, error)
}
