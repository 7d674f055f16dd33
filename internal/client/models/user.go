// Package models holds the client-side domain types of the branch admin
// panel: credentials, users, roles and login outcomes.
package models

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dmitrijs2005/branchadmin/internal/common"
)

// TwoFactorCodeLength is the exact length of a second-factor code.
const TwoFactorCodeLength = 6

// Credentials are transient. Password is a byte slice so the caller can wipe
// it once the request has been sent.
type Credentials struct {
	Email    string
	Password []byte
}

// Validate reports common.ErrValidation when either field is empty.
func (c Credentials) Validate() error {
	if strings.TrimSpace(c.Email) == "" || len(c.Password) == 0 {
		return fmt.Errorf("%w: email and password are required", common.ErrValidation)
	}
	return nil
}

// ValidateTwoFactorCode checks the code length before any network call.
func ValidateTwoFactorCode(code string) error {
	if utf8.RuneCountInString(code) != TwoFactorCodeLength {
		return fmt.Errorf("%w: the code must have %d characters", common.ErrValidation, TwoFactorCodeLength)
	}
	return nil
}

type User struct {
	ID       int64
	Name     string
	Email    string
	RoleID   RoleID
	BranchID *int64
}

func (u User) IsAdmin() bool {
	return u.RoleID.IsAdmin()
}

// Initials returns two upper-case letters for the header badge: the first
// letters of the first two words, or the first two letters of a single word.
func (u User) Initials() string {
	words := strings.Fields(u.Name)
	switch len(words) {
	case 0:
		return "AD"
	case 1:
		r := []rune(words[0])
		if len(r) > 2 {
			r = r[:2]
		}
		return strings.ToUpper(string(r))
	default:
		a, _ := utf8.DecodeRuneInString(words[0])
		b, _ := utf8.DecodeRuneInString(words[1])
		return string([]rune{unicode.ToUpper(a), unicode.ToUpper(b)})
	}
}

// TwoFactorChallenge is returned by the server when the password step
// succeeded and a code was sent to Email.
type TwoFactorChallenge struct {
	Email   string
	Message string
}

// LoginOutcome has exactly one member set: User when the session is
// authenticated, Challenge when a second factor is pending.
type LoginOutcome struct {
	User      *User
	Challenge *TwoFactorChallenge
}
