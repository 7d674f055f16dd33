package models

import (
	"testing"

	"github.com/dmitrijs2005/branchadmin/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleInfo_EveryKnownRoleHasAnEntry(t *testing.T) {
	for _, r := range KnownRoles() {
		info := r.Info()
		assert.NotEqual(t, BadgeNeutral, info.Badge, "role %d", r)
		assert.NotEmpty(t, info.DisplayName)
	}
}

func TestRoleInfo_UnknownIsNeutral(t *testing.T) {
	for _, r := range []RoleID{0, -1, 3, 99} {
		info := r.Info()
		assert.Equal(t, BadgeNeutral, info.Badge)
		assert.Contains(t, info.DisplayName, "Rol")
	}
}

func TestRoleID_IsAdmin(t *testing.T) {
	assert.True(t, RoleAdmin.IsAdmin())
	assert.False(t, RoleAgent.IsAdmin())
	assert.False(t, RoleID(0).IsAdmin())
	assert.Equal(t, "Administrador", RoleAdmin.String())
}

func TestCredentials_Validate(t *testing.T) {
	require.NoError(t, Credentials{Email: "a@x.com", Password: []byte("p")}.Validate())
	require.ErrorIs(t, Credentials{Email: " ", Password: []byte("p")}.Validate(), common.ErrValidation)
	require.ErrorIs(t, Credentials{Email: "a@x.com"}.Validate(), common.ErrValidation)
}

func TestValidateTwoFactorCode(t *testing.T) {
	require.NoError(t, ValidateTwoFactorCode("123456"))
	for _, bad := range []string{"", "12345", "1234567"} {
		require.ErrorIs(t, ValidateTwoFactorCode(bad), common.ErrValidation, bad)
	}
}

func TestUser_Initials(t *testing.T) {
	cases := map[string]string{
		"":                 "AD",
		"   ":              "AD",
		"maria":            "MA",
		"Jo":               "JO",
		"x":                "X",
		"ana lópez":        "AL",
		"Carlos Ruiz Soto": "CR",
		"élodie martin":    "ÉM",
	}
	for name, want := range cases {
		assert.Equal(t, want, User{Name: name}.Initials(), name)
	}
}
