package models

import "fmt"

// RoleID classifies what a user may do. Only RoleAdmin may sign in to the
// panel.
type RoleID int

const (
	RoleAdmin RoleID = 1
	RoleAgent RoleID = 2
)

// AdminRoleID is the role required to complete authentication.
const AdminRoleID = RoleAdmin

type BadgeStyle string

const (
	BadgeAdmin   BadgeStyle = "badge-admin"
	BadgeAgent   BadgeStyle = "badge-agent"
	BadgeNeutral BadgeStyle = "badge-neutral"
)

type RoleInfo struct {
	DisplayName string
	Badge       BadgeStyle
}

// roles is indexed by RoleID; keep it in sync with the constants above.
var roles = [...]RoleInfo{
	RoleAdmin: {DisplayName: "Administrador", Badge: BadgeAdmin},
	RoleAgent: {DisplayName: "Agente", Badge: BadgeAgent},
}

// KnownRoles lists every role the panel can display.
func KnownRoles() []RoleID {
	return []RoleID{RoleAdmin, RoleAgent}
}

// Info returns the display data of r, or a neutral entry for ids the panel
// does not know.
func (r RoleID) Info() RoleInfo {
	if r > 0 && int(r) < len(roles) && roles[r].DisplayName != "" {
		return roles[r]
	}
	return RoleInfo{DisplayName: fmt.Sprintf("Rol %d", int(r)), Badge: BadgeNeutral}
}

func (r RoleID) String() string {
	return r.Info().DisplayName
}

func (r RoleID) IsAdmin() bool {
	return r == AdminRoleID
}
