package domain

import "time"

// Role governs which complaint operations a principal may perform.
type Role string

const (
	RoleResident Role = "Resident"
	RoleSecurity Role = "Security"
	RoleMedical  Role = "Medical"
	RoleAdmin    Role = "Admin"
)

// Roles lists every assignable role.
var Roles = []Role{RoleResident, RoleSecurity, RoleMedical, RoleAdmin}

// ValidRole reports whether the value is one of the four known roles.
func ValidRole(r Role) bool {
	for _, candidate := range Roles {
		if candidate == r {
			return true
		}
	}
	return false
}

// Principal is the domain model for registered accounts. Role is fixed at
// registration; no update path exists.
type Principal struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}
