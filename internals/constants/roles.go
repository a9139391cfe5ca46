package constants

import "fmt"

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// Error message templates for role gates
const (
	ErrOnlyAdminsCanAccess = "Only admins may access %s."
	ErrLoginRequired       = "You must be logged in to access %s."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

// ==========================
// Grouped role slices
// ==========================
var (
	AllRoles = []string{
		RoleUser,
		RoleAdmin,
	}

	AdminOnly = []string{
		RoleAdmin,
	}
)

// HasAnyRole is the single policy check behind the role middleware. Kept as a
// plain function so authorization rules are testable without transport.
func HasAnyRole(role string, allowed []string) bool {
	if role == "" {
		return false
	}
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}
