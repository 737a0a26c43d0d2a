package auth

import "strings"

// Role is the caller's role. Only admin and technician are accepted.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleTechnician Role = "technician"
)

// ParseRole lower-cases s and reports whether it names a known role.
func ParseRole(s string) (Role, bool) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleAdmin, RoleTechnician:
		return r, true
	}
	return "", false
}

// Caller is the resolved identity of the request.
type Caller struct {
	ID   string
	Role Role
}

func (c Caller) IsAdmin() bool { return c.Role == RoleAdmin }
