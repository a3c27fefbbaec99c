package domain

import "github.com/google/uuid"

// Role is the closed set of principals the system recognizes. Role
// checks are exhaustive switches over these values; there is no
// free-form role string anywhere in the core.
type Role string

const (
	RoleVisitor   Role = "visitor"
	RoleAttendant Role = "attendant"
	RoleAdmin     Role = "admin"
)

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	switch r {
	case RoleVisitor, RoleAttendant, RoleAdmin:
		return true
	}
	return false
}

// Caller is the resolved identity of one request. For authenticated
// attendants and admins, UserID is set and Role reflects the stored
// account role. Anonymous visitors have a nil UserID, RoleVisitor and,
// when they supplied one, the opaque session token that correlates
// them with their ticket.
type Caller struct {
	UserID           *uuid.UUID
	Role             Role
	VisitorSessionID string
}

// Anonymous returns the caller for a request with no credential.
func Anonymous(visitorSessionID string) Caller {
	return Caller{Role: RoleVisitor, VisitorSessionID: visitorSessionID}
}

// Authenticated reports whether the caller carries an account identity.
func (c Caller) Authenticated() bool {
	return c.UserID != nil
}

// IsAdmin reports whether the caller holds the admin role.
func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}
