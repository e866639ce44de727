package service

import (
	"fmt"

	"github.com/aussiebroadwan/staffdesk/internal/auth/domain"
)

type requirementKind int

const (
	reqAuthenticated requirementKind = iota
	reqStaff
	reqAdminOrManager
	reqRole
	reqCapability
)

// Requirement is one condition a caller must meet. Build them with the
// Require* values and constructors.
type Requirement struct {
	kind       requirementKind
	role       domain.Role
	capability domain.Capability
}

var (
	RequireAuthenticated  = Requirement{kind: reqAuthenticated}
	RequireStaff          = Requirement{kind: reqStaff}
	RequireAdminOrManager = Requirement{kind: reqAdminOrManager}
)

func RequireRole(r domain.Role) Requirement {
	return Requirement{kind: reqRole, role: r}
}

func RequireCapability(c domain.Capability) Requirement {
	return Requirement{kind: reqCapability, capability: c}
}

func (r Requirement) String() string {
	switch r.kind {
	case reqStaff:
		return "staff"
	case reqAdminOrManager:
		return "admin_or_manager"
	case reqRole:
		return "role:" + string(r.role)
	case reqCapability:
		return "capability:" + string(r.capability)
	default:
		return "authenticated"
	}
}

// Authorize reports whether caller satisfies req. It has no side effects.
func Authorize(caller domain.Identity, req Requirement) bool {
	if caller.UserID == "" {
		return false
	}
	switch req.kind {
	case reqAuthenticated:
		return true
	case reqStaff:
		return caller.IsStaff || caller.IsSuperAdmin
	case reqAdminOrManager:
		return caller.Role == domain.RoleAdmin || caller.Role == domain.RoleManager
	case reqRole:
		return caller.Role == req.role
	case reqCapability:
		return caller.HasCapability(req.capability)
	}
	return false
}

// AuthorizeAll returns an error wrapping ErrForbidden naming the first
// requirement caller does not meet.
func AuthorizeAll(caller domain.Identity, reqs ...Requirement) error {
	for _, req := range reqs {
		if !Authorize(caller, req) {
			return fmt.Errorf("%w: requires %s", ErrForbidden, req)
		}
	}
	return nil
}
