package domain

import (
	"fmt"
	"time"
)

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
)

// ParseRole accepts "admin" or "manager"; empty means manager.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case "":
		return RoleManager, nil
	case RoleAdmin, RoleManager:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Capability is an explicit permission granted to a user on top of its role.
// The set is closed; adding one means adding a constant here.
type Capability string

const (
	CapabilityAddRecruitment Capability = "add_recruitment"
)

// AllCapabilities lists every known capability. Superadmins hold all of them.
var AllCapabilities = []Capability{CapabilityAddRecruitment}

func ParseCapability(s string) (Capability, error) {
	for _, c := range AllCapabilities {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown capability %q", s)
}

type CapabilitySet map[Capability]struct{}

func NewCapabilitySet(caps ...Capability) CapabilitySet {
	s := make(CapabilitySet, len(caps))
	for _, c := range caps {
		s[c] = struct{}{}
	}
	return s
}

func (s CapabilitySet) Has(c Capability) bool {
	_, ok := s[c]
	return ok
}

// Strings returns the set in AllCapabilities order.
func (s CapabilitySet) Strings() []string {
	out := make([]string, 0, len(s))
	for _, c := range AllCapabilities {
		if s.Has(c) {
			out = append(out, string(c))
		}
	}
	return out
}

type CapabilityGrant struct {
	UserID     string
	Capability Capability
	GrantedBy  *string // nil for system grants
	GrantedAt  time.Time
}
