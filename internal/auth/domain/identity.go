package domain

// Identity is the authenticated caller, built from verified access-token
// claims and passed explicitly into every operation that checks permissions.
type Identity struct {
	UserID       string
	Role         Role
	Username     string
	Email        string
	FullName     string
	IsStaff      bool
	IsSuperAdmin bool

	Capabilities CapabilitySet
}

// HasCapability is true for explicit grants and for every capability when
// the caller is a superadmin.
func (id Identity) HasCapability(c Capability) bool {
	return id.IsSuperAdmin || id.Capabilities.Has(c)
}
