package authsdk

import (
	"net/mail"
	"strings"
)

const bootstrapRequiredReason = "required"

// Validate checks the bootstrap request fields.
// Returns a map of field names to error messages, or nil if all fields are valid.
func (b BootstrapRequest) Validate() map[string]string {
	errs := make(map[string]string)

	email := strings.TrimSpace(b.Email)
	switch {
	case email == "":
		errs["email"] = bootstrapRequiredReason
	case !validEmail(email):
		errs["email"] = "must be a valid email address"
	}

	switch pw := b.Password; {
	case pw == "":
		errs["password"] = bootstrapRequiredReason
	case len(pw) < 8:
		errs["password"] = "too short (min 8)"
	case len(pw) > 128:
		errs["password"] = "too long (max 128)"
	}

	if len(strings.TrimSpace(b.Username)) > 150 {
		errs["username"] = "too long (max 150)"
	}
	if len(strings.TrimSpace(b.FullName)) > 255 {
		errs["full_name"] = "too long (max 255)"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// validEmail accepts a bare address only, not "Name <addr>".
func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
