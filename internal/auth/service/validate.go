package service

import (
	"net/mail"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/aussiebroadwan/staffdesk/internal/auth/domain"
)

const (
	MinPasswordLength = 8
	MaxPasswordLength = 128
)

func validatePassword(field, pw string) error {
	n := utf8.RuneCountInString(pw)
	if n < MinPasswordLength || n > MaxPasswordLength {
		return invalidField(field, "must be between 8 and 128 characters")
	}
	return nil
}

// normalizeEmail lower-cases and checks an address, rejecting display-name
// forms such as "Alice <a@x.com>".
func normalizeEmail(email string) (string, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return "", invalidField("email", "is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", invalidField("email", "is not a valid address")
	}
	return email, nil
}

// validateURL accepts "" or an absolute http(s) URL.
func validateURL(field, raw string) error {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return invalidField(field, "must be an absolute http(s) URL")
	}
	return nil
}

// mergeValidation folds several field errors into one ValidationError.
func mergeValidation(errs ...error) error {
	var out *ValidationError
	for _, err := range errs {
		ve, ok := err.(*ValidationError)
		if !ok {
			continue
		}
		if out == nil {
			out = &ValidationError{Fields: map[string]string{}}
		}
		for k, v := range ve.Fields {
			out.Fields[k] = v
		}
	}
	if out == nil {
		return nil
	}
	return out
}

func trim(s string) string { return strings.TrimSpace(s) }

func lengthAtMost(field, s string, max int) error {
	if utf8.RuneCountInString(s) > max {
		return invalidField(field, "is too long")
	}
	return nil
}
