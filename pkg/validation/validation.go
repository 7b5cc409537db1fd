// Package validation applies declarative per-field rules to inbound
// credential payloads and normalizes accepted values. It is pure: no
// state, no I/O.
package validation

import (
	"html"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Conservative grammar: local part, @, dotted domain, TLD of 2+ chars.
var emailRx = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,})+$`)

// FieldErrors maps a field name to a human-readable message. An empty
// map means the payload was accepted.
type FieldErrors map[string]string

type RegisterPayload struct {
	Email    string
	Password string
	Name     string
}

type LoginPayload struct {
	Email    string
	Password string
}

// Registration validates a registration payload. Every field is checked
// independently so the caller receives all failing fields at once; the
// returned payload carries the normalized values.
func Registration(p RegisterPayload) (RegisterPayload, FieldErrors) {
	errs := FieldErrors{}

	p.Email = normalizeEmail(p.Email)
	if msg := checkEmail(p.Email); msg != "" {
		errs["email"] = msg
	}

	p.Password = strings.TrimSpace(p.Password)
	switch {
	case p.Password == "":
		errs["password"] = "Password is required"
	case len(p.Password) < 8:
		errs["password"] = "Password must be at least 8 characters"
	case !strings.ContainsFunc(p.Password, unicode.IsDigit):
		errs["password"] = "Password must contain at least one number"
	case !strings.ContainsFunc(p.Password, unicode.IsUpper):
		errs["password"] = "Password must contain at least one uppercase letter"
	}

	name := strings.TrimSpace(p.Name)
	switch {
	case name == "":
		errs["name"] = "Name is required"
	case utf8.RuneCountInString(name) < 2:
		errs["name"] = "Name must be at least 2 characters long"
	}
	p.Name = html.EscapeString(name)

	return p, errs
}

// Login validates a login payload. Password strength is enforced once,
// at registration; here only the minimum length is re-checked, which
// rejects passwords that cannot possibly be correct without touching
// the store.
func Login(p LoginPayload) (LoginPayload, FieldErrors) {
	errs := FieldErrors{}

	p.Email = normalizeEmail(p.Email)
	if msg := checkEmail(p.Email); msg != "" {
		errs["email"] = msg
	}

	p.Password = strings.TrimSpace(p.Password)
	switch {
	case p.Password == "":
		errs["password"] = "Password is required"
	case len(p.Password) < 8:
		errs["password"] = "Password must be at least 8 characters"
	}

	return p, errs
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func checkEmail(email string) string {
	switch {
	case email == "":
		return "Email is required"
	case !emailRx.MatchString(email):
		return "Please enter a valid email"
	}
	return ""
}
