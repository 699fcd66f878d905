// Package validation holds the local form checks run before any backend call.
package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/spec-kit/staff-portal/internal/domain"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 6

// Messages shown for failed checks.
const (
	MsgNameRequired          = "Please enter your full name"
	MsgEmailRequired         = "Please enter your email"
	MsgPasswordRequired      = "Please enter a password"
	MsgLoginPasswordRequired = "Please enter your password"
	MsgDepartmentRequired    = "Please select a department"
	MsgPasswordTooShort      = "Password must be at least 6 characters"
	MsgEmailInvalid          = "Please enter a valid email address"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Error is a failed local check.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// RegistrationForm is the raw input of the registration screen.
type RegistrationForm struct {
	Name         string
	Email        string
	Password     string
	Role         domain.Role
	DepartmentID int
}

// ValidEmail reports whether s looks like local@domain.tld.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// NormalizeEmail trims and lower-cases an email for transmission.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Registration runs the registration checks in order and returns the first failure.
func Registration(form RegistrationForm) error {
	if blank(form.Name) {
		return &Error{Field: "name", Message: MsgNameRequired}
	}
	if blank(form.Email) {
		return &Error{Field: "email", Message: MsgEmailRequired}
	}
	if blank(form.Password) {
		return &Error{Field: "password", Message: MsgPasswordRequired}
	}
	if form.Role != domain.RoleManager && form.DepartmentID <= 0 {
		return &Error{Field: "departmentId", Message: MsgDepartmentRequired}
	}
	if utf8.RuneCountInString(form.Password) < MinPasswordLength {
		return &Error{Field: "password", Message: MsgPasswordTooShort}
	}
	if !ValidEmail(strings.TrimSpace(form.Email)) {
		return &Error{Field: "email", Message: MsgEmailInvalid}
	}
	return nil
}

// Login runs the login checks in order and returns the first failure.
func Login(creds domain.Credentials) error {
	if blank(creds.Email) {
		return &Error{Field: "email", Message: MsgEmailRequired}
	}
	if blank(creds.Password) {
		return &Error{Field: "password", Message: MsgLoginPasswordRequired}
	}
	if !ValidEmail(strings.TrimSpace(creds.Email)) {
		return &Error{Field: "email", Message: MsgEmailInvalid}
	}
	return nil
}

// RegistrationRequest builds the outbound body for a validated form.
// Managers carry no department.
func RegistrationRequest(form RegistrationForm) domain.RegistrationRequest {
	req := domain.RegistrationRequest{
		Name:     strings.TrimSpace(form.Name),
		Email:    NormalizeEmail(form.Email),
		Password: form.Password,
	}
	if form.Role != domain.RoleManager {
		dept := form.DepartmentID
		req.DepartmentID = &dept
	}
	return req
}

// LoginRequest builds the outbound credentials for a validated login.
func LoginRequest(creds domain.Credentials) domain.Credentials {
	return domain.Credentials{
		Email:    NormalizeEmail(creds.Email),
		Password: creds.Password,
	}
}
