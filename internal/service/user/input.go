package user

import (
	"net/mail"
	"strings"

	"github.com/heartmarshall/donorbase/internal/domain"
)

const (
	minPasswordLen = 8
	maxPasswordLen = 72
	maxNameLen     = 255
)

// CreateInput holds parameters for creating a user.
type CreateInput struct {
	Email    string
	Name     string
	Password string
	Role     domain.UserRole
}

// Validate validates the create user input.
func (i CreateInput) Validate() error {
	var errs []domain.FieldError

	email := strings.TrimSpace(i.Email)
	if email == "" {
		errs = append(errs, domain.FieldError{Field: "email", Message: "required"})
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs = append(errs, domain.FieldError{Field: "email", Message: "invalid email"})
	}

	errs = append(errs, validateName(i.Name)...)
	errs = append(errs, validatePassword(i.Password)...)

	if !i.Role.IsValid() {
		errs = append(errs, domain.FieldError{Field: "role", Message: "must be 'user' or 'admin'"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateInput holds parameters for a partial user update.
// All fields are optional (nil = don't change).
type UpdateInput struct {
	Name     *string
	Role     *domain.UserRole
	Password *string
}

// IsEmpty reports whether the input changes nothing.
func (i UpdateInput) IsEmpty() bool {
	return i.Name == nil && i.Role == nil && i.Password == nil
}

// Validate validates the update user input.
func (i UpdateInput) Validate() error {
	var errs []domain.FieldError

	if i.Name != nil {
		errs = append(errs, validateName(*i.Name)...)
	}
	if i.Role != nil && !i.Role.IsValid() {
		errs = append(errs, domain.FieldError{Field: "role", Message: "must be 'user' or 'admin'"})
	}
	if i.Password != nil {
		errs = append(errs, validatePassword(*i.Password)...)
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func validateName(name string) []domain.FieldError {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return []domain.FieldError{{Field: "name", Message: "required"}}
	case len(name) > maxNameLen:
		return []domain.FieldError{{Field: "name", Message: "too long"}}
	}
	return nil
}

func validatePassword(pw string) []domain.FieldError {
	switch {
	case pw == "":
		return []domain.FieldError{{Field: "password", Message: "required"}}
	case len(pw) < minPasswordLen:
		return []domain.FieldError{{Field: "password", Message: "must be at least 8 characters"}}
	case len(pw) > maxPasswordLen:
		return []domain.FieldError{{Field: "password", Message: "too long"}}
	}
	return nil
}
