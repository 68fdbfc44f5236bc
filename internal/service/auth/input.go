package auth

import (
	"net/mail"
	"strings"

	"github.com/heartmarshall/donorbase/internal/domain"
)

// LoginInput holds parameters for password login.
type LoginInput struct {
	Email    string
	Password string
}

// Validate validates the login input.
func (i LoginInput) Validate() error {
	var errs []domain.FieldError

	email := strings.TrimSpace(i.Email)
	if email == "" {
		errs = append(errs, domain.FieldError{Field: "email", Message: "required"})
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs = append(errs, domain.FieldError{Field: "email", Message: "invalid email"})
	}

	if i.Password == "" {
		errs = append(errs, domain.FieldError{Field: "password", Message: "required"})
	} else if len(i.Password) > 72 {
		errs = append(errs, domain.FieldError{Field: "password", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
