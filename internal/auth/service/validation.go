package service

import (
	"strings"

	"github.com/AlibekovAA/interview-board/internal/common/validation"
)

type RegisterInput struct {
	Name     string `validate:"required,max=100"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8,max=72"`
}

type LoginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8,max=72"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// validateInput maps the first failed rule to the error of its field.
func validateInput(input any) error {
	err := validation.Struct(input)
	if err == nil {
		return nil
	}

	field, _, ok := validation.FirstFailure(err)
	if !ok {
		return ErrValidation.WithCause(err)
	}

	switch field {
	case "Name":
		return ErrValidationName
	case "Email":
		return ErrValidationEmail
	case "Password":
		return ErrValidationPassword
	default:
		return ErrValidation
	}
}
