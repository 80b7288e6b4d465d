package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validationError превращает ошибки validator в наши сообщения.
// Несовпадение паролей важнее их длины.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	mapped := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		mapped = append(mapped, fieldError(fe))
	}

	for _, e := range mapped {
		if errors.Is(e, ErrPasswordMismatch) {
			return e
		}
	}
	return mapped[0]
}

func fieldError(fe validator.FieldError) error {
	switch fe.Tag() {
	case "required":
		if fe.Field() == "CurrentPassword" {
			return ErrCurrentPasswordRequired
		}
		return ErrMissingCredentials
	case "email":
		return ErrInvalidEmail
	case "eqfield":
		return ErrPasswordMismatch
	case "min":
		return ErrPasswordTooShort
	case "max":
		return fmt.Errorf("%s: %w", strings.ToLower(fe.Field()), ErrFieldTooLong)
	}
	return fmt.Errorf("%s is invalid", strings.ToLower(fe.Field()))
}
