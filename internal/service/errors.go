package service

import (
	"errors"
	"fmt"

	"gameadmin/internal/auth"
)

// Ошибки, текст которых можно показывать пользователю как есть.
var (
	ErrMissingCredentials      = errors.New("please enter username and password")
	ErrInvalidCredentials      = errors.New("invalid username or password")
	ErrCurrentPasswordRequired = errors.New("current password is required")
	ErrWrongCurrentPassword    = errors.New("current password is incorrect")
	ErrUsernameTaken           = errors.New("username already taken")
	ErrEmailTaken              = errors.New("email already in use")
	ErrInvalidEmail            = errors.New("invalid email address")
	ErrFieldTooLong            = errors.New("value is too long")
	ErrPasswordMismatch        = errors.New("passwords do not match")
	ErrPasswordTooShort        = fmt.Errorf("password must be at least %d characters", auth.MinPasswordLength)
	ErrNoChanges               = errors.New("no changes to update")
	ErrSectionRequired         = errors.New("section name is required")
)

var userErrors = []error{
	ErrMissingCredentials,
	ErrInvalidCredentials,
	ErrCurrentPasswordRequired,
	ErrWrongCurrentPassword,
	ErrUsernameTaken,
	ErrEmailTaken,
	ErrInvalidEmail,
	ErrFieldTooLong,
	ErrPasswordMismatch,
	ErrPasswordTooShort,
	ErrNoChanges,
	ErrSectionRequired,
}

// IsUserError true для ошибок валидации, остальное считается ошибкой сервера.
func IsUserError(err error) bool {
	for _, e := range userErrors {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
