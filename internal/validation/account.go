package validation

import (
	"errors"
	"net/mail"
	"strings"
	"unicode/utf8"
)

const (
	maxNameRunes   = 100
	maxEmailBytes  = 254 // RFC 5321 path limit
	minPasswordLen = 6
	maxPasswordLen = 72 // bcrypt ignores anything longer
)

var (
	ErrNameRequired     = errors.New("name is required")
	ErrNameTooLong      = errors.New("name is too long (max 100 characters)")
	ErrEmailRequired    = errors.New("email address is required")
	ErrEmailTooLong     = errors.New("email address is too long (max 254 characters)")
	ErrEmailInvalid     = errors.New("invalid email address format")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
	ErrPasswordTooLong  = errors.New("password must not exceed 72 characters")
)

func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return ErrNameRequired
	case utf8.RuneCountInString(name) > maxNameRunes:
		return ErrNameTooLong
	}
	return nil
}

// ValidateEmail accepts a bare address only. Forms with a display name,
// like "Ada <ada@example.com>", are rejected.
func ValidateEmail(email string) error {
	switch {
	case email == "":
		return ErrEmailRequired
	case len(email) > maxEmailBytes:
		return ErrEmailTooLong
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ErrEmailInvalid
	}
	return nil
}

// ValidatePassword bounds the password length in bytes.
func ValidatePassword(password string) error {
	switch {
	case len(password) < minPasswordLen:
		return ErrPasswordTooShort
	case len(password) > maxPasswordLen:
		return ErrPasswordTooLong
	}
	return nil
}
