package service

import "errors"

// Error is returned by every collaborator operation. Message is human
// readable and safe to show to the end user verbatim.
type Error struct {
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches sentinel errors by code so wrapped copies still compare equal
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

var (
	ErrInvalidCredentials    = &Error{Code: "invalid_credentials", Message: "Invalid credentials"}
	ErrEmailNotConfirmed     = &Error{Code: "email_not_confirmed", Message: "Email not confirmed"}
	ErrUserAlreadyRegistered = &Error{Code: "user_already_exists", Message: "User already registered"}
	ErrInvalidEmail          = &Error{Code: "email_address_invalid", Message: "Unable to validate email address: invalid format"}
	ErrWeakPassword          = &Error{Code: "weak_password", Message: "Password is too short"}
	ErrInvalidToken          = &Error{Code: "invalid_token", Message: "Token has expired or is invalid"}
	ErrUndefinedTable        = &Error{Code: "undefined_table", Message: "Relation does not exist"}
	ErrInvalidRow            = &Error{Code: "invalid_row", Message: "Row does not match the table columns"}
)

// withMessage copies a sentinel with a more specific message
func withMessage(base *Error, msg string) *Error {
	return &Error{Code: base.Code, Message: msg, Err: base.Err}
}

// unexpected wraps an internal failure behind a generic message
func unexpected(err error) *Error {
	return &Error{Code: "unexpected_failure", Message: "Unexpected failure, please try again.", Err: err}
}
