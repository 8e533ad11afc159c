package domain

import "errors"

// Error kinds. Every error a service returns to the transport layer wraps one
// of these so the HTTP layer can pick a status code with errors.Is.
var (
	ErrValidation   = errors.New("validation error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("access forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)

// Error pairs an error kind with a message that is safe to show to clients.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func Validation(msg string) error   { return &Error{Kind: ErrValidation, Message: msg} }
func Unauthorized(msg string) error { return &Error{Kind: ErrUnauthorized, Message: msg} }
func Forbidden(msg string) error    { return &Error{Kind: ErrForbidden, Message: msg} }
func NotFound(msg string) error     { return &Error{Kind: ErrNotFound, Message: msg} }
func Conflict(msg string) error     { return &Error{Kind: ErrConflict, Message: msg} }

// Messages shared between services and repositories.
const (
	MsgUserNotFound      = "User not found!"
	MsgUserExists        = "User already exists."
	MsgListingNotFound   = "Listing not found!"
	MsgInvalidListingID  = "Invalid listing ID format."
	MsgNoToken           = "Access denied. No token provided."
	MsgInvalidToken      = "Invalid or expired token."
	MsgDiscountTooHigh   = "Discount price must be less than the regular price."
	MsgWrongCredentials  = "Wrong credentials!"
	MsgMissingAuthFields = "Please fill in all fields."
)
