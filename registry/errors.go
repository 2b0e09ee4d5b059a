package registry

import (
	"errors"
	"fmt"
)

// Code is a stable numeric error code surfaced to ledger clients as "u<code>".
type Code uint32

const (
	CodeNotAuthorized Code = 100
	CodeAlreadyExists Code = 101
	CodeNotFound      Code = 102
	CodeNotCertifier  Code = 103
)

func (c Code) String() string {
	return fmt.Sprintf("u%d", c)
}

// Error is a rejected precondition. The message always starts with the code so
// that clients matching on "u10x" in the transaction error keep working.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Precondition failures. These are returned unwrapped.
var (
	ErrNotAuthorized    = &Error{Code: CodeNotAuthorized, Message: "caller is not authorized"}
	ErrAlreadyVerified  = &Error{Code: CodeAlreadyExists, Message: "donor is already verified"}
	ErrAlreadyCertifier = &Error{Code: CodeAlreadyExists, Message: "identity is already a certifier"}
	ErrAlreadyCertified = &Error{Code: CodeAlreadyExists, Message: "equipment is already certified for this donor"}
	ErrNotFound         = &Error{Code: CodeNotFound, Message: "entry not found"}
	ErrNotCertifier     = &Error{Code: CodeNotCertifier, Message: "caller is not a certifier"}
)

var (
	// ErrInvalidArgument is wrapped when an argument cannot be encoded into a ledger key.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrAlreadyInitialized is returned when a namespace admin is bootstrapped twice.
	ErrAlreadyInitialized = errors.New("registry admin already initialized")
	// ErrNotInitialized is returned when reading the admin of a namespace that was never bootstrapped.
	ErrNotInitialized = errors.New("registry admin not initialized")
)

// CodeOf returns the numeric code carried by err, if any.
func CodeOf(err error) (Code, bool) {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code, true
	}
	return 0, false
}
