package domain

import (
	"github.com/Felobateer/ECommerce-API/internal/errors"
)

// ErrorKind classifies every failure the session subsystem can produce.
// The set is closed; callers branch on it with errors.Is against the Err*
// sentinels below or with KindOf.
type ErrorKind string

const (
	// KindHashingFailure means the password hasher could not obtain entropy or memory.
	KindHashingFailure ErrorKind = "hashing_failure"
	// KindTokenInvalid means the token is malformed or its signature does not verify.
	KindTokenInvalid ErrorKind = "token_invalid"
	// KindTokenExpired means the token's exp instant has been reached.
	KindTokenExpired ErrorKind = "token_expired"
	// KindTokenRevoked means the token was explicitly revoked before its expiry.
	KindTokenRevoked ErrorKind = "token_revoked"
	// KindStoreUnavailable means the revocation store could not be consulted.
	KindStoreUnavailable ErrorKind = "store_unavailable"
)

// class returns the application error class the HTTP layer maps to a status.
func (k ErrorKind) class() error {
	switch k {
	case KindTokenInvalid, KindTokenExpired, KindTokenRevoked:
		return errors.ErrUnauthorized
	case KindStoreUnavailable:
		return errors.ErrServiceUnavailable
	default:
		return nil
	}
}

// Error is the tagged error returned by the session subsystem.
type Error struct {
	Kind ErrorKind
	Err  error
}

// NewError tags err with kind.
func NewError(kind ErrorKind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return string(e.Kind) + ": " + e.Err.Error()
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrTokenExpired)
// holds regardless of the wrapped cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Unwrap exposes both the application error class and the underlying cause.
func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if class := e.Kind.class(); class != nil {
		errs = append(errs, class)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// KindOf extracts the kind from the first *Error in err's tree.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

// Session subsystem sentinels for use with errors.Is.
var (
	ErrHashingFailure   = &Error{Kind: KindHashingFailure}
	ErrTokenInvalid     = &Error{Kind: KindTokenInvalid}
	ErrTokenExpired     = &Error{Kind: KindTokenExpired}
	ErrTokenRevoked     = &Error{Kind: KindTokenRevoked}
	ErrStoreUnavailable = &Error{Kind: KindStoreUnavailable}
)

// Login errors.
var (
	// ErrInvalidCredentials is returned for both unknown emails and wrong passwords.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid email or password")

	// ErrAccountInactive indicates the account was deactivated.
	ErrAccountInactive = errors.Wrap(errors.ErrForbidden, "account is inactive")
)
