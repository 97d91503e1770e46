package auth

import (
	"strings"

	"github.com/goliatone/go-errors"
)

// ErrIdentityNotFound is returned when no user record matches a lookup.
var ErrIdentityNotFound = errors.New("identity not found", errors.CategoryNotFound).
	WithTextCode("IDENTITY_NOT_FOUND")

// ErrIdentityExists is returned when a registration collides with an
// existing email.
var ErrIdentityExists = errors.New("identity already exists", errors.CategoryConflict).
	WithTextCode("IDENTITY_EXISTS")

// ErrMismatchedHashAndPassword is the uniform credential rejection. Unknown
// users and wrong passwords report the same error so callers cannot probe
// which emails are registered.
var ErrMismatchedHashAndPassword = errors.New("credentials do not match", errors.CategoryAuth).
	WithTextCode("CREDENTIALS_MISMATCH").
	WithCode(errors.CodeUnauthorized)

// ErrNoEmptyString rejects empty input where a value is required.
var ErrNoEmptyString = errors.New("value should not be an empty string", errors.CategoryValidation).
	WithTextCode("EMPTY_STRING")

// ErrTokenExpired is returned for tokens past their expiry.
var ErrTokenExpired = errors.New("authentication token expired", errors.CategoryAuth).
	WithTextCode("TOKEN_EXPIRED").
	WithCode(errors.CodeUnauthorized)

// ErrTokenMalformed covers structurally invalid tokens and bad signatures.
// Callers treat every verification failure identically.
var ErrTokenMalformed = errors.New("authentication token malformed", errors.CategoryAuth).
	WithTextCode("TOKEN_MALFORMED").
	WithCode(errors.CodeUnauthorized)

// ErrNoToken signals that the request carried no credential at all, which
// is distinct from carrying an invalid one.
var ErrNoToken = errors.New("no authentication token supplied", errors.CategoryAuth).
	WithTextCode("TOKEN_MISSING").
	WithCode(errors.CodeUnauthorized)

// ErrNotAuthorized is the guard rejection for requests with no principal.
var ErrNotAuthorized = errors.New("not authorized", errors.CategoryAuth).
	WithTextCode("NOT_AUTHORIZED").
	WithCode(errors.CodeUnauthorized)

// ErrForbidden is the guard rejection for principals with an insufficient role.
var ErrForbidden = errors.New("insufficient role", errors.CategoryAuthz).
	WithTextCode("FORBIDDEN")

// ErrUnableToDecodeSession unable to build a session from token claims
var ErrUnableToDecodeSession = errors.New("unable to decode session", errors.CategoryAuth).
	WithTextCode("SESSION_DECODE")

// IsAuthRejection reports whether err is an authentication or authorization
// rejection, as opposed to an infrastructure fault.
func IsAuthRejection(err error) bool {
	if err == nil {
		return false
	}
	var rich *errors.Error
	if errors.As(err, &rich) {
		return rich.Category == errors.CategoryAuth || rich.Category == errors.CategoryAuthz
	}
	return false
}

// IsValidationError reports whether err was caused by missing or malformed
// caller input.
func IsValidationError(err error) bool {
	if err == nil {
		return false
	}
	var rich *errors.Error
	if errors.As(err, &rich) {
		return rich.Category == errors.CategoryValidation
	}
	return false
}

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	var rich *errors.Error
	if errors.As(err, &rich) && rich.TextCode == "TOKEN_EXPIRED" {
		return true
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for structurally invalid tokens
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	var rich *errors.Error
	if errors.As(err, &rich) && rich.TextCode == "TOKEN_MALFORMED" {
		return true
	}
	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}
