package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies accessor failures into the small taxonomy the rest
// of the client is allowed to react to. Raw transport errors never leave
// this package.
type ErrorKind int

const (
	// KindTransport covers network failures, timeouts and 5xx responses.
	KindTransport ErrorKind = iota
	// KindAuth covers 401: the stored credential is invalid or expired.
	KindAuth
	// KindValidation covers request rejections for shape or content reasons.
	KindValidation
	// KindNotFound covers 404: the referenced entity no longer exists.
	KindNotFound
)

func (k ErrorKind) String() string {
	switch k {
	case KindAuth:
		return "auth"
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	default:
		return "transport"
	}
}

// Error is the typed failure returned by accessors.
type Error struct {
	Kind    ErrorKind
	Status  int
	Message string
	err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
	}
	if e.err != nil {
		return fmt.Sprintf("%s error: %v", e.Kind, e.err)
	}
	return fmt.Sprintf("%s error (status %d)", e.Kind, e.Status)
}

func (e *Error) Unwrap() error { return e.err }

// transportError wraps a failure that never produced an HTTP status.
func transportError(err error) *Error {
	return &Error{Kind: KindTransport, err: err}
}

// statusError maps an HTTP status code onto the taxonomy.
func statusError(status int, message string) *Error {
	e := &Error{Status: status, Message: message}
	switch {
	case status == http.StatusUnauthorized:
		e.Kind = KindAuth
	case status == http.StatusNotFound:
		e.Kind = KindNotFound
	case status >= 400 && status < 500:
		e.Kind = KindValidation
	default:
		e.Kind = KindTransport
	}
	return e
}

// IsAuthError reports whether err is (or wraps) a credential rejection.
func IsAuthError(err error) bool { return hasKind(err, KindAuth) }

// IsValidationError reports whether err is a request-shape rejection.
func IsValidationError(err error) bool { return hasKind(err, KindValidation) }

// IsNotFoundError reports whether err refers to a missing entity.
func IsNotFoundError(err error) bool { return hasKind(err, KindNotFound) }

// IsTransportError reports whether err is a network or server failure.
func IsTransportError(err error) bool { return hasKind(err, KindTransport) }

func hasKind(err error, kind ErrorKind) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}
