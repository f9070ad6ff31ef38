// Package apperr holds the error kinds handlers return to the HTTP layer.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuthToken
	KindAuthorization
	KindNotFound
	KindUpstream
	KindPremiumExhausted
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthToken:
		return "auth_token"
	case KindAuthorization:
		return "authorization"
	case KindNotFound:
		return "not_found"
	case KindUpstream:
		return "upstream"
	case KindPremiumExhausted:
		return "premium_exhausted"
	default:
		return "internal"
	}
}

// Error is rendered by the HTTP error handler as {status, message}.
// Message is either a string or a field to message map.
type Error struct {
	Kind    Kind
	Status  int
	Message any
	Err     error
}

func (e *Error) Error() string {
	msg := fmt.Sprint(e.Message)
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, msg)
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(msg any) *Error {
	return &Error{Kind: KindValidation, Status: http.StatusBadRequest, Message: msg}
}

func AuthToken(msg string, err error) *Error {
	return &Error{Kind: KindAuthToken, Status: http.StatusUnauthorized, Message: msg, Err: err}
}

func Unauthorized(msg string) *Error {
	return &Error{Kind: KindAuthorization, Status: http.StatusUnauthorized, Message: msg}
}

func Forbidden(msg string) *Error {
	return &Error{Kind: KindAuthorization, Status: http.StatusForbidden, Message: msg}
}

// NotFound keeps the 400 the clients of this service already expect.
func NotFound(msg string, err error) *Error {
	return &Error{Kind: KindNotFound, Status: http.StatusBadRequest, Message: msg, Err: err}
}

func Upstream(status int, msg any) *Error {
	if status < 400 || status > 599 {
		status = http.StatusBadGateway
	}
	return &Error{Kind: KindUpstream, Status: status, Message: msg}
}

func PremiumExhausted(err error) *Error {
	return &Error{
		Kind:    KindPremiumExhausted,
		Status:  http.StatusPaymentRequired,
		Message: "Premium is already zero or user not found",
		Err:     err,
	}
}

func Internal(err error) *Error {
	msg := "Internal server error"
	if err != nil {
		msg = err.Error()
	}
	return &Error{Kind: KindInternal, Status: http.StatusInternalServerError, Message: msg, Err: err}
}

// As returns the *Error in err's chain, if any.
func As(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}
