// Package apperr carries typed failures from domain code to the HTTP edge.
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies a failure so transports can pick a status without string matching.
type Kind int

const (
	KindInternal Kind = iota
	KindInput
	KindAuth
	KindNotFound
	KindMethod
	KindTooLarge
	KindUpstream
	KindStore
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not_found"
	case KindMethod:
		return "method"
	case KindTooLarge:
		return "too_large"
	case KindUpstream:
		return "upstream"
	case KindStore:
		return "store"
	case KindUnavailable:
		return "unavailable"
	default:
		return "internal"
	}
}

// Error is a classified failure with a client-safe message.
type Error struct {
	Kind    Kind
	Message string
	Detail  any
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		if e.Message == "" {
			return e.Err.Error()
		}
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap classifies err under kind with a client-facing message.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// WithDetail attaches a structured detail payload.
func (e *Error) WithDetail(detail any) *Error {
	e.Detail = detail
	return e
}

func Input(message string) *Error       { return New(KindInput, message) }
func Unavailable(message string) *Error { return New(KindUnavailable, message) }

// As extracts the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var target *Error
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

// KindOf returns the classification of err, KindInternal when unclassified.
func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.Kind
	}
	return KindInternal
}

// StatusOf maps err onto an HTTP status code.
func StatusOf(err error) int {
	switch KindOf(err) {
	case KindInput:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindMethod:
		return http.StatusMethodNotAllowed
	case KindTooLarge:
		return http.StatusRequestEntityTooLarge
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
