package services

import (
	"errors"
	"net/http"
)

// Kind classifies a service failure so the HTTP layer can pick a status
// without inspecting messages.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindInsufficientStock
	KindEmptyCart
)

// Error is the failure type every service operation returns.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// HTTPStatus maps the error kind onto the API's status contract.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation, KindInsufficientStock, KindEmptyCart:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func errValidation(msg string) error { return &Error{Kind: KindValidation, Message: msg} }
func errUnauthorized(msg string) error { return &Error{Kind: KindUnauthorized, Message: msg} }
func errForbidden(msg string) error { return &Error{Kind: KindForbidden, Message: msg} }
func errNotFound(msg string) error { return &Error{Kind: KindNotFound, Message: msg} }
func errInsufficientStock() error {
	return &Error{Kind: KindInsufficientStock, Message: "Insufficient stock"}
}
func errEmptyCart() error { return &Error{Kind: KindEmptyCart, Message: "Cart is empty"} }
func errInternal(err error) error {
	return &Error{Kind: KindInternal, Message: "Server error", Err: err}
}

// KindOf returns the kind of a service error, or KindInternal for
// anything else.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
