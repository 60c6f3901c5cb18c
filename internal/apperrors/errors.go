package apperrors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/2beens/gymrats/pkg"

	log "github.com/sirupsen/logrus"
)

type Kind string

const (
	KindValidation   Kind = "validation"
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
	KindIntegrity    Kind = "integrity"
	KindUnauthorized Kind = "unauthorized"
	KindDependency   Kind = "dependency"
)

// Sentinels for errors.Is checks, matched by kind only.
var (
	ErrValidation   = &Error{Kind: KindValidation}
	ErrNotFound     = &Error{Kind: KindNotFound}
	ErrConflict     = &Error{Kind: KindConflict}
	ErrIntegrity    = &Error{Kind: KindIntegrity}
	ErrUnauthorized = &Error{Kind: KindUnauthorized}
	ErrDependency   = &Error{Kind: KindDependency}
)

type Error struct {
	Kind    Kind
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind && t.Op == "" && t.Message == "" && t.Err == nil
}

func Validation(op, message string) error {
	return &Error{Kind: KindValidation, Op: op, Message: message}
}

func NotFound(op, message string) error {
	return &Error{Kind: KindNotFound, Op: op, Message: message}
}

func Conflict(op, message string) error {
	return &Error{Kind: KindConflict, Op: op, Message: message}
}

func Integrity(op, message string) error {
	return &Error{Kind: KindIntegrity, Op: op, Message: message}
}

func Unauthorized(op, message string) error {
	return &Error{Kind: KindUnauthorized, Op: op, Message: message}
}

// Dependency wraps a failing storage or broker call.
func Dependency(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindDependency, Op: op, Message: "dependency failure", Err: err}
}

// KindOf returns the kind of the first *Error in the chain, or KindDependency
// for any other non-nil error.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindDependency
}

func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindIntegrity:
		return http.StatusForbidden
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

type errorResponse struct {
	Type    Kind   `json:"type"`
	Message string `json:"message"`
}

// WriteHTTP renders err as a JSON error body. Dependency failures never expose their cause.
func WriteHTTP(w http.ResponseWriter, err error) {
	kind := KindOf(err)
	resp := errorResponse{Type: kind}

	var appErr *Error
	switch {
	case kind == KindDependency:
		resp.Message = "internal error, try again later"
		log.Errorf("dependency failure: %s", err)
	case errors.As(err, &appErr) && appErr.Message != "":
		resp.Message = appErr.Message
	default:
		resp.Message = http.StatusText(HTTPStatus(err))
	}

	pkg.WriteJSON(w, HTTPStatus(err), resp)
}
