// Package apperr holds the error kinds that use cases return and the HTTP
// layer maps to status codes.
package apperr

import (
	"errors"
	"strings"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindUnauthorized
	KindConflict
	KindUpstream
	KindUnavailable
)

// FieldError describes one failed input check.
type FieldError struct {
	Msg      string `json:"msg"`
	Param    string `json:"param,omitempty"`
	Location string `json:"location,omitempty"`
}

// Error is a classified application error.
type Error struct {
	Kind   Kind
	Msg    string
	Fields []FieldError
	Err    error
}

func (e *Error) Error() string {
	if len(e.Fields) > 0 {
		msgs := make([]string, 0, len(e.Fields))
		for _, f := range e.Fields {
			msgs = append(msgs, f.Msg)
		}
		return strings.Join(msgs, "; ")
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(fields ...FieldError) *Error {
	return &Error{Kind: KindValidation, Msg: "validation failed", Fields: fields}
}

// Field is a body parameter check failure.
func Field(param, msg string) FieldError {
	return FieldError{Msg: msg, Param: param, Location: "body"}
}

func NotFound(msg string) *Error     { return &Error{Kind: KindNotFound, Msg: msg} }
func Unauthorized(msg string) *Error { return &Error{Kind: KindUnauthorized, Msg: msg} }
func Conflict(msg string) *Error     { return &Error{Kind: KindConflict, Msg: msg} }

func Upstream(msg string, err error) *Error {
	return &Error{Kind: KindUpstream, Msg: msg, Err: err}
}

func Unavailable(msg string, err error) *Error {
	return &Error{Kind: KindUnavailable, Msg: msg, Err: err}
}

// KindOf reports the kind of err, KindInternal for unclassified errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// As unwraps err into an *Error when possible.
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// Validator accumulates field errors in input order.
type Validator struct {
	fields []FieldError
}

// Require records msg for param when value is blank.
func (v *Validator) Require(param, value, msg string) {
	if strings.TrimSpace(value) == "" {
		v.fields = append(v.fields, Field(param, msg))
	}
}

// Check records msg for param when ok is false.
func (v *Validator) Check(ok bool, param, msg string) {
	if !ok {
		v.fields = append(v.fields, Field(param, msg))
	}
}

// Err returns nil when every check passed.
func (v *Validator) Err() error {
	if len(v.fields) == 0 {
		return nil
	}
	return Validation(v.fields...)
}
