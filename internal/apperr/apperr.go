// Package apperr provides the typed errors that surface to callers of winlux
// operations.
//
// Every error carries a Kind, a machine-readable reason code (e.g.
// "errors.geocode.not_found") and optional parameters, so that an outer layer
// can render a localized message without parsing error strings.
package apperr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Kind classifies an Error.
type Kind int

const (
	_ Kind = iota
	Validation
	NotFound
	HTTP
	Parse
	TimeConversion
	Configuration
	Store
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case NotFound:
		return "not-found"
	case HTTP:
		return "http"
	case Parse:
		return "parse"
	case TimeConversion:
		return "time-conversion"
	case Configuration:
		return "configuration"
	case Store:
		return "store"
	default:
		return "unknown"
	}
}

// Error is a typed failure with a reason code and parameters.
type Error struct {
	Kind   Kind
	Code   string
	Params map[string]string
	Err    error
}

// New creates an Error of the given kind and code.
func New(kind Kind, code string) *Error {
	return &Error{Kind: kind, Code: code}
}

// Wrap creates an Error of the given kind and code caused by err.
// The cause's message is recorded as the "source" parameter.
func Wrap(kind Kind, code string, err error) *Error {
	e := &Error{Kind: kind, Code: code, Err: err}
	if err != nil {
		e.WithParam("source", err.Error())
	}
	return e
}

// WithParam sets a parameter and returns the receiver.
func (e *Error) WithParam(key string, value any) *Error {
	if e.Params == nil {
		e.Params = map[string]string{}
	}
	e.Params[key] = fmt.Sprint(value)
	return e
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Code)
	if len(e.Params) > 0 {
		keys := make([]string, 0, len(e.Params))
		for k := range e.Params {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString(" (")
		for i, k := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s: %s", k, e.Params[k])
		}
		b.WriteString(")")
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the first Error in err's chain, or zero if there
// is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// Is returns whether err's chain contains an Error of the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// CodeOf returns the reason code of the first Error in err's chain, or the
// empty string.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
