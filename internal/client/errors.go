package client

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind categorizes request failures
type ErrorKind string

const (
	// KindNetwork means the request never completed
	KindNetwork ErrorKind = "network"

	// KindHTTP means the server answered with a non-2xx status
	KindHTTP ErrorKind = "http"

	// KindApplication means a 2xx response reported a failure in its body
	KindApplication ErrorKind = "application"

	// KindDecode means the response body could not be decoded
	KindDecode ErrorKind = "decode"

	// KindInternal covers request construction and local file problems
	KindInternal ErrorKind = "internal"
)

// ErrNothingToSubmit is returned when an upload has no files or no events
var ErrNothingToSubmit = errors.New("nothing to submit: select at least one video and one event")

// RequestError describes a failed call to the analysis service
type RequestError struct {
	Kind       ErrorKind `json:"kind"`
	Op         string    `json:"op"`
	Message    string    `json:"message"`
	StatusCode int       `json:"status_code,omitempty"`
	Detail     string    `json:"detail,omitempty"`
	Cause      error     `json:"-"`
}

// Error returns the message shown to the user, followed by the cause if any
func (e *RequestError) Error() string {
	parts := []string{e.Message}
	if e.Cause != nil {
		parts = append(parts, e.Cause.Error())
	}
	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying error
func (e *RequestError) Unwrap() error {
	return e.Cause
}

// Is matches another RequestError of the same kind
func (e *RequestError) Is(target error) bool {
	if re, ok := target.(*RequestError); ok {
		return e.Kind == re.Kind
	}
	return false
}

func newError(kind ErrorKind, op, message string, cause error) *RequestError {
	return &RequestError{
		Kind:    kind,
		Op:      op,
		Message: message,
		Cause:   cause,
	}
}

// statusError builds an HTTP error, preferring the body's detail text
func statusError(op string, status int, detail string) *RequestError {
	msg := fmt.Sprintf("HTTP %d", status)
	if detail != "" {
		msg = detail
	}
	return &RequestError{
		Kind:       KindHTTP,
		Op:         op,
		Message:    msg,
		StatusCode: status,
		Detail:     detail,
	}
}

// KindOf returns the kind of a RequestError anywhere in err's chain
func KindOf(err error) (ErrorKind, bool) {
	var re *RequestError
	if errors.As(err, &re) {
		return re.Kind, true
	}
	return "", false
}

// IsNetworkError checks if an error is a transport failure
func IsNetworkError(err error) bool {
	kind, ok := KindOf(err)
	return ok && kind == KindNetwork
}

// IsHTTPError checks if an error is a non-2xx response
func IsHTTPError(err error) bool {
	kind, ok := KindOf(err)
	return ok && kind == KindHTTP
}

// IsApplicationError checks if an error was reported in a successful response body
func IsApplicationError(err error) bool {
	kind, ok := KindOf(err)
	return ok && kind == KindApplication
}
