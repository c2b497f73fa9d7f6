// Package apierror defines the error taxonomy surfaced to API callers. Every
// error carries a Kind, the HTTP status it maps to and a human-readable message.
package apierror

import (
	"errors"
	"net/http"
)

// Kind classifies an API error.
type Kind int

// Error kinds.
const (
	KindUnknown Kind = iota
	KindMissingParameter
	KindInvalidParameter
	KindConfiguration
	KindAuthentication
	KindUpstreamUnavailable
	KindNotFound
	KindBadUpstreamRequest
	KindUpstreamServer
)

var kindNames = map[Kind]string{
	KindUnknown:             "unknown",
	KindMissingParameter:    "missing_parameter",
	KindInvalidParameter:    "invalid_parameter",
	KindConfiguration:       "configuration_error",
	KindAuthentication:      "authentication_error",
	KindUpstreamUnavailable: "upstream_unavailable",
	KindNotFound:            "not_found",
	KindBadUpstreamRequest:  "bad_upstream_request",
	KindUpstreamServer:      "upstream_server_error",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return kindNames[KindUnknown]
}

// Error is an error with an API-facing status and message. Err, when set, is
// the underlying cause and is never shown to callers.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error of the same Kind, so sentinel-style checks work:
// errors.Is(err, &apierror.Error{Kind: apierror.KindNotFound}).
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// New returns an *Error of the given kind.
func New(kind Kind, status int, message string) *Error {
	return &Error{Kind: kind, Status: status, Message: message}
}

// Wrap returns an *Error of the given kind with cause err.
func Wrap(kind Kind, status int, message string, err error) *Error {
	return &Error{Kind: kind, Status: status, Message: message, Err: err}
}

// MissingParameter reports a required request parameter that was not given.
func MissingParameter(message string) *Error {
	return New(KindMissingParameter, http.StatusBadRequest, message)
}

// InvalidParameter reports a request parameter with an unacceptable value.
func InvalidParameter(message string) *Error {
	return New(KindInvalidParameter, http.StatusBadRequest, message)
}

// Configuration reports missing service configuration.
func Configuration(message string) *Error {
	return New(KindConfiguration, http.StatusInternalServerError, message)
}

// Authentication reports that the upstream rejected our credentials or token.
func Authentication(message string, err error) *Error {
	return Wrap(KindAuthentication, http.StatusUnauthorized, message, err)
}

// UpstreamUnavailable reports a transport failure talking to the upstream.
// Clients see it as a plain 500.
func UpstreamUnavailable(message string, err error) *Error {
	return Wrap(KindUpstreamUnavailable, http.StatusInternalServerError, message, err)
}

// NotFound reports an upstream 404.
func NotFound(message string) *Error {
	return New(KindNotFound, http.StatusNotFound, message)
}

// BadUpstreamRequest carries an upstream 4xx status and message verbatim.
func BadUpstreamRequest(status int, message string) *Error {
	return New(KindBadUpstreamRequest, status, message)
}

// UpstreamServer reports an upstream 5xx or an unclassified response as a 500.
func UpstreamServer(message string, err error) *Error {
	return Wrap(KindUpstreamServer, http.StatusInternalServerError, message, err)
}

// KindOf returns the Kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// StatusOf returns the HTTP status of the first *Error in err's chain. Errors
// without one map to 500.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) && e.Status != 0 {
		return e.Status
	}
	return http.StatusInternalServerError
}

// MessageOf returns the API-facing message of err, or fallback when err carries
// none.
func MessageOf(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return fallback
}
