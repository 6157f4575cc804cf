package models

import "fmt"

// ErrorKind classifies a content query failure.
type ErrorKind string

const (
	ErrorKindNetwork         ErrorKind = "network"          // connection or DNS failure
	ErrorKindTimeout         ErrorKind = "timeout"          // request deadline exceeded
	ErrorKindUpstreamError   ErrorKind = "upstream_error"   // non-2xx status or GraphQL-level errors
	ErrorKindInvalidResponse ErrorKind = "invalid_response" // malformed or unexpected body shape
	ErrorKindNotFound        ErrorKind = "not_found"        // origin confirms the entity does not exist
	ErrorKindInvalidQuery    ErrorKind = "invalid_query"    // unknown query name, programmer error
	ErrorKindUnauthorized    ErrorKind = "unauthorized"     // invalidation secret mismatch
)

// QueryError is the normalized failure produced at the query executor
// boundary. Transport errors never escape raw; they are wrapped here with a
// classification the retry wrapper and callers can act on.
type QueryError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *QueryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *QueryError) Unwrap() error { return e.Err }

// Retryable reports whether retrying the operation can possibly succeed.
// NotFound is a terminal answer from the origin, InvalidQuery and
// Unauthorized are caller defects.
func (e *QueryError) Retryable() bool {
	switch e.Kind {
	case ErrorKindNotFound, ErrorKindInvalidQuery, ErrorKindUnauthorized:
		return false
	default:
		return true
	}
}

// NewQueryError builds a QueryError wrapping an underlying cause.
func NewQueryError(kind ErrorKind, message string, err error) *QueryError {
	return &QueryError{Kind: kind, Message: message, Err: err}
}
