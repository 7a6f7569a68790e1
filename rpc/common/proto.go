package common

import (
	"context"
	"errors"
	"fmt"

	"github.com/ValentinKolb/kvql/lib/convert"
	"github.com/ValentinKolb/kvql/lib/dispatch"
	"github.com/ValentinKolb/kvql/lib/query"
)

// --------------------------------------------------------------------------
// Error Response
// --------------------------------------------------------------------------

// ErrorResponse is the body sent instead of a result when a query fails.
type ErrorResponse struct {
	Kind      string `json:"kind" yaml:"kind"`
	Error     string `json:"error" yaml:"error"`
	RequestID string `json:"request_id,omitempty" yaml:"request_id,omitempty"`
}

// NewErrorResponse classifies err and builds the response for it.
func NewErrorResponse(err error, requestID string) ErrorResponse {
	return ErrorResponse{
		Kind:      ClassifyError(err).String(),
		Error:     err.Error(),
		RequestID: requestID,
	}
}

// --------------------------------------------------------------------------
// Error Kinds
// --------------------------------------------------------------------------

// ErrorKind groups query failures by who is responsible for them.
type ErrorKind uint8

const (
	ErrKInternal    ErrorKind = iota // Conversion defects and unexpected failures.
	ErrKParse                        // The text is not a known command (*query.Error).
	ErrKUnsupported                  // The command is known but has no route.
	ErrKSyntax                       // Wrong arity or malformed arguments.
	ErrKCommand                      // The backend rejected the command (e.g. WRONGTYPE).
	ErrKTimeout                      // The query did not finish in time.
)

// String returns the string representation of an ErrorKind.
func (k ErrorKind) String() string {
	switch k {
	case ErrKInternal:
		return "internal"
	case ErrKParse:
		return "parse"
	case ErrKUnsupported:
		return "unsupported"
	case ErrKSyntax:
		return "syntax"
	case ErrKCommand:
		return "command"
	case ErrKTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// ClassifyError maps an error returned by the dispatcher onto an ErrorKind.
func ClassifyError(err error) ErrorKind {
	var parseErr *query.Error
	switch {
	case errors.As(err, &parseErr):
		return ErrKParse
	case errors.Is(err, dispatch.ErrUnsupported):
		return ErrKUnsupported
	case errors.Is(err, dispatch.ErrSyntax):
		return ErrKSyntax
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return ErrKTimeout
	case errors.Is(err, convert.ErrShapeMismatch), errors.Is(err, convert.ErrUnknownConverter):
		return ErrKInternal
	default:
		return ErrKCommand
	}
}

// --------------------------------------------------------------------------
// Remote Errors
// --------------------------------------------------------------------------

// RemoteError is returned by clients when the server answered with an error.
type RemoteError struct {
	StatusCode int
	Response   ErrorResponse
}

func (e *RemoteError) Error() string {
	if e.Response.Kind == "" {
		return fmt.Sprintf("server error (status %d): %s", e.StatusCode, e.Response.Error)
	}
	return fmt.Sprintf("%s error (status %d): %s", e.Response.Kind, e.StatusCode, e.Response.Error)
}
