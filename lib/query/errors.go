package query

import "fmt"

// --------------------------------------------------------------------------
// Error Codes
// --------------------------------------------------------------------------

// ErrCode classifies why a command line could not be normalized.
type ErrCode uint8

const (
	ErrCEmptyQuery     ErrCode = iota + 1 // The command line contains no tokens.
	ErrCUnknownCommand                    // The first token is not a known verb.
	ErrCMissingKeyword                    // The verb requires a sub-verb but none was given.
	ErrCUnknownKeyword                    // The sub-verb token is not a known sub-verb.
)

func (c ErrCode) String() string {
	switch c {
	case ErrCEmptyQuery:
		return "EmptyQuery"
	case ErrCUnknownCommand:
		return "UnknownCommand"
	case ErrCMissingKeyword:
		return "MissingKeyword"
	case ErrCUnknownKeyword:
		return "UnknownKeyword"
	default:
		return fmt.Sprintf("Unknown(%d)", c)
	}
}

// --------------------------------------------------------------------------
// Error Type
// --------------------------------------------------------------------------

// Error is returned by the Normalizer. Verb is set for the keyword errors,
// Token holds the offending input token (if any).
type Error struct {
	Code  ErrCode
	Verb  Verb
	Token string
}

// Sentinel errors for use with errors.Is. Two errors match if their codes match.
var (
	ErrEmptyQuery     = &Error{Code: ErrCEmptyQuery}
	ErrUnknownCommand = &Error{Code: ErrCUnknownCommand}
	ErrMissingKeyword = &Error{Code: ErrCMissingKeyword}
	ErrUnknownKeyword = &Error{Code: ErrCUnknownKeyword}
)

func (e *Error) Error() string {
	switch e.Code {
	case ErrCEmptyQuery:
		return "empty query"
	case ErrCUnknownCommand:
		return fmt.Sprintf("query contains an unknown command: %s", e.Token)
	case ErrCMissingKeyword:
		return fmt.Sprintf("query does not contain a keyword for the command %s", e.Verb)
	case ErrCUnknownKeyword:
		return fmt.Sprintf("query contains an unknown keyword for the command %s: %s", e.Verb, e.Token)
	default:
		return fmt.Sprintf("invalid query (code %s)", e.Code)
	}
}

// Is implements errors.Is matching on the error code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}
