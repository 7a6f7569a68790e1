package dispatch

import (
	"fmt"
	"strconv"
	"strings"
)

// arity fails with ErrSyntax unless lo <= len(params) <= hi (hi < 0: unbounded).
func arity(params []string, lo, hi int) error {
	if len(params) < lo || (hi >= 0 && len(params) > hi) {
		return fmt.Errorf("%w: wrong number of arguments", ErrSyntax)
	}
	return nil
}

// pairs fails with ErrSyntax unless params is a non-empty list of n-tuples.
func pairs(params []string, n int) error {
	if len(params) == 0 || len(params)%n != 0 {
		return fmt.Errorf("%w: wrong number of arguments", ErrSyntax)
	}
	return nil
}

func parseInt(s string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: value is not an integer or out of range: %s", ErrSyntax, s)
	}
	return v, nil
}

func parseCount(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: value is out of range, must be positive: %s", ErrSyntax, s)
	}
	return v, nil
}

func parseCursor(s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid cursor: %s", ErrSyntax, s)
	}
	return v, nil
}

func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: value is not a valid float: %s", ErrSyntax, s)
	}
	return v, nil
}

// is reports whether the option token equals name, ignoring case.
func is(token, name string) bool {
	return strings.EqualFold(token, name)
}

// scanOptions parses the [MATCH pattern] [COUNT n] tail of the scan family.
func scanOptions(params []string) (match string, count int, err error) {
	for i := 0; i < len(params); i += 2 {
		if i+1 >= len(params) {
			return "", 0, fmt.Errorf("%w: option %s needs a value", ErrSyntax, params[i])
		}
		switch {
		case is(params[i], "MATCH"):
			match = params[i+1]
		case is(params[i], "COUNT"):
			if count, err = parseCount(params[i+1]); err != nil {
				return "", 0, err
			}
		default:
			return "", 0, fmt.Errorf("%w: unknown option %s", ErrSyntax, params[i])
		}
	}
	return match, count, nil
}

// countOption parses an optional trailing [COUNT n].
func countOption(params []string) (int, error) {
	switch len(params) {
	case 0:
		return 0, nil
	case 2:
		if is(params[0], "COUNT") {
			return parseCount(params[1])
		}
	}
	return 0, fmt.Errorf("%w: expected COUNT <n>", ErrSyntax)
}
