package toolcall

import (
	"errors"
	"fmt"
)

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	ErrSuccess Err = iota
	ErrNotFound
	ErrBadParameter
	ErrNotImplemented
	ErrDuplicateName
	ErrDisabled
	ErrTimeout
	ErrInvalidArguments
	ErrExecution
	ErrLoad
	ErrParse
	ErrIterationLimit
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Errors
type Err int

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (e Err) Error() string {
	switch e {
	case ErrSuccess:
		return "success"
	case ErrNotFound:
		return "not found"
	case ErrBadParameter:
		return "bad parameter"
	case ErrNotImplemented:
		return "not implemented"
	case ErrDuplicateName:
		return "duplicate name"
	case ErrDisabled:
		return "disabled"
	case ErrTimeout:
		return "timeout"
	case ErrInvalidArguments:
		return "invalid arguments"
	case ErrExecution:
		return "execution error"
	case ErrLoad:
		return "load error"
	case ErrParse:
		return "parse error"
	case ErrIterationLimit:
		return "iteration limit exceeded"
	}
	return fmt.Sprintf("error code %d", int(e))
}

func (e Err) With(args ...interface{}) error {
	return fmt.Errorf("%w: %s", e, fmt.Sprint(args...))
}

func (e Err) Withf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", e, fmt.Sprintf(format, args...))
}

// KindOf returns the first Err in the chain, or ErrExecution when
// the error did not originate in this module
func KindOf(err error) Err {
	var e Err
	switch {
	case err == nil:
		return ErrSuccess
	case errors.As(err, &e):
		return e
	default:
		return ErrExecution
	}
}

////////////////////////////////////////////////////////////////////////////////
// MARSHALLING

var kindNames = map[Err]string{
	ErrSuccess:          "success",
	ErrNotFound:         "not_found",
	ErrBadParameter:     "bad_parameter",
	ErrNotImplemented:   "not_implemented",
	ErrDuplicateName:    "duplicate_name",
	ErrDisabled:         "disabled",
	ErrTimeout:          "timeout",
	ErrInvalidArguments: "invalid_arguments",
	ErrExecution:        "execution_error",
	ErrLoad:             "load_error",
	ErrParse:            "parse_error",
	ErrIterationLimit:   "iteration_limit",
}

func (e Err) MarshalText() ([]byte, error) {
	if name, exists := kindNames[e]; exists {
		return []byte(name), nil
	}
	return nil, fmt.Errorf("unknown error code %d", int(e))
}

func (e *Err) UnmarshalText(data []byte) error {
	for kind, name := range kindNames {
		if name == string(data) {
			*e = kind
			return nil
		}
	}
	return ErrBadParameter.Withf("unknown error kind %q", string(data))
}
