package plots

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownMethod indicates a method name the registry does not know.
	ErrUnknownMethod = errors.New("plots: unknown method")

	// ErrArgs indicates arguments that do not fit a method's parameters.
	ErrArgs = errors.New("plots: invalid arguments")
)

// ArgError reports a binding failure for one parameter of a method.
type ArgError struct {
	Method string
	Param  string
	Err    error
}

func (e *ArgError) Error() string {
	if e.Param == "" {
		return fmt.Sprintf("%s: %v", e.Method, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Method, e.Param, e.Err)
}

func (e *ArgError) Unwrap() error {
	return e.Err
}

func argErr(method, param, format string, args ...any) error {
	return &ArgError{
		Method: method,
		Param:  param,
		Err:    fmt.Errorf("%w: "+format, append([]any{ErrArgs}, args...)...),
	}
}
