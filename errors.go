package animated

import (
	"errors"
	"fmt"
)

// Configuration errors returned by node constructors. Match them with
// errors.Is; the concrete error is a *ConfigError carrying the operation.
var (
	ErrRangeTooShort   = errors.New("range must have at least 2 elements")
	ErrNonMonotonic    = errors.New("input range must be monotonically non-decreasing")
	ErrRangeLength     = errors.New("input and output ranges must have the same length")
	ErrInfiniteRange   = errors.New("range cannot be ]-infinity;+infinity[")
	ErrPatternMismatch = errors.New("output strings must share the same shape")
	ErrMixedOutput     = errors.New("output range must be either numeric or strings")
	ErrBadColor        = errors.New("unrecognized color")
)

// ConfigError reports an invalid node or driver configuration.
type ConfigError struct {
	Op  string // constructor or field, e.g. "interpolate: inputRange"
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("animated: %s: %v", e.Op, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

func configErr(op string, err error) error {
	return &ConfigError{Op: op, Err: err}
}
