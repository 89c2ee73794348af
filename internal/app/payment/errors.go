package payment

import "errors"

var (
	ErrInvalidParameter = errors.New("invalid parameter value detected")
	ErrRequireLogin     = errors.New("course or activity not accessible")
)
