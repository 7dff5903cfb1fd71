// SPDX-License-Identifier: EPL-2.0

package voice

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput indicates an empty waveform or one holding NaN/Inf samples.
	ErrInvalidInput = errors.New("voice: invalid input")

	// ErrInvalidParameter indicates a sample rate or effect parameter outside
	// its accepted range.
	ErrInvalidParameter = errors.New("voice: invalid parameter")
)

// ParamError describes a rejected parameter. It unwraps to ErrInvalidParameter.
type ParamError struct {
	Name   string
	Value  float64
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s: %s = %g: %s", ErrInvalidParameter, e.Name, e.Value, e.Reason)
}

func (e *ParamError) Unwrap() error { return ErrInvalidParameter }

func paramErr(name string, value float64, reason string) error {
	return &ParamError{Name: name, Value: value, Reason: reason}
}
