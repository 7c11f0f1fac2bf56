// SPDX-License-Identifier: MIT

package hsic

import (
	"errors"
	"fmt"
)

// Every message is prefixed with "hsic: ...". Errors coming from the matrix,
// kernel and resample packages are wrapped so both the hsic sentinel and the
// underlying cause match with errors.Is.
var (
	// ErrInvalidInput indicates nil, empty, non-finite or mismatched samples or Gram matrices.
	ErrInvalidInput = errors.New("hsic: invalid input")

	// ErrInsufficientSamples indicates too few observations for the estimator or method.
	ErrInsufficientSamples = errors.New("hsic: insufficient samples")

	// ErrUnsupportedConfiguration indicates an incompatible combination of options.
	ErrUnsupportedConfiguration = errors.New("hsic: unsupported configuration")

	// ErrUnrecognizedMethod indicates an unknown method name or value.
	ErrUnrecognizedMethod = errors.New("hsic: unrecognized method")
)

// hsicErrorf tags err with the operation name.
func hsicErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

// invalidInput wraps an upstream cause as ErrInvalidInput.
func invalidInput(op string, cause error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrInvalidInput, cause)
}
