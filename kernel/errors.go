// SPDX-License-Identifier: MIT

package kernel

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned for nil samples, samples with fewer than two
	// observations, or samples containing NaN/Inf.
	ErrInvalidInput = errors.New("kernel: invalid input sample")

	// ErrInvalidBandwidth is returned for a negative, NaN or infinite bandwidth.
	ErrInvalidBandwidth = errors.New("kernel: bandwidth must be finite and positive")
)

// kernelErrorf wraps err with an operation tag, mirroring matrix's op: %w shape.
func kernelErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

// errJoin keeps both the kernel sentinel and the underlying cause matchable.
func errJoin(sentinel, cause error) error {
	return fmt.Errorf("%w: %w", sentinel, cause)
}
