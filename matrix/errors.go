// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set and typed errors.
// This file defines the package-level sentinels used across the matrix
// package plus the typed errors that carry call payload (shapes, thread
// counts, allocation sizes). All public functions MUST return these and tests
// MUST check them via errors.Is / errors.As. No public function panics on a
// user-triggered error condition.

package matrix

import (
	"errors"
	"fmt"
)

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." for consistency and to allow
// easy grepping across logs. Typed errors implement Is(target) so that
// errors.Is(err, ErrDimensionMismatch) holds for a *DimensionMismatchError
// however deeply it has been wrapped.
//
// ERROR PRIORITY (documented, enforced in tests):
// thread count -> nil operand -> bad shape -> dimension mismatch -> allocation -> worker failure.

var (
	// ErrBadShape is returned when a requested shape is invalid: negative
	// dimensions, ragged rows, or a data slice whose length is not rows*cols.
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	// Public indexers (At/Set) MUST return this, not panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible operands for multiplication
	// (a.Cols != b.Rows). The concrete error is *DimensionMismatchError.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrInvalidThreadCount indicates a non-positive worker count.
	// The concrete error is *InvalidThreadCountError.
	ErrInvalidThreadCount = errors.New("matrix: invalid thread count")

	// ErrAllocationFailure indicates the result buffer could not be allocated.
	// The concrete error is *AllocationFailureError.
	ErrAllocationFailure = errors.New("matrix: allocation failure")

	// ErrWorkerFailure indicates a worker stopped before finishing its rows.
	// The concrete error is *WorkerFailureError.
	ErrWorkerFailure = errors.New("matrix: worker failure")

	// ErrNilMatrix indicates that a nil Matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")
)

// ErrIndexOutOfBounds historically named the same condition as ErrOutOfRange.
var ErrIndexOutOfBounds = ErrOutOfRange // Deprecated: use ErrOutOfRange.

// DimensionMismatchError reports the shapes of two operands that cannot be
// multiplied. It matches ErrDimensionMismatch.
type DimensionMismatchError struct {
	A Shape // left operand
	B Shape // right operand
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("%s: a is %s, b is %s (a.cols %d != b.rows %d)",
		ErrDimensionMismatch, e.A, e.B, e.A.Cols, e.B.Rows)
}

// Is reports whether target is ErrDimensionMismatch.
func (e *DimensionMismatchError) Is(target error) bool { return target == ErrDimensionMismatch }

// InvalidThreadCountError reports a rejected worker count. It matches
// ErrInvalidThreadCount.
type InvalidThreadCountError struct {
	Value int
}

func (e *InvalidThreadCountError) Error() string {
	return fmt.Sprintf("%s: %d (must be >= 1)", ErrInvalidThreadCount, e.Value)
}

// Is reports whether target is ErrInvalidThreadCount.
func (e *InvalidThreadCountError) Is(target error) bool { return target == ErrInvalidThreadCount }

// AllocationFailureError reports a result buffer that could not be allocated,
// either because rows*cols overflows int or because the runtime refused the
// allocation. It matches ErrAllocationFailure and unwraps to Cause when set.
type AllocationFailureError struct {
	Shape Shape // requested result shape
	Cause error // runtime error recovered from make, if any
}

func (e *AllocationFailureError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s elements overflow int", ErrAllocationFailure, e.Shape)
	}

	return fmt.Sprintf("%s: %s: %v", ErrAllocationFailure, e.Shape, e.Cause)
}

// Is reports whether target is ErrAllocationFailure.
func (e *AllocationFailureError) Is(target error) bool { return target == ErrAllocationFailure }

// Unwrap exposes the recovered runtime error.
func (e *AllocationFailureError) Unwrap() error { return e.Cause }

// WorkerFailureError reports the row block a failed worker owned and what it
// failed with. It matches ErrWorkerFailure and unwraps to Cause.
type WorkerFailureError struct {
	Item  WorkItem
	Cause error
}

func (e *WorkerFailureError) Error() string {
	return fmt.Sprintf("%s: rows %s: %v", ErrWorkerFailure, e.Item, e.Cause)
}

// Is reports whether target is ErrWorkerFailure.
func (e *WorkerFailureError) Is(target error) bool { return target == ErrWorkerFailure }

// Unwrap exposes the underlying failure.
func (e *WorkerFailureError) Unwrap() error { return e.Cause }
