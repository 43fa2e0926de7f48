// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for the checks that gate
//    Multiply: operand presence, inner-dimension compatibility, worker count.
//  - Run synchronously in the caller's goroutine, before any allocation of the
//    result and before any worker is started.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing on success.
//
// Note:
//  - Composite validators follow a fixed sequence (NotNil(a) → NotNil(b) → shapes → inner dims).

package matrix

import (
	"fmt"
	"reflect"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil.
// A typed nil pointer of any implementation, such as (*Dense)(nil), stored
// in the interface is also rejected.
// Complexity: O(1).
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}
	if d, ok := m.(*Dense); ok {
		if d == nil {
			return validatorErrorf("ValidateNotNil", ErrNilMatrix)
		}
		return nil
	}
	if v := reflect.ValueOf(m); v.Kind() == reflect.Pointer && v.IsNil() {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateShape rejects a matrix reporting a negative dimension.
// Errors: ErrBadShape wrapped with the reported shape.
// Complexity: O(1).
func ValidateShape(m Matrix) error {
	if m.Rows() < 0 || m.Cols() < 0 {
		return validatorErrorf("ValidateShape", fmt.Errorf("%s: %w", ShapeOf(m), ErrBadShape))
	}

	return nil
}

// ValidateMulCompatible is the shape gate for Multiply:
// NotNil(a) → NotNil(b) → Shape(a) → Shape(b) → a.Cols == b.Rows.
//
// Errors:
//   - ErrNilMatrix when either operand is nil.
//   - ErrBadShape when either operand reports a negative dimension.
//   - *DimensionMismatchError (matches ErrDimensionMismatch) carrying both shapes.
//
// Complexity: O(1). No side effects on success.
func ValidateMulCompatible(a, b Matrix) error {
	if err := ValidateNotNil(a); err != nil {
		return validatorErrorf("ValidateMulCompatible", err)
	}
	if err := ValidateNotNil(b); err != nil {
		return validatorErrorf("ValidateMulCompatible", err)
	}
	if err := ValidateShape(a); err != nil {
		return validatorErrorf("ValidateMulCompatible", err)
	}
	if err := ValidateShape(b); err != nil {
		return validatorErrorf("ValidateMulCompatible", err)
	}
	if a.Cols() != b.Rows() {
		return validatorErrorf("ValidateMulCompatible", &DimensionMismatchError{A: ShapeOf(a), B: ShapeOf(b)})
	}

	return nil
}

// ValidateThreadCount rejects worker counts below one.
// Errors: *InvalidThreadCountError (matches ErrInvalidThreadCount).
func ValidateThreadCount(n int) error {
	if n < 1 {
		return validatorErrorf("ValidateThreadCount", &InvalidThreadCountError{Value: n})
	}

	return nil
}
