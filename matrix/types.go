// SPDX-License-Identifier: MIT

// Package matrix: domain types shared by the dense storage, the validators
// and the multiplication engine. Errors and options live in dedicated files
// (errors.go, options.go).
package matrix

import "fmt"

// Matrix represents a two-dimensional mutable array of float64 values.
// Every method enforces bounds checking and returns clear errors on misuse.
//
// Complexity notes: all methods are expected O(1) except Clone (O(r*c)).
type Matrix interface {
	// Rows returns the number of rows in the matrix.
	Rows() int

	// Cols returns the number of columns in the matrix.
	Cols() int

	// At retrieves the element at position (i, j).
	// Returns ErrOutOfRange if i<0, i>=Rows(), j<0 or j>=Cols().
	At(i, j int) (float64, error)

	// Set assigns the value v at position (i, j).
	// Returns ErrOutOfRange if indices are invalid.
	Set(i, j int, v float64) error

	// Clone returns a deep copy of the matrix.
	Clone() Matrix
}

// Shape is a (rows, cols) pair. It is the payload of shape-related errors
// and log attributes.
type Shape struct {
	Rows int
	Cols int
}

// ShapeOf returns the shape of m.
func ShapeOf(m Matrix) Shape { return Shape{Rows: m.Rows(), Cols: m.Cols()} }

// String renders the shape as "RxC".
func (s Shape) String() string { return fmt.Sprintf("%dx%d", s.Rows, s.Cols) }

// Empty reports whether the shape holds no elements.
func (s Shape) Empty() bool { return s.Rows == 0 || s.Cols == 0 }

// WorkItem is a half-open range [Start, End) of output row indices owned by
// exactly one worker.
type WorkItem struct {
	Start int // first row, inclusive
	End   int // last row, exclusive
}

// Len returns the number of rows in the item.
func (w WorkItem) Len() int { return w.End - w.Start }

// String renders the item as "[start,end)".
func (w WorkItem) String() string { return fmt.Sprintf("[%d,%d)", w.Start, w.End) }
