// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the explicit index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Allow empty shapes (0×N, N×0): they are legal multiplication operands and results.
//   - Keep algorithmic determinism (fixed loop orders, no map iteration).
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set: O(1); Clone: O(r*c); Equal: O(r*c).

package matrix

import (
	"fmt"
	"math"
	"runtime"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt       = "At"               // method tag used in error wrappers
	ctxSet      = "Set"              // method tag used in error wrappers
	ctxNew      = "NewDense"         // ctor tag
	ctxNewFrom  = "NewDenseFrom"     // ctor tag
	ctxFromRows = "NewDenseFromRows" // ctor tag
)

// ---------- Formatting literals  ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
// The sentinel is preserved via %w.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete row-major matrix.
//   - r,c hold dimensions (rows, cols); either may be zero.
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
type Dense struct {
	r, c int       // row and column counts (>=0)
	data []float64 // contiguous row-major storage (len == r*c)
}

// Compile-time assertions for interface & fmt.Stringer conformance.
var (
	_ Matrix       = (*Dense)(nil)
	_ fmt.Stringer = (*Dense)(nil)
)

// NewDense creates an r×c zero matrix using row-major storage.
// Implementation:
//   - Stage 1: validate rows>=0 && cols>=0; else ErrBadShape.
//   - Stage 2: allocate a zero-filled buffer through allocDense.
//
// Errors:
//   - ErrBadShape (negative dimension).
//   - ErrAllocationFailure (rows*cols overflows or the runtime refuses).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDense(rows, cols int) (*Dense, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("%s(%d,%d): %w", ctxNew, rows, cols, ErrBadShape)
	}

	return allocDense(rows, cols)
}

// NewDenseFrom creates an r×c matrix holding a copy of data (row-major).
// The caller keeps ownership of data; later writes to it do not affect the matrix.
//
// Errors:
//   - ErrBadShape when a dimension is negative or len(data) != rows*cols.
func NewDenseFrom(rows, cols int, data []float64) (*Dense, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("%s(%d,%d): %w", ctxNewFrom, rows, cols, ErrBadShape)
	}
	// Compare against cols first so a huge rows*cols cannot wrap into a valid length.
	if cols != 0 && rows > math.MaxInt/cols {
		return nil, &AllocationFailureError{Shape: Shape{rows, cols}}
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("%s(%d,%d): len(data)=%d: %w", ctxNewFrom, rows, cols, len(data), ErrBadShape)
	}
	m, err := allocDense(rows, cols)
	if err != nil {
		return nil, err
	}
	copy(m.data, data)

	return m, nil
}

// NewDenseFromRows builds a matrix from a slice of rows. All rows must have
// the same length. A nil or empty slice yields a 0×0 matrix.
//
// Errors:
//   - ErrBadShape when rows are ragged.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDenseFromRows(rows [][]float64) (*Dense, error) {
	r := len(rows)
	c := 0
	if r > 0 {
		c = len(rows[0])
	}
	var i int
	for i = 1; i < r; i++ {
		if len(rows[i]) != c {
			return nil, fmt.Errorf("%s: row %d has %d columns, row 0 has %d: %w",
				ctxFromRows, i, len(rows[i]), c, ErrBadShape)
		}
	}
	m, err := allocDense(r, c)
	if err != nil {
		return nil, err
	}
	for i = 0; i < r; i++ {
		copy(m.data[i*c:(i+1)*c], rows[i])
	}

	return m, nil
}

// allocDense is the single allocation point for Dense buffers.
// Implementation:
//   - Stage 1: reject shapes whose element count overflows int.
//   - Stage 2: make() the buffer, converting a runtime allocation panic
//     (e.g. "makeslice: len out of range") into *AllocationFailureError.
//
// Notes:
//   - Exhausting the heap is fatal in the Go runtime and cannot be observed here;
//     only the failures the runtime reports as panics are converted.
func allocDense(rows, cols int) (m *Dense, err error) {
	shape := Shape{Rows: rows, Cols: cols}
	if cols != 0 && rows > math.MaxInt/cols {
		return nil, &AllocationFailureError{Shape: shape}
	}
	defer func() {
		if rec := recover(); rec != nil {
			re, ok := rec.(runtime.Error)
			if !ok {
				panic(rec)
			}
			m, err = nil, &AllocationFailureError{Shape: shape, Cause: re}
		}
	}()

	return &Dense{r: rows, c: cols, data: make([]float64, rows*cols)}, nil
}

// Rows returns the row count. No side effects.
func (m *Dense) Rows() int { return m.r }

// Cols returns the column count. No side effects.
func (m *Dense) Cols() int { return m.c }

// Shape packs Rows() and Cols() into a single call for convenience.
func (m *Dense) Shape() (rows, cols int) { return m.r, m.c }

// indexOf computes the row-major offset or returns ErrOutOfRange wrapped with
// the caller's method tag and coordinates.
func (m *Dense) indexOf(method string, row, col int) (int, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, denseErrorf(method, row, col, ErrOutOfRange)
	}

	return row*m.c + col, nil
}

// At retrieves the element at (row, col).
// Errors: ErrOutOfRange on invalid indices.
func (m *Dense) At(row, col int) (float64, error) {
	idx, err := m.indexOf(ctxAt, row, col)
	if err != nil {
		return 0, err
	}

	return m.data[idx], nil
}

// Set assigns v at (row, col).
// Errors: ErrOutOfRange on invalid indices.
func (m *Dense) Set(row, col int, v float64) error {
	idx, err := m.indexOf(ctxSet, row, col)
	if err != nil {
		return err
	}
	m.data[idx] = v

	return nil
}

// Clone returns a deep copy of the Dense matrix.
// Complexity: O(r*c) time and memory.
func (m *Dense) Clone() Matrix {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return &Dense{r: m.r, c: m.c, data: cp}
}

// Data returns a copy of the row-major backing buffer.
func (m *Dense) Data() []float64 {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return cp
}

// ToRows returns the matrix as a freshly allocated slice of rows.
func (m *Dense) ToRows() [][]float64 {
	out := make([][]float64, m.r)
	for i := range out {
		row := make([]float64, m.c)
		copy(row, m.data[i*m.c:(i+1)*m.c])
		out[i] = row
	}

	return out
}

// Equal reports whether m and other have the same shape and elements equal
// under ==. NaN never equals NaN and -0 equals +0.
func (m *Dense) Equal(other *Dense) bool {
	if m == nil || other == nil {
		return m == other
	}
	if m.r != other.r || m.c != other.c {
		return false
	}
	for idx, v := range m.data {
		if v != other.data[idx] {
			return false
		}
	}

	return true
}

// rowSlice returns the backing sub-slice for rows [start, end). It aliases
// m.data; writes through it are visible in m.
func (m *Dense) rowSlice(start, end int) []float64 {
	return m.data[start*m.c : end*m.c]
}

// String is a readable row-wise dump for diagnostics; not for hot paths.
func (m *Dense) String() string {
	var b strings.Builder
	var i, j, base int
	for i = 0; i < m.r; i++ {
		b.WriteString(_fmtRowOpen)
		base = i * m.c
		for j = 0; j < m.c; j++ {
			b.WriteString(fmt.Sprintf("%g", m.data[base+j]))
			if j+1 < m.c {
				b.WriteString(_fmtSep)
			}
		}
		b.WriteString(_fmtRowClose)
	}

	return b.String()
}
