// SPDX-License-Identifier: MIT

package matrix

import "fmt"

// rowKernel computes rows [item.Start, item.End) of a×b into dst, the
// result's backing sub-slice for exactly those rows. It is a variable so
// tests can inject a failing kernel.
var rowKernel = mulRows

// mulRows is the dense row-block kernel.
// Implementation:
//   - i→k→j over row-major strides: for each a[i,k], accumulate
//     a[i,k]*b[k,j] into dst row i for all j.
//
// Behavior highlights:
//   - dst must be zero on entry (fresh allocation).
//   - Every cell receives its products in ascending k order starting from
//     +0, the same sequence of roundings as sum += a[i,k]*b[k,j] in an
//     i→j→k loop, so the value is independent of blocking and worker count.
//   - float64(av*bv) forces the product to round before the add; without it
//     the compiler may fuse multiply-add on some architectures.
//   - Zero entries of a are not skipped: 0*Inf and 0*NaN must yield NaN.
//
// Complexity:
//   - Time O((end-start)*k*p), Space O(1).
func mulRows(a, b *Dense, dst []float64, item WorkItem) {
	inner, cols := a.c, b.c
	var (
		i, k, j int
		av      float64
		aRow    []float64
		bRow    []float64
		dRow    []float64
	)
	for i = item.Start; i < item.End; i++ {
		aRow = a.data[i*inner : (i+1)*inner]
		dRow = dst[(i-item.Start)*cols : (i-item.Start+1)*cols]
		for k = 0; k < inner; k++ {
			av = aRow[k]
			bRow = b.data[k*cols : (k+1)*cols]
			for j = 0; j < cols; j++ {
				dRow[j] += float64(av * bRow[j])
			}
		}
	}
}

// asDense returns m as *Dense, snapshotting other implementations into a
// fresh Dense in the caller's goroutine so workers only ever read plain
// slices.
func asDense(m Matrix) (*Dense, error) {
	if d, ok := m.(*Dense); ok {
		return d, nil
	}
	d, err := allocDense(m.Rows(), m.Cols())
	if err != nil {
		return nil, err
	}
	if len(d.data) == 0 {
		return d, nil
	}
	var (
		i, j int
		v    float64
	)
	for i = 0; i < d.r; i++ {
		for j = 0; j < d.c; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, fmt.Errorf("At(%d,%d): %w", i, j, err)
			}
			d.data[i*d.c+j] = v
		}
	}

	return d, nil
}
