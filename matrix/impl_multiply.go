// SPDX-License-Identifier: MIT
// Package matrix - parallel multiplication engine.
//
// Purpose:
//   - Multiply two dense matrices on a bounded worker set and return the exact
//     product, identical in every bit to a sequential triple loop.
//
// Flow:
//   - validate worker count → validate shapes → snapshot non-Dense operands →
//     allocate result → partition rows → run blocks → join → return.
//
// Concurrency:
//   - Static partition computed once; each worker writes only the result
//     sub-slice of the rows it owns and reads a and b. There is no lock, no
//     shared counter and no channel between workers.
//   - One block (num_threads == 1, or a single output row) runs in the
//     calling goroutine with no goroutine, errgroup or pool involved.
//   - A failing block fails the whole call; the partially written result is
//     dropped and never returned.

package matrix

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// Operation tags for unified error wrapping.
const (
	opMultiply    = "Multiply"
	opMultiplyF64 = "MultiplyF64"
)

// Execution paths, used as log values and metric labels.
const (
	pathEmpty      = "empty"
	pathSequential = "sequential"
	pathParallel   = "parallel"
	pathPooled     = "pooled"
	pathPooledSeq  = "pooled_inline" // closed pool: blocks ran one by one in the caller
)

// matrixErrorf wraps err with an operation tag, preserving errors.Is/As.
// Use only when err != nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Multiply computes C = A × B and returns C as a new *Dense.
//
// Implementation:
//   - Stage 1: resolve options; ValidateThreadCount; ValidateMulCompatible.
//   - Stage 2: snapshot non-Dense operands; allocate C (A.Rows × B.Cols).
//   - Stage 3: empty C returns immediately; otherwise Partition(A.Rows, n).
//   - Stage 4: one block runs inline; several run on per-call goroutines
//     (errgroup) or on the pool given by WithPool; join. A closed pool runs
//     the blocks one by one in the caller.
//
// Inputs:
//   - a: r×n matrix, b: n×p matrix. Neither is mutated.
//   - opts: WithThreads, WithLogger, WithMetrics, WithPool.
//
// Returns:
//   - *Dense with shape r×p; C[i,j] = Σ_k A[i,k]*B[k,j], summed in ascending k.
//
// Errors:
//   - ErrInvalidThreadCount (*InvalidThreadCountError) when n < 1.
//   - ErrNilMatrix when a or b is nil.
//   - ErrBadShape when a or b reports a negative dimension.
//   - ErrDimensionMismatch (*DimensionMismatchError) when a.Cols != b.Rows;
//     nothing is allocated and no worker starts.
//   - ErrAllocationFailure (*AllocationFailureError) when C cannot be allocated.
//   - ErrWorkerFailure (*WorkerFailureError) when a row block fails.
//
// Determinism:
//   - The result does not depend on the worker count, the path or the pool.
//
// Complexity:
//   - Time O(r*n*p / workers), Space O(r*p) for C.
func Multiply(a, b Matrix, opts ...Option) (*Dense, error) {
	o := gatherOptions(opts...)
	began := time.Now()

	res, path, workers, err := multiply(a, b, &o)
	elapsed := time.Since(began)
	if err != nil {
		o.metrics.observeFailure(err)
		if errors.Is(err, ErrWorkerFailure) {
			o.logger.Warn("multiply failed", slog.String("path", path), slog.Any("error", err))
		}
		return nil, matrixErrorf(opMultiply, err)
	}
	o.metrics.observe(path, workers, elapsed, a, b)
	o.logger.Debug("multiply done",
		slog.String("path", path),
		slog.Int("workers", workers),
		slog.Duration("elapsed", elapsed),
	)

	return res, nil
}

// multiply holds the engine body. It reports the path taken and the number
// of blocks that ran so Multiply can log and record them.
func multiply(a, b Matrix, o *Options) (*Dense, string, int, error) {
	if err := ValidateThreadCount(o.threads); err != nil {
		return nil, "", 0, err
	}
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, "", 0, err
	}

	da, err := asDense(a)
	if err != nil {
		return nil, "", 0, err
	}
	db, err := asDense(b)
	if err != nil {
		return nil, "", 0, err
	}

	res, err := allocDense(da.r, db.c)
	if err != nil {
		return nil, "", 0, err
	}
	if ShapeOf(res).Empty() {
		// Nothing to compute when r==0 or p==0. n==0 with r,p>0 still runs and yields zeros.
		return res, pathEmpty, 0, nil
	}

	items := Partition(da.r, o.threads)
	if o.logger.Enabled(context.Background(), slog.LevelDebug) {
		o.logger.Debug("multiply start",
			slog.String("a", ShapeOf(da).String()),
			slog.String("b", ShapeOf(db).String()),
			slog.Int("threads", o.threads),
			slog.Int("blocks", len(items)),
			slog.Any("partition", items),
		)
	}

	switch {
	case len(items) == 1:
		err = runBlock(da, db, res, items[0])
		return finish(res, pathSequential, 1, err)
	case o.pool != nil && o.pool.Closed():
		o.logger.Debug("pool closed, running blocks inline", slog.Int("blocks", len(items)))
		err = o.pool.Do(blockTasks(da, db, res, items)...)
		return finish(res, pathPooledSeq, len(items), err)
	case o.pool != nil:
		err = o.pool.Do(blockTasks(da, db, res, items)...)
		return finish(res, pathPooled, len(items), err)
	default:
		err = runParallel(da, db, res, items)
		return finish(res, pathParallel, len(items), err)
	}
}

// finish enforces all-or-nothing: on error the result is dropped.
func finish(res *Dense, path string, workers int, err error) (*Dense, string, int, error) {
	if err != nil {
		return nil, path, workers, err
	}

	return res, path, workers, nil
}

// runParallel starts one goroutine per block and joins them.
func runParallel(a, b, res *Dense, items []WorkItem) error {
	var g errgroup.Group
	for _, item := range items {
		g.Go(func() error { return runBlock(a, b, res, item) })
	}

	return g.Wait()
}

// blockTasks wraps each block as a pool task.
func blockTasks(a, b, res *Dense, items []WorkItem) []func() error {
	tasks := make([]func() error, len(items))
	for idx, item := range items {
		tasks[idx] = func() error { return runBlock(a, b, res, item) }
	}

	return tasks
}

// runBlock computes one WorkItem into the rows of res it owns, converting a
// panic into *WorkerFailureError.
func runBlock(a, b, res *Dense, item WorkItem) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			cause, ok := rec.(error)
			if !ok {
				cause = fmt.Errorf("panic: %v", rec)
			}
			err = &WorkerFailureError{Item: item, Cause: cause}
		}
	}()
	rowKernel(a, b, res.rowSlice(item.Start, item.End), item)

	return nil
}
