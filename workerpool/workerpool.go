// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0
// Modifications for threadmul: error returns, panic capture, closed-pool
// inline execution.

// Package workerpool provides a persistent, reusable fork-join pool.
// It is adapted from go-highway's hwy/contrib/workerpool.
// Unlike per-call goroutine spawning, a Pool is created once and reused
// across many operations, so repeated small multiplications do not pay a
// spawn/join round trip each time.
//
// Usage:
//
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	for _, job := range jobs {
//		err := pool.Do(
//			func() error { return part(0, 64) },
//			func() error { return part(64, 128) },
//		)
//	}
//
// Tasks submitted to one Do call must not call Do on the same pool: a worker
// blocked in a nested Do holds its slot and the pool can deadlock.
package workerpool

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"
	"sync/atomic"
)

// Pool is a persistent worker pool. Workers are spawned once at creation and
// reused until Close.
type Pool struct {
	numWorkers int
	workC      chan workItem
	closeOnce  sync.Once
	closed     atomic.Bool
}

// workItem is one task of a Do call plus the slot its error lands in.
type workItem struct {
	fn      func() error
	err     *error
	barrier *sync.WaitGroup
}

// PanicError is returned by Do for a task that panicked.
type PanicError struct {
	Value any    // value passed to panic
	Stack []byte // stack of the panicking goroutine
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("workerpool: task panicked: %v", e.Value)
}

// Unwrap returns Value when it is an error, so errors.Is reaches it.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}

	return nil
}

// New creates a pool with numWorkers persistent workers.
// If numWorkers <= 0, GOMAXPROCS is used.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		numWorkers: numWorkers,
		// Buffer enough for all workers to have pending work
		workC: make(chan workItem, numWorkers*2),
	}

	for range numWorkers {
		go p.worker()
	}

	return p
}

// worker is the main loop for each persistent worker goroutine.
func (p *Pool) worker() {
	for item := range p.workC {
		*item.err = run(item.fn)
		item.barrier.Done()
	}
}

// run executes fn and converts a panic into *PanicError so a failing task
// never takes a persistent worker down with it.
func run(fn func() error) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = &PanicError{Value: rec, Stack: debug.Stack()}
		}
	}()

	return fn()
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Closed reports whether Close has been called.
func (p *Pool) Closed() bool {
	return p.closed.Load()
}

// Close shuts down the pool. Pending work completes. Calling Close multiple
// times is safe; Close must not race with Do.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
	})
}

// Do runs every task and blocks until all of them have returned.
// At most NumWorkers tasks run at once; the rest wait in the queue.
//
// The returned error is the error of the lowest-indexed failing task, so the
// result does not depend on scheduling. A panicking task yields *PanicError.
// Every task runs to completion even when an earlier one fails.
//
// On a closed pool, or when there is a single task, the tasks run
// sequentially in the calling goroutine.
func (p *Pool) Do(tasks ...func() error) error {
	if len(tasks) == 0 {
		return nil
	}

	errs := make([]error, len(tasks))

	if len(tasks) == 1 || p.closed.Load() {
		for i, fn := range tasks {
			errs[i] = run(fn)
		}
		return firstError(errs)
	}

	var wg sync.WaitGroup
	wg.Add(len(tasks))
	for i, fn := range tasks {
		p.workC <- workItem{fn: fn, err: &errs[i], barrier: &wg}
	}
	wg.Wait()

	return firstError(errs)
}

// ParallelFor splits [0, n) into at most NumWorkers contiguous chunks and
// calls fn(start, end) for each one through Do.
func (p *Pool) ParallelFor(n int, fn func(start, end int) error) error {
	if n <= 0 {
		return nil
	}

	workers := min(p.numWorkers, n)
	chunkSize := (n + workers - 1) / workers

	tasks := make([]func() error, 0, workers)
	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		tasks = append(tasks, func() error { return fn(start, end) })
	}

	return p.Do(tasks...)
}

func firstError(errs []error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}

	return nil
}
