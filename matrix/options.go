// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for Multiply. This file defines:
//   - Option / Options (functional options with internal state),
//   - WithX constructors,
//   - gatherOptions helper (internal) that resolves defaults.
//
// Design goals:
//   - Deterministic behavior: no global mutable state; options only change
//     how the work is scheduled, never the numeric result.
//   - The worker count is a call argument, so an invalid value is reported as
//     an error by Multiply (ErrInvalidThreadCount) rather than a panic here.
//   - Constructors panic only on nil collaborators (programmer error).
package matrix

import (
	"log/slog"

	"github.com/katalvlaran/threadmul/workerpool"
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicNilLogger  = "matrix: WithLogger: logger must not be nil"
	panicNilMetrics = "matrix: WithMetrics: metrics must not be nil"
	panicNilPool    = "matrix: WithPool: pool must not be nil"
)

// discardLogger is used when no logger is configured.
var discardLogger = slog.New(slog.DiscardHandler)

// Option mutates internal options. Safe to apply repeatedly; last writer wins.
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; public entry points accept `...Option`.
type Options struct {
	threads    int  // requested worker count; validated by Multiply
	threadsSet bool // false ⇒ DefaultThreads()

	logger  *slog.Logger     // never nil after gatherOptions
	metrics *Metrics         // optional
	pool    *workerpool.Pool // optional persistent workers
}

// WithThreads sets the number of workers used by one Multiply call.
// Values below one are rejected by Multiply with *InvalidThreadCountError.
// One selects the sequential path: no goroutine is started.
func WithThreads(n int) Option {
	return func(o *Options) {
		o.threads = n
		o.threadsSet = true
	}
}

// WithLogger attaches a structured logger. The engine logs the chosen path,
// worker count and partition at Debug and worker failures at Warn.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic(panicNilLogger)
	}

	return func(o *Options) { o.logger = l }
}

// WithMetrics records call counts, failures, durations and worker counts
// into m.
func WithMetrics(m *Metrics) Option {
	if m == nil {
		panic(panicNilMetrics)
	}

	return func(o *Options) { o.metrics = m }
}

// WithPool runs row blocks on a persistent pool instead of per-call
// goroutines. The pool's size caps how many blocks run at once; the
// partition and the result are unchanged. A closed pool degrades to running
// the blocks sequentially in the caller, logged and labelled pooled_inline.
func WithPool(p *workerpool.Pool) Option {
	if p == nil {
		panic(panicNilPool)
	}

	return func(o *Options) { o.pool = p }
}

// gatherOptions applies user options over defaults.
func gatherOptions(user ...Option) Options {
	o := Options{logger: discardLogger}
	for _, set := range user {
		set(&o) // apply in order; last-writer-wins semantics
	}
	if !o.threadsSet {
		o.threads = DefaultThreads()
	}

	return o
}
