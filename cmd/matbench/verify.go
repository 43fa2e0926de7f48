// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/threadmul/matrix"
	"github.com/katalvlaran/threadmul/workerpool"
)

func newVerifyCmd(a *app) *cobra.Command {
	var counts []int
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check that every worker count reproduces the sequential product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.verify(counts)
		},
	}
	cmd.Flags().String("sizes", "", "comma separated square sizes (default from config)")
	cmd.Flags().Int64("seed", 0, "random fill seed (default from config)")
	cmd.Flags().IntSliceVar(&counts, "threads-list", []int{1, 2, 4, 8, 16}, "worker counts to check")

	return cmd
}

// verifyResult is the outcome of one (size, worker count) check.
type verifyResult struct {
	size, threads int
	err           error
}

func (a *app) verify(counts []int) error {
	writeHeader(a.out, a.threads())

	// The checks of one size run side by side; each Multiply spawns its own
	// workers, so the checker pool never nests Do calls.
	checker := workerpool.New(len(counts))
	defer checker.Close()

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "size\tthreads\tresult")

	failed := 0
	for _, size := range a.cfg.Bench.Sizes {
		x, err := matrix.RandomDense(size, size+1, a.cfg.Bench.Seed)
		if err != nil {
			return err
		}
		y, err := matrix.RandomDense(size+1, size, a.cfg.Bench.Seed+1)
		if err != nil {
			return err
		}
		want, err := matrix.Multiply(x, y, a.engineOptions(1)...)
		if err != nil {
			return err
		}

		results := make([]verifyResult, len(counts))
		err = checker.ParallelFor(len(counts), func(start, end int) error {
			for i := start; i < end; i++ {
				results[i] = verifyResult{size: size, threads: counts[i], err: a.check(x, y, want, counts[i])}
			}
			return nil
		})
		if err != nil {
			return err
		}

		for _, r := range results {
			status := "ok"
			if r.err != nil {
				status = r.err.Error()
				failed++
				a.log.Error("verify failed", slog.Int("size", r.size), slog.Int("threads", r.threads), slog.Any("error", r.err))
			}
			fmt.Fprintf(tw, "%d\t%d\t%s\n", r.size, r.threads, status)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d checks failed", failed, len(counts)*len(a.cfg.Bench.Sizes))
	}

	return nil
}

// check multiplies x×y with threads workers and compares against want.
func (a *app) check(x, y, want *matrix.Dense, threads int) error {
	got, err := matrix.Multiply(x, y, a.engineOptions(threads)...)
	if err != nil {
		return err
	}
	if !want.Equal(got) {
		return fmt.Errorf("product differs from sequential")
	}

	return nil
}
