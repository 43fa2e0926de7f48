// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"log/slog"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/threadmul/matrix"
	"github.com/katalvlaran/threadmul/workerpool"
)

func newSweepCmd(a *app) *cobra.Command {
	var usePool bool
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Time size×size products on 1 and N workers",
		Long: "For every configured size, multiply two seeded random size×size matrices\n" +
			"sequentially and with N workers, report the best of --repeat runs and\n" +
			"check that both products are identical.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.sweep(usePool)
		},
	}
	cmd.Flags().String("sizes", "", "comma separated square sizes (default from config)")
	cmd.Flags().Int64("seed", 0, "random fill seed (default from config)")
	cmd.Flags().Int("repeat", 0, "timed runs per size and worker count, best is reported")
	cmd.Flags().BoolVar(&usePool, "pool", false, "run N-worker products on a persistent worker pool")

	return cmd
}

// sweepRow is one line of the sweep table.
type sweepRow struct {
	size    int
	threads int
	best    time.Duration
}

func (a *app) sweep(usePool bool) error {
	n := a.threads()
	writeHeader(a.out, n)

	var pool *workerpool.Pool
	if usePool {
		pool = workerpool.New(n)
		defer pool.Close()
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "size\tthreads\tbest\tGFLOP/s\tspeedup\t")

	for _, size := range a.cfg.Bench.Sizes {
		x, err := matrix.RandomDense(size, size, a.cfg.Bench.Seed)
		if err != nil {
			return err
		}
		y, err := matrix.RandomDense(size, size, a.cfg.Bench.Seed+1)
		if err != nil {
			return err
		}

		seqRow, seq, err := a.timeMultiply(x, y, 1, nil)
		if err != nil {
			return err
		}
		parRow, par, err := a.timeMultiply(x, y, n, pool)
		if err != nil {
			return err
		}
		if !seq.Equal(par) {
			return fmt.Errorf("size %d: %d-worker product differs from sequential", size, n)
		}

		for _, row := range []sweepRow{seqRow, parRow} {
			fmt.Fprintf(tw, "%d\t%d\t%s\t%.2f\t%.2fx\t\n",
				row.size, row.threads, row.best.Round(time.Microsecond),
				gflops(row.size, row.best), seqRow.best.Seconds()/row.best.Seconds())
		}
		a.log.Info("size done",
			slog.Int("size", size),
			slog.Duration("sequential", seqRow.best),
			slog.Duration("parallel", parRow.best),
		)
	}

	return tw.Flush()
}

// timeMultiply runs x×y Repeat times with threads workers and returns the
// best wall time and the last product.
func (a *app) timeMultiply(x, y *matrix.Dense, threads int, pool *workerpool.Pool) (sweepRow, *matrix.Dense, error) {
	opts := a.engineOptions(threads)
	if pool != nil {
		opts = append(opts, matrix.WithPool(pool))
	}
	row := sweepRow{size: x.Rows(), threads: threads}

	var res *matrix.Dense
	for r := 0; r < a.cfg.Bench.Repeat; r++ {
		began := time.Now()
		out, err := matrix.Multiply(x, y, opts...)
		elapsed := time.Since(began)
		if err != nil {
			return row, nil, err
		}
		if r == 0 || elapsed < row.best {
			row.best = elapsed
		}
		res = out
	}

	return row, res, nil
}

// gflops is 2n³ floating point operations over d.
func gflops(n int, d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	fn := float64(n)

	return 2 * fn * fn * fn / d.Seconds() / 1e9
}
