// SPDX-License-Identifier: MIT

// Command matbench times and cross-checks the parallel matrix multiply.
//
// Usage:
//
//	matbench sweep                         # sizes × {1, N} workers, timings
//	matbench sweep --sizes 256,512 --pool  # N-worker runs on a persistent pool
//	matbench verify --threads-list 1,2,4,8,16
//	matbench --config matbench.yaml --metrics-addr :9100 sweep
//
// Settings come from defaults, then the --config YAML file, then THREADMUL_*
// environment variables, then flags.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "matbench:", err)
		os.Exit(1)
	}
}
