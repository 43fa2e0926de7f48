// SPDX-License-Identifier: MIT

package matrix

import "runtime"

// DefaultThreads returns the worker count used when WithThreads is not given:
// the number of CPUs this process may run on, capped by GOMAXPROCS, and never
// less than one.
func DefaultThreads() int {
	n := runtime.GOMAXPROCS(0)
	if cpus := availableCPUs(); cpus > 0 {
		n = min(n, cpus)
	}

	return max(n, 1)
}
