// SPDX-License-Identifier: MIT

//go:build linux

package matrix

import "golang.org/x/sys/unix"

// availableCPUs reads the current affinity mask. runtime.NumCPU samples it
// once at startup; taskset or cgroup cpusets applied later only show up here.
func availableCPUs() int {
	var set unix.CPUSet
	if err := unix.SchedGetaffinity(0, &set); err != nil {
		return 0
	}

	return set.Count()
}
