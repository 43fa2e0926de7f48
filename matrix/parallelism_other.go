// SPDX-License-Identifier: MIT

//go:build !linux

package matrix

// availableCPUs has no affinity source outside Linux; DefaultThreads falls
// back to GOMAXPROCS.
func availableCPUs() int { return 0 }
