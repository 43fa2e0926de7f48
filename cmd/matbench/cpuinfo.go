// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"golang.org/x/sys/cpu"

	"github.com/katalvlaran/threadmul/matrix"
)

// cpuFeatures lists the SIMD features relevant to a float64 kernel.
func cpuFeatures() []string {
	var out []string
	add := func(ok bool, name string) {
		if ok {
			out = append(out, name)
		}
	}
	switch runtime.GOARCH {
	case "amd64", "386":
		add(cpu.X86.HasSSE2, "sse2")
		add(cpu.X86.HasAVX, "avx")
		add(cpu.X86.HasAVX2, "avx2")
		add(cpu.X86.HasFMA, "fma")
		add(cpu.X86.HasAVX512F, "avx512f")
	case "arm64":
		add(cpu.ARM64.HasASIMD, "asimd")
		add(cpu.ARM64.HasFPHP, "fphp")
		add(cpu.ARM64.HasSVE, "sve")
	}

	return out
}

// writeHeader prints the environment a run was measured in.
func writeHeader(w io.Writer, threads int) {
	features := strings.Join(cpuFeatures(), " ")
	if features == "" {
		features = "-"
	}
	fmt.Fprintf(w, "# %s %s/%s gomaxprocs=%d available=%d threads=%d\n",
		runtime.Version(), runtime.GOOS, runtime.GOARCH,
		runtime.GOMAXPROCS(0), matrix.DefaultThreads(), threads)
	fmt.Fprintf(w, "# cpu: %s\n", features)
}
