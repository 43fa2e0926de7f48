// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// lockedBuffer lets the test read logs while the command is still writing.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd(&out, &errOut)
	root.SetArgs(args)
	err := root.Execute()

	return out.String(), errOut.String(), err
}

func TestSweep(t *testing.T) {
	out, logs, err := run(t, "sweep", "--sizes", "8,17", "--repeat", "2", "--threads", "3", "--no-color")
	require.NoError(t, err)
	require.Contains(t, out, "threads=3")
	require.Contains(t, out, "GFLOP/s")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2+1+4, "header, table head, two rows per size")
	require.Contains(t, logs, "size done")
}

func TestSweepPooled(t *testing.T) {
	_, _, err := run(t, "sweep", "--sizes", "16", "--threads", "4", "--pool", "--log-level", "error")
	require.NoError(t, err)
}

func TestVerify(t *testing.T) {
	out, _, err := run(t, "verify", "--sizes", "5,12", "--threads-list", "1,2,4,8,16", "--log-level", "warn")
	require.NoError(t, err)
	require.Equal(t, 10, strings.Count(out, " ok"))
}

func TestVerifyReportsRejectedCount(t *testing.T) {
	out, _, err := run(t, "verify", "--sizes", "4", "--threads-list", "2,0", "--no-color")
	require.ErrorContains(t, err, "1 of 2 checks failed")
	require.Contains(t, out, "invalid thread count")
}

func TestConfigFileAndFlagsPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matbench.yaml")
	require.NoError(t, os.WriteFile(path, []byte("threads: 2\nbench:\n  sizes: [6]\n"), 0o600))

	out, _, err := run(t, "--config", path, "verify", "--threads-list", "1")
	require.NoError(t, err)
	require.Contains(t, out, "threads=2")

	out, _, err = run(t, "--config", path, "--threads", "5", "verify", "--threads-list", "1")
	require.NoError(t, err)
	require.Contains(t, out, "threads=5")
}

func TestInvalidSettings(t *testing.T) {
	_, _, err := run(t, "sweep", "--sizes", "8,x")
	require.ErrorContains(t, err, "--sizes")

	_, _, err = run(t, "sweep", "--threads", "-2")
	require.Error(t, err)

	_, _, err = run(t, "verify", "--log-level", "chatty")
	require.Error(t, err)
}

func TestMetricsEndpoint(t *testing.T) {
	var out, errOut lockedBuffer
	root := newRootCmd(&out, &errOut)
	root.SetArgs([]string{"sweep", "--sizes", "8", "--metrics-addr", "127.0.0.1:0", "--linger", "1s", "--no-color"})

	done := make(chan error, 1)
	go func() { done <- root.Execute() }()

	// the listener address is only known from the log line
	var addr string
	require.Eventually(t, func() bool {
		for _, line := range strings.Split(errOut.String(), "\n") {
			if i := strings.Index(line, "addr="); i >= 0 && strings.Contains(line, "serving metrics") {
				addr = strings.TrimSpace(line[i+len("addr="):])
				return true
			}
		}
		return false
	}, 2*time.Second, 10*time.Millisecond)

	var body string
	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/metrics")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		raw, _ := io.ReadAll(resp.Body)
		body = string(raw)
		return strings.Contains(body, "threadmul_matmul_calls_total")
	}, 2*time.Second, 20*time.Millisecond)
	require.Contains(t, body, `path="sequential"`)

	require.NoError(t, <-done)
}
