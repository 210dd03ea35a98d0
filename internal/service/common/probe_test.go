//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/SamukeloGift/Brewery/internal/domain/install"
)

// TestDetectArchClass ensures the classification matches the build architecture.
func TestDetectArchClass(t *testing.T) {
	t.Parallel()

	got := DetectArchClass()

	switch runtime.GOARCH {
	case "arm", "arm64":
		require.Equal(t, install.ArchARM, got)
	default:
		require.Equal(t, install.ArchOther, got)
	}
}

// TestDetectShellName ensures only the shell basename is reported.
func TestDetectShellName(t *testing.T) {
	t.Setenv("SHELL", "/usr/local/bin/fish")
	require.Equal(t, "fish", DetectShellName())

	t.Setenv("SHELL", "")
	require.Empty(t, DetectShellName())
}

// TestCheckReachable covers answering, erroring, and unreachable endpoints.
func TestCheckReachable(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	healthy := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
	defer healthy.Close()

	require.True(t, CheckReachable(ctx, healthy.URL, time.Second))

	// An HTTP error status still proves the host is reachable.
	angry := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
	defer angry.Close()

	require.True(t, CheckReachable(ctx, angry.URL, time.Second))

	// A closed server means a transport failure.
	closed := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, _ *http.Request) {}))
	closed.Close()

	require.False(t, CheckReachable(ctx, closed.URL, time.Second))
}

// TestCheckReachableTimeout ensures a stalling endpoint reports unreachable.
func TestCheckReachableTimeout(t *testing.T) {
	t.Parallel()

	stalled := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
	defer stalled.Close()

	require.False(t, CheckReachable(context.Background(), stalled.URL, 50*time.Millisecond))
}

// TestToolAvailable covers both present and absent commands.
func TestToolAvailable(t *testing.T) {
	dir := t.TempDir()
	tool := filepath.Join(dir, "some-tool")
	require.NoError(t, os.WriteFile(tool, []byte("#!/bin/sh\n"), 0o755))

	t.Setenv("PATH", dir)

	require.True(t, ToolAvailable("some-tool"))
	require.False(t, ToolAvailable("definitely-missing-tool"))
}
