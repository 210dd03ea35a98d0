package ui

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestSpinnerStartStop verifies frames are drawn and the line is cleared.
func TestSpinnerStartStop(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	spinner := NewSpinner(&buf)
	spinner.interval = 5 * time.Millisecond

	spinner.Start("working")
	time.Sleep(30 * time.Millisecond)
	spinner.Stop()
	spinner.Wait()

	out := buf.String()
	require.Contains(t, out, "working")
	require.Contains(t, out, "\r\033[K")
	require.False(t, spinner.Running())

	// A second stop is harmless.
	spinner.Stop()
}

// TestSpinnerWatchProcess verifies the animation ends on its own
// once the watched pid disappears from the process table.
func TestSpinnerWatchProcess(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	spinner := NewSpinner(&buf)
	spinner.interval = 5 * time.Millisecond
	spinner.livenessInterval = 10 * time.Millisecond

	// A pid far above the default kernel maximum cannot exist.
	spinner.WatchProcess(99999999, "waiting for child")

	require.Eventually(t, func() bool {
		return !spinner.Running()
	}, 2*time.Second, 10*time.Millisecond)

	spinner.Wait()
}
