package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestPrinterLines verifies the shape of each line flavor.
func TestPrinterLines(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	printer := NewPrinter(&buf)
	printer.Titlef("br bootstrap")
	printer.Stepf(2, 6, "Downloading %s", "main.py")
	printer.Successf("downloaded")
	printer.Warnf("ownership unchanged")
	printer.Errorf("verification failed")
	printer.Plainf("  root: %s", "/home/sam/.br")

	out := buf.String()
	require.Contains(t, out, "br bootstrap")
	require.Contains(t, out, "[2/6] Downloading main.py")
	require.Contains(t, out, "✓ downloaded")
	require.Contains(t, out, "! ownership unchanged")
	require.Contains(t, out, "✗ verification failed")
	require.Contains(t, out, "root: /home/sam/.br")
}

// TestPrinterDefaultsOut verifies the stdout fallback and Out accessor.
func TestPrinterDefaultsOut(t *testing.T) {
	t.Parallel()

	printer := NewPrinter(nil)
	require.NotNil(t, printer.Out())
}
