package integration

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/SamukeloGift/Brewery/internal/domain/install"
	"github.com/SamukeloGift/Brewery/internal/service/bootstrap"
	"github.com/SamukeloGift/Brewery/internal/service/uninstall"
	"github.com/SamukeloGift/Brewery/internal/shell"
)

// startArtifactServer serves the program file, the commit metadata, and the
// reachability probe from a single HTTP server.
func startArtifactServer(t *testing.T, artifact string) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/main.py", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(artifact))
	})
	mux.HandleFunc("/commits", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"sha":"fedcba9876543210"}`))
	})
	mux.HandleFunc("/", func(_ http.ResponseWriter, _ *http.Request) {})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return server
}

// settingsFile persists bootstrap settings pointing at the test server.
func settingsFile(t *testing.T, dir, serverURL string) string {
	t.Helper()

	contents := fmt.Sprintf(
		"artifact_url: %s/main.py\ncommits_url: %s/commits\nprobe_url: %s\nrunner: sh\n",
		serverURL, serverURL, serverURL)
	path := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	return path
}

// TestBootstrap_Run_InstallVerifyUninstall walks the full lifecycle through
// the public entry points: install in user mode, verify the result, then
// uninstall and confirm the machine is back to its pre-run state.
//
//nolint:funlen // Integration test requires comprehensive setup and verification.
func TestBootstrap_Run_InstallVerifyUninstall(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("SHELL", "/bin/bash")

	const artifact = "def main():\n    print(\"br\")\n"

	server := startArtifactServer(t, artifact)
	cfgPath := settingsFile(t, home, server.URL)

	var out bytes.Buffer

	err := bootstrap.Run(context.Background(), &bootstrap.Options{
		ConfigPath: cfgPath,
		Input:      strings.NewReader("1\n\n"),
		Output:     &out,
	})
	require.NoError(t, err)

	root := filepath.Join(home, ".br")
	wrapper := filepath.Join(root, "bin", install.WrapperName)

	info, err := os.Stat(wrapper)
	require.NoError(t, err)
	require.NotZero(t, info.Mode().Perm()&0o111)

	body, err := os.ReadFile(filepath.Join(root, install.ArtifactName))
	require.NoError(t, err)
	require.Equal(t, artifact, string(body))

	marker, err := os.ReadFile(filepath.Join(root, install.VersionFileName))
	require.NoError(t, err)
	require.Equal(t, "fedcba9\n", string(marker))

	stub, err := os.ReadFile(wrapper)
	require.NoError(t, err)
	require.Contains(t, string(stub), install.HomeEnvVar+"=")
	require.Contains(t, string(stub), `"$@"`)

	profile, err := os.ReadFile(filepath.Join(home, ".bashrc"))
	require.NoError(t, err)
	require.Equal(t, 1, strings.Count(string(profile), shell.Marker))

	// A healthy installation passes the standalone verification.
	err = bootstrap.RunVerify(context.Background(), &bootstrap.Options{
		ConfigPath: cfgPath,
		Output:     new(bytes.Buffer),
	})
	require.NoError(t, err)

	// Uninstall restores the pre-run state.
	err = uninstall.Run(context.Background(), &uninstall.Options{
		Input:  strings.NewReader("y\n"),
		Output: new(bytes.Buffer),
	})
	require.NoError(t, err)

	_, err = os.Stat(root)
	require.True(t, os.IsNotExist(err))

	profile, err = os.ReadFile(filepath.Join(home, ".bashrc"))
	require.NoError(t, err)
	require.NotContains(t, string(profile), shell.Marker)
	require.NotContains(t, string(profile), filepath.Join(root, "bin"))
}

// TestBootstrap_Run_TruncatedDownloadRollsBack cuts the artifact transfer
// short and expects the run to fail with nothing left on disk.
func TestBootstrap_Run_TruncatedDownloadRollsBack(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("SHELL", "/bin/bash")

	mux := http.NewServeMux()
	mux.HandleFunc("/main.py", func(w http.ResponseWriter, _ *http.Request) {
		// Promise more bytes than are sent so the client sees a broken transfer.
		w.Header().Set("Content-Length", "1000000")
		_, _ = w.Write([]byte("partial"))
	})
	mux.HandleFunc("/", func(_ http.ResponseWriter, _ *http.Request) {})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	cfgPath := settingsFile(t, home, server.URL)

	var out bytes.Buffer

	err := bootstrap.Run(context.Background(), &bootstrap.Options{
		ConfigPath: cfgPath,
		Input:      strings.NewReader("1\n\n"),
		Output:     &out,
	})
	require.Error(t, err)
	require.Contains(t, out.String(), "rolling back")

	_, err = os.Stat(filepath.Join(home, ".br"))
	require.True(t, os.IsNotExist(err))
}

// TestBootstrap_Run_InterruptDuringDownloadRollsBack cancels the run while
// the artifact transfer is underway and expects the same cleanup as any
// fatal failure.
func TestBootstrap_Run_InterruptDuringDownloadRollsBack(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("SHELL", "/bin/bash")

	transferStarted := make(chan struct{})

	mux := http.NewServeMux()
	mux.HandleFunc("/main.py", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "1000000")
		_, _ = w.Write([]byte("partial"))

		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}

		close(transferStarted)

		// Hold the transfer open until the client gives up.
		<-r.Context().Done()
	})
	mux.HandleFunc("/", func(_ http.ResponseWriter, _ *http.Request) {})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	cfgPath := settingsFile(t, home, server.URL)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		<-transferStarted
		cancel()
	}()

	var out bytes.Buffer

	err := bootstrap.Run(ctx, &bootstrap.Options{
		ConfigPath: cfgPath,
		Input:      strings.NewReader("1\n\n"),
		Output:     &out,
	})
	require.Error(t, err)
	require.Contains(t, out.String(), "rolling back")

	_, err = os.Stat(filepath.Join(home, ".br"))
	require.True(t, os.IsNotExist(err))
}

// TestBootstrap_Run_FishProfile installs under a fish shell and expects the
// PATH line in fish syntax inside fish's own config file.
func TestBootstrap_Run_FishProfile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("SHELL", "/usr/bin/fish")

	server := startArtifactServer(t, "print('br')\n")
	cfgPath := settingsFile(t, home, server.URL)

	err := bootstrap.Run(context.Background(), &bootstrap.Options{
		ConfigPath: cfgPath,
		Input:      strings.NewReader("1\n\n"),
		Output:     new(bytes.Buffer),
	})
	require.NoError(t, err)

	profile, err := os.ReadFile(filepath.Join(home, ".config", "fish", "config.fish"))
	require.NoError(t, err)
	require.Contains(t, string(profile), shell.Marker)
	require.Contains(t, string(profile), "set -gx PATH")
}
