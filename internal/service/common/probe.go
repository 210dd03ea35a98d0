//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"github.com/SamukeloGift/Brewery/internal/domain/install"
	"github.com/SamukeloGift/Brewery/internal/logger"
	"github.com/SamukeloGift/Brewery/internal/version"
)

// DefaultProbeTimeout bounds the pre-flight reachability check.
const DefaultProbeTimeout = 5 * time.Second

// Environment is the host snapshot taken before any changes are made.
type Environment struct {
	// Arch is the coarse processor family of this machine.
	Arch install.ArchClass
	// ShellName is the basename of the user's login shell, "" when unknown.
	ShellName string
	// NetworkReachable reports whether the artifact host answered the probe.
	NetworkReachable bool
}

// DetectEnvironment gathers the full pre-flight snapshot.
func DetectEnvironment(ctx context.Context, probeURL string, timeout time.Duration) Environment {
	return Environment{
		Arch:             DetectArchClass(),
		ShellName:        DetectShellName(),
		NetworkReachable: CheckReachable(ctx, probeURL, timeout),
	}
}

// DetectArchClass classifies the processor family this binary runs on.
func DetectArchClass() install.ArchClass {
	switch runtime.GOARCH {
	case "arm", "arm64":
		return install.ArchARM
	default:
		return install.ArchOther
	}
}

// DetectShellName returns the basename of the login shell from $SHELL.
func DetectShellName() string {
	shell := os.Getenv("SHELL")
	if shell == "" {
		return ""
	}

	return filepath.Base(shell)
}

// CheckReachable sends a HEAD request to the given URL within the timeout.
// Any HTTP answer counts as reachable, including error statuses;
// only transport failures and timeouts report false.
func CheckReachable(ctx context.Context, probeURL string, timeout time.Duration) bool {
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	request, err := http.NewRequestWithContext(ctx, http.MethodHead, probeURL, http.NoBody)
	if err != nil {
		logger.Debugf(ctx, "build probe request: %v", err)

		return false
	}

	request.Header.Set("User-Agent", version.UserAgent())

	response, err := http.DefaultClient.Do(request)
	if err != nil {
		logger.Debugf(ctx, "reachability probe: %v", err)

		return false
	}

	defer func() {
		_ = response.Body.Close()
	}()

	return true
}

// ToolAvailable reports whether the named command resolves on PATH.
func ToolAvailable(name string) bool {
	_, err := exec.LookPath(name)

	return err == nil
}
