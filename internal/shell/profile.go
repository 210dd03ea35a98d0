package shell

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Marker is the comment written above the PATH line so both humans and
// re-runs can recognize it.
const Marker = "# Added by the br bootstrap installer"

// Dialect classifies the syntax family of the user's login shell.
type Dialect int

const (
	// DialectPosix covers sh-compatible shells like bash and zsh.
	DialectPosix Dialect = iota
	// DialectFish covers the fish shell and its own syntax.
	DialectFish
)

// String returns a human-readable dialect name.
func (d Dialect) String() string {
	if d == DialectFish {
		return "fish"
	}

	return "posix"
}

// Profile identifies the startup file to edit and the dialect it speaks.
type Profile struct {
	// Path is the absolute location of the startup file.
	Path string
	// Dialect decides how the PATH line is rendered.
	Dialect Dialect
}

// ProfileForShell maps a shell basename to its startup file.
// Unknown shells fall back to the generic POSIX profile.
func ProfileForShell(shellName, home string) Profile {
	switch strings.ToLower(shellName) {
	case "zsh":
		return Profile{Path: filepath.Join(home, ".zshrc"), Dialect: DialectPosix}
	case "bash":
		return Profile{Path: filepath.Join(home, ".bashrc"), Dialect: DialectPosix}
	case "fish":
		return Profile{
			Path:    filepath.Join(home, ".config", "fish", "config.fish"),
			Dialect: DialectFish,
		}
	default:
		return Profile{Path: filepath.Join(home, ".profile"), Dialect: DialectPosix}
	}
}

// PathExportLine renders the dialect-correct line placing binDir on PATH.
// Paths under the home directory are written with $HOME so the profile
// survives a renamed or synced home.
func (p Profile) PathExportLine(binDir, home string) string {
	friendly := FriendlyPath(binDir, home)

	if p.Dialect == DialectFish {
		return fmt.Sprintf(`set -gx PATH "%s" $PATH`, friendly)
	}

	return fmt.Sprintf(`export PATH="%s:$PATH"`, friendly)
}

// FriendlyPath substitutes the home prefix with $HOME for display
// and for profile lines.
func FriendlyPath(path, home string) string {
	if home == "" || !strings.HasPrefix(path, home) {
		return path
	}

	rel := strings.TrimPrefix(path, home)
	rel = strings.TrimPrefix(rel, string(os.PathSeparator))

	return filepath.Join("$HOME", rel)
}
