package install

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Filesystem names shared by every installation layout.
const (
	// WrapperName is the executable command the bootstrap places on PATH.
	WrapperName = "br"
	// StorageDirName is the package-storage subdirectory inside the root.
	StorageDirName = "Cellar"
	// ArtifactName is the program file downloaded into the root.
	ArtifactName = "main.py"
	// VersionFileName is the optional one-line version marker in the root.
	VersionFileName = "VERSION"
	// HomeEnvVar is exported by the wrapper so the tool finds its root.
	HomeEnvVar = "BR_HOME"
)

// Locations used when building plans.
const (
	userRootDirName  = ".br"
	userBinDirName   = "bin"
	systemRootARM    = "/opt/br"
	systemRootCommon = "/usr/local/br"
	systemBinDir     = "/usr/local/bin"
)

// Plan validation errors.
var (
	errRootNotAbsolute   = errors.New("install root must be an absolute path")
	errBinDirNotAbsolute = errors.New("bin directory must be an absolute path")
	errUserModeElevated  = errors.New("user-mode installation must not require elevation")
	errUserBinOutsideRoot = errors.New(
		"user-mode bin directory must live inside the install root")
	errSystemModeNotElevated = errors.New("system-mode installation must require elevation")
	errSystemBinInsideRoot   = errors.New(
		"system-mode bin directory must live outside the install root")
	errUnknownMode = errors.New("unknown installation mode")
)

// Mode selects which of the two installation flavors the user picked.
type Mode int

const (
	// ModeUser installs under the invoking user's home directory
	// and needs no privilege elevation.
	ModeUser Mode = iota
	// ModeSystem installs into a shared machine-wide prefix
	// and performs its filesystem changes through elevation.
	ModeSystem
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ModeUser:
		return "user"
	case ModeSystem:
		return "system"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode converts a stored mode name back into a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "user":
		return ModeUser, nil
	case "system":
		return ModeSystem, nil
	default:
		return ModeUser, fmt.Errorf("%w: %q", errUnknownMode, s)
	}
}

// ArchClass is the coarse processor family distinction that picks
// the default system-wide install prefix.
type ArchClass int

const (
	// ArchOther covers every architecture without a dedicated prefix.
	ArchOther ArchClass = iota
	// ArchARM covers arm and arm64 machines.
	ArchARM
)

// Plan describes where an installation lives and how changes are applied.
// Plans are immutable values: build one with NewUserPlan or NewSystemPlan
// and pass it by value.
type Plan struct {
	// Mode is the installation flavor the plan was built for.
	Mode Mode
	// InstallRoot is the directory that owns the artifact and storage tree.
	InstallRoot string
	// BinDir is the directory receiving the wrapper executable.
	BinDir string
	// RequiresElevation reports whether filesystem changes go through sudo.
	RequiresElevation bool
}

// NewUserPlan builds the per-user layout rooted in the given home directory.
func NewUserPlan(home string) Plan {
	root := filepath.Join(home, userRootDirName)

	return Plan{
		Mode:              ModeUser,
		InstallRoot:       root,
		BinDir:            filepath.Join(root, userBinDirName),
		RequiresElevation: false,
	}
}

// NewSystemPlan builds the machine-wide layout.
// ARM machines get their own prefix, everything else shares /usr/local.
// The wrapper always lands in the common bin directory.
func NewSystemPlan(arch ArchClass) Plan {
	root := systemRootCommon
	if arch == ArchARM {
		root = systemRootARM
	}

	return Plan{
		Mode:              ModeSystem,
		InstallRoot:       root,
		BinDir:            systemBinDir,
		RequiresElevation: true,
	}
}

// StorageDir returns the package-storage directory inside the root.
func (p Plan) StorageDir() string {
	return filepath.Join(p.InstallRoot, StorageDirName)
}

// ArtifactPath returns where the downloaded program file lives.
func (p Plan) ArtifactPath() string {
	return filepath.Join(p.InstallRoot, ArtifactName)
}

// VersionFilePath returns where the version marker lives.
func (p Plan) VersionFilePath() string {
	return filepath.Join(p.InstallRoot, VersionFileName)
}

// WrapperPath returns the full path of the wrapper executable.
func (p Plan) WrapperPath() string {
	return filepath.Join(p.BinDir, WrapperName)
}

// Validate checks the structural invariants of the plan.
func (p Plan) Validate() error {
	if !filepath.IsAbs(p.InstallRoot) {
		return errRootNotAbsolute
	}

	if !filepath.IsAbs(p.BinDir) {
		return errBinDirNotAbsolute
	}

	switch p.Mode {
	case ModeUser:
		if p.RequiresElevation {
			return errUserModeElevated
		}

		if !isSubPath(p.InstallRoot, p.BinDir) {
			return errUserBinOutsideRoot
		}
	case ModeSystem:
		if !p.RequiresElevation {
			return errSystemModeNotElevated
		}

		if isSubPath(p.InstallRoot, p.BinDir) {
			return errSystemBinInsideRoot
		}
	default:
		return errUnknownMode
	}

	return nil
}

// isSubPath reports whether child is located inside parent.
func isSubPath(parent, child string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}

	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
