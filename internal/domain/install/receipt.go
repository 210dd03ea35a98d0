package install

import "time"

// Receipt records what a completed bootstrap created, so later uninstall
// and verify runs know the layout without re-deriving it.
type Receipt struct {
	// Mode is the installation flavor the run used ("user" or "system").
	Mode string `json:"mode"`
	// InstallRoot is the directory the run created.
	InstallRoot string `json:"install_root"`
	// BinDir is where the wrapper was placed.
	BinDir string `json:"bin_dir"`
	// WrapperPath is the full path of the wrapper executable.
	WrapperPath string `json:"wrapper_path"`
	// ProfilePath is the startup file that received the PATH line,
	// empty for system-wide installations.
	ProfilePath string `json:"profile_path,omitempty"`
	// Version is the installed version marker, empty when unknown.
	Version string `json:"version,omitempty"`
	// CreatedAt is when the installation finished.
	CreatedAt time.Time `json:"created_at"`
}

// NewReceipt captures the outcome of a run for the given plan.
func NewReceipt(plan Plan, profilePath, version string, createdAt time.Time) *Receipt {
	return &Receipt{
		Mode:        plan.Mode.String(),
		InstallRoot: plan.InstallRoot,
		BinDir:      plan.BinDir,
		WrapperPath: plan.WrapperPath(),
		ProfilePath: profilePath,
		Version:     version,
		CreatedAt:   createdAt,
	}
}

// Plan rebuilds the installation plan the receipt was written for.
func (r *Receipt) Plan() (Plan, error) {
	mode, err := ParseMode(r.Mode)
	if err != nil {
		return Plan{}, err
	}

	plan := Plan{
		Mode:              mode,
		InstallRoot:       r.InstallRoot,
		BinDir:            r.BinDir,
		RequiresElevation: mode == ModeSystem,
	}

	if err = plan.Validate(); err != nil {
		return Plan{}, err
	}

	return plan, nil
}
