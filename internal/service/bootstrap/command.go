package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/SamukeloGift/Brewery/internal/config"
	"github.com/SamukeloGift/Brewery/internal/domain/install"
	"github.com/SamukeloGift/Brewery/internal/fsops"
	"github.com/SamukeloGift/Brewery/internal/logger"
	"github.com/SamukeloGift/Brewery/internal/repository/receipt"
	"github.com/SamukeloGift/Brewery/internal/service/common"
	"github.com/SamukeloGift/Brewery/internal/shell"
	"github.com/SamukeloGift/Brewery/internal/ui"
	"github.com/SamukeloGift/Brewery/internal/version"
)

// totalSteps is how many numbered steps a full run announces.
const totalSteps = 6

var (
	errNotInteractive     = errors.New("standard input is not a terminal")
	errRunnerMissing      = errors.New("runner command not found on PATH")
	errSudoMissing        = errors.New("sudo not found on PATH")
	errNetworkUnreachable = errors.New("artifact host is unreachable")
	errVerificationFailed = errors.New("verification failed")
)

// Options are inputs accepted by the bootstrap entry point.
type Options struct {
	// ConfigPath is the optional path to a settings YAML file.
	ConfigPath string
	// Input overrides stdin for the interactive questions. Tests use this;
	// a nil value means real stdin, which then must be a terminal.
	Input io.Reader
	// Output overrides stdout for the conversation. nil means real stdout.
	Output io.Writer
}

// runner holds the mutable state and helpers for a single bootstrap execution.
// It is intentionally unexported; call Run(ctx, opts) from callers.
type runner struct {
	cfg        *config.Config     // Endpoints and timeouts for this run.
	client     *http.Client       // HTTP client bounded by cfg.Timeout.
	printer    *ui.Printer        // Conversation output.
	prompter   *ui.Prompter       // Interactive questions.
	requireTTY bool               // Whether stdin must be a terminal.
	env        common.Environment // Pre-flight host snapshot.
	homeDir    string             // Invoking user's home directory.
	username   string             // Invoking user for ownership fixes.
	plan       install.Plan       // Where this installation goes.
	executor   fsops.Executor     // How filesystem changes are applied.
	elevated   *fsops.Elevated    // Set when the plan works through sudo.
	profile    shell.Profile      // Startup file that received the PATH line.
	version    string             // Version marker contents, best-effort.
	guard      *rollbackGuard     // Removes created state on failure.
}

// Run executes the interactive bootstrap and is the public entry point
// for the CLI. A clean user cancellation returns nil.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "br-bootstrap")

	r, err := newRunner(ctx, opts)
	if err != nil {
		return err
	}

	if err = r.Run(ctx); err != nil {
		logger.ErrorKV(ctx, "Bootstrap run failed", "error", err)

		return err
	}

	return nil
}

// newRunner loads settings and prepares the conversation plumbing.
func newRunner(ctx context.Context, opts *Options) (*runner, error) {
	if opts == nil {
		opts = &Options{}
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	username, err := common.InvokingUser()
	if err != nil {
		return nil, err
	}

	logger.DebugKV(ctx, "Runner prepared",
		"artifact_url", cfg.ArtifactURL, "user", username)

	return &runner{
		cfg:        cfg,
		client:     &http.Client{Timeout: cfg.Timeout},
		printer:    ui.NewPrinter(opts.Output),
		prompter:   ui.NewPrompter(opts.Input, opts.Output),
		requireTTY: opts.Input == nil,
		homeDir:    homeDir,
		username:   username,
	}, nil
}

// Run executes the full workflow for this runner instance:
//  1. Probe the environment and check prerequisites.
//  2. Let the user pick and confirm an installation plan.
//  3. Provision the directory tree.
//  4. Download the program file and version marker.
//  5. Generate the wrapper executable.
//  6. Wire PATH and verify the installation.
//
// Any fatal failure after step 2 triggers the rollback guard.
func (r *runner) Run(ctx context.Context) error {
	r.printer.Titlef("br bootstrap %s", version.Short())
	r.printer.Plainf("This installer sets up the br package manager on this machine.")
	r.printer.Plainf("")

	r.printer.Stepf(1, totalSteps, "Checking the environment")

	if err := r.checkPrerequisites(ctx); err != nil {
		return err
	}

	proceed, err := r.selectPlan(ctx)
	if err != nil {
		return err
	}

	if !proceed {
		r.printer.Plainf("Installation cancelled. Nothing was changed.")

		return nil
	}

	if err = r.prepareElevation(ctx); err != nil {
		return err
	}

	r.guard = newRollbackGuard(r.plan, r.executor)
	defer func() {
		r.guard.fire(ctx, r.printer)
	}()

	r.printer.Stepf(3, totalSteps, "Creating directories")

	if err = r.provisionDirectories(ctx); err != nil {
		return fmt.Errorf("provision directories: %w", err)
	}

	r.printer.Stepf(4, totalSteps, "Downloading %s", install.ArtifactName)

	if err = r.fetchArtifact(ctx); err != nil {
		return fmt.Errorf("download artifact: %w", err)
	}

	r.fetchVersionMarker(ctx)

	r.printer.Stepf(5, totalSteps, "Generating the %s wrapper", install.WrapperName)

	if err = r.generateWrapper(ctx); err != nil {
		return fmt.Errorf("generate wrapper: %w", err)
	}

	r.configurePath(ctx)

	r.printer.Stepf(6, totalSteps, "Verifying the installation")

	report := r.verifyInstallation(ctx)
	r.renderReport(report)

	if !report.Passed() {
		return errVerificationFailed
	}

	r.writeReceipt(ctx)

	if err = r.guard.succeed(); err != nil {
		return err
	}

	r.printSummary()

	return nil
}

// checkPrerequisites fails fast, before any state is created, when the run
// cannot possibly succeed.
func (r *runner) checkPrerequisites(ctx context.Context) error {
	if r.requireTTY && !ui.StdinIsTerminal() {
		return errNotInteractive
	}

	if !common.ToolAvailable(r.cfg.Runner) {
		return fmt.Errorf("%w: %s (install it first, the wrapper depends on it)",
			errRunnerMissing, r.cfg.Runner)
	}

	r.env = common.DetectEnvironment(ctx, r.cfg.ProbeURL, common.DefaultProbeTimeout)
	if !r.env.NetworkReachable {
		return fmt.Errorf("%w: %s", errNetworkUnreachable, r.cfg.ProbeURL)
	}

	r.printer.Successf("%s available, network reachable", r.cfg.Runner)

	if r.env.ShellName == "" {
		r.printer.Warnf("could not detect your shell, assuming a POSIX one")
	}

	return nil
}

// prepareElevation wires the executor for the chosen plan and, for
// system-wide installations, makes sure sudo is usable before any
// directories are touched.
func (r *runner) prepareElevation(ctx context.Context) error {
	r.executor = fsops.ForPlan(r.plan)

	if !r.plan.RequiresElevation {
		return nil
	}

	if !common.ToolAvailable("sudo") {
		return errSudoMissing
	}

	elevated, ok := r.executor.(*fsops.Elevated)
	if !ok {
		// ForPlan always hands elevated plans an Elevated executor.
		return errSudoMissing
	}

	r.elevated = elevated
	r.printer.Plainf("Administrator access is needed for %s.", r.plan.InstallRoot)

	if err := elevated.Preauthorize(ctx); err != nil {
		return fmt.Errorf("authorize sudo: %w", err)
	}

	return nil
}

// writeReceipt records the finished layout inside the install root.
// Bookkeeping only: failures are logged, never fatal.
func (r *runner) writeReceipt(ctx context.Context) {
	profilePath := ""
	if r.plan.Mode == install.ModeUser {
		profilePath = r.profile.Path
	}

	rec := install.NewReceipt(r.plan, profilePath, r.version, time.Now().UTC())

	if err := receipt.ForRoot(r.plan.InstallRoot).Save(ctx, rec); err != nil {
		logger.WarnKV(ctx, "Could not write install receipt", "error", err)
	}
}

// printSummary closes a successful run with what changed and what to do next.
func (r *runner) printSummary() {
	r.printer.Plainf("")
	r.printer.Successf("br %s installed into %s",
		orUnknown(r.version), shell.FriendlyPath(r.plan.InstallRoot, r.homeDir))
	r.printer.Successf("wrapper at %s", shell.FriendlyPath(r.plan.WrapperPath(), r.homeDir))

	if r.plan.Mode == install.ModeUser {
		r.printer.Plainf("Open a new shell (or source %s) and run: br --help",
			shell.FriendlyPath(r.profile.Path, r.homeDir))
	} else {
		r.printer.Plainf("Run: br --help")
	}
}

// orUnknown renders a best-effort version for display.
func orUnknown(version string) string {
	if version == "" {
		return "(version unknown)"
	}

	return version
}
