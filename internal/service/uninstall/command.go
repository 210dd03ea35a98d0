package uninstall

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/SamukeloGift/Brewery/internal/domain/install"
	"github.com/SamukeloGift/Brewery/internal/fsops"
	"github.com/SamukeloGift/Brewery/internal/logger"
	"github.com/SamukeloGift/Brewery/internal/service/common"
	"github.com/SamukeloGift/Brewery/internal/shell"
	"github.com/SamukeloGift/Brewery/internal/ui"
)

var errSudoMissing = errors.New("sudo not found on PATH")

// Options are inputs accepted by the uninstall entry point.
type Options struct {
	// Yes skips the confirmation question.
	Yes bool
	// Input overrides stdin for the confirmation. Tests use this.
	Input io.Reader
	// Output overrides stdout for the conversation. nil means real stdout.
	Output io.Writer
}

// Run removes the br installation found on this machine. Finding nothing
// is not an error, so running uninstall twice is harmless.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "br-uninstall")

	if opts == nil {
		opts = &Options{}
	}

	printer := ui.NewPrinter(opts.Output)

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("resolve home directory: %w", err)
	}

	plan, rec, err := common.DetectExisting(ctx, homeDir)
	if err != nil {
		if errors.Is(err, common.ErrNoInstallation) {
			printer.Plainf("No br installation found. Nothing to do.")

			return nil
		}

		return err
	}

	r := &runner{
		printer:  printer,
		prompter: ui.NewPrompter(opts.Input, opts.Output),
		yes:      opts.Yes,
		homeDir:  homeDir,
		plan:     plan,
		rec:      rec,
	}

	if err = r.Run(ctx); err != nil {
		logger.ErrorKV(ctx, "Uninstall failed", "error", err)

		return err
	}

	return nil
}

// runner holds the state for one uninstall execution.
type runner struct {
	printer  *ui.Printer      // Conversation output.
	prompter *ui.Prompter     // Confirmation question.
	yes      bool             // Skip the confirmation.
	homeDir  string           // Invoking user's home directory.
	plan     install.Plan     // Layout being removed.
	rec      *install.Receipt // Receipt from the original run, may be nil.
	executor fsops.Executor   // How removals are applied.
}

// Run announces what will be removed, asks once, and then removes the
// wrapper, the install root, and the profile PATH line. Removal failures
// are collected instead of aborting, so one stubborn path does not keep
// the rest of the teardown from running.
func (r *runner) Run(ctx context.Context) error {
	r.printer.Titlef("br uninstall")
	r.printer.Plainf("This will remove:")
	r.printer.Plainf("  root:    %s", shell.FriendlyPath(r.plan.InstallRoot, r.homeDir))
	r.printer.Plainf("  wrapper: %s", shell.FriendlyPath(r.plan.WrapperPath(), r.homeDir))

	profile, hasProfile := r.profileToClean()
	if hasProfile {
		r.printer.Plainf("  PATH line in %s", shell.FriendlyPath(profile.Path, r.homeDir))
	}

	r.printer.Plainf("")

	if !r.yes {
		proceed, err := r.prompter.Confirm("Remove this installation?", false)
		if err != nil {
			return err
		}

		if !proceed {
			r.printer.Plainf("Uninstall cancelled. Nothing was changed.")

			return nil
		}
	}

	if err := r.prepareElevation(ctx); err != nil {
		return err
	}

	var failures []error

	if err := r.executor.Remove(ctx, r.plan.WrapperPath()); err != nil {
		failures = append(failures, fmt.Errorf("remove wrapper: %w", err))
	} else {
		r.printer.Successf("wrapper removed")
	}

	if err := r.executor.RemoveAll(ctx, r.plan.InstallRoot); err != nil {
		failures = append(failures, fmt.Errorf("remove install root: %w", err))
	} else {
		r.printer.Successf("%s removed", shell.FriendlyPath(r.plan.InstallRoot, r.homeDir))
	}

	if hasProfile {
		changed, err := shell.RemovePathLine(profile, r.plan.BinDir, r.homeDir)

		switch {
		case err != nil:
			failures = append(failures, fmt.Errorf("clean profile: %w", err))
		case changed:
			r.printer.Successf("PATH line removed from %s",
				shell.FriendlyPath(profile.Path, r.homeDir))
		}
	}

	if len(failures) > 0 {
		return errors.Join(failures...)
	}

	r.printer.Plainf("")
	r.printer.Successf("br is gone. Run the bootstrap again any time.")

	return nil
}

// profileToClean resolves which startup file may carry the PATH line.
// System-wide installations never touched a profile.
func (r *runner) profileToClean() (shell.Profile, bool) {
	if r.plan.Mode != install.ModeUser {
		return shell.Profile{}, false
	}

	if r.rec != nil && r.rec.ProfilePath != "" {
		return shell.Profile{Path: r.rec.ProfilePath}, true
	}

	return shell.ProfileForShell(common.DetectShellName(), r.homeDir), true
}

// prepareElevation wires the executor and pre-authorizes sudo when the
// layout being removed was installed system-wide.
func (r *runner) prepareElevation(ctx context.Context) error {
	r.executor = fsops.ForPlan(r.plan)

	elevated, ok := r.executor.(*fsops.Elevated)
	if !ok {
		return nil
	}

	if !common.ToolAvailable("sudo") {
		return errSudoMissing
	}

	r.printer.Plainf("Administrator access is needed to remove %s.", r.plan.InstallRoot)

	if err := elevated.Preauthorize(ctx); err != nil {
		return fmt.Errorf("authorize sudo: %w", err)
	}

	return nil
}
