package bootstrap

import (
	"context"
	"fmt"

	"github.com/SamukeloGift/Brewery/internal/domain/install"
	"github.com/SamukeloGift/Brewery/internal/logger"
	"github.com/SamukeloGift/Brewery/internal/shell"
)

// selectPlan asks the user to pick an installation mode, shows what the
// choice means, and waits for confirmation. It reports false when the user
// declines; that is a clean cancellation, not an error.
func (r *runner) selectPlan(ctx context.Context) (bool, error) {
	r.printer.Stepf(2, totalSteps, "Choosing the installation mode")

	userPlan := install.NewUserPlan(r.homeDir)
	systemPlan := install.NewSystemPlan(r.env.Arch)

	choice, err := r.prompter.Choose("Select installation mode:", []string{
		fmt.Sprintf("User   - installs under %s, no administrator access needed",
			shell.FriendlyPath(userPlan.InstallRoot, r.homeDir)),
		fmt.Sprintf("System - installs under %s for all users, needs sudo",
			systemPlan.InstallRoot),
	})
	if err != nil {
		return false, err
	}

	plan := userPlan
	if choice == 1 {
		plan = systemPlan
	}

	if err = plan.Validate(); err != nil {
		return false, fmt.Errorf("resolve installation plan: %w", err)
	}

	r.plan = plan
	r.profile = shell.ProfileForShell(r.env.ShellName, r.homeDir)

	logger.InfoKV(ctx, "Installation plan selected",
		"mode", plan.Mode.String(),
		"root", plan.InstallRoot,
		"bin_dir", plan.BinDir)

	r.printPlanSummary()

	return r.prompter.Confirm("Proceed with installation?", true)
}

// printPlanSummary shows exactly what the run is about to do.
func (r *runner) printPlanSummary() {
	r.printer.Plainf("")
	r.printer.Plainf("About to install:")
	r.printer.Plainf("  mode:      %s", r.plan.Mode)
	r.printer.Plainf("  root:      %s", shell.FriendlyPath(r.plan.InstallRoot, r.homeDir))
	r.printer.Plainf("  wrapper:   %s", shell.FriendlyPath(r.plan.WrapperPath(), r.homeDir))

	if r.plan.Mode == install.ModeUser {
		r.printer.Plainf("  PATH line: %s", shell.FriendlyPath(r.profile.Path, r.homeDir))
	} else {
		r.printer.Plainf("  PATH:      %s is already shared", r.plan.BinDir)
	}

	r.printer.Plainf("")
}
