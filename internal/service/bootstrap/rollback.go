package bootstrap

import (
	"context"

	"github.com/SamukeloGift/Brewery/internal/domain/install"
	"github.com/SamukeloGift/Brewery/internal/fsops"
	"github.com/SamukeloGift/Brewery/internal/logger"
	"github.com/SamukeloGift/Brewery/internal/ui"
)

// rollbackGuard returns the filesystem to its pre-run condition when a run
// fails after provisioning has started. It is armed on creation; succeed
// disarms it, and firing a disarmed guard does nothing.
type rollbackGuard struct {
	plan     install.Plan   // What was (partially) created.
	executor fsops.Executor // Same executor the run used, elevation included.
	state    install.RunState
}

// newRollbackGuard arms a guard for the given plan.
func newRollbackGuard(plan install.Plan, executor fsops.Executor) *rollbackGuard {
	return &rollbackGuard{
		plan:     plan,
		executor: executor,
		state:    install.StateRunning,
	}
}

// succeed records the terminal success state so that fire becomes a no-op.
func (g *rollbackGuard) succeed() error {
	next, err := g.state.Transition(install.StateSucceeded)
	if err != nil {
		return err
	}

	g.state = next

	return nil
}

// fire removes the wrapper file and then the whole install root. Cleanup
// runs on a context detached from cancellation, so the interrupt that
// failed the run cannot also abort the rollback. Removal errors are
// reported and skipped; cleanup always runs to the end.
func (g *rollbackGuard) fire(ctx context.Context, printer *ui.Printer) {
	failed, err := g.state.Transition(install.StateFailed)
	if err != nil {
		return
	}

	g.state = failed

	cleanupCtx := context.WithoutCancel(ctx)

	printer.Plainf("")
	printer.Warnf("rolling back, removing everything this run created")

	if err := g.executor.Remove(cleanupCtx, g.plan.WrapperPath()); err != nil {
		logger.WarnKV(cleanupCtx, "Rollback could not remove the wrapper",
			"path", g.plan.WrapperPath(), "error", err)
	}

	if err := g.executor.RemoveAll(cleanupCtx, g.plan.InstallRoot); err != nil {
		logger.WarnKV(cleanupCtx, "Rollback could not remove the install root",
			"path", g.plan.InstallRoot, "error", err)
	}

	if rolledBack, err := g.state.Transition(install.StateRolledBack); err == nil {
		g.state = rolledBack
	}

	printer.Warnf("rollback finished, no partial installation remains")
}
