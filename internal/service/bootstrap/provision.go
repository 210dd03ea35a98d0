package bootstrap

import (
	"context"

	"github.com/SamukeloGift/Brewery/internal/fsops"
	"github.com/SamukeloGift/Brewery/internal/logger"
	"github.com/SamukeloGift/Brewery/internal/service/common"
	"github.com/SamukeloGift/Brewery/internal/shell"
)

// provisionDirectories creates the install tree and the bin directory,
// then hands ownership of elevated trees back to the invoking user so the
// rest of the run can write natively. A failed ownership fix is only a
// warning; a failed mkdir is fatal.
func (r *runner) provisionDirectories(ctx context.Context) error {
	for _, dir := range []string{r.plan.StorageDir(), r.plan.BinDir} {
		if err := r.executor.MkdirAll(ctx, dir, fsops.DirMode); err != nil {
			return err
		}

		r.printer.Successf("%s", shell.FriendlyPath(dir, r.homeDir))
	}

	if !r.plan.RequiresElevation {
		return nil
	}

	owner := common.OwnerSpec(r.username)

	if err := r.executor.OwnTree(ctx, r.plan.InstallRoot, owner); err != nil {
		logger.WarnKV(ctx, "Could not transfer ownership",
			"root", r.plan.InstallRoot, "owner", owner, "error", err)
		r.printer.Warnf("could not hand %s over to %s, later updates may need sudo",
			r.plan.InstallRoot, owner)
	} else {
		r.printer.Successf("%s handed over to %s", r.plan.InstallRoot, owner)
	}

	return nil
}
