package bootstrap

import (
	"context"

	"github.com/SamukeloGift/Brewery/internal/domain/install"
	"github.com/SamukeloGift/Brewery/internal/logger"
	"github.com/SamukeloGift/Brewery/internal/shell"
)

// configurePath appends the PATH line to the user's startup file.
// System-wide installations skip this: their bin directory is already on
// everyone's PATH. Profile problems never fail the run; the installation
// works, the user just has to wire PATH by hand.
func (r *runner) configurePath(ctx context.Context) {
	if r.plan.Mode == install.ModeSystem {
		logger.Debugf(ctx, "%s is shared, no profile change needed", r.plan.BinDir)

		return
	}

	changed, err := shell.EnsurePathLine(r.profile, r.plan.BinDir, r.homeDir)
	if err != nil {
		logger.WarnKV(ctx, "Could not update shell profile",
			"profile", r.profile.Path, "error", err)
		r.printer.Warnf("could not update %s: %v", r.profile.Path, err)
		r.printer.Warnf("add this line yourself: %s",
			r.profile.PathExportLine(r.plan.BinDir, r.homeDir))

		return
	}

	if changed {
		r.printer.Successf("PATH line added to %s",
			shell.FriendlyPath(r.profile.Path, r.homeDir))
	} else {
		r.printer.Successf("PATH line already present in %s",
			shell.FriendlyPath(r.profile.Path, r.homeDir))
	}
}
