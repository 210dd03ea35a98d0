//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"errors"
	"os"

	"github.com/SamukeloGift/Brewery/internal/domain/install"
	"github.com/SamukeloGift/Brewery/internal/logger"
	"github.com/SamukeloGift/Brewery/internal/repository/receipt"
)

// ErrNoInstallation is returned when no br layout exists on this machine.
var ErrNoInstallation = errors.New("no br installation found")

// DetectExisting locates an existing installation by checking the per-user
// root first and then both system-wide prefixes. A receipt left by the
// bootstrap is the preferred source; a bare tree without one is still
// recognized so older or hand-made layouts can be managed too.
func DetectExisting(ctx context.Context, home string) (install.Plan, *install.Receipt, error) {
	return detectAmong(ctx, []install.Plan{
		install.NewUserPlan(home),
		install.NewSystemPlan(install.ArchARM),
		install.NewSystemPlan(install.ArchOther),
	})
}

// detectAmong checks the candidate layouts in order and returns the first hit.
func detectAmong(
	ctx context.Context,
	candidates []install.Plan,
) (install.Plan, *install.Receipt, error) {
	for _, candidate := range candidates {
		rec, err := receipt.ForRoot(candidate.InstallRoot).Load(ctx)

		switch {
		case err == nil:
			plan, planErr := rec.Plan()
			if planErr != nil {
				logger.WarnKV(ctx, "Ignoring unusable install receipt",
					"root", candidate.InstallRoot, "error", planErr)

				break
			}

			return plan, rec, nil
		case !errors.Is(err, receipt.ErrNotFound):
			logger.DebugKV(ctx, "Could not read install receipt",
				"root", candidate.InstallRoot, "error", err)
		}

		info, statErr := os.Stat(candidate.InstallRoot)
		if statErr == nil && info.IsDir() {
			return candidate, nil, nil
		}
	}

	return install.Plan{}, nil, ErrNoInstallation
}
