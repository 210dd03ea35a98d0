package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/SamukeloGift/Brewery/internal/domain/install"
	"github.com/SamukeloGift/Brewery/internal/shell"
)

// wrapperFileMode makes the stub executable for every user.
const wrapperFileMode = 0o755

// renderWrapper builds the wrapper stub. The stub exports the home
// variable and replaces itself with the runner, so the wrapped tool sees
// the original arguments and exit codes pass through untouched.
func renderWrapper(installRoot, runnerCommand string) string {
	return fmt.Sprintf(`#!/bin/sh
export %[1]s=%[2]q
exec %[3]s run "$%[1]s/%[4]s" "$@"
`, install.HomeEnvVar, installRoot, runnerCommand, install.ArtifactName)
}

// generateWrapper places the executable stub into the bin directory.
func (r *runner) generateWrapper(ctx context.Context) error {
	stub := renderWrapper(r.plan.InstallRoot, r.cfg.Runner)

	err := r.executor.PlaceFile(ctx,
		r.plan.WrapperPath(), strings.NewReader(stub), wrapperFileMode)
	if err != nil {
		return err
	}

	r.printer.Successf("%s ready", shell.FriendlyPath(r.plan.WrapperPath(), r.homeDir))

	return nil
}
