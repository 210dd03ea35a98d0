package bootstrap

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/SamukeloGift/Brewery/internal/config"
	"github.com/SamukeloGift/Brewery/internal/domain/install"
	"github.com/SamukeloGift/Brewery/internal/logger"
	"github.com/SamukeloGift/Brewery/internal/service/common"
	"github.com/SamukeloGift/Brewery/internal/shell"
	"github.com/SamukeloGift/Brewery/internal/ui"
)

// wrapperProbeTimeout bounds the advisory invocation check. The first
// wrapper run may resolve dependencies, so it gets a generous budget.
const wrapperProbeTimeout = 15 * time.Second

// Check names as they appear in the report.
const (
	checkWrapperExecutable = "wrapper executable"
	checkArtifactPresent   = "artifact present"
	checkDirectoriesExist  = "directories present"
	checkWrapperInvocable  = "wrapper invocable"
)

// verifyInstallation runs the post-installation checklist in order.
// The first three checks must pass for the installation to count; the
// invocation check is advisory and never fails the run on its own.
func (r *runner) verifyInstallation(ctx context.Context) *install.Report {
	report := new(install.Report)

	report.Add(r.wrapperExecutableCheck())
	report.Add(r.artifactPresentCheck())
	report.Add(r.directoriesPresentCheck())
	report.Add(r.wrapperInvocableCheck(ctx))

	return report
}

// wrapperExecutableCheck confirms the stub exists with an execute bit set.
func (r *runner) wrapperExecutableCheck() install.Check {
	check := install.Check{Name: checkWrapperExecutable, Fatal: true}

	info, err := os.Stat(r.plan.WrapperPath())

	switch {
	case err != nil:
		check.Note = err.Error()
	case !info.Mode().IsRegular():
		check.Note = "not a regular file"
	case info.Mode().Perm()&0o111 == 0:
		check.Note = "no execute permission"
	default:
		check.Passed = true
	}

	return check
}

// artifactPresentCheck confirms the program file landed in the root.
func (r *runner) artifactPresentCheck() install.Check {
	check := install.Check{Name: checkArtifactPresent, Fatal: true}

	info, err := os.Stat(r.plan.ArtifactPath())

	switch {
	case err != nil:
		check.Note = err.Error()
	case !info.Mode().IsRegular():
		check.Note = "not a regular file"
	default:
		check.Passed = true
	}

	return check
}

// directoriesPresentCheck confirms the whole tree exists.
func (r *runner) directoriesPresentCheck() install.Check {
	check := install.Check{Name: checkDirectoriesExist, Fatal: true}

	var missing []string

	for _, dir := range []string{r.plan.InstallRoot, r.plan.StorageDir(), r.plan.BinDir} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			missing = append(missing, dir)
		}
	}

	if len(missing) > 0 {
		check.Note = "missing: " + strings.Join(missing, ", ")

		return check
	}

	check.Passed = true

	return check
}

// wrapperInvocableCheck tries the wrapper end to end. It is deliberately
// tolerant: a slow or failing first run records an indeterminate pass, and
// per-user installations skip it because the new PATH entry is not active
// in the shell that launched the bootstrap.
func (r *runner) wrapperInvocableCheck(ctx context.Context) install.Check {
	check := install.Check{Name: checkWrapperInvocable, Passed: true}

	if r.plan.Mode == install.ModeUser {
		check.Note = "skipped, PATH is not active in this shell yet"

		return check
	}

	probeCtx, cancel := context.WithTimeout(ctx, wrapperProbeTimeout)
	defer cancel()

	var output bytes.Buffer

	cmd := exec.CommandContext(probeCtx, r.plan.WrapperPath(), "--version")
	cmd.Stdout = &output
	cmd.Stderr = &output

	if err := cmd.Start(); err != nil {
		logger.DebugKV(ctx, "Wrapper probe did not start", "error", err)
		check.Note = fmt.Sprintf("indeterminate: %v", err)

		return check
	}

	spinner := ui.NewSpinner(r.printer.Out())
	spinner.WatchProcess(cmd.Process.Pid, "checking "+install.WrapperName)

	err := cmd.Wait()

	spinner.Stop()
	spinner.Wait()

	if err != nil {
		logger.DebugKV(ctx, "Wrapper probe failed",
			"error", err, "output", output.String())
		check.Note = fmt.Sprintf("indeterminate: %v", err)

		return check
	}

	if answer := firstLine(output.String()); answer != "" {
		check.Note = "answered: " + answer
	}

	return check
}

// renderReport prints one line per check outcome.
func (r *runner) renderReport(report *install.Report) {
	for _, check := range report.Checks() {
		switch {
		case check.Passed && check.Note != "":
			r.printer.Successf("%s (%s)", check.Name, check.Note)
		case check.Passed:
			r.printer.Successf("%s", check.Name)
		case check.Fatal:
			r.printer.Errorf("%s: %s", check.Name, check.Note)
		default:
			r.printer.Warnf("%s: %s", check.Name, check.Note)
		}
	}
}

// firstLine trims the probe output down to something report-sized.
func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[:idx]
	}

	const maxAnswer = 80
	if len(s) > maxAnswer {
		s = s[:maxAnswer]
	}

	return s
}

// RunVerify checks an existing installation without changing it and is the
// entry point for the verify subcommand.
func RunVerify(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "br-verify")

	if opts == nil {
		opts = &Options{}
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("resolve home directory: %w", err)
	}

	plan, rec, err := common.DetectExisting(ctx, homeDir)
	if err != nil {
		if errors.Is(err, common.ErrNoInstallation) {
			ui.NewPrinter(opts.Output).Errorf("no br installation found")
		}

		return err
	}

	printer := ui.NewPrinter(opts.Output)
	printer.Titlef("br installation check")
	printer.Plainf("  root: %s", shell.FriendlyPath(plan.InstallRoot, homeDir))

	if rec != nil && rec.Version != "" {
		printer.Plainf("  version: %s", rec.Version)
	}

	r := &runner{
		cfg:     cfg,
		printer: printer,
		homeDir: homeDir,
		plan:    plan,
	}

	report := r.verifyInstallation(ctx)
	r.renderReport(report)

	if !report.Passed() {
		return errVerificationFailed
	}

	printer.Successf("installation looks healthy")

	return nil
}
