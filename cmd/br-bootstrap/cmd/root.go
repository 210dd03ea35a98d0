package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/SamukeloGift/Brewery/internal/config"
	"github.com/SamukeloGift/Brewery/internal/logger"
	"github.com/SamukeloGift/Brewery/internal/service/bootstrap"
	"github.com/SamukeloGift/Brewery/internal/service/uninstall"
	"github.com/SamukeloGift/Brewery/internal/version"
)

var (
	// configPath to the optional settings YAML file.
	configPath string
	// logLevel for diagnostic output on stderr.
	logLevel string
	// assumeYes answers the uninstall confirmation automatically.
	assumeYes bool

	// rootCmd represents the interactive bootstrap installer.
	rootCmd = &cobra.Command{
		Use:   "br-bootstrap",
		Short: "Install the br package manager on this machine",
		Long: `Interactively installs the br package manager.

The bootstrap asks whether br should be installed for the current user
(under ~/.br, no administrator access needed) or system-wide (under a
shared prefix, through sudo), downloads the program file, generates the
br wrapper command, wires PATH for user installations, and verifies the
result. A failed run removes everything it created.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if level, ok := logger.ParseLogLevel(logLevel); ok {
				logger.SetLevel(level)
			}
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			return bootstrap.Run(ctx, &bootstrap.Options{ConfigPath: configPath})
		},
	}

	// uninstallCmd removes an installation made by the bootstrap.
	uninstallCmd = &cobra.Command{
		Use:   "uninstall",
		Short: "Remove the br installation from this machine",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			return uninstall.Run(ctx, &uninstall.Options{Yes: assumeYes})
		},
	}

	// verifyCmd re-checks an existing installation without changing it.
	verifyCmd = &cobra.Command{
		Use:   "verify",
		Short: "Check the health of an existing br installation",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			return bootstrap.RunVerify(ctx, &bootstrap.Options{ConfigPath: configPath})
		},
	}
)

// Execute runs the br-bootstrap CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)
	rootCmd.AddCommand(uninstallCmd, verifyCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"path to settings file (default "+config.DefaultConfigFilename+" when present)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"diagnostic log level (debug, info, warn, error)")
	uninstallCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "do not ask for confirmation")
}
