package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/oshokin/paper-updater/internal/logger"
	"github.com/oshokin/paper-updater/internal/service/updater"
	"github.com/oshokin/paper-updater/internal/version"
)

var errUnknownLogLevel = errors.New("unknown log level")

// flags holds values shared by every command.
type flags struct {
	// configPath to the optional configuration YAML file.
	configPath string
	// directory to install server.jar into.
	directory string
	// logLevel is the minimum level of printed messages.
	logLevel string
}

// bind registers the shared flags on fs.
func (f *flags) bind(fs *pflag.FlagSet) {
	fs.StringVarP(&f.configPath, "config", "c", "", "path to configuration file (default paper-updater.yaml if present)")
	fs.StringVar(&f.logLevel, "log-level", "info", "log level: debug, info, warn, error")
}

// options converts the flags into updater options.
func (f *flags) options(cmd *cobra.Command) *updater.Options {
	return &updater.Options{
		ConfigPath: f.configPath,
		Directory:  f.directory,
		Output:     cmd.OutOrStdout(),
	}
}

// applyLogLevel sets the global log level from the flag value.
func (f *flags) applyLogLevel() error {
	level, ok := logger.ParseLogLevel(f.logLevel)
	if !ok {
		return fmt.Errorf("%w: %s", errUnknownLogLevel, f.logLevel)
	}

	logger.SetLevel(level)

	return nil
}

// newRootCommand builds the command tree.
func newRootCommand() *cobra.Command {
	shared := new(flags)

	rootCmd := &cobra.Command{
		Use:           "paper-updater",
		Short:         "Download the latest Paper server build as server.jar",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return shared.applyLogLevel()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			return updater.Run(ctx, shared.options(cmd))
		},
	}

	shared.bind(rootCmd.PersistentFlags())
	rootCmd.Flags().StringVarP(&shared.directory, "dir", "d", "", "directory to write the latest server JAR to")

	rootCmd.AddCommand(newLatestCommand(shared))
	version.AttachCobraVersionCommand(rootCmd)

	return rootCmd
}

// Execute runs the paper-updater CLI and exits with non-zero status on error.
func Execute() {
	if err := execute(context.Background(), newRootCommand()); err != nil {
		os.Exit(1)
	}
}

// execute runs root and reports a failure exactly once.
func execute(ctx context.Context, root *cobra.Command) error {
	err := root.ExecuteContext(ctx)
	if err != nil {
		logger.ErrorKV(ctx, "Fail.", "error", err)
	}

	return err
}
