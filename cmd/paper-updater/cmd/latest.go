package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/paper-updater/internal/service/updater"
)

// newLatestCommand prints the newest build without downloading it.
func newLatestCommand(shared *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "latest",
		Short: "Show the latest version and build without downloading",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			_, err := updater.Latest(ctx, shared.options(cmd))

			return err
		},
	}
}
