package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/bamsammich/ffind/internal/config"
	"github.com/bamsammich/ffind/internal/proto"
	"github.com/bamsammich/ffind/internal/ui"
)

const statusTimeout = 5 * time.Second

var statusCmd = &cobra.Command{
	Use:           "status",
	Short:         "Show index size, roots and counters of the running daemon",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, err := commandClient(cmd)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), statusTimeout)
		defer cancel()

		status, err := client.Status(ctx)
		if err != nil {
			return err
		}
		fmt.Fprint(os.Stdout, ui.StatusReport(status, ui.IsTTY(os.Stdout.Fd())))
		return nil
	},
}

var pingCmd = &cobra.Command{
	Use:           "ping",
	Short:         "Check that the daemon is answering",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, err := commandClient(cmd)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), statusTimeout)
		defer cancel()

		start := time.Now()
		pong, err := client.Ping(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "ffind daemon %s (pid %d) on %s: %s\n",
			pong.Version, pong.Pid, client.SocketPath, ui.FormatDuration(time.Since(start)))
		return nil
	},
}

// commandClient builds a client for a subcommand from the persistent
// --socket flag and the config file.
func commandClient(cmd *cobra.Command) (*proto.Client, error) {
	socket, err := cmd.Flags().GetString("socket")
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load()
	if err != nil {
		slog.Warn("failed to load config", "error", err)
	}
	ui.ApplyTheme(cfg.Theme)
	return proto.NewClient(resolveSocket(socket, cfg)), nil
}
