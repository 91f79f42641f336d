package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/meridian-diagrams/meridian/watch"
)

func newWatchCmd(themePath *string) *cobra.Command {
	var port string
	var debug bool

	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Serve a rendered diagram over HTTP, live-reloading on source or theme changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			w, err := watch.New(watch.Config{
				File:      args[0],
				ThemePath: *themePath,
				Port:      port,
				Debug:     debug,
				Stdout:    cmd.OutOrStdout(),
				Stderr:    os.Stderr,
			})
			if err != nil {
				return err
			}
			return w.Watch(ctx)
		},
	}
	cmd.Flags().StringVar(&port, "port", "0", "HTTP server port (0 for a random available port)")
	cmd.Flags().BoolVar(&debug, "debug", false, "enable debug logging")
	return cmd
}
