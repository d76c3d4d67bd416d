package cli

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"astuart.co/goswipe/internal/server"
)

type serveOptions struct {
	listen string
}

func newServeCmd(root *rootOptions) *cobra.Command {
	opts := serveOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the compiler over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if v := strings.TrimSpace(opts.listen); v != "" {
				root.cfg.Server.Listen = v
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, root)
		},
	}
	cmd.Flags().StringVar(&opts.listen, "listen", "", "http listen address (overrides server.listen)")
	return cmd
}

func runServe(ctx context.Context, root *rootOptions) error {
	return server.New(root.cfg, root.log.Named("server")).Run(ctx)
}
