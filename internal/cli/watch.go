package cli

import (
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"astuart.co/goswipe/internal/watch"
)

type watchOptions struct {
	dir    string
	outDir string
	render bool
}

func newWatchCmd(root *rootOptions) *cobra.Command {
	opts := watchOptions{}
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Recompile HTML files whenever they change",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, root, opts)
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&opts.dir, "dir", "", "directory to watch (overrides watch.dir)")
	fs.StringVar(&opts.outDir, "out-dir", "", "directory for reports (overrides watch.out_dir)")
	fs.BoolVar(&opts.render, "render", false, "also write rendered HTML")
	return cmd
}

func runWatch(cmd *cobra.Command, root *rootOptions, opts watchOptions) error {
	cfg := root.cfg
	wopts := watch.Options{
		Dir:      cfg.Watch.Dir,
		OutDir:   cfg.Watch.OutDir,
		Debounce: time.Duration(cfg.Watch.DebounceMs) * time.Millisecond,
		Render:   cfg.Watch.Render || opts.render,
		Compiler: cfg.CompilerOptions(),
	}
	if v := strings.TrimSpace(opts.dir); v != "" {
		wopts.Dir = v
	}
	if v := strings.TrimSpace(opts.outDir); v != "" {
		wopts.OutDir = v
	}

	closer, err := watch.Start(wopts, root.log.Named("watch"))
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	return nil
}
