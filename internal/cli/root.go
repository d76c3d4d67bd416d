package cli

import (
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"astuart.co/goswipe"
	"astuart.co/goswipe/internal/config"
	"astuart.co/goswipe/internal/logx"
)

// Version is set at build time with -ldflags "-X ...cli.Version=...".
var Version = "dev"

type rootOptions struct {
	cfgPath  string
	logLevel string

	cfg *config.Config
	log *zap.Logger
}

// Execute runs the goswipe root command.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:          "goswipe",
		Short:        "Compile x-swiper carousel directives in HTML into Swiper configurations",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.log != nil {
				_ = opts.log.Sync()
			}
		},
	}
	fs := cmd.PersistentFlags()
	fs.StringVarP(&opts.cfgPath, "config", "c", "goswipe.yaml", "config yaml path (missing file uses defaults)")
	fs.StringVar(&opts.logLevel, "log-level", "", "log level (overrides logging.level)")

	cmd.AddCommand(
		newCompileCmd(opts),
		newRenderCmd(opts),
		newServeCmd(opts),
		newWatchCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

func (o *rootOptions) load() error {
	cfg, err := config.Load(o.cfgPath)
	if err != nil {
		return err
	}
	if v := strings.TrimSpace(o.logLevel); v != "" {
		cfg.Logging.Level = v
	}
	log, err := logx.New(cfg.Logging.Level, cfg.Logging.Development)
	if err != nil {
		return err
	}
	o.cfg, o.log = cfg, log
	goswipe.SetLogger(log)
	return nil
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	// #nosec G304 -- path is provided by the user on the command line.
	return os.ReadFile(path)
}
